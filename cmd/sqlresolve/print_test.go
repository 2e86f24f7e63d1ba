/*
Copyright 2026 The SelectResolver Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sqlitestudio/selectresolver/resolver"
)

func TestFormatColumnPlain(t *testing.T) {
	c := resolver.Column{Table: "t", Column: "a", Alias: "a"}
	assert.Equal(t, "t.a", formatColumn(c))
}

func TestFormatColumnWithAlias(t *testing.T) {
	c := resolver.Column{Table: "t", Column: "a", Alias: "total"}
	assert.Equal(t, "t.a AS total", formatColumn(c))
}

func TestFormatColumnPrefersTableAlias(t *testing.T) {
	c := resolver.Column{Table: "real", TableAlias: "r", Column: "x", Alias: "x"}
	assert.Equal(t, "r.x", formatColumn(c))
}

func TestSplitOnce(t *testing.T) {
	before, after, ok := splitOnce("ext=main", '=')
	assert.True(t, ok)
	assert.Equal(t, "ext", before)
	assert.Equal(t, "main", after)

	_, _, ok = splitOnce("noequals", '=')
	assert.False(t, ok)
}
