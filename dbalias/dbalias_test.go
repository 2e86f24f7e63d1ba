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

package dbalias

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveDatabaseTranslatesAttachedName(t *testing.T) {
	m := New([2]string{"mydb", "main"})
	assert.Equal(t, "main", m.ResolveDatabase("mydb"))
	assert.Equal(t, "main", m.ResolveDatabase("MyDB"))
}

func TestResolveDatabasePassesThroughUnknownName(t *testing.T) {
	m := New([2]string{"mydb", "main"})
	assert.Equal(t, "other", m.ResolveDatabase("other"))
}

func TestResolveDatabaseOnNilMap(t *testing.T) {
	var m *Map
	assert.Equal(t, "x", m.ResolveDatabase("x"))
}

func TestAddOnZeroValueMap(t *testing.T) {
	var m Map
	m.Add("a", "b")
	assert.Equal(t, "b", m.ResolveDatabase("a"))
}
