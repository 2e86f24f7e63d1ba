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

package dbexec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFakeColumnsForQuery(t *testing.T) {
	f := NewFake()
	f.ColumnsForQueryResults["WITH c AS (SELECT 1 AS x) SELECT * FROM c"] = []ColumnInfo{{Alias: "x"}}

	cols, err := f.ColumnsForQuery("WITH c AS (SELECT 1 AS x) SELECT * FROM c")
	require.NoError(t, err)
	assert.Equal(t, []ColumnInfo{{Alias: "x"}}, cols)
}

func TestFakeColumnsForQueryUnprogrammed(t *testing.T) {
	f := NewFake()
	_, err := f.ColumnsForQuery("SELECT 1")
	assert.Error(t, err)
}

func TestFakeExec(t *testing.T) {
	f := NewFake()
	f.ExecResults["SELECT * FROM gen(1) LIMIT 0"] = []string{"col1"}
	cols, err := f.Exec("SELECT * FROM gen(1) LIMIT 0")
	require.NoError(t, err)
	assert.Equal(t, []string{"col1"}, cols)
}

func TestFakeProgrammedError(t *testing.T) {
	f := NewFake()
	boom := errors.New("boom")
	f.Errors["SELECT * FROM bad LIMIT 0"] = boom
	_, err := f.Exec("SELECT * FROM bad LIMIT 0")
	assert.Equal(t, boom, err)
}
