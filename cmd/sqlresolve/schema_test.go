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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"tables": [
			{"database": "main", "table": "t", "columns": ["a", "b"]},
			{"database": "main", "table": "v", "view_definition": "CREATE VIEW v AS SELECT a FROM t"}
		]
	}`), 0o644))

	cat, err := loadCatalog(path)
	require.NoError(t, err)

	cols, err := cat.TableColumns("main", "t")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cols)
	assert.True(t, cat.IsView("main", "v"))
}

func TestLoadProbesEmptyPath(t *testing.T) {
	fixture, err := loadProbes("")
	require.NoError(t, err)
	assert.Empty(t, fixture.Exec)
	assert.Empty(t, fixture.ColumnsForQuery)
}

func TestLoadProbes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "probes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"exec": {"SELECT * FROM gen(1) LIMIT 0": ["value"]},
		"columns_for_query": {"WITH c AS (SELECT 1 AS x) SELECT * FROM c": [{"alias": "x"}]}
	}`), 0o644))

	fixture, err := loadProbes(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"value"}, fixture.Exec["SELECT * FROM gen(1) LIMIT 0"])
	assert.Equal(t, "x", fixture.ColumnsForQuery["WITH c AS (SELECT 1 AS x) SELECT * FROM c"][0].Alias)
}
