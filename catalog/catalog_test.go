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

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticFixture() *Static {
	return NewStatic([]TableDef{
		{Database: "main", Table: "t", Columns: []string{"a", "b"}},
		{Database: "main", Table: "v", ViewDefinition: "CREATE VIEW v AS SELECT a FROM t"},
	})
}

func TestTableColumns(t *testing.T) {
	c := staticFixture()
	cols, err := c.TableColumns("main", "t")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cols)
}

func TestTableColumnsUnknownTable(t *testing.T) {
	c := staticFixture()
	_, err := c.TableColumns("main", "nope")
	assert.Error(t, err)
}

func TestIsView(t *testing.T) {
	c := staticFixture()
	assert.True(t, c.IsView("main", "v"))
	assert.False(t, c.IsView("main", "t"))
	assert.False(t, c.IsView("main", "nope"))
}

func TestParsedObjectParsesAndCaches(t *testing.T) {
	c := staticFixture()
	cv, err := c.ParsedObject("main", "v")
	require.NoError(t, err)
	assert.Equal(t, "v", cv.Name)

	cv2, err := c.ParsedObject("main", "v")
	require.NoError(t, err)
	assert.Same(t, cv, cv2, "second call should hit the cache and return the same parsed object")
}

func TestParsedObjectOnNonView(t *testing.T) {
	c := staticFixture()
	_, err := c.ParsedObject("main", "t")
	assert.Error(t, err)
}

func TestTableColumnsUnqualifiedDefaultsToMain(t *testing.T) {
	c := staticFixture()
	cols, err := c.TableColumns("", "t")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cols)
}
