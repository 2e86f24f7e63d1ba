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

package sqlparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleSelect(t *testing.T) {
	sel, err := Parse("SELECT a, b FROM t")
	require.NoError(t, err)
	require.Len(t, sel.Cores, 1)
	core := sel.Cores[0]
	require.Len(t, core.ResultColumns, 2)
	assert.Equal(t, ExprID, core.ResultColumns[0].Expr.Mode)
	assert.Equal(t, "a", core.ResultColumns[0].Expr.Column)
	assert.Equal(t, "b", core.ResultColumns[1].Expr.Column)
	require.NotNil(t, core.From)
	assert.Equal(t, SourceTable, core.From.Single.Kind)
	assert.Equal(t, "t", core.From.Single.Table)
}

func TestParseStarAndQualifiedStar(t *testing.T) {
	sel, err := Parse("SELECT *, t.* FROM t")
	require.NoError(t, err)
	core := sel.Cores[0]
	require.Len(t, core.ResultColumns, 2)
	assert.True(t, core.ResultColumns[0].Star)
	assert.Equal(t, "", core.ResultColumns[0].Table)
	assert.True(t, core.ResultColumns[1].Star)
	assert.Equal(t, "t", core.ResultColumns[1].Table)
}

func TestParseQualifiedColumn(t *testing.T) {
	sel, err := Parse("SELECT main.t.col FROM main.t")
	require.NoError(t, err)
	expr := sel.Cores[0].ResultColumns[0].Expr
	assert.Equal(t, ExprID, expr.Mode)
	assert.Equal(t, "main", expr.Database)
	assert.Equal(t, "t", expr.Table)
	assert.Equal(t, "col", expr.Column)
}

func TestParseAliasWithAndWithoutAs(t *testing.T) {
	sel, err := Parse("SELECT a AS x, b y FROM t")
	require.NoError(t, err)
	core := sel.Cores[0]
	assert.Equal(t, "x", core.ResultColumns[0].Alias)
	assert.Equal(t, "y", core.ResultColumns[1].Alias)
}

func TestParseBareExpressionIsExprOther(t *testing.T) {
	sel, err := Parse("SELECT a + 1 AS total FROM t")
	require.NoError(t, err)
	rc := sel.Cores[0].ResultColumns[0]
	assert.Equal(t, ExprOther, rc.Expr.Mode)
	assert.Equal(t, "total", rc.Alias)
	assert.Equal(t, "a + 1 AS total", rc.Detokenize())
}

func TestParseFunctionCallIsExprOther(t *testing.T) {
	sel, err := Parse("SELECT count(*) FROM t")
	require.NoError(t, err)
	rc := sel.Cores[0].ResultColumns[0]
	assert.Equal(t, ExprOther, rc.Expr.Mode)
}

func TestParseJoin(t *testing.T) {
	sel, err := Parse("SELECT * FROM a LEFT OUTER JOIN b ON a.id = b.id")
	require.NoError(t, err)
	from := sel.Cores[0].From
	assert.Equal(t, "a", from.Single.Table)
	require.Len(t, from.OtherSources, 1)
	assert.Equal(t, "b", from.OtherSources[0].Single.Table)
}

func TestParseCommaJoin(t *testing.T) {
	sel, err := Parse("SELECT * FROM a, b")
	require.NoError(t, err)
	from := sel.Cores[0].From
	require.Len(t, from.OtherSources, 1)
	assert.Equal(t, "b", from.OtherSources[0].Single.Table)
}

func TestParseSubSelectSource(t *testing.T) {
	sel, err := Parse("SELECT * FROM (SELECT x FROM t) sub")
	require.NoError(t, err)
	single := sel.Cores[0].From.Single
	assert.Equal(t, SourceSubSelect, single.Kind)
	assert.Equal(t, "sub", single.Alias)
	require.NotNil(t, single.Select)
	assert.Equal(t, "x", single.Select.Cores[0].ResultColumns[0].Expr.Column)
}

func TestParseParenthesizedJoinSource(t *testing.T) {
	sel, err := Parse("SELECT * FROM (a JOIN b ON a.id = b.id)")
	require.NoError(t, err)
	single := sel.Cores[0].From.Single
	assert.Equal(t, SourceJoin, single.Kind)
	require.NotNil(t, single.Join)
	assert.Equal(t, "a", single.Join.Single.Table)
}

func TestParseTableValuedFunction(t *testing.T) {
	sel, err := Parse("SELECT * FROM generate_series(1, 10) g")
	require.NoError(t, err)
	single := sel.Cores[0].From.Single
	assert.Equal(t, SourceTableFunction, single.Kind)
	assert.Equal(t, "generate_series", single.FuncName)
	assert.Equal(t, "g", single.Alias)
}

func TestParseWithClause(t *testing.T) {
	sel, err := Parse("WITH cte AS (SELECT x FROM t) SELECT * FROM cte")
	require.NoError(t, err)
	require.NotNil(t, sel.With)
	require.Len(t, sel.With.CTEs, 1)
	assert.Equal(t, "cte", sel.With.CTEs[0].Name)
	assert.Equal(t, "cte", sel.Cores[0].From.Single.Table)
}

func TestParseCompoundSelect(t *testing.T) {
	sel, err := Parse("SELECT a FROM t UNION SELECT b FROM u")
	require.NoError(t, err)
	require.Len(t, sel.Cores, 2)
	assert.Equal(t, "t", sel.Cores[0].From.Single.Table)
	assert.Equal(t, "u", sel.Cores[1].From.Single.Table)
}

func TestParseDistinctAndGroupBy(t *testing.T) {
	sel, err := Parse("SELECT DISTINCT a FROM t GROUP BY a")
	require.NoError(t, err)
	core := sel.Cores[0]
	assert.True(t, core.Distinct)
	assert.Len(t, core.GroupBy, 1)
}

func TestParseCreateView(t *testing.T) {
	cv, err := ParseCreateView("CREATE VIEW v AS SELECT a FROM t")
	require.NoError(t, err)
	assert.Equal(t, "v", cv.Name)
	assert.Equal(t, "a", cv.Select.Cores[0].ResultColumns[0].Expr.Column)
}

func TestNearestCoreClimbsFromNestedExpr(t *testing.T) {
	sel, err := Parse("SELECT a FROM (SELECT b FROM t) sub")
	require.NoError(t, err)
	outer := sel.Cores[0]
	inner := outer.From.Single.Select.Cores[0]
	assert.Equal(t, inner, NearestCore(inner.ResultColumns[0]))
	assert.Equal(t, outer, NearestCore(outer.ResultColumns[0]))
}

func TestFindNodeWithToken(t *testing.T) {
	sel, err := Parse("SELECT a FROM (SELECT b FROM t) sub")
	require.NoError(t, err)
	innerCore := sel.Cores[0].From.Single.Select.Cores[0]
	innerTok := innerCore.ResultColumns[0].Expr.Tokens[0]
	found := FindNodeWithToken(sel, innerTok)
	assert.Equal(t, innerCore.ResultColumns[0].Expr, found)
}

func TestParentLinksWired(t *testing.T) {
	sel, err := Parse("SELECT a FROM t")
	require.NoError(t, err)
	core := sel.Cores[0]
	assert.Equal(t, Node(sel), core.ParentNode())
	rc := core.ResultColumns[0]
	assert.Equal(t, Node(core), rc.ParentNode())
	assert.Equal(t, Node(rc), rc.Expr.ParentNode())
}
