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

func TestTokenizeSimpleSelect(t *testing.T) {
	toks := Tokenize("SELECT a, b FROM t")
	require.Len(t, toks, 6)
	assert.Equal(t, KEYWORD, toks[0].Type)
	assert.Equal(t, "SELECT", toks[0].Value)
	assert.Equal(t, IDENT, toks[1].Type)
	assert.Equal(t, COMMA, toks[2].Type)
	assert.Equal(t, IDENT, toks[3].Type)
	assert.Equal(t, KEYWORD, toks[4].Type)
	assert.Equal(t, IDENT, toks[5].Type)
}

func TestTokenizeQualifiedStar(t *testing.T) {
	toks := Tokenize("t.*")
	require.Len(t, toks, 3)
	assert.Equal(t, IDENT, toks[0].Type)
	assert.Equal(t, DOT, toks[1].Type)
	assert.Equal(t, STAR, toks[2].Type)
}

func TestTokenizeDotDoesNotConsumeDecimal(t *testing.T) {
	toks := Tokenize("SELECT .5")
	require.Len(t, toks, 2)
	assert.Equal(t, NUMBER, toks[1].Type)
	assert.Equal(t, ".5", toks[1].Value)
}

func TestTokenizeQuotedIdentWithDoubledQuote(t *testing.T) {
	toks := Tokenize(`"my ""weird"" col"`)
	require.Len(t, toks, 1)
	assert.Equal(t, IDENT, toks[0].Type)
	assert.Equal(t, `my "weird" col`, toks[0].Value)
}

func TestTokenizeBacktickIdent(t *testing.T) {
	toks := Tokenize("`order`")
	require.Len(t, toks, 1)
	assert.Equal(t, IDENT, toks[0].Type)
	assert.Equal(t, "order", toks[0].Value)
}

func TestTokenizeStringLiteral(t *testing.T) {
	toks := Tokenize(`'it''s fine'`)
	require.Len(t, toks, 1)
	assert.Equal(t, STRING, toks[0].Type)
}

func TestTokenizeSkipsLineAndBlockComments(t *testing.T) {
	toks := Tokenize("SELECT a -- trailing comment\nFROM /* mid */ t")
	require.Len(t, toks, 4)
	assert.Equal(t, "SELECT", toks[0].Value)
	assert.Equal(t, "a", toks[1].Value)
	assert.Equal(t, "FROM", toks[2].Value)
	assert.Equal(t, "t", toks[3].Value)
}

func TestTokenizeOperators(t *testing.T) {
	toks := Tokenize("a <= b <> c")
	require.Len(t, toks, 5)
	assert.Equal(t, OP, toks[1].Type)
	assert.Equal(t, "<=", toks[1].Value)
	assert.Equal(t, OP, toks[3].Type)
	assert.Equal(t, "<>", toks[3].Value)
}

func TestDetokenizeRoundTrip(t *testing.T) {
	tl := Tokenize("a.b, c")
	assert.Equal(t, "a.b, c", tl.Detokenize())
}

func TestIsKeywordCaseInsensitive(t *testing.T) {
	assert.True(t, IsKeyword("select"))
	assert.True(t, IsKeyword("SELECT"))
	assert.False(t, IsKeyword("frobnicate"))
}

func TestStripObjName(t *testing.T) {
	assert.Equal(t, "foo", StripObjName(`"foo"`))
	assert.Equal(t, "foo", StripObjName("`foo`"))
	assert.Equal(t, "foo", StripObjName("[foo]"))
	assert.Equal(t, "foo", StripObjName("foo"))
}
