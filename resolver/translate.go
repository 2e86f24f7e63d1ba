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

package resolver

import (
	"strings"

	"github.com/sqlitestudio/selectresolver/sqlparser"
)

// TranslateToken locates the Core enclosing tok within root, resolves that
// core's available columns, and returns the one matching tok's text,
// climbing outward through enclosing cores until a match is found. If no
// core ever contains a matching column, it returns an OTHER placeholder
// carrying the token's stripped text.
func (r *Resolver) TranslateToken(root sqlparser.Node, tok *sqlparser.Token) Column {
	text := sqlparser.StripObjName(tok.Value)

	n := sqlparser.FindNodeWithToken(root, tok)
	for n != nil {
		core := sqlparser.NearestCore(n)
		if core == nil {
			break
		}
		r.resetCTEIndexFromCore(core)
		for _, col := range r.resolveJoinSource(core.From) {
			if col.Kind == KindColumn && strings.EqualFold(col.Column, text) {
				return col
			}
		}
		n = core.ParentNode()
	}

	return Column{Kind: KindOther, Column: text}
}
