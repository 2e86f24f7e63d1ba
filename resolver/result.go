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
	"fmt"
	"strings"

	"github.com/sqlitestudio/selectresolver/internal/resolveerr"
	"github.com/sqlitestudio/selectresolver/sqlparser"
)

// resolveResultColumns resolves every result column of core against the
// columns available from its FROM clause, in declaration order.
func (r *Resolver) resolveResultColumns(core *sqlparser.Core, available []Column) []Column {
	out := make([]Column, 0, len(core.ResultColumns))
	for _, rc := range core.ResultColumns {
		if rc.Star {
			out = append(out, r.resolveStar(rc, available)...)
			continue
		}
		if rc.Expr != nil && rc.Expr.Mode == sqlparser.ExprID {
			out = append(out, r.resolveIdentColumn(rc, available))
			continue
		}
		out = append(out, r.resolveBareExpr(rc))
	}
	return out
}

// resolveStar expands a "*" or "tbl.*" result column into every available
// source column whose table matches the given prefix, or every available
// column when no prefix was given.
func (r *Resolver) resolveStar(rc *sqlparser.ResultColumn, available []Column) []Column {
	var out []Column
	for _, src := range available {
		if rc.Table != "" && !tableMatchesPrefix(src, rc.Table) {
			continue
		}
		col := src
		col.OriginalResultColumn = rc
		if col.Alias != "" {
			col.DisplayName = col.Alias
		} else {
			col.DisplayName = col.Column
		}
		out = append(out, col)
	}
	if len(out) == 0 {
		r.errors.Add(&resolveerr.UnresolvedStarError{Text: rc.Detokenize()})
	}
	return out
}

// resolveBareExpr resolves a non-identifier result column expression to a
// single OTHER-kind column.
func (r *Resolver) resolveBareExpr(rc *sqlparser.ResultColumn) Column {
	text := r.detokenizeWithoutAlias(rc.Tokens)
	col := Column{
		Kind:                 KindOther,
		Column:               text,
		Alias:                rc.Alias,
		OriginalResultColumn: rc,
	}
	if rc.Alias != "" {
		col.DisplayName = rc.Alias
	} else {
		col.DisplayName = text
	}
	return col
}

// detokenizeWithoutAlias renders tl back to source text, stopping at the
// first top-level (paren depth <= 0) "AS" keyword.
func (r *Resolver) detokenizeWithoutAlias(tl sqlparser.TokenList) string {
	depth := 0
	end := len(tl)
	for i, tok := range tl {
		switch tok.Type {
		case sqlparser.PAR_LEFT:
			depth++
		case sqlparser.PAR_RIGHT:
			depth--
		case sqlparser.KEYWORD:
			if depth <= 0 && strings.EqualFold(tok.Value, "AS") {
				end = i
			}
		}
		if end != len(tl) {
			break
		}
	}
	return strings.TrimSpace(tl[:end].Detokenize())
}

// resolveIdentColumn resolves a simple (possibly qualified) column
// reference against the available source columns.
func (r *Resolver) resolveIdentColumn(rc *sqlparser.ResultColumn, available []Column) Column {
	expr := rc.Expr
	col := Column{
		Kind:                 KindColumn,
		Column:               expr.Column,
		Alias:                rc.Alias,
		OriginalResultColumn: rc,
	}
	if rc.Alias != "" {
		col.DisplayName = rc.Alias
	} else {
		col.DisplayName = expr.Column
	}

	var match *Column
	switch {
	case isRowIDKeyword(expr.Column) && expr.Table != "":
		match = findFirstSourceWithTableMatch(available, expr.Table)
	case expr.Database != "":
		match = findSourceExact(available, expr.Database, expr.Table, expr.Column)
	case expr.Table != "":
		match = findSourceByTableAndColumn(available, expr.Table, expr.Column)
	default:
		match = findSourceByColumnOrAlias(available, expr.Column)
	}

	if match != nil {
		col.Kind = match.Kind
		col.Database = match.Database
		col.OriginalDatabase = match.OriginalDatabase
		col.Table = match.Table
		col.TableAlias = match.TableAlias
		col.Flags |= match.Flags
		return col
	}

	if r.config.IgnoreInvalidNames {
		col.Kind = KindOther
		return col
	}
	r.errors.Add(&resolveerr.UnresolvedColumnError{Text: rc.Detokenize()})
	return col
}

func findFirstSourceWithTableMatch(available []Column, prefix string) *Column {
	for i := range available {
		if available[i].Table != "" && tableMatchesPrefix(available[i], prefix) {
			return &available[i]
		}
	}
	return nil
}

func findSourceExact(available []Column, database, table, col string) *Column {
	for i := range available {
		if !strings.EqualFold(available[i].Database, database) {
			continue
		}
		if !tableMatchesPrefix(available[i], table) {
			continue
		}
		if columnMatchesNameOrAlias(available[i], col) {
			return &available[i]
		}
	}
	return nil
}

func findSourceByTableAndColumn(available []Column, table, col string) *Column {
	for i := range available {
		if !tableMatchesPrefix(available[i], table) {
			continue
		}
		if columnMatchesNameOrAlias(available[i], col) {
			return &available[i]
		}
	}
	return nil
}

func findSourceByColumnOrAlias(available []Column, col string) *Column {
	for i := range available {
		if columnMatchesNameOrAlias(available[i], col) {
			return &available[i]
		}
	}
	return nil
}

// fixupNames runs display-name and alias deduplication over results in
// declaration order, per two independent namespaces.
func (r *Resolver) fixupNames(results []Column) {
	seenNames := make(map[string]bool, len(results))
	for i := range results {
		results[i].DisplayName = uniquify(results[i].DisplayName, seenNames)
	}

	seenAliases := make(map[string]bool, len(results))
	for i := range results {
		working := results[i].Alias
		if working == "" {
			working = results[i].Column
		}
		unique := uniquify(working, seenAliases)
		results[i].Alias = unique
	}
}

// uniquify returns name if it has not been seen before, else the smallest
// "<name>:<n>" (n >= 1) not already seen, and records the returned value
// as seen.
func uniquify(name string, seen map[string]bool) string {
	key := strings.ToLower(name)
	if !seen[key] {
		seen[key] = true
		return name
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s:%d", name, n)
		candidateKey := strings.ToLower(candidate)
		if !seen[candidateKey] {
			seen[candidateKey] = true
			return candidate
		}
	}
}
