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

// resolveJoinSource resolves a FROM clause: the primary source's columns
// followed by each joined source's columns, in order. A later source
// reusing an earlier one's alias (or, absent an alias, its table name)
// shadows it: the earlier source's columns are dropped from availability
// entirely, matching "FROM real t, other AS t" making only other's
// columns reachable as t.
func (r *Resolver) resolveJoinSource(js *sqlparser.JoinSource) []Column {
	if js == nil {
		return nil
	}
	cols := r.resolveSingleSource(js.Single)
	for _, other := range js.OtherSources {
		next := r.resolveSingleSource(other.Single)
		if len(next) > 0 {
			cols = dropShadowed(cols, effectiveTableKey(next[0]))
		}
		cols = append(cols, next...)
	}
	return cols
}

// effectiveTableKey returns the lowercased name a source is reachable by:
// its alias if declared, else its table name.
func effectiveTableKey(c Column) string {
	if c.TableAlias != "" {
		return strings.ToLower(c.TableAlias)
	}
	return strings.ToLower(c.Table)
}

func dropShadowed(cols []Column, key string) []Column {
	if key == "" {
		return cols
	}
	out := cols[:0:0]
	for _, c := range cols {
		if effectiveTableKey(c) == key {
			continue
		}
		out = append(out, c)
	}
	return out
}

// resolveSingleSource dispatches one FROM-list entry to the handler for
// its kind: sub-select, parenthesized join, table-valued function, view,
// CTE, or plain table, in that priority order.
func (r *Resolver) resolveSingleSource(ss *sqlparser.SingleSource) []Column {
	if ss == nil {
		return nil
	}

	switch ss.Kind {
	case sqlparser.SourceSubSelect:
		return markAliasDefinedInSubQuery(r.applyAlias(r.resolveSubSelect(ss.Select), ss.Alias))
	case sqlparser.SourceJoin:
		return r.resolveJoinSource(ss.Join)
	case sqlparser.SourceTableFunction:
		return r.applyAlias(r.resolveTableFunction(ss), ss.Alias)
	case sqlparser.SourceTable:
		if r.catalog.IsView(ss.Database, ss.Table) {
			return r.resolveViewSource(ss.Database, ss.Table, ss.Alias)
		}
		if cte, ok := r.cteIndex[strings.ToLower(ss.Table)]; ok && ss.Database == "" {
			return r.applyAlias(r.resolveCTESource(cte), ss.Alias)
		}
		return r.applyAlias(r.resolvePlainTableSource(ss.Database, ss.Table, ss.Alias), ss.Alias)
	}
	return nil
}

// resolveTableFunction probes a table-valued function call by executing a
// "SELECT * FROM <call> LIMIT 0" against the database handle.
func (r *Resolver) resolveTableFunction(ss *sqlparser.SingleSource) []Column {
	probe := fmt.Sprintf("SELECT * FROM %s LIMIT 0", ss.Detokenize())
	colNames, err := r.db.Exec(probe)
	if err != nil {
		r.errors.Add(resolveerr.NewProbeFailureError(probe, err))
		return nil
	}
	out := make([]Column, len(colNames))
	for i, name := range colNames {
		out[i] = Column{
			Kind:        KindOther,
			Table:       ss.FuncName,
			Column:      name,
			DisplayName: name,
		}
	}
	return out
}

// resolveCTESource probes a CTE's result columns by rebuilding its
// declaration as a standalone "WITH <cte> SELECT * FROM <name>" query and
// asking the database handle for its result column origins. The CTE's own
// name is always used as the table alias, regardless of any alias given at
// the FROM-list reference site; resolveSingleSource applies that alias
// afterward via applyAlias.
func (r *Resolver) resolveCTESource(cte *sqlparser.CTE) []Column {
	probe := fmt.Sprintf("WITH %s SELECT * FROM %s", cte.Detokenize(), cte.Name)
	infos, err := r.db.ColumnsForQuery(probe)
	if err != nil {
		r.errors.Add(resolveerr.NewProbeFailureError(probe, err))
		return nil
	}
	out := make([]Column, len(infos))
	for i, info := range infos {
		out[i] = Column{
			Kind:        KindColumn,
			Database:    info.Database,
			Table:       cte.Name,
			TableAlias:  cte.Name,
			Column:      info.Alias,
			DisplayName: info.Alias,
			Flags:       FlagCTE,
		}
	}
	return out
}

// resolveViewSource resolves a view by fetching its parsed definition from
// the catalog and resolving that definition as a sub-select, aliasing the
// result to the view's own name when the FROM-list reference gave none. A
// view that is missing or fails to parse is a warning, not a user-visible
// error, and simply contributes no columns.
func (r *Resolver) resolveViewSource(database, name, alias string) []Column {
	cv, err := r.catalog.ParsedObject(database, name)
	if err != nil {
		r.warnf("could not resolve view %s.%s: %v", database, name, err)
		return nil
	}
	cols := r.resolveSubSelect(cv.Select)
	effectiveAlias := alias
	if effectiveAlias == "" {
		effectiveAlias = name
	}
	return r.applyAlias(cols, effectiveAlias)
}

// resolvePlainTableSource resolves a plain table reference against the
// catalog, using the raw, as-written database name for both the catalog
// lookup and Column.Database; only OriginalDatabase carries the
// attached-DB alias resolution.
func (r *Resolver) resolvePlainTableSource(database, table, alias string) []Column {
	colNames, err := r.tableColumns(database, table, alias)
	if err != nil {
		r.errors.Add(resolveerr.NewProbeFailureError(database+"."+table, err))
		return nil
	}
	originalDatabase := r.resolveDatabase(database)
	out := make([]Column, len(colNames))
	for i, name := range colNames {
		out[i] = Column{
			Kind:             KindColumn,
			Database:         database,
			OriginalDatabase: originalDatabase,
			Table:            table,
			Column:           name,
			DisplayName:      name,
		}
	}
	return out
}

// resolveSubSelect resolves sel in a fresh child instance, returning only
// its first core's columns unless Config.ResolveMultiCore requests every
// arm. Every error the child accumulates is propagated onto r's own error
// list. Every returned column is tagged FlagCompound when sel has more
// than one core, regardless of which mode was used.
func (r *Resolver) resolveSubSelect(sel *sqlparser.Select) []Column {
	child := r.spawnChild()
	arms := child.ResolveSelect(sel)
	r.errors = append(r.errors, child.errors...)

	var cols []Column
	if r.config.ResolveMultiCore {
		for _, arm := range arms {
			cols = append(cols, arm...)
		}
	} else if len(arms) > 0 {
		cols = append(cols, arms[0]...)
	}

	if len(sel.Cores) > 1 {
		for i := range cols {
			cols[i].Flags |= FlagCompound
		}
	}
	return cols
}

// markAliasDefinedInSubQuery flags every column carrying an alias as having
// gotten that alias from inside the sub-select, so that later name fix-up
// knows the alias didn't come from the enclosing FROM-list reference.
func markAliasDefinedInSubQuery(cols []Column) []Column {
	for i := range cols {
		if cols[i].Alias != "" {
			cols[i].AliasDefinedInSubQuery = true
		}
	}
	return cols
}

// applyAlias applies a FROM-list alias to every column of cols: a
// non-empty current TableAlias is pushed onto OldTableAliases before the
// new alias replaces it; an empty alias instead marks the columns
// anonymous.
func (r *Resolver) applyAlias(cols []Column, alias string) []Column {
	out := make([]Column, len(cols))
	for i, c := range cols {
		if alias == "" {
			c.Flags |= FlagAnonymous
		} else {
			c = c.withOldAliasPushed()
			c.TableAlias = alias
			c.Flags &^= FlagAnonymous
		}
		out[i] = c
	}
	return out
}
