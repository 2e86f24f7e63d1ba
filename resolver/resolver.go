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

// Package resolver implements the SELECT resolver: given a parsed SELECT
// statement and a schema catalog, it determines the origin (database,
// table, column, aliases) of every result column of every compound arm.
package resolver

import (
	"strings"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/sqlitestudio/selectresolver/catalog"
	"github.com/sqlitestudio/selectresolver/dbalias"
	"github.com/sqlitestudio/selectresolver/dbexec"
	"github.com/sqlitestudio/selectresolver/internal/resolveerr"
	"github.com/sqlitestudio/selectresolver/internal/resolverlog"
	"github.com/sqlitestudio/selectresolver/sqlparser"
)

// Resolver resolves one SELECT statement. It is single-threaded and
// synchronous, and is not re-entrant on itself: nested sub-select
// resolution always spawns a fresh instance via spawnChild.
type Resolver struct {
	id uuid.UUID

	catalog catalog.Catalog
	db      dbexec.DB
	config  Config
	aliases *dbalias.Map

	originalQuery string
	cteIndex      map[string]*sqlparser.CTE
	columnCache   *cache.Cache
	errors        resolveerr.Errors
}

// New constructs a Resolver over cat and db with the given configuration.
func New(cat catalog.Catalog, db dbexec.DB, cfg Config) *Resolver {
	return &Resolver{
		id:          uuid.New(),
		catalog:     cat,
		db:          db,
		config:      cfg,
		aliases:     cfg.AttachedDBAliases,
		columnCache: cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

// spawnChild returns a fresh Resolver sharing this one's catalog, database
// handle, configuration, alias map, and original-query text, but with its
// own CTE index, column cache, and error list.
func (r *Resolver) spawnChild() *Resolver {
	return &Resolver{
		id:            uuid.New(),
		catalog:       r.catalog,
		db:            r.db,
		config:        r.config,
		aliases:       r.aliases,
		originalQuery: r.originalQuery,
		columnCache:   cache.New(cache.NoExpiration, cache.NoExpiration),
	}
}

// Errors returns the errors accumulated by the most recent call to
// Resolve, ResolveSelect, or ResolveCore. Empty on success.
func (r *Resolver) Errors() resolveerr.Errors {
	return r.errors
}

// Resolve parses sql and resolves it, returning one Column list per
// compound arm. On a parse failure or a statement that is not a SELECT,
// it returns nil and records a diagnostic retrievable via Errors.
func (r *Resolver) Resolve(sql string) [][]Column {
	r.errors = nil
	r.originalQuery = sql

	sel, err := sqlparser.Parse(sql)
	if err != nil {
		if looksLikeNonSelectStatement(sql) {
			r.errors.Add(&resolveerr.StatementKindMismatchError{Query: sql})
		} else {
			r.errors.Add(&resolveerr.ParseFailureError{Query: sql, Cause: err})
		}
		return nil
	}
	return r.ResolveSelect(sel)
}

func looksLikeNonSelectStatement(sql string) bool {
	toks := sqlparser.Tokenize(sql)
	if len(toks) == 0 {
		return false
	}
	switch strings.ToUpper(toks[0].Value) {
	case "INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER":
		return true
	}
	return false
}

// ResolveSelect resolves every core of sel, tagging every column of every
// arm with FlagCompound when sel has more than one core.
func (r *Resolver) ResolveSelect(sel *sqlparser.Select) [][]Column {
	r.errors = nil
	r.resetCTEIndexFromSelect(sel)
	out := make([][]Column, len(sel.Cores))
	for i, core := range sel.Cores {
		out[i] = r.resolveCoreInner(core)
	}
	return out
}

// ResolveCore resolves core standalone, rebuilding the CTE index from its
// enclosing statement if it has one.
func (r *Resolver) ResolveCore(core *sqlparser.Core) []Column {
	r.errors = nil
	r.resetCTEIndexFromCore(core)
	return r.resolveCoreInner(core)
}

// ResolveTables returns the set of tables contributing to core's result
// columns.
func (r *Resolver) ResolveTables(core *sqlparser.Core) *TableSet {
	cols := r.ResolveCore(core)
	set := NewTableSet()
	for _, c := range cols {
		set.Add(TableOf(c))
	}
	return set
}

func (r *Resolver) resetCTEIndexFromSelect(sel *sqlparser.Select) {
	r.cteIndex = make(map[string]*sqlparser.CTE)
	if sel == nil || sel.With == nil {
		return
	}
	for _, cte := range sel.With.CTEs {
		r.cteIndex[strings.ToLower(cte.Name)] = cte
	}
}

func (r *Resolver) resetCTEIndexFromCore(core *sqlparser.Core) {
	if core == nil {
		r.cteIndex = make(map[string]*sqlparser.CTE)
		return
	}
	r.resetCTEIndexFromSelect(core.ParentStatement())
}

func (r *Resolver) resolveCoreInner(core *sqlparser.Core) []Column {
	available := r.resolveJoinSource(core.From)
	results := r.resolveResultColumns(core, available)

	compound := false
	if parent := core.ParentStatement(); parent != nil && len(parent.Cores) > 1 {
		compound = true
	}
	for i := range results {
		if core.Distinct {
			results[i].Flags |= FlagDistinct
		}
		if len(core.GroupBy) > 0 {
			results[i].Flags |= FlagGrouped
		}
		if compound {
			results[i].Flags |= FlagCompound
		}
	}

	r.fixupNames(results)
	return results
}

// tableColumns looks up database.table's column names, memoizing by
// (database, table, alias) for the lifetime of this resolver instance.
func (r *Resolver) tableColumns(database, table, alias string) ([]string, error) {
	key := strings.ToLower(database) + "\x00" + strings.ToLower(table) + "\x00" + strings.ToLower(alias)
	if cached, ok := r.columnCache.Get(key); ok {
		return cached.([]string), nil
	}
	cols, err := r.catalog.TableColumns(database, table)
	if err != nil {
		return nil, err
	}
	r.columnCache.Set(key, cols, cache.NoExpiration)
	return cols, nil
}

// resolveDatabase maps a FROM-list database qualifier through the
// attached-DB alias map, for reporting as a column's OriginalDatabase.
// Catalog lookups and Column.Database always use the raw, as-written name;
// this is never called before those.
func (r *Resolver) resolveDatabase(name string) string {
	return r.aliases.ResolveDatabase(name)
}

func (r *Resolver) warnf(format string, args ...any) {
	resolverlog.Warningf("resolver %s: "+format, append([]any{r.id}, args...)...)
}
