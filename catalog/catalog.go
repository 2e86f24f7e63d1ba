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

// Package catalog implements the schema catalog collaborator: the
// interface the resolver uses to list a table's columns, list a
// database's views, and fetch+parse a view's CREATE VIEW definition.
package catalog

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"github.com/sqlitestudio/selectresolver/internal/resolverlog"
	"github.com/sqlitestudio/selectresolver/sqlparser"
)

// Catalog is the schema catalog contract a Resolver depends on.
type Catalog interface {
	// TableColumns returns the column names of database.table, or an
	// error if the table is unknown.
	TableColumns(database, table string) ([]string, error)
	// IsView reports whether database.table is a view rather than a
	// plain table.
	IsView(database, table string) bool
	// ParsedObject returns the parsed CREATE VIEW statement for
	// database.name.
	ParsedObject(database, name string) (*sqlparser.CreateView, error)
}

// TableDef describes one table or view for Static.
type TableDef struct {
	Database string
	Table    string
	Columns  []string
	// ViewDefinition, when non-empty, marks this TableDef as a view and
	// gives its "CREATE VIEW ... AS SELECT ..." source text.
	ViewDefinition string
}

// key normalizes an unqualified (empty) database reference to "main",
// SQLite's own name for a connection's primary schema, before folding
// case for the lookup. This is the catalog's own default, independent of
// any attached-DB alias resolution the resolver applies for reporting.
func key(database, table string) string {
	if database == "" {
		database = "main"
	}
	return strings.ToLower(database) + "." + strings.ToLower(table)
}

// Static is an in-memory Catalog implementation, suitable for tests and
// for the CLI's JSON-fixture mode. Each Static keeps its own size-bounded
// cache of parsed view ASTs so repeated resolutions against the same
// catalog don't re-parse the same CREATE VIEW text every time.
type Static struct {
	tables map[string]TableDef
	views  *lru.Cache
}

// NewStatic builds a Static catalog from defs.
func NewStatic(defs []TableDef) *Static {
	tables := make(map[string]TableDef, len(defs))
	for _, d := range defs {
		tables[key(d.Database, d.Table)] = d
	}
	cache, err := lru.New(256)
	if err != nil {
		// lru.New only fails for a non-positive size; 256 is always valid.
		panic(err)
	}
	return &Static{tables: tables, views: cache}
}

func (s *Static) TableColumns(database, table string) ([]string, error) {
	def, ok := s.tables[key(database, table)]
	if !ok {
		return nil, fmt.Errorf("unknown table %s.%s", database, table)
	}
	return def.Columns, nil
}

func (s *Static) IsView(database, table string) bool {
	def, ok := s.tables[key(database, table)]
	return ok && def.ViewDefinition != ""
}

func (s *Static) ParsedObject(database, name string) (*sqlparser.CreateView, error) {
	k := key(database, name)
	if cached, ok := s.views.Get(k); ok {
		return cached.(*sqlparser.CreateView), nil
	}

	def, ok := s.tables[k]
	if !ok || def.ViewDefinition == "" {
		return nil, fmt.Errorf("%s.%s is not a view", database, name)
	}

	cv, err := sqlparser.ParseCreateView(def.ViewDefinition)
	if err != nil {
		resolverlog.Warningf("catalog: could not parse view %s.%s: %v", database, name, err)
		return nil, err
	}
	s.views.Add(k, cv)
	return cv, nil
}
