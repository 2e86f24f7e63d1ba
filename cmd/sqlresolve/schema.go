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
	"encoding/json"
	"os"

	"github.com/sqlitestudio/selectresolver/catalog"
)

// schemaFixture is the on-disk JSON shape for the CLI's "-schema" flag: a
// flat list of tables and views, the same information a real schema
// catalog query would return.
type schemaFixture struct {
	Tables []tableFixture `json:"tables"`
}

type tableFixture struct {
	Database       string   `json:"database"`
	Table          string   `json:"table"`
	Columns        []string `json:"columns,omitempty"`
	ViewDefinition string   `json:"view_definition,omitempty"`
}

// loadCatalog reads a schemaFixture from path and builds a catalog.Static
// from it.
func loadCatalog(path string) (*catalog.Static, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixture schemaFixture
	if err := json.Unmarshal(raw, &fixture); err != nil {
		return nil, err
	}
	defs := make([]catalog.TableDef, len(fixture.Tables))
	for i, t := range fixture.Tables {
		defs[i] = catalog.TableDef{
			Database:       t.Database,
			Table:          t.Table,
			Columns:        t.Columns,
			ViewDefinition: t.ViewDefinition,
		}
	}
	return catalog.NewStatic(defs), nil
}

// probeFixture is the on-disk JSON shape for the CLI's "-probes" flag: a
// map from a probe query's exact text to its result, standing in for a
// live database handle when no real driver is wired.
type probeFixture struct {
	Exec            map[string][]string           `json:"exec,omitempty"`
	ColumnsForQuery map[string][]columnInfoFixture `json:"columns_for_query,omitempty"`
}

type columnInfoFixture struct {
	Database string `json:"database,omitempty"`
	Table    string `json:"table,omitempty"`
	Alias    string `json:"alias,omitempty"`
}

func loadProbes(path string) (*probeFixture, error) {
	if path == "" {
		return &probeFixture{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixture probeFixture
	if err := json.Unmarshal(raw, &fixture); err != nil {
		return nil, err
	}
	return &fixture, nil
}
