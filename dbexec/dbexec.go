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

// Package dbexec implements the database probe collaborator: the narrow
// query-execution surface the resolver needs to discover the column
// names of a table-valued function call or a CTE, without otherwise
// evaluating SQL.
package dbexec

import "fmt"

// ColumnInfo describes one reported result column of a probe query.
type ColumnInfo struct {
	Database string
	Table    string
	Alias    string
}

// DB is the database probe contract a Resolver depends on.
type DB interface {
	// ColumnsForQuery runs sql (a "WITH ... SELECT * FROM cte" probe) and
	// reports the origin metadata of each result column, without
	// returning any row data.
	ColumnsForQuery(sql string) ([]ColumnInfo, error)
	// Exec runs sql (a "SELECT * FROM <source> LIMIT 0" probe) and
	// reports the result column names.
	Exec(sql string) ([]string, error)
}

// Fake is a pre-programmed DB for tests and CLI fixtures: each method
// looks its argument up in a map rather than talking to a real engine.
type Fake struct {
	ColumnsForQueryResults map[string][]ColumnInfo
	ExecResults            map[string][]string
	// Errors maps a query to the error it should return instead of a
	// result, for exercising probe-failure handling.
	Errors map[string]error
}

// NewFake constructs an empty Fake ready for its maps to be populated.
func NewFake() *Fake {
	return &Fake{
		ColumnsForQueryResults: map[string][]ColumnInfo{},
		ExecResults:            map[string][]string{},
		Errors:                 map[string]error{},
	}
}

func (f *Fake) ColumnsForQuery(sql string) ([]ColumnInfo, error) {
	if err, ok := f.Errors[sql]; ok {
		return nil, err
	}
	cols, ok := f.ColumnsForQueryResults[sql]
	if !ok {
		return nil, fmt.Errorf("fake db: no programmed result for query %q", sql)
	}
	return cols, nil
}

func (f *Fake) Exec(sql string) ([]string, error) {
	if err, ok := f.Errors[sql]; ok {
		return nil, err
	}
	cols, ok := f.ExecResults[sql]
	if !ok {
		return nil, fmt.Errorf("fake db: no programmed result for query %q", sql)
	}
	return cols, nil
}
