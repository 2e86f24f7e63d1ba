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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqlitestudio/selectresolver/internal/resolveerr"
	"github.com/sqlitestudio/selectresolver/resolver"
)

// printResult renders one "table.column AS alias" line per resolved
// column of every arm, followed by any accumulated errors.
func printResult(cmd *cobra.Command, arms [][]resolver.Column, errs resolveerr.Errors) {
	out := cmd.OutOrStdout()
	for armIdx, cols := range arms {
		if len(arms) > 1 {
			fmt.Fprintf(out, "-- arm %d --\n", armIdx)
		}
		for _, c := range cols {
			fmt.Fprintln(out, formatColumn(c))
		}
	}
	for _, e := range errs {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", e.Error())
	}
}

func formatColumn(c resolver.Column) string {
	origin := c.Column
	if c.Table != "" {
		origin = c.Table + "." + c.Column
	}
	if c.TableAlias != "" {
		origin = c.TableAlias + "." + c.Column
	}
	if c.Alias != "" && c.Alias != c.Column {
		return fmt.Sprintf("%s AS %s", origin, c.Alias)
	}
	return origin
}
