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

// Command sqlresolve is a small CLI front-end over the resolver: it reads
// a SQL file and a JSON schema fixture, resolves every result column of
// every compound arm, and prints the outcome.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sqlitestudio/selectresolver/dbalias"
	"github.com/sqlitestudio/selectresolver/dbexec"
	"github.com/sqlitestudio/selectresolver/internal/resolverlog"
	"github.com/sqlitestudio/selectresolver/resolver"
)

var (
	schemaPath         string
	probesPath         string
	configPath         string
	resolveMultiCore   bool
	ignoreInvalidNames bool
	attachAliases      []string

	rootCmd = &cobra.Command{
		Use:   "sqlresolve [sql-file]",
		Short: "Resolve the column origins of a SELECT statement",
		Args:  cobra.ExactArgs(1),
		RunE:  runResolve,
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&schemaPath, "schema", "", "path to a JSON schema fixture (required)")
	flags.StringVar(&probesPath, "probes", "", "path to a JSON probe fixture for TVF/CTE discovery")
	flags.StringVar(&configPath, "config", "", "path to a sqlresolve.yaml config file")
	flags.BoolVar(&resolveMultiCore, "resolve-multi-core", false, "resolve every arm of a compound sub-select, not just the first")
	flags.BoolVar(&ignoreInvalidNames, "ignore-invalid-names", false, "degrade unresolved identifiers to OTHER instead of erroring")
	flags.StringArrayVar(&attachAliases, "attach", nil, "attach-name=internal-name pair, repeatable")

	flags.AddGoFlagSet(resolverlog.GoFlagSet())

	viper.SetEnvPrefix("SQLRESOLVE")
	viper.AutomaticEnv()
	_ = viper.BindPFlags(flags)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if configPath != "" {
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	if schemaPath == "" {
		schemaPath = viper.GetString("schema")
	}
	if schemaPath == "" {
		return fmt.Errorf("-schema is required")
	}

	sqlBytes, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	cat, err := loadCatalog(schemaPath)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	probes, err := loadProbes(probesPath)
	if err != nil {
		return fmt.Errorf("loading probes: %w", err)
	}
	db := dbexec.NewFake()
	for q, cols := range probes.Exec {
		db.ExecResults[q] = cols
	}
	for q, infos := range probes.ColumnsForQuery {
		converted := make([]dbexec.ColumnInfo, len(infos))
		for i, info := range infos {
			converted[i] = dbexec.ColumnInfo{Database: info.Database, Table: info.Table, Alias: info.Alias}
		}
		db.ColumnsForQueryResults[q] = converted
	}

	aliases, err := parseAttachAliases(attachAliases)
	if err != nil {
		return err
	}

	r := resolver.New(cat, db, resolver.Config{
		ResolveMultiCore:   viper.GetBool("resolve-multi-core") || resolveMultiCore,
		IgnoreInvalidNames: viper.GetBool("ignore-invalid-names") || ignoreInvalidNames,
		AttachedDBAliases:  aliases,
	})

	arms := r.Resolve(string(sqlBytes))
	printResult(cmd, arms, r.Errors())
	return nil
}

func parseAttachAliases(pairs []string) (*dbalias.Map, error) {
	m := dbalias.New()
	for _, p := range pairs {
		attach, internal, ok := splitOnce(p, '=')
		if !ok {
			return nil, fmt.Errorf("invalid -attach value %q, expected attach-name=internal-name", p)
		}
		m.Add(attach, internal)
	}
	return m, nil
}

func splitOnce(s string, sep byte) (before, after string, ok bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}
	return "", "", false
}
