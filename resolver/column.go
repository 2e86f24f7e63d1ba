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

// Kind distinguishes a real table column from an expression or otherwise
// unmapped result.
type Kind int

const (
	KindColumn Kind = iota
	KindOther
)

// Flags is a bitset of tags applied to a Column by the constructs that
// enclose it.
type Flags uint8

const (
	FlagDistinct Flags = 1 << iota
	FlagGrouped
	FlagCompound
	FlagAnonymous
	FlagCTE
)

// Has reports whether every bit set in want is also set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Column is a resolved result or source column: its origin, any aliases
// applied to it, and the flags accumulated from its enclosing constructs.
type Column struct {
	Kind Kind

	Database         string
	OriginalDatabase string
	Table            string
	TableAlias       string
	OldTableAliases  []string

	Column                 string
	Alias                  string
	AliasDefinedInSubQuery bool
	DisplayName            string
	OriginalResultColumn   *sqlparser.ResultColumn

	Flags Flags
}

// withOldAliasPushed returns a copy of c with its current TableAlias
// pushed onto OldTableAliases, leaving c's own slice untouched.
func (c Column) withOldAliasPushed() Column {
	if c.TableAlias == "" {
		return c
	}
	pushed := make([]string, len(c.OldTableAliases)+1)
	copy(pushed, c.OldTableAliases)
	pushed[len(pushed)-1] = c.TableAlias
	c.OldTableAliases = pushed
	return c
}

// Table projects a Column onto its containing-table identity, used as a
// set element when computing the tables contributing to a core.
type Table struct {
	Database         string
	OriginalDatabase string
	TableName        string
	TableAlias       string
	OldTableAliases  []string
	Flags            Flags
}

// TableOf returns c's Table projection.
func TableOf(c Column) Table {
	aliases := make([]string, len(c.OldTableAliases))
	copy(aliases, c.OldTableAliases)
	return Table{
		Database:         c.Database,
		OriginalDatabase: c.OriginalDatabase,
		TableName:        c.Table,
		TableAlias:       c.TableAlias,
		OldTableAliases:  aliases,
		Flags:            c.Flags,
	}
}

// Equal reports whether t and other describe the same table, comparing
// identifiers case-insensitively and OldTableAliases as an ordered list.
func (t Table) Equal(other Table) bool {
	if !strings.EqualFold(t.Database, other.Database) ||
		!strings.EqualFold(t.OriginalDatabase, other.OriginalDatabase) ||
		!strings.EqualFold(t.TableName, other.TableName) ||
		!strings.EqualFold(t.TableAlias, other.TableAlias) {
		return false
	}
	if len(t.OldTableAliases) != len(other.OldTableAliases) {
		return false
	}
	for i := range t.OldTableAliases {
		if !strings.EqualFold(t.OldTableAliases[i], other.OldTableAliases[i]) {
			return false
		}
	}
	return true
}

func (t Table) canonicalKey() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(t.Database))
	b.WriteByte(0)
	b.WriteString(strings.ToLower(t.OriginalDatabase))
	b.WriteByte(0)
	b.WriteString(strings.ToLower(t.TableName))
	b.WriteByte(0)
	b.WriteString(strings.ToLower(t.TableAlias))
	for _, a := range t.OldTableAliases {
		b.WriteByte(1)
		b.WriteString(strings.ToLower(a))
	}
	return b.String()
}

// TableSet is an insertion-ordered set of Table values, deduplicated by
// Table.Equal's case-insensitive identity.
type TableSet struct {
	order []string
	byKey map[string]Table
}

// NewTableSet returns an empty TableSet.
func NewTableSet() *TableSet {
	return &TableSet{byKey: make(map[string]Table)}
}

// Add inserts t if it is not already present.
func (s *TableSet) Add(t Table) {
	k := t.canonicalKey()
	if _, ok := s.byKey[k]; ok {
		return
	}
	s.byKey[k] = t
	s.order = append(s.order, k)
}

// Tables returns the set's members in insertion order.
func (s *TableSet) Tables() []Table {
	out := make([]Table, len(s.order))
	for i, k := range s.order {
		out[i] = s.byKey[k]
	}
	return out
}

// Len reports the number of distinct tables in the set.
func (s *TableSet) Len() int { return len(s.order) }

// rowIDKeywords is the closed vocabulary of implicit row-id pseudo-columns.
var rowIDKeywords = map[string]bool{
	"ROWID": true, "OID": true, "_ROWID_": true,
}

func isRowIDKeyword(name string) bool {
	return rowIDKeywords[strings.ToUpper(name)]
}

// tableMatchesPrefix reports whether src matches a FROM-list table prefix:
// its alias, if any, takes precedence over its underlying name.
func tableMatchesPrefix(src Column, prefix string) bool {
	if src.TableAlias != "" {
		return strings.EqualFold(src.TableAlias, prefix)
	}
	return src.Table != "" && strings.EqualFold(src.Table, prefix)
}

func columnMatchesNameOrAlias(src Column, name string) bool {
	if strings.EqualFold(src.Column, name) {
		return true
	}
	return src.Alias != "" && strings.EqualFold(src.Alias, name)
}
