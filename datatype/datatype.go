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

// Package datatype parses an SQL type string such as "DECIMAL(10,2)" into
// a structured descriptor and classifies it as numeric, binary, or other.
// It is stateless and has no dependency on the resolver.
package datatype

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind is the closed vocabulary of known type names.
type Kind string

const (
	BIGINT   Kind = "BIGINT"
	BLOB     Kind = "BLOB"
	BOOLEAN  Kind = "BOOLEAN"
	CHAR     Kind = "CHAR"
	DATE     Kind = "DATE"
	DATETIME Kind = "DATETIME"
	DECIMAL  Kind = "DECIMAL"
	DOUBLE   Kind = "DOUBLE"
	INTEGER  Kind = "INTEGER"
	INT      Kind = "INT"
	NONE     Kind = "NONE"
	NUMERIC  Kind = "NUMERIC"
	REAL     Kind = "REAL"
	STRING   Kind = "STRING"
	TEXT     Kind = "TEXT"
	TIME     Kind = "TIME"
	VARCHAR  Kind = "VARCHAR"
	UNKNOWN  Kind = "UNKNOWN"
)

// knownKinds is the fixed vocabulary consulted by Parse to classify a raw
// name. Built once at package init as an immutable table rather than a
// mutable cache populated lazily.
var knownKinds = map[string]Kind{
	"BIGINT": BIGINT, "BLOB": BLOB, "BOOLEAN": BOOLEAN, "CHAR": CHAR,
	"DATE": DATE, "DATETIME": DATETIME, "DECIMAL": DECIMAL, "DOUBLE": DOUBLE,
	"INTEGER": INTEGER, "INT": INT, "NONE": NONE, "NUMERIC": NUMERIC,
	"REAL": REAL, "STRING": STRING, "TEXT": TEXT, "TIME": TIME,
	"VARCHAR": VARCHAR,
}

// numericKinds backs IsNumeric.
var numericKinds = map[Kind]bool{
	BIGINT: true, DECIMAL: true, DOUBLE: true, INTEGER: true, INT: true,
	NUMERIC: true, REAL: true,
}

// binaryRawNames backs IsBinary. It consults the raw spelling rather than
// the classified Kind, so it also catches spellings outside the closed
// vocabulary.
var binaryRawNames = map[string]bool{
	"BLOB": true, "CLOB": true, "LOB": true,
}

// UIDropdown is the fixed ordered sequence used by listing UIs.
var UIDropdown = []Kind{BLOB, INTEGER, NUMERIC, REAL, TEXT}

// typeRe matches a type spelling of the form NAME, optionally followed by
// a parenthesized scale and precision: NAME(scale[, precision]).
var typeRe = regexp.MustCompile(`^(?P<name>[^(]*?)\s*(?:\(\s*(?P<scale>\d+)\s*(?:,\s*(?P<precision>\d+)\s*)?\))?$`)

// Descriptor is the structured form of a parsed SQL type string. The zero
// value is the empty descriptor.
type Descriptor struct {
	Kind      Kind
	RawName   string
	Scale     *int
	Precision *int
}

// Parse parses full, a full SQL type spelling, into a Descriptor. On no
// match the returned Descriptor is empty.
func Parse(full string) Descriptor {
	m := typeRe.FindStringSubmatch(full)
	if m == nil {
		return Descriptor{}
	}

	names := typeRe.SubexpNames()
	var rawName, scaleStr, precisionStr string
	for i, name := range names {
		switch name {
		case "name":
			rawName = m[i]
		case "scale":
			scaleStr = m[i]
		case "precision":
			precisionStr = m[i]
		}
	}

	rawName = strings.TrimSpace(rawName)
	if rawName == "" {
		return Descriptor{}
	}

	d := Descriptor{
		RawName: rawName,
		Kind:    classify(rawName),
	}
	if scaleStr != "" {
		if n, err := strconv.Atoi(scaleStr); err == nil {
			d.Scale = &n
		}
	}
	if precisionStr != "" {
		if n, err := strconv.Atoi(precisionStr); err == nil {
			d.Precision = &n
		}
	}
	return d
}

// classify looks raw up against the known vocabulary case-insensitively;
// unknown names map to UNKNOWN while the raw spelling is preserved by the
// caller.
func classify(raw string) Kind {
	if k, ok := knownKinds[strings.ToUpper(raw)]; ok {
		return k
	}
	return UNKNOWN
}

// IsNumeric reports whether d's Kind is one of the numeric kinds. UNKNOWN
// is never numeric.
func (d Descriptor) IsNumeric() bool {
	return numericKinds[d.Kind]
}

// IsBinary consults RawName rather than Kind, so non-vocabulary spellings
// such as a custom "CLOB" alias are still recognized.
func (d Descriptor) IsBinary() bool {
	return binaryRawNames[strings.ToUpper(d.RawName)]
}

// IsNull reports that the descriptor has no known kind.
func (d Descriptor) IsNull() bool {
	return d.Kind == UNKNOWN
}

// IsEmpty reports whether d carries no raw spelling at all. RawName is
// empty if and only if the descriptor is empty.
func (d Descriptor) IsEmpty() bool {
	return d.RawName == ""
}

// ToFullString renders d back to a parsable spelling: RawName, plus
// " (scale)" or " (scale, precision)" when Scale is present. A round-trip
// Parse(d.ToFullString()) must produce an equal Descriptor.
func (d Descriptor) ToFullString() string {
	if d.IsEmpty() {
		return ""
	}
	if d.Scale == nil {
		return d.RawName
	}
	if d.Precision == nil {
		return d.RawName + " (" + strconv.Itoa(*d.Scale) + ")"
	}
	return d.RawName + " (" + strconv.Itoa(*d.Scale) + ", " + strconv.Itoa(*d.Precision) + ")"
}

// Equal reports whether d and other describe the same type. Used by
// round-trip tests rather than relying on pointer identity of Scale/Precision.
func (d Descriptor) Equal(other Descriptor) bool {
	if d.Kind != other.Kind || d.RawName != other.RawName {
		return false
	}
	return intPtrEqual(d.Scale, other.Scale) && intPtrEqual(d.Precision, other.Precision)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
