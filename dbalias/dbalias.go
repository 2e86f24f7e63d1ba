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

// Package dbalias implements the case-insensitive mapping from
// user-visible attached-database names to internal database names used
// throughout a resolution.
package dbalias

import "strings"

// Map is a case-insensitive mapping from attached names to internal
// names. Lookups go in that direction only; there is no lookup from an
// internal name back to its attached name. The zero value is an empty map
// ready to use.
type Map struct {
	forward map[string]string // lower(left) -> right, as originally cased
}

// New constructs a Map from an ordered list of (attachName, internalName)
// pairs. Later entries win on a duplicate attachName.
func New(pairs ...[2]string) *Map {
	m := &Map{forward: make(map[string]string, len(pairs))}
	for _, p := range pairs {
		m.Add(p[0], p[1])
	}
	return m
}

// Add registers attachName as an alias for internalName.
func (m *Map) Add(attachName, internalName string) {
	if m.forward == nil {
		m.forward = make(map[string]string)
	}
	m.forward[strings.ToLower(attachName)] = internalName
}

// ResolveDatabase returns the internal name for name if name appears as a
// left-hand (attached) name, case-insensitively; otherwise it returns name
// unchanged.
func (m *Map) ResolveDatabase(name string) string {
	if m == nil || m.forward == nil {
		return name
	}
	if internal, ok := m.forward[strings.ToLower(name)]; ok {
		return internal
	}
	return name
}
