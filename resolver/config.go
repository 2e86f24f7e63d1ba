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

import "github.com/sqlitestudio/selectresolver/dbalias"

// Config is per-resolver-instance configuration.
type Config struct {
	// ResolveMultiCore, when true, resolves every arm of a compound
	// sub-select rather than only its first. Default off.
	ResolveMultiCore bool
	// IgnoreInvalidNames, when true, degrades an unresolved identifier
	// column to Kind=KindOther silently instead of recording an error.
	IgnoreInvalidNames bool
	// AttachedDBAliases is the attached-database alias map used to fill
	// OriginalDatabase of a plain-table source's columns from its
	// FROM-list database qualifier. A nil map resolves every name to
	// itself.
	AttachedDBAliases *dbalias.Map
}
