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

// Package resolveerr implements the resolver's error taxonomy. Unlike
// exceptions, these accumulate in a per-instance list and never abort
// traversal of sibling result columns or sibling cores; each error kind
// is its own struct implementing a common interface.
package resolveerr

import (
	"fmt"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
)

// Error is implemented by every error kind in this package.
type Error interface {
	error
	// Code classifies the error for programmatic handling; it does not
	// appear in the rendered message.
	Code() codes.Code
}

// Errors is the accumulator a Resolver keeps for one resolution call.
// Errors are appended in traversal order and never cause traversal to
// stop.
type Errors []Error

// Add appends err to the list. A nil err is a no-op, so call sites can
// pass the result of a fallible helper without an extra nil check.
func (e *Errors) Add(err Error) {
	if err == nil {
		return
	}
	*e = append(*e, err)
}

// HasErrors reports whether any error has been recorded.
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// Strings renders each error's message, in the order recorded.
func (e Errors) Strings() []string {
	out := make([]string, len(e))
	for i, err := range e {
		out[i] = err.Error()
	}
	return out
}

// ParseFailureError reports that the original query could not be parsed
// at all.
type ParseFailureError struct {
	Query string
	Cause error
}

func (e *ParseFailureError) Error() string {
	return fmt.Sprintf("could not parse query: %v", e.Cause)
}

func (e *ParseFailureError) Code() codes.Code { return codes.InvalidArgument }

// StatementKindMismatchError reports that the parsed statement is not a
// SELECT.
type StatementKindMismatchError struct {
	Query string
}

func (e *StatementKindMismatchError) Error() string {
	return fmt.Sprintf("statement is not a SELECT: %s", e.Query)
}

func (e *StatementKindMismatchError) Code() codes.Code { return codes.InvalidArgument }

// UnresolvedStarError reports that no available source column matched a
// star result column's table prefix.
type UnresolvedStarError struct {
	Text string
}

func (e *UnresolvedStarError) Error() string {
	return fmt.Sprintf("Could not resolve data source for column: %s", e.Text)
}

func (e *UnresolvedStarError) Code() codes.Code { return codes.NotFound }

// UnresolvedColumnError reports that a simple identifier column did not
// match any available source. Suppressed entirely under
// Config.IgnoreInvalidNames (the resolver never constructs this error in
// that mode).
type UnresolvedColumnError struct {
	Text string
}

func (e *UnresolvedColumnError) Error() string {
	return fmt.Sprintf("Could not resolve table for column '%s'.", e.Text)
}

func (e *UnresolvedColumnError) Code() codes.Code { return codes.NotFound }

// ProbeFailureError reports that a table-valued-function or CTE probe
// query failed against the database. The database's own error text is
// preserved via Wrapf so Cause() still reaches it.
type ProbeFailureError struct {
	Query string
	Cause error
}

func NewProbeFailureError(query string, cause error) *ProbeFailureError {
	return &ProbeFailureError{Query: query, Cause: errors.Wrapf(cause, "probe query %q", query)}
}

func (e *ProbeFailureError) Error() string {
	return e.Cause.Error()
}

func (e *ProbeFailureError) Code() codes.Code { return codes.Unavailable }

var (
	_ Error = (*ParseFailureError)(nil)
	_ Error = (*StatementKindMismatchError)(nil)
	_ Error = (*UnresolvedStarError)(nil)
	_ Error = (*UnresolvedColumnError)(nil)
	_ Error = (*ProbeFailureError)(nil)
)
