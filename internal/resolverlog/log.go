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

// Package resolverlog provides a thin adapter around glog. Keeping the
// wrapper in one place means the rest of the module never imports glog
// directly, and the verbosity/output flags stay in one spot.
package resolverlog

import (
	"flag"
	"fmt"

	"github.com/golang/glog"
)

// GoFlagSet returns the standard flag.FlagSet that glog registers its own
// flags (-v, -logtostderr, -log_dir, ...) onto at import time, so a cobra
// command can fold them into its own pflag.FlagSet via AddGoFlagSet.
func GoFlagSet() *flag.FlagSet {
	return flag.CommandLine
}

// Flush ensures any buffered log lines are written out.
var Flush = glog.Flush

// Level is the glog verbosity level used by V().
type Level = glog.Level

// Verbose mirrors glog.Verbose; call sites use V(n).Infof(...) to gate
// chatty trace lines behind a verbosity threshold.
type Verbose = glog.Verbose

// V reports whether verbosity level l is enabled.
func V(l Level) Verbose {
	return glog.V(l)
}

// Warningf logs a warning-level diagnostic: a view that failed to parse,
// an AST node of the wrong kind, or other recoverable oddity. These never
// get added to a Resolver's user-visible error list.
func Warningf(format string, args ...any) {
	glog.WarningDepth(1, sprintf(format, args...))
}

// Infof logs an informational line unconditionally.
func Infof(format string, args ...any) {
	glog.InfoDepth(1, sprintf(format, args...))
}

func sprintf(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
