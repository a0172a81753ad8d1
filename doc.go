// File: optkit/doc.go

// Package optkit implements value resolution for typed command-line
// options: the conversion of zero or more raw option occurrences (or a
// config-file / environment fallback) into one strongly-typed value,
// followed by post-resolution validation.
//
// It is the resolution core of a declarative CLI library. Tokenizing
// argument vectors, matching tokens to option names, command trees and
// help rendering are the caller's concern; optkit starts where the
// parser has already produced, for each option, an ordered list of
// Invocations.
//
// Features:
//   - Deterministic origin selection: direct invocations, then a
//     value source (TOML/JSON/YAML file or in-memory map), then an
//     environment variable, then absent
//   - Three-stage typed transform pipeline (per raw value, per
//     invocation, per option) with composable constructors
//   - Optional value splitting on a separator pattern
//   - Immutable descriptors with copy-with-overrides and a
//     type-changing Retype operation
//   - Two-phase parse passes: resolve every option, then validate
//   - Deprecation wrapping with warning or hard-error behavior
//
// Quick Start:
//
//	cmd := optkit.NewCommandContext()
//
//	port := optkit.Retype(
//	    optkit.NewBuilder("--port", "-p").
//	        WithHelp("listen port").
//	        WithEnvVar("APP_PORT").
//	        MustBuild(),
//	    optkit.WithDefault(optkit.Int64(), 8080))
//	cmd.AddOption(port)
//
//	pass := optkit.NewPass(cmd)
//	if err := pass.Resolve(groups); err != nil { // groups come from the parser
//	    log.Fatal(err)
//	}
//	listenOn(port.Value(pass))
//
// Origin Precedence (highest to lowest):
//  1. Direct invocations (--port 9090)
//  2. Value source entries (port = 9090 in a config file)
//  3. Environment variable (APP_PORT=9090; presence counts, even "")
//  4. Absent (the pipeline's default value)
//
// Lifecycle:
// Descriptors are immutable and safe to reuse across parse passes; all
// per-parse state lives in a Pass. Reading an option's value from a
// Pass that has not resolved it panics with *GuardViolationError —
// that is an integration bug, never a benign default.
package optkit
