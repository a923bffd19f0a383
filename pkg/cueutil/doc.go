// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// It wraps the schema-first flow used for configuration files:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with a schema definition
//  3. Validate and decode
//
// Errors are reported with JSON-path style field locations, for example
// "config.cue: ui.log_level: 3 errors in empty disjunction".
package cueutil
