// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// They cover the hot paths of vtail:
//   - count parsing and CUE config loading
//   - the measuring pre-pass, with and without the line index
//   - line and byte extraction from large inputs
//   - multi-file runs and the tail builtin inside the virtual shell
//
// To generate a profile, run:
//
//	go test ./internal/benchmark -bench=. -cpuprofile=default.pgo
package benchmark
