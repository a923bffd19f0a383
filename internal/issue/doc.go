// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource and remediation
// hints for errors shown on the command line. Issue is a catalogue of longer
// Markdown guides rendered with glamour by "vtail issue".
package issue
