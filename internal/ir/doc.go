// Package ir provides the request and result values exchanged between the
// chromaticity engine, the conformance harness and the CLI.
//
// This package contains value types and their serialization only. It
// imports nothing internal.
//
// Key design constraints:
//   - All JSON tags use snake_case
//   - Canonical JSON forbids floats; coordinates enter canonical output as
//     fixed-precision decimal strings (see FormatCoord)
//   - Logical clocks (seq) only, never wall-clock timestamps
package ir
