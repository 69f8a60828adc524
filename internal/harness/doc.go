// Package harness provides conformance testing for the chromaticity engine.
//
// The harness loads scenario files, runs every case through the engine, and
// checks expected coordinates and numeric properties of the results.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	tangent: finite_difference    # or analytic; optional
//	precision: 6                  # digits in golden traces; optional
//	bounds: narrow.cue            # bounds schema, relative to the file; optional
//	flow_token: fixed-token       # optional
//	cases:
//	  - cct: 6500
//	    duv: 0
//	    expect:
//	      x: 0.3135
//	      y: 0.3299
//	      tolerance: 0.00005
//	  - cct: 500
//	    duv: 0
//	    expect:
//	      error: E102
//	assertions:
//	  - type: zero_offset_identity
//	  - type: duv_distance
//	    tolerance: 1e-9
//
// # Assertion Types
//
//   - finite: every result has finite coordinates
//   - roundtrip: xy -> uv -> xy reproduces every result
//   - zero_offset_identity: a zero Duv reproduces the locus point
//   - duv_distance: the uv distance from the locus point equals |Duv|
//   - sign_symmetry: +Duv and -Duv land on opposite sides of the locus tangent
//
// Assertions skip cases that failed or hit a degenerate guard.
//
// # Deterministic Testing
//
// Each run uses a fresh logical clock and a fixed flow token, so traces are
// byte-identical across runs and can be compared against golden files.
// Coordinates are written to traces as fixed-precision decimal strings.
package harness
