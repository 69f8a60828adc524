// Package engine runs chromaticity computations on behalf of the CLI and
// the conformance harness.
//
// The engine is the input collaborator around the pure chroma core: it
// validates each request against the CUE bounds schema, selects the tangent
// estimate, stamps results with a logical sequence number and a flow token,
// and refuses to hand out non-finite coordinates.
//
// Thread-safety: Compute may be called from any goroutine. The clock is
// atomic and token generators are required to be safe for concurrent use.
package engine
