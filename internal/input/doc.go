// Package input validates raw computation requests before they reach the
// chromaticity core.
//
// Bounds are written in CUE. The built-in schema mirrors the ranges of the
// interactive form this tool replaces:
//
//	limits: {
//		cct: {min: 1000, max: 30000, initial: 6500}
//		duv: {min: -0.1, max: 0.1, initial: 0}
//	}
//	#Request: {
//		cct: number & >=limits.cct.min & <=limits.cct.max
//		duv: number & >=limits.duv.min & <=limits.duv.max
//	}
//
// A replacement schema can be loaded from a .cue file with LoadBounds; it
// must define both limits and #Request. Regardless of the schema, NaN,
// infinities and non-positive temperatures are always rejected because the
// core takes the reciprocal of the temperature.
package input
