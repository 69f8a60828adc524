package ir

// Request is a single chromaticity computation request.
type Request struct {
	CCT float64 `json:"cct" yaml:"cct"` // correlated color temperature, Kelvin
	Duv float64 `json:"duv" yaml:"duv"` // signed distance from the locus in CIE 1976 uv
}

// Result is the outcome of a computation.
type Result struct {
	CCT float64 `json:"cct"`
	Duv float64 `json:"duv"`

	// CIE 1931 chromaticity of the offset point.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// CIE 1976 chromaticity of the offset point.
	U float64 `json:"u"`
	V float64 `json:"v"`

	// Undeviated locus point at CCT.
	LocusX float64 `json:"locus_x"`
	LocusY float64 `json:"locus_y"`

	// Tangent names the locus tangent estimate that was used.
	Tangent string `json:"tangent"`

	// Accurate is false when CCT lies outside the polynomial's accurate range.
	Accurate bool `json:"accurate"`

	// Degenerate is true when a numeric guard replaced the result with a
	// fallback value.
	Degenerate bool `json:"degenerate"`

	Seq       int64  `json:"seq"`
	FlowToken string `json:"flow_token,omitempty"`
}

// Request returns the request that produced r.
func (r Result) Request() Request {
	return Request{CCT: r.CCT, Duv: r.Duv}
}

// Canonical returns r as a map suitable for MarshalCanonical, with every
// coordinate rendered at prec decimal places. Seq and FlowToken are left
// out so equal inputs always give equal bytes.
func (r Result) Canonical(prec int) map[string]any {
	return map[string]any{
		"cct":        FormatCoord(r.CCT, prec),
		"duv":        FormatCoord(r.Duv, prec),
		"x":          FormatCoord(r.X, prec),
		"y":          FormatCoord(r.Y, prec),
		"u":          FormatCoord(r.U, prec),
		"v":          FormatCoord(r.V, prec),
		"locus_x":    FormatCoord(r.LocusX, prec),
		"locus_y":    FormatCoord(r.LocusY, prec),
		"tangent":    r.Tangent,
		"accurate":   r.Accurate,
		"degenerate": r.Degenerate,
	}
}
