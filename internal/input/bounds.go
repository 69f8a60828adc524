package input

import (
	"errors"
	"fmt"
	"math"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/roach88/cctxy/internal/ir"
)

// DefaultSchema is the built-in bounds schema.
const DefaultSchema = `limits: {
	cct: {min: 1000, max: 30000, initial: 6500}
	duv: {min: -0.1, max: 0.1, initial: 0}
}

#Request: {
	cct: number & >=limits.cct.min & <=limits.cct.max
	duv: number & >=limits.duv.min & <=limits.duv.max
}
`

// Error codes reported by Validate and the loaders.
const (
	ErrCodeNonFinite   = "E101" // NaN or infinite input
	ErrCodeOutOfBounds = "E102" // input violates the schema
	ErrCodeNonPositive = "E103" // temperature <= 0
	ErrCodeSchema      = "E104" // schema failed to load or compile
)

// ValidationError reports a rejected request or an unusable schema.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Range is an inclusive numeric range with the form's initial value.
type Range struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Initial float64 `json:"initial"`
}

// Contains reports whether f lies within r.
func (r Range) Contains(f float64) bool {
	return f >= r.Min && f <= r.Max
}

// Limits are the numeric ranges declared by a schema.
type Limits struct {
	CCT Range `json:"cct"`
	Duv Range `json:"duv"`
}

// Bounds is a compiled bounds schema. It is immutable after construction.
type Bounds struct {
	request cue.Value
	limits  Limits
	source  string
}

// DefaultBounds compiles DefaultSchema.
func DefaultBounds() (*Bounds, error) {
	return compile([]byte(DefaultSchema), "bounds.cue")
}

// LoadBounds compiles a bounds schema from a .cue file.
func LoadBounds(path string) (*Bounds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ValidationError{
			Code:    ErrCodeSchema,
			Message: fmt.Sprintf("failed to read bounds file: %v", err),
		}
	}
	return compile(data, path)
}

func compile(src []byte, filename string) (*Bounds, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, schemaError(err)
	}

	req := v.LookupPath(cue.ParsePath("#Request"))
	if !req.Exists() {
		return nil, &ValidationError{Code: ErrCodeSchema, Field: "#Request", Message: "definition is required"}
	}

	limits, err := readLimits(v)
	if err != nil {
		return nil, err
	}

	return &Bounds{request: req, limits: limits, source: filename}, nil
}

func readLimits(v cue.Value) (Limits, error) {
	var l Limits
	fields := []struct {
		path string
		dst  *float64
	}{
		{"limits.cct.min", &l.CCT.Min},
		{"limits.cct.max", &l.CCT.Max},
		{"limits.cct.initial", &l.CCT.Initial},
		{"limits.duv.min", &l.Duv.Min},
		{"limits.duv.max", &l.Duv.Max},
		{"limits.duv.initial", &l.Duv.Initial},
	}
	for _, f := range fields {
		fv := v.LookupPath(cue.ParsePath(f.path))
		if !fv.Exists() {
			return Limits{}, &ValidationError{Code: ErrCodeSchema, Field: f.path, Message: "is required"}
		}
		n, err := fv.Float64()
		if err != nil {
			return Limits{}, &ValidationError{Code: ErrCodeSchema, Field: f.path, Message: fmt.Sprintf("must be a number: %v", err)}
		}
		*f.dst = n
	}

	if l.CCT.Min <= 0 {
		return Limits{}, &ValidationError{Code: ErrCodeSchema, Field: "limits.cct.min", Message: "must be positive"}
	}
	if !l.CCT.Contains(l.CCT.Initial) {
		return Limits{}, &ValidationError{Code: ErrCodeSchema, Field: "limits.cct.initial", Message: "must lie within [min, max]"}
	}
	if !l.Duv.Contains(l.Duv.Initial) {
		return Limits{}, &ValidationError{Code: ErrCodeSchema, Field: "limits.duv.initial", Message: "must lie within [min, max]"}
	}
	return l, nil
}

// Limits returns the ranges declared by the schema.
func (b *Bounds) Limits() Limits {
	return b.limits
}

// Source returns the file name the schema was compiled from.
func (b *Bounds) Source() string {
	return b.source
}

// Initial returns the request made of both initial values.
func (b *Bounds) Initial() ir.Request {
	return ir.Request{CCT: b.limits.CCT.Initial, Duv: b.limits.Duv.Initial}
}

// Validate checks req against the schema. The returned error is a
// *ValidationError.
func (b *Bounds) Validate(req ir.Request) error {
	if !finite(req.CCT) {
		return &ValidationError{Code: ErrCodeNonFinite, Field: "cct", Message: fmt.Sprintf("must be finite, got %v", req.CCT)}
	}
	if !finite(req.Duv) {
		return &ValidationError{Code: ErrCodeNonFinite, Field: "duv", Message: fmt.Sprintf("must be finite, got %v", req.Duv)}
	}
	if req.CCT <= 0 {
		return &ValidationError{Code: ErrCodeNonPositive, Field: "cct", Message: fmt.Sprintf("must be positive, got %v", req.CCT)}
	}

	ctx := b.request.Context()
	val := ctx.Encode(map[string]float64{"cct": req.CCT, "duv": req.Duv})
	if err := b.request.Unify(val).Validate(cue.Concrete(true)); err != nil {
		return boundsError(err)
	}
	return nil
}

// boundsError converts the first CUE error into a ValidationError naming
// the offending field.
func boundsError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{Code: ErrCodeOutOfBounds, Message: err.Error()}
	}
	first := errs[0]
	field := ""
	if path := first.Path(); len(path) > 0 {
		field = path[len(path)-1]
	}
	format, args := first.Msg()
	return &ValidationError{Code: ErrCodeOutOfBounds, Field: field, Message: fmt.Sprintf(format, args...)}
}

// schemaError keeps the position of the first CUE error.
func schemaError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{Code: ErrCodeSchema, Message: err.Error()}
	}
	msg := errs[0].Error()
	if pos := cueerrors.Positions(errs[0]); len(pos) > 0 && pos[0].IsValid() {
		msg = fmt.Sprintf("%s:%d:%d: %s", pos[0].Filename(), pos[0].Line(), pos[0].Column(), msg)
	}
	return &ValidationError{Code: ErrCodeSchema, Message: msg}
}

// IsValidationError reports whether err wraps a *ValidationError and
// returns it.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
