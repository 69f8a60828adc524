package harness

// Trace event types.
const (
	EventResult = "result"
	EventError  = "error"
)

// TraceEvent records the outcome of one scenario case.
type TraceEvent struct {
	Type   string         `json:"type"` // "result" or "error"
	Case   int            `json:"case"`
	Seq    int64          `json:"seq"`
	Result map[string]any `json:"result,omitempty"` // canonical result, see ir.Result.Canonical
	Error  string         `json:"error,omitempty"`  // error code
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per case, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddResultTrace records a successful case.
func (r *Result) AddResultTrace(index int, canonical map[string]any, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:   EventResult,
		Case:   index,
		Seq:    seq,
		Result: canonical,
	})
}

// AddErrorTrace records a case that the engine rejected.
func (r *Result) AddErrorTrace(index int, code string, seq int64) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:  EventError,
		Case:  index,
		Seq:   seq,
		Error: code,
	})
}
