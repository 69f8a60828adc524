package engine

import "github.com/google/uuid"

// FlowTokenGenerator produces the token that correlates a computation with
// its CLI response (trace_id) and log lines.
// Implementations must be safe for concurrent use.
type FlowTokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 tokens.
// It is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7.
// Panics if the system random source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator always returns the same token. The harness uses it so
// golden traces are reproducible.
type FixedGenerator struct {
	Token string
}

// Generate returns g.Token.
func (g FixedGenerator) Generate() string {
	return g.Token
}
