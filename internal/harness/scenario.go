package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/cctxy/internal/chroma"
)

// DefaultPrecision is the number of decimals written to traces when a
// scenario does not set one.
const DefaultPrecision = 6

// DefaultFlowToken is used when a scenario does not set flow_token.
const DefaultFlowToken = "test-flow-default"

// DefaultTolerance applies to expect clauses without a tolerance.
const DefaultTolerance = 5e-5

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Tangent selects the locus tangent estimate (default finite_difference).
	Tangent string `yaml:"tangent,omitempty"`

	// Precision is the number of decimals in golden traces.
	Precision int `yaml:"precision,omitempty"`

	// Bounds is an optional bounds schema path, relative to the scenario file.
	Bounds string `yaml:"bounds,omitempty"`

	// Strict makes degenerate cases fail with E202 instead of falling back.
	Strict bool `yaml:"strict,omitempty"`

	// FlowToken is a fixed flow token for deterministic traces.
	FlowToken string `yaml:"flow_token,omitempty"`

	// Cases are the requests to evaluate, in order.
	Cases []Case `yaml:"cases"`

	// Assertions are numeric properties checked over all cases.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Case is a single request with an optional expectation.
type Case struct {
	CCT    float64       `yaml:"cct"`
	Duv    float64       `yaml:"duv"`
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a case.
type ExpectClause struct {
	// X and Y are the expected CIE 1931 coordinates.
	X *float64 `yaml:"x,omitempty"`
	Y *float64 `yaml:"y,omitempty"`

	// Tolerance is the allowed absolute deviation (default DefaultTolerance).
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Degenerate, if set, must equal the result's degenerate flag.
	Degenerate *bool `yaml:"degenerate,omitempty"`

	// Error is the expected error code (e.g. "E102"). When set, the case
	// must fail with exactly this code.
	Error string `yaml:"error,omitempty"`
}

// Assertion validates a numeric property over all cases.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Tolerance overrides the assertion's default tolerance.
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

// Assertion type constants.
const (
	AssertFinite             = "finite"
	AssertRoundTrip          = "roundtrip"
	AssertZeroOffsetIdentity = "zero_offset_identity"
	AssertDuvDistance        = "duv_distance"
	AssertSignSymmetry       = "sign_symmetry"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative bounds path is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Bounds != "" && !filepath.IsAbs(scenario.Bounds) {
		scenario.Bounds = filepath.Join(filepath.Dir(path), scenario.Bounds)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}
	if _, err := chroma.ParseTangent(s.Tangent); err != nil {
		return err
	}
	if s.Precision < 0 || s.Precision > 15 {
		return fmt.Errorf("precision must be between 0 and 15, got %d", s.Precision)
	}
	if s.Bounds != "" {
		if _, err := os.Stat(s.Bounds); os.IsNotExist(err) {
			return fmt.Errorf("bounds file not found: %s", s.Bounds)
		}
	}

	for i, c := range s.Cases {
		if c.Expect == nil {
			continue
		}
		if c.Expect.Tolerance < 0 {
			return fmt.Errorf("cases[%d].expect: tolerance must be non-negative", i)
		}
		if c.Expect.Error != "" && (c.Expect.X != nil || c.Expect.Y != nil) {
			return fmt.Errorf("cases[%d].expect: error cannot be combined with coordinates", i)
		}
		if (c.Expect.X == nil) != (c.Expect.Y == nil) {
			return fmt.Errorf("cases[%d].expect: x and y must be given together", i)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion.
func validateAssertion(index int, a Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertFinite, AssertRoundTrip, AssertZeroOffsetIdentity, AssertDuvDistance, AssertSignSymmetry:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	if a.Tolerance < 0 {
		return fmt.Errorf("assertions[%d]: tolerance must be non-negative", index)
	}
	return nil
}

func (s *Scenario) precision() int {
	if s.Precision == 0 {
		return DefaultPrecision
	}
	return s.Precision
}

func (s *Scenario) flowToken() string {
	if s.FlowToken == "" {
		return DefaultFlowToken
	}
	return s.FlowToken
}
