package testutil

import "github.com/skorin/validy"

// MockContract is a canned Contract for engine tests: it returns a fixed
// outcome regardless of input and records how often it was evaluated.
type MockContract struct {
	ContractVersion string
	Out             any
	Violations      []validy.Violation
	SamplePayload   any
	PanicWith       any

	Calls int
}

// Version reports the configured version, defaulting to "test".
func (m *MockContract) Version() string {
	if m.ContractVersion == "" {
		return "test"
	}
	return m.ContractVersion
}

// Sample returns the configured sample payload.
func (m *MockContract) Sample() any { return m.SamplePayload }

// Evaluate returns the canned outcome. With PanicWith set it panics, for
// exercising recovery paths.
func (m *MockContract) Evaluate(value any, _ validy.EvalOptions) (any, []validy.Violation) {
	m.Calls++
	if m.PanicWith != nil {
		panic(m.PanicWith)
	}
	if len(m.Violations) > 0 {
		return nil, m.Violations
	}
	if m.Out != nil {
		return m.Out, nil
	}
	return value, nil
}

var (
	_ validy.Contract = (*MockContract)(nil)
	_ validy.Sampler  = (*MockContract)(nil)
)
