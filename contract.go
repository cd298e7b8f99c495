package validy

import "strings"

// Contract is a named data contract capable of evaluating an arbitrary input
// value. On success it returns the canonical data (declared fields, with
// unknown keys handled per EvalOptions); on failure it returns the low-level
// violations the Engine's formatter turns into FieldErrors.
//
// Contracts must be immutable after registration and safe for concurrent use.
type Contract interface {
	Version() string
	Evaluate(value any, opts EvalOptions) (any, []Violation)
}

// EvalOptions control a single evaluation pass.
type EvalOptions struct {
	// StripUnknown drops input keys the contract does not declare from the
	// returned data. Contracts marked Open keep their remainder regardless.
	StripUnknown bool
	// AbortEarly stops at the first failing field instead of collecting all.
	AbortEarly bool
}

// Violation is one low-level contract failure. It is locale-free: the
// formatter renders Message from the Code's template and Params unless the
// violation carries its own Message (refinements supply their own text).
type Violation struct {
	Path     []string
	Code     Code
	Params   map[string]any
	Received string
	Expected string
	Message  string
}

// Sampler is implemented by contracts that carry a canned sample payload,
// used by Engine.ValidateAll as a startup smoke test.
type Sampler interface {
	Sample() any
}

// joinPath renders ordered path segments as a dotted field path. The empty
// path addresses the input value itself and renders as FieldRoot.
func joinPath(path []string) string {
	if len(path) == 0 {
		return FieldRoot
	}
	return strings.Join(path, ".")
}
