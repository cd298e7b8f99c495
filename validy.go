package validy

import "time"

// Code classifies a validation failure. Codes are fixed and locale-independent;
// the rendered message for a code comes from the active locale's message table.
type Code string

const (
	// CodeRequired marks a missing or empty required field.
	CodeRequired Code = "REQUIRED"
	// CodeInvalidType marks a value whose primitive type does not match the contract.
	CodeInvalidType Code = "INVALID_TYPE"
	// CodeTooSmall marks a value below a minimum length or numeric bound.
	CodeTooSmall Code = "TOO_SMALL"
	// CodeTooBig marks a value above a maximum length or numeric bound.
	CodeTooBig Code = "TOO_BIG"
	// CodeInvalidFormat marks a pattern, format, or enum-membership mismatch.
	CodeInvalidFormat Code = "INVALID_FORMAT"
	// CodeCustom marks a failed cross-field or custom refinement.
	CodeCustom Code = "CUSTOM"
	// CodeSystem marks an internal failure (e.g. a panicking refinement),
	// surfaced as a field error instead of crashing the caller.
	CodeSystem Code = "SYSTEM_ERROR"
)

// FieldRoot is the dotted-path name addressing the input value itself,
// used when the whole input (not one of its fields) fails a check.
const FieldRoot = "$"

// FieldSystem is the field name carried by engine-level failures that are
// not tied to any location in the input.
const FieldSystem = "system"

// FieldError is one field-level diagnostic. Field is a dotted path into the
// input ("company.website", "steps.2.action") suitable for highlighting the
// corresponding form control; Path holds the same path as ordered segments.
type FieldError struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Code     Code     `json:"code"`
	Path     []string `json:"path,omitempty"`
	Received string   `json:"received,omitempty"`
	Expected string   `json:"expected,omitempty"`
}

// Metadata describes a completed validation. It is always populated on
// results produced by the Engine; realtime validators omit ValidationID to
// stay allocation-light on the keystroke path.
type Metadata struct {
	ValidationID string    `json:"validationId,omitempty"`
	Schema       string    `json:"schema"`
	Version      string    `json:"version"`
	ValidatedAt  time.Time `json:"validatedAt"`
}

// Result is the uniform envelope returned by every validation entry point.
// Invariant: Success is true iff Data is set and Errors is empty; Success is
// false iff Errors is non-empty and Data is nil. Warnings are advisory and
// independent of Success.
type Result struct {
	Success  bool         `json:"success"`
	Data     any          `json:"data,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
	Warnings []string     `json:"warnings,omitempty"`
	Meta     Metadata     `json:"metadata"`
}

// HasError reports whether the result carries an error for the given dotted field path.
func (r Result) HasError(field string) bool {
	_, ok := r.ErrorFor(field)
	return ok
}

// ErrorFor returns the first error for the given dotted field path.
func (r Result) ErrorFor(field string) (FieldError, bool) {
	for _, e := range r.Errors {
		if e.Field == field {
			return e, true
		}
	}
	return FieldError{}, false
}

// OK builds a successful Result around data. Intended for ValidatorFunc
// implementations; the Engine fills in Meta.
func OK(data any) Result {
	return Result{Success: true, Data: data}
}

// Fail builds a failed Result from one or more field errors. Intended for
// ValidatorFunc implementations; the Engine fills in Meta.
func Fail(errs ...FieldError) Result {
	return Result{Errors: errs}
}

// ValidatorFunc is a named custom check registered with RegisterValidator.
// It must be pure: no I/O, no shared state. The Engine normalizes its output
// so the Result invariant holds even for sloppy implementations.
type ValidatorFunc func(value any) Result

// WarningFunc produces advisory messages for a schema's input. Warnings never
// affect Success; a panicking WarningFunc is recovered and ignored.
type WarningFunc func(value any) []string

// Request is one slot of a batch. Exactly one of Schema or Validator must
// name a registered contract or custom validator.
type Request struct {
	Schema    string
	Validator string
	Data      any
}
