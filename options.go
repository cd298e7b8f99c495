package validy

import (
	"log/slog"
	"time"
)

// DuplicatePolicy controls what Register and RegisterValidator do when a
// name is already taken.
type DuplicatePolicy int

const (
	// Overwrite silently replaces the previous contract. Callers must not
	// assume old bindings persist. This is the default.
	Overwrite DuplicatePolicy = iota
	// Reject refuses re-registration with ErrDuplicateName.
	Reject
)

type engineOptions struct {
	duplicates     DuplicatePolicy
	recoverPanics  bool
	maxConcurrency int
	maxBatch       int
	locale         string
	logger         *slog.Logger
	onValidate     func(schema string, res Result, d time.Duration)
}

// Option configures an Engine.
type Option func(*engineOptions)

// WithDuplicatePolicy sets how duplicate registrations are handled.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *engineOptions) {
		o.duplicates = p
	}
}

// WithRecoverPanics controls whether panics inside contract evaluation,
// custom validators, and warning heuristics are recovered into a
// SYSTEM_ERROR field error (default true). Disable only in tests that want
// the raw panic.
func WithRecoverPanics(enable bool) Option {
	return func(o *engineOptions) {
		o.recoverPanics = enable
	}
}

// WithMaxConcurrency limits concurrent per-item validations inside
// ValidateBatch (semaphore). Pass 0 or negative to disable the limit.
func WithMaxConcurrency(n int) Option {
	return func(o *engineOptions) {
		o.maxConcurrency = n
	}
}

// WithMaxBatch caps the number of requests ValidateBatch accepts; oversized
// batches are rejected with ErrBatchTooLarge. Zero (default) means no cap.
func WithMaxBatch(n int) Option {
	return func(o *engineOptions) {
		o.maxBatch = n
	}
}

// WithLocale selects the message table used to render error messages.
// Unregistered locales fall back to English.
func WithLocale(locale string) Option {
	return func(o *engineOptions) {
		o.locale = locale
	}
}

// WithLogger enables structured logging of registrations and failed
// validations. The realtime path never logs.
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithOnValidate sets a hook called after every completed Validate,
// ValidateWithCustom, and batch item, with the result and elapsed time.
func WithOnValidate(fn func(schema string, res Result, d time.Duration)) Option {
	return func(o *engineOptions) {
		o.onValidate = fn
	}
}

type validateOptions struct {
	eval            EvalOptions
	includeWarnings bool
}

// ValidateOption configures a single Validate or ValidateBatch call.
type ValidateOption func(*validateOptions)

// StripUnknown drops input keys the contract does not declare from the
// returned data. Contracts marked Open keep their remainder.
func StripUnknown() ValidateOption {
	return func(o *validateOptions) {
		o.eval.StripUnknown = true
	}
}

// AbortEarly stops at the first failing field instead of collecting all
// field errors.
func AbortEarly() ValidateOption {
	return func(o *validateOptions) {
		o.eval.AbortEarly = true
	}
}

// IncludeWarnings runs the schema's warning heuristics and attaches their
// advisory messages to the result.
func IncludeWarnings() ValidateOption {
	return func(o *validateOptions) {
		o.includeWarnings = true
	}
}
