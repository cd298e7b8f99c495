package validy

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Engine holds the schema catalog, the custom validator registry, and the
// warning heuristics, and orchestrates every validation entry point.
//
// Construct one Engine at application startup, register everything, then
// share it read-only. Registration racing with validation on the same name
// is undefined behavior; the internal lock protects map integrity, not that
// discipline.
type Engine struct {
	mu           sync.RWMutex
	contracts    map[string]Contract // wrapped with middlewares, used by Validate
	rawContracts map[string]Contract // unwrapped, used by Use() to re-apply middlewares
	validators   map[string]ValidatorFunc
	warnings     map[string][]WarningFunc
	middlewares  []Middleware
	opts         engineOptions
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	o := engineOptions{
		duplicates:     Overwrite,
		recoverPanics:  true,
		maxConcurrency: 10,
		locale:         "en",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		contracts:    make(map[string]Contract),
		rawContracts: make(map[string]Contract),
		validators:   make(map[string]ValidatorFunc),
		warnings:     make(map[string][]WarningFunc),
		opts:         o,
	}
}

// Register stores a contract under name. Under the Overwrite policy a
// duplicate name silently replaces the previous contract; under Reject it
// returns ErrDuplicateName.
func (e *Engine) Register(name string, c Contract) error {
	if name == "" {
		return fmt.Errorf("validy: contract name must not be empty")
	}
	if c == nil {
		return fmt.Errorf("validy: contract must not be nil")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.rawContracts[name]; exists && e.opts.duplicates == Reject {
		return fmt.Errorf("%w: schema %q", ErrDuplicateName, name)
	}
	e.rawContracts[name] = c
	e.contracts[name] = e.wrap(c)
	if e.opts.logger != nil {
		e.opts.logger.Debug("schema registered", "schema", name, "version", c.Version())
	}
	return nil
}

// RegisterValidator stores a named custom validator. The duplicate policy is
// the same as Register's.
func (e *Engine) RegisterValidator(name string, fn ValidatorFunc) error {
	if name == "" {
		return fmt.Errorf("validy: validator name must not be empty")
	}
	if fn == nil {
		return fmt.Errorf("validy: validator func must not be nil")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.validators[name]; exists && e.opts.duplicates == Reject {
		return fmt.Errorf("%w: validator %q", ErrDuplicateName, name)
	}
	e.validators[name] = fn
	if e.opts.logger != nil {
		e.opts.logger.Debug("validator registered", "validator", name)
	}
	return nil
}

// RegisterWarning appends a warning heuristic for the named schema.
// Heuristics run in registration order when IncludeWarnings is requested.
func (e *Engine) RegisterWarning(schema string, fn WarningFunc) {
	if schema == "" || fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.warnings[schema] = append(e.warnings[schema], fn)
}

// Lookup returns the registered contract (after middlewares are applied),
// or (nil, false) if the name is unknown.
func (e *Engine) Lookup(name string) (Contract, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	c, ok := e.contracts[name]
	return c, ok
}

// Schemas returns registered schema names, sorted for deterministic order.
func (e *Engine) Schemas() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.contracts))
	for name := range e.contracts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validators returns registered custom validator names, sorted.
func (e *Engine) Validators() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.validators))
	for name := range e.validators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate evaluates data against the named contract. Shape mismatches in
// the data never produce a Go error; they come back inside a
// {Success:false} result. The returned error is non-nil only for an unknown
// schema name.
func (e *Engine) Validate(name string, data any, opts ...ValidateOption) (Result, error) {
	var vo validateOptions
	for _, opt := range opts {
		opt(&vo)
	}
	e.mu.RLock()
	c, ok := e.contracts[name]
	var warnFns []WarningFunc
	if vo.includeWarnings {
		warnFns = slices.Clone(e.warnings[name])
	}
	e.mu.RUnlock()
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}
	return e.run(name, c, warnFns, data, vo), nil
}

// ValidateWithCustom runs the named custom validator against data. The
// returned error is non-nil only for an unknown validator name.
func (e *Engine) ValidateWithCustom(name string, data any) (Result, error) {
	e.mu.RLock()
	fn, ok := e.validators[name]
	e.mu.RUnlock()
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrValidatorNotFound, name)
	}
	return e.runCustom(name, fn, data), nil
}

// run executes one contract validation: evaluate, format, warnings, hook.
func (e *Engine) run(name string, c Contract, warnFns []WarningFunc, data any, vo validateOptions) Result {
	start := time.Now()
	meta := Metadata{
		ValidationID: uuid.NewString(),
		Schema:       name,
		Version:      c.Version(),
		ValidatedAt:  start,
	}
	res := e.evaluate(c, meta, data, vo.eval)
	for _, fn := range warnFns {
		res.Warnings = append(res.Warnings, e.safeWarnings(fn, data)...)
	}
	e.finish(name, &res, start)
	return res
}

// evaluate runs the contract with optional panic recovery. A panic inside
// evaluation becomes a single SYSTEM_ERROR field error instead of
// propagating to the caller.
func (e *Engine) evaluate(c Contract, meta Metadata, data any, eo EvalOptions) (res Result) {
	if e.opts.recoverPanics {
		defer func() {
			if p := recover(); p != nil {
				res = Result{
					Errors: []FieldError{formatViolation(systemViolation(&panicError{p: p}), e.messages())},
					Meta:   meta,
				}
			}
		}()
	}
	out, viols := c.Evaluate(data, eo)
	if len(viols) > 0 {
		return Result{Errors: e.format(viols), Meta: meta}
	}
	return Result{Success: true, Data: out, Meta: meta}
}

// runCustom executes one custom validator with recovery and normalization.
func (e *Engine) runCustom(name string, fn ValidatorFunc, data any) Result {
	start := time.Now()
	meta := Metadata{
		ValidationID: uuid.NewString(),
		Schema:       name,
		Version:      "custom",
		ValidatedAt:  start,
	}
	res := e.invokeCustom(fn, meta, data)
	e.finish(name, &res, start)
	return res
}

func (e *Engine) invokeCustom(fn ValidatorFunc, meta Metadata, data any) (res Result) {
	if e.opts.recoverPanics {
		defer func() {
			if p := recover(); p != nil {
				res = Result{
					Errors: []FieldError{formatViolation(systemViolation(&panicError{p: p}), e.messages())},
					Meta:   meta,
				}
			}
		}()
	}
	res = fn(data)
	res.Meta = meta
	// Normalize so the Result invariant holds even for sloppy validators:
	// success implies data, failure implies at least one error.
	if res.Success {
		res.Errors = nil
		if res.Data == nil {
			res.Data = data
		}
	} else {
		res.Data = nil
		if len(res.Errors) == 0 {
			res.Errors = []FieldError{formatViolation(Violation{Path: nil, Code: CodeCustom}, e.messages())}
		}
	}
	return res
}

// safeWarnings runs one warning heuristic, recovering panics: advisory
// output must never take down a validation.
func (e *Engine) safeWarnings(fn WarningFunc, data any) (out []string) {
	defer func() {
		if p := recover(); p != nil {
			out = nil
			if e.opts.logger != nil {
				e.opts.logger.Warn("warning heuristic panicked", "panic", fmt.Sprint(p))
			}
		}
	}()
	return fn(data)
}

func (e *Engine) finish(name string, res *Result, start time.Time) {
	if e.opts.logger != nil && !res.Success {
		e.opts.logger.Debug("validation failed",
			"schema", name, "errors", len(res.Errors), "warnings", len(res.Warnings))
	}
	if e.opts.onValidate != nil {
		e.opts.onValidate(name, *res, time.Since(start))
	}
}

func (e *Engine) messages() Messages {
	return lookupLocale(e.opts.locale)
}

func (e *Engine) format(viols []Violation) []FieldError {
	msgs := e.messages()
	out := make([]FieldError, len(viols))
	for i, v := range viols {
		out[i] = formatViolation(v, msgs)
	}
	return out
}
