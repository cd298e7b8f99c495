package validy

import (
	"fmt"
	"time"
)

// RealtimeValidator returns a synchronous validator bound to the named
// contract, intended for keystroke-level form feedback. The returned
// function is pure — same input, same outcome — and cheap: it bypasses
// warning heuristics, hooks, logging, and ID generation. The factory itself
// fails for an unknown schema name; the returned function never does.
//
// The contract is snapshotted at creation: re-registering the name later
// does not change already-created realtime validators.
func (e *Engine) RealtimeValidator(name string) (func(data any) Result, error) {
	e.mu.RLock()
	c, ok := e.contracts[name]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotFound, name)
	}
	version := c.Version()
	msgs := e.messages()
	recoverPanics := e.opts.recoverPanics
	return func(data any) Result {
		meta := Metadata{Schema: name, Version: version, ValidatedAt: time.Now()}
		return realtimeEvaluate(c, meta, data, msgs, recoverPanics)
	}, nil
}

func realtimeEvaluate(c Contract, meta Metadata, data any, msgs Messages, recoverPanics bool) (res Result) {
	if recoverPanics {
		defer func() {
			if p := recover(); p != nil {
				res = Result{
					Errors: []FieldError{formatViolation(systemViolation(&panicError{p: p}), msgs)},
					Meta:   meta,
				}
			}
		}()
	}
	out, viols := c.Evaluate(data, EvalOptions{})
	if len(viols) > 0 {
		errs := make([]FieldError, len(viols))
		for i, v := range viols {
			errs[i] = formatViolation(v, msgs)
		}
		return Result{Errors: errs, Meta: meta}
	}
	return Result{Success: true, Data: out, Meta: meta}
}
