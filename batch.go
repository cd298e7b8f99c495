package validy

import (
	"fmt"
	"slices"
	"sync"
)

// ValidateBatch evaluates the requests and returns one Result per request,
// in request order. Items are independent and may run concurrently (bounded
// by WithMaxConcurrency); results are always linearized back into slot
// order before returning.
//
// Every name is resolved up front: a request naming an unregistered schema
// or validator aborts the whole batch with an error before any item runs.
// With WithMaxBatch set, oversized batches are rejected with
// ErrBatchTooLarge.
func (e *Engine) ValidateBatch(reqs []Request, opts ...ValidateOption) ([]Result, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	if e.opts.maxBatch > 0 && len(reqs) > e.opts.maxBatch {
		return nil, fmt.Errorf("%w: %d requests, limit %d", ErrBatchTooLarge, len(reqs), e.opts.maxBatch)
	}
	var vo validateOptions
	for _, opt := range opts {
		opt(&vo)
	}

	slots := make([]func() Result, len(reqs))
	e.mu.RLock()
	for i, req := range reqs {
		switch {
		case req.Schema != "" && req.Validator != "":
			e.mu.RUnlock()
			return nil, fmt.Errorf("validy: request %d names both a schema and a validator", i)
		case req.Schema != "":
			c, ok := e.contracts[req.Schema]
			if !ok {
				e.mu.RUnlock()
				return nil, fmt.Errorf("%w: %q (request %d)", ErrSchemaNotFound, req.Schema, i)
			}
			var warnFns []WarningFunc
			if vo.includeWarnings {
				warnFns = slices.Clone(e.warnings[req.Schema])
			}
			name, data := req.Schema, req.Data
			slots[i] = func() Result { return e.run(name, c, warnFns, data, vo) }
		case req.Validator != "":
			fn, ok := e.validators[req.Validator]
			if !ok {
				e.mu.RUnlock()
				return nil, fmt.Errorf("%w: %q (request %d)", ErrValidatorNotFound, req.Validator, i)
			}
			name, data := req.Validator, req.Data
			slots[i] = func() Result { return e.runCustom(name, fn, data) }
		default:
			e.mu.RUnlock()
			return nil, fmt.Errorf("validy: request %d names neither a schema nor a validator", i)
		}
	}
	e.mu.RUnlock()

	results := make([]Result, len(reqs))
	var sem chan struct{}
	if e.opts.maxConcurrency > 0 {
		sem = make(chan struct{}, e.opts.maxConcurrency)
	}
	var wg sync.WaitGroup
	for i, runSlot := range slots {
		wg.Go(func() {
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			results[i] = runSlot()
		})
	}
	wg.Wait()
	return results, nil
}
