package validy

import (
	"log/slog"
	"time"
)

// Middleware wraps a Contract with cross-cutting behavior (logging,
// recovery). Middlewares see the raw evaluation, before the Engine formats
// violations into field errors.
type Middleware func(Contract) Contract

// Use stores the given middlewares and reapplies them from scratch to all
// registered contracts (onion order: first middleware is outermost).
// Contracts registered after Use also get the chain applied. Calling Use
// again replaces the chain and rewraps from the raw contracts, avoiding
// double-wrapping.
func (e *Engine) Use(middlewares ...Middleware) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.middlewares = middlewares
	for name, raw := range e.rawContracts {
		e.contracts[name] = e.wrapLocked(raw)
	}
}

// wrap applies the stored middleware chain to a contract. Caller must hold e.mu.
func (e *Engine) wrap(c Contract) Contract { return e.wrapLocked(c) }

func (e *Engine) wrapLocked(c Contract) Contract {
	for i := len(e.middlewares) - 1; i >= 0; i-- {
		c = e.middlewares[i](c)
	}
	return c
}

// contractBase delegates Contract and Sampler to the wrapped contract; used
// by middleware wrappers so sampling still reaches the inner contract.
type contractBase struct{ next Contract }

func (b *contractBase) Version() string { return b.next.Version() }

func (b *contractBase) Sample() any {
	if s, ok := b.next.(Sampler); ok {
		return s.Sample()
	}
	return nil
}

// WithEvalLogging returns a middleware that logs every evaluation with its
// outcome and duration at Debug level.
func WithEvalLogging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Contract) Contract {
		return &loggingContract{contractBase: contractBase{next: next}, logger: logger}
	}
}

type loggingContract struct {
	contractBase
	logger *slog.Logger
}

func (m *loggingContract) Evaluate(value any, opts EvalOptions) (any, []Violation) {
	start := time.Now()
	out, viols := m.next.Evaluate(value, opts)
	m.logger.Debug("contract evaluated",
		"version", m.next.Version(), "violations", len(viols), "duration", time.Since(start))
	return out, viols
}

// WithRecovery returns a middleware that recovers panics during evaluation
// and reports them as a single SYSTEM_ERROR violation. The Engine already
// recovers at its own boundary when WithRecoverPanics is on; use this
// middleware when calling contracts directly.
func WithRecovery() Middleware {
	return func(next Contract) Contract {
		return &recoveryContract{contractBase{next: next}}
	}
}

type recoveryContract struct{ contractBase }

func (r *recoveryContract) Evaluate(value any, opts EvalOptions) (out any, viols []Violation) {
	defer func() {
		if p := recover(); p != nil {
			out = nil
			viols = []Violation{systemViolation(&panicError{p: p})}
		}
	}()
	return r.next.Evaluate(value, opts)
}
