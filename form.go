package validy

import "sync"

// FormAdapter binds one registered schema to a UI form. Live gives
// per-keystroke feedback through a realtime validator; Submit runs the full
// validation (including warnings) and records the result so the form can
// look up errors by field path afterwards.
type FormAdapter struct {
	engine *Engine
	schema string
	live   func(data any) Result

	mu   sync.Mutex
	last Result
}

// Form creates an adapter for the named schema. It fails for an unknown
// schema name, same as RealtimeValidator.
func (e *Engine) Form(schema string) (*FormAdapter, error) {
	live, err := e.RealtimeValidator(schema)
	if err != nil {
		return nil, err
	}
	return &FormAdapter{engine: e, schema: schema, live: live}, nil
}

// Live validates data on the realtime path. The result is not recorded.
func (f *FormAdapter) Live(data any) Result {
	return f.live(data)
}

// Submit runs the full validation with warnings and records the result.
func (f *FormAdapter) Submit(data any) Result {
	res, err := f.engine.Validate(f.schema, data, IncludeWarnings())
	if err != nil {
		// The schema existed when the adapter was built and the engine has
		// no unregister path, so this is unreachable; fail loudly if the
		// assumption ever breaks.
		panic(err)
	}
	f.mu.Lock()
	f.last = res
	f.mu.Unlock()
	return res
}

// Last returns the most recent Submit result.
func (f *FormAdapter) Last() Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// FieldErrors returns the recorded errors for one dotted field path, for
// highlighting the corresponding input control.
func (f *FormAdapter) FieldErrors(field string) []FieldError {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []FieldError
	for _, e := range f.last.Errors {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// Valid reports whether the most recent Submit succeeded.
func (f *FormAdapter) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last.Success
}
