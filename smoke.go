package validy

// ValidateAll feeds every registered contract's canned sample payload
// through Validate (with warnings) and returns the results keyed by schema
// name. It is a developer-tooling smoke test for startup: a failing entry
// means a contract and its sample drifted apart. Contracts that do not
// implement Sampler, or whose sample is nil, are skipped.
func (e *Engine) ValidateAll() map[string]Result {
	out := make(map[string]Result)
	for _, name := range e.Schemas() {
		e.mu.RLock()
		c := e.contracts[name]
		e.mu.RUnlock()
		s, ok := c.(Sampler)
		if !ok || s.Sample() == nil {
			if e.opts.logger != nil {
				e.opts.logger.Debug("smoke test skipped, no sample", "schema", name)
			}
			continue
		}
		res, err := e.Validate(name, s.Sample(), IncludeWarnings())
		if err != nil {
			// Unreachable: the name came from the registry a moment ago and
			// there is no unregister path. Guard anyway.
			continue
		}
		if !res.Success && e.opts.logger != nil {
			e.opts.logger.Warn("smoke test failed", "schema", name, "errors", len(res.Errors))
		}
		out[name] = res
	}
	return out
}
