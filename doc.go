// Package validy is a schema-driven validation engine: a registry of named
// data contracts plus a runtime that validates arbitrary input against them,
// returning a uniform success/failure result with field-level diagnostics.
//
// # Overview
//
// Forms submit JSON-shaped payloads. This package turns a payload and a
// contract name into a Result: lookup → evaluate → format violations into
// localized field errors → optional warning pass. Contracts are declared
// with a builder DSL (Object, String, Number, ...), compiled from raw JSON
// Schema documents (FromJSONSchema), or reflected from tagged Go structs
// (FromStruct); all three report through the same taxonomy, so consumers
// never care which kind produced a Result.
//
// # Key concepts
//
//   - One envelope: every entry point returns Result. Success is true iff
//     Data is set and Errors is empty; errors carry dotted field paths a
//     form can map straight onto its controls.
//   - Bad data never errors, bad API usage always does: a malformed payload
//     comes back as {Success:false}, while an unknown schema or validator
//     name returns a Go error (ErrSchemaNotFound, ErrValidatorNotFound).
//   - Register at startup, read-only afterward: the Engine is constructed
//     explicitly and shared by reference; registration must not race with
//     validation.
//
// See Engine, Contract, and Result for the core types, and Object / New for
// setup.
//
// # Example
//
//	login := validy.Object(
//	    validy.String("email").Required().Format(validy.FormatEmail),
//	    validy.String("password").Required().Min(6),
//	)
//	engine := validy.New()
//	if err := engine.Register("login", login); err != nil { ... }
//	res, err := engine.Validate("login", map[string]any{
//	    "email":    "a@b.com",
//	    "password": "secret1",
//	})
//	if err != nil { ... } // unknown schema name only
//	if !res.Success {
//	    for _, fe := range res.Errors {
//	        fmt.Println(fe.Field, fe.Code, fe.Message)
//	    }
//	}
package validy
