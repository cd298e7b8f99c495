package validy

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaContract adapts a raw JSON Schema document into a Contract, for
// contracts that arrive as data (integration configs, imported form
// definitions) instead of Go declarations. Failures are mapped onto the
// same taxonomy as builder contracts, so consumers cannot tell the two
// apart from the Result alone.
//
// StripUnknown is a no-op here: key filtering belongs to the schema itself
// via additionalProperties.
type SchemaContract struct {
	schema  *gojsonschema.Schema
	version string
	sample  any
}

// FromJSONSchema compiles a raw JSON Schema document. A document that does
// not compile is a programmer error and returns a Go error; it never
// produces a {Success:false} result.
func FromJSONSchema(raw []byte, version string) (*SchemaContract, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validy: compile json schema: %w", err)
	}
	if version == "" {
		version = "1.0.0"
	}
	return &SchemaContract{schema: schema, version: version}, nil
}

// WithSample attaches a canned valid payload for Engine.ValidateAll.
func (c *SchemaContract) WithSample(sample any) *SchemaContract {
	c.sample = sample
	return c
}

// Version reports the contract version.
func (c *SchemaContract) Version() string { return c.version }

// Sample returns the canned payload, or nil.
func (c *SchemaContract) Sample() any { return c.sample }

// Evaluate validates value against the compiled schema.
func (c *SchemaContract) Evaluate(value any, opts EvalOptions) (any, []Violation) {
	res, err := c.schema.Validate(gojsonschema.NewGoLoader(value))
	if err != nil {
		// The document could not be loaded at all (e.g. unmarshalable Go
		// value); surface as a root type mismatch, not a crash.
		return nil, []Violation{{
			Code:     CodeInvalidType,
			Expected: "json document",
			Received: typeName(value),
		}}
	}
	if res.Valid() {
		return value, nil
	}
	var viols []Violation
	for _, re := range res.Errors() {
		viols = append(viols, violationFromSchemaError(re))
		if opts.AbortEarly {
			break
		}
	}
	return nil, viols
}

// violationFromSchemaError maps one gojsonschema result error onto the
// taxonomy. The library's own description is discarded; messages come from
// the locale table so swapping languages never depends on library defaults.
func violationFromSchemaError(re gojsonschema.ResultError) Violation {
	v := Violation{
		Path:   schemaErrorPath(re.Field()),
		Code:   codeForSchemaErrorType(re.Type()),
		Params: map[string]any{},
	}
	for key, val := range re.Details() {
		v.Params[key] = val
	}
	// Different keywords report their bound under different keys; normalize
	// so the TOO_SMALL/TOO_BIG templates always find {min}/{max}.
	switch v.Code {
	case CodeTooSmall:
		if _, ok := v.Params["min"]; !ok {
			if n, ok := v.Params["number"]; ok {
				v.Params["min"] = n
			}
		}
	case CodeTooBig:
		if _, ok := v.Params["max"]; !ok {
			if n, ok := v.Params["number"]; ok {
				v.Params["max"] = n
			}
		}
	case CodeInvalidType:
		if s, ok := v.Params["expected"].(string); ok {
			v.Expected = s
		}
		if s, ok := v.Params["given"].(string); ok {
			v.Received = s
		}
	}
	return v
}

func schemaErrorPath(field string) []string {
	if field == "" || field == gojsonschema.STRING_CONTEXT_ROOT {
		return nil
	}
	return strings.Split(field, ".")
}

func codeForSchemaErrorType(errType string) Code {
	switch errType {
	case "required":
		return CodeRequired
	case "invalid_type":
		return CodeInvalidType
	case "string_gte", "number_gte", "number_gt", "array_min_items", "array_min_properties":
		return CodeTooSmall
	case "string_lte", "number_lte", "number_lt", "array_max_items", "array_max_properties":
		return CodeTooBig
	case "pattern", "format", "enum", "const":
		return CodeInvalidFormat
	}
	return CodeCustom
}

var (
	_ Contract = (*SchemaContract)(nil)
	_ Sampler  = (*SchemaContract)(nil)
)
