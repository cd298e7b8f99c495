package validy

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	invopop "github.com/invopop/jsonschema"
)

// StructContract adapts a Go struct with `validate` tags into a Contract.
// Use it when the payload already has a natural Go type; map input is
// decoded through JSON, which also strips undeclared keys, so the returned
// data is always the typed struct.
type StructContract[T any] struct {
	v       *validator.Validate
	version string
	sample  any
}

// FromStruct builds a contract for T. Field names in error paths come from
// `json` tags, matching what the form submitted.
func FromStruct[T any](version string) *StructContract[T] {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if version == "" {
		version = "1.0.0"
	}
	return &StructContract[T]{v: v, version: version}
}

// WithSample attaches a canned valid payload for Engine.ValidateAll.
func (c *StructContract[T]) WithSample(sample any) *StructContract[T] {
	c.sample = sample
	return c
}

// RegisterRule adds a custom `validate` tag to this contract's validator.
// Failed rules report CUSTOM, like any other refinement.
func (c *StructContract[T]) RegisterRule(tag string, fn validator.Func) error {
	return c.v.RegisterValidation(tag, fn)
}

// Version reports the contract version.
func (c *StructContract[T]) Version() string { return c.version }

// Sample returns the canned payload, or nil.
func (c *StructContract[T]) Sample() any { return c.sample }

// Evaluate decodes value into T and validates it.
func (c *StructContract[T]) Evaluate(value any, opts EvalOptions) (any, []Violation) {
	args, viol := c.decode(value)
	if viol != nil {
		return nil, []Violation{*viol}
	}
	err := c.v.Struct(args)
	if err == nil {
		return args, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError: T is not a struct or similar misuse.
		return nil, []Violation{systemViolation(err)}
	}
	var viols []Violation
	for _, fe := range verrs {
		viols = append(viols, violationFromFieldError(fe))
		if opts.AbortEarly {
			break
		}
	}
	return nil, viols
}

func (c *StructContract[T]) decode(value any) (T, *Violation) {
	var zero T
	switch v := value.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}
	b, err := json.Marshal(value)
	if err != nil {
		return zero, &Violation{
			Code:     CodeInvalidType,
			Expected: "object",
			Received: typeName(value),
		}
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return zero, &Violation{
			Code:     CodeInvalidType,
			Expected: reflect.TypeOf(zero).String(),
			Received: typeName(value),
		}
	}
	return out, nil
}

// violationFromFieldError maps one go-playground FieldError onto the
// taxonomy. Namespace starts with the struct type name, which the form
// never sees, so it is dropped from the path.
func violationFromFieldError(fe validator.FieldError) Violation {
	segments := strings.Split(fe.Namespace(), ".")
	if len(segments) > 1 {
		segments = segments[1:]
	}
	v := Violation{
		Path:   segments,
		Code:   codeForTag(fe.Tag()),
		Params: map[string]any{},
	}
	switch v.Code {
	case CodeTooSmall:
		v.Params["min"] = fe.Param()
	case CodeTooBig:
		v.Params["max"] = fe.Param()
	case CodeInvalidFormat:
		v.Expected = fe.Tag()
		if fe.Param() != "" {
			v.Expected = fe.Tag() + " " + fe.Param()
		}
	case CodeCustom:
		v.Expected = fe.Param()
	}
	if fe.Tag() != "required" {
		v.Received = fmt.Sprint(fe.Value())
	}
	return v
}

func codeForTag(tag string) Code {
	switch tag {
	case "required":
		return CodeRequired
	case "min", "gte", "gt":
		return CodeTooSmall
	case "max", "lte", "lt":
		return CodeTooBig
	case "email", "url", "uri", "uuid", "uuid4", "e164", "datetime", "oneof", "alphanum", "numeric":
		return CodeInvalidFormat
	}
	return CodeCustom
}

// JSONSchema reflects T into a raw JSON Schema map, the struct-contract
// counterpart of ObjectContract.JSONSchema.
func (c *StructContract[T]) JSONSchema() (map[string]any, error) {
	var zero T
	s := invopop.Reflect(&zero)
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

var (
	_ Contract = (*StructContract[struct{}])(nil)
	_ Sampler  = (*StructContract[struct{}])(nil)
)
