package validy

import (
	"fmt"
	"regexp"
)

// Format names understood by String fields. Formats use real parsers
// (net/mail, google/uuid, net/url, time) rather than approximating regexps.
const (
	FormatEmail    = "email"
	FormatUUID     = "uuid"
	FormatURL      = "url"
	FormatDateTime = "date-time"
	FormatDate     = "date"
	FormatPhone    = "phone"
)

var knownFormats = map[string]struct{}{
	FormatEmail:    {},
	FormatUUID:     {},
	FormatURL:      {},
	FormatDateTime: {},
	FormatDate:     {},
	FormatPhone:    {},
}

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
	kindInt
	kindBool
	kindArray
	kindObject
)

func (k fieldKind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindNumber:
		return "number"
	case kindInt:
		return "integer"
	case kindBool:
		return "boolean"
	case kindArray:
		return "array"
	case kindObject:
		return "object"
	}
	return "unknown"
}

// Field declares one named field of an object contract. Build fields with
// String, Number, Int, Bool, Array, or Nested, then chain modifiers.
// Builder misuse (duplicate names, bad patterns, unknown formats) panics:
// contracts are constructed at startup, so these are programmer errors.
type Field struct {
	name     string
	kind     fieldKind
	required bool
	min      *float64
	max      *float64
	pattern  *regexp.Regexp
	format   string
	enum     []string
	checks   []fieldCheck
	elem     *Field
	nested   *ObjectContract
}

type fieldCheck struct {
	fn      func(value any) bool
	message string
}

// String declares a string field.
func String(name string) *Field { return &Field{name: name, kind: kindString} }

// Number declares a numeric field (integer or floating point).
func Number(name string) *Field { return &Field{name: name, kind: kindNumber} }

// Int declares an integer field; non-whole numbers fail with INVALID_TYPE.
func Int(name string) *Field { return &Field{name: name, kind: kindInt} }

// Bool declares a boolean field.
func Bool(name string) *Field { return &Field{name: name, kind: kindBool} }

// Array declares an array field whose elements are validated against elem.
// The elem field's own name is unused; element error paths use the index
// ("tags.2"). Pass an empty name, e.g. Array("tags", String("")).
func Array(name string, elem *Field) *Field {
	if elem == nil {
		panic("validy: Array elem must not be nil")
	}
	return &Field{name: name, kind: kindArray, elem: elem}
}

// Nested declares an object field validated against its own contract.
func Nested(name string, obj *ObjectContract) *Field {
	if obj == nil {
		panic("validy: Nested contract must not be nil")
	}
	return &Field{name: name, kind: kindObject, nested: obj}
}

// Required marks the field as required. A missing key, nil value, empty
// string, or empty array fails with REQUIRED.
func (f *Field) Required() *Field {
	f.required = true
	return f
}

// Min sets the minimum: rune length for strings, element count for arrays,
// value for numbers.
func (f *Field) Min(n float64) *Field {
	f.min = &n
	return f
}

// Max sets the maximum: rune length for strings, element count for arrays,
// value for numbers.
func (f *Field) Max(n float64) *Field {
	f.max = &n
	return f
}

// Pattern requires string values to match the regular expression.
func (f *Field) Pattern(expr string) *Field {
	f.pattern = regexp.MustCompile(expr)
	return f
}

// Format requires string values to parse as one of the Format* names.
func (f *Field) Format(format string) *Field {
	if _, ok := knownFormats[format]; !ok {
		panic(fmt.Sprintf("validy: unknown format %q", format))
	}
	f.format = format
	return f
}

// Enum restricts string values to the given set.
func (f *Field) Enum(values ...string) *Field {
	f.enum = values
	return f
}

// Check adds a custom refinement on this field's raw value. It runs only
// after the declarative checks pass; a false return fails with CUSTOM and
// the given message.
func (f *Field) Check(fn func(value any) bool, message string) *Field {
	f.checks = append(f.checks, fieldCheck{fn: fn, message: message})
	return f
}

type crossCheck struct {
	field   string
	fn      func(data map[string]any) bool
	message string
}

// ObjectContract is a declarative contract over a JSON-style object
// (string keys, arbitrary values). It implements Contract and, when a sample
// is set, Sampler.
type ObjectContract struct {
	fields  []*Field
	byName  map[string]*Field
	open    bool
	version string
	sample  any
	cross   []crossCheck
}

// Object builds a contract from ordered field declarations. Field order is
// preserved, so error order is deterministic. Duplicate field names panic.
func Object(fields ...*Field) *ObjectContract {
	byName := make(map[string]*Field, len(fields))
	for _, f := range fields {
		if f == nil {
			panic("validy: Object field must not be nil")
		}
		if f.name == "" {
			panic("validy: Object field name must not be empty")
		}
		if _, dup := byName[f.name]; dup {
			panic(fmt.Sprintf("validy: duplicate field %q", f.name))
		}
		byName[f.name] = f
	}
	return &ObjectContract{fields: fields, byName: byName, version: "1.0.0"}
}

// Open marks the contract as an open map: input keys it does not declare are
// preserved opaquely in the returned data, even under StripUnknown. Use it
// for free-form metadata bags.
func (o *ObjectContract) Open() *ObjectContract {
	o.open = true
	return o
}

// WithVersion sets the contract version reported in result metadata.
func (o *ObjectContract) WithVersion(v string) *ObjectContract {
	o.version = v
	return o
}

// WithSample attaches a canned valid payload for Engine.ValidateAll.
func (o *ObjectContract) WithSample(sample any) *ObjectContract {
	o.sample = sample
	return o
}

// Refine adds a cross-field check. The failure is reported against the given
// field path with CUSTOM and the supplied message. Refinements run only when
// every declarative check passed, so a contract never reports both a shape
// error and a refinement error for the same submission.
func (o *ObjectContract) Refine(field string, fn func(data map[string]any) bool, message string) *ObjectContract {
	if field == "" {
		panic("validy: Refine field must not be empty")
	}
	o.cross = append(o.cross, crossCheck{field: field, fn: fn, message: message})
	return o
}

// Version reports the contract version.
func (o *ObjectContract) Version() string { return o.version }

// Sample returns the canned payload attached with WithSample, or nil.
func (o *ObjectContract) Sample() any { return o.sample }

var (
	_ Contract = (*ObjectContract)(nil)
	_ Sampler  = (*ObjectContract)(nil)
)
