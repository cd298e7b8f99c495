package validy

import (
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Evaluate validates a JSON-style object against the contract. On success it
// returns the canonical data: declared fields plus, depending on
// StripUnknown and Open, the undeclared remainder. A nil input is treated as
// an empty object so required fields report REQUIRED rather than a root
// type error.
func (o *ObjectContract) Evaluate(value any, opts EvalOptions) (any, []Violation) {
	out, viols := o.evalObject(value, nil, opts)
	if len(viols) == 0 {
		viols = o.runCross(out)
	}
	if len(viols) > 0 {
		return nil, viols
	}
	return out, nil
}

// runCross executes cross-field refinements against the canonical data.
// Refinements run only when the declarative pass produced no violations.
func (o *ObjectContract) runCross(data map[string]any) []Violation {
	var viols []Violation
	for _, c := range o.cross {
		if !c.fn(data) {
			viols = append(viols, Violation{
				Path:    []string{c.field},
				Code:    CodeCustom,
				Message: c.message,
			})
		}
	}
	return viols
}

func (o *ObjectContract) evalObject(value any, path []string, opts EvalOptions) (map[string]any, []Violation) {
	var obj map[string]any
	switch v := value.(type) {
	case nil:
		obj = map[string]any{}
	case map[string]any:
		obj = v
	default:
		return nil, []Violation{{
			Path:     path,
			Code:     CodeInvalidType,
			Expected: "object",
			Received: typeName(value),
		}}
	}

	out := make(map[string]any, len(obj))
	var viols []Violation
	for _, f := range o.fields {
		raw, present := obj[f.name]
		fieldPath := append(append([]string(nil), path...), f.name)
		normalized, fv := f.evaluate(raw, present, fieldPath, opts)
		if len(fv) > 0 {
			viols = append(viols, fv...)
			if opts.AbortEarly {
				return nil, viols
			}
			continue
		}
		if present && raw != nil {
			out[f.name] = normalized
		}
	}
	if len(viols) > 0 {
		return nil, viols
	}

	// Undeclared remainder: preserved opaquely by default, dropped under
	// StripUnknown unless the contract is an open map.
	if !opts.StripUnknown || o.open {
		for key, val := range obj {
			if _, declared := o.byName[key]; !declared {
				out[key] = val
			}
		}
	}
	return out, nil
}

// evaluate validates one field value. It returns the normalized value
// (nested objects and arrays are rebuilt so StripUnknown applies at depth)
// and any violations, reported against path.
func (f *Field) evaluate(raw any, present bool, path []string, opts EvalOptions) (any, []Violation) {
	if !present || raw == nil {
		if f.required {
			return nil, []Violation{{Path: path, Code: CodeRequired}}
		}
		return nil, nil
	}

	var normalized any
	var viols []Violation
	switch f.kind {
	case kindString:
		normalized, viols = f.evalString(raw, path)
	case kindNumber, kindInt:
		normalized, viols = f.evalNumber(raw, path)
	case kindBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, []Violation{typeMismatch(path, "boolean", raw)}
		}
		normalized = b
	case kindArray:
		normalized, viols = f.evalArray(raw, path, opts)
	case kindObject:
		normalized, viols = f.nested.evalObject(raw, path, opts)
	}
	if len(viols) > 0 {
		return nil, viols
	}

	for _, check := range f.checks {
		if !check.fn(raw) {
			viols = append(viols, Violation{Path: path, Code: CodeCustom, Message: check.message})
		}
	}
	if len(viols) > 0 {
		return nil, viols
	}
	return normalized, nil
}

func (f *Field) evalString(raw any, path []string) (any, []Violation) {
	s, ok := raw.(string)
	if !ok {
		return nil, []Violation{typeMismatch(path, "string", raw)}
	}
	if s == "" {
		// An empty string on a required field is a missing value, not a
		// length problem; on an optional field it skips all constraints.
		if f.required {
			return nil, []Violation{{Path: path, Code: CodeRequired}}
		}
		return s, nil
	}

	var viols []Violation
	length := len([]rune(s))
	if f.min != nil && float64(length) < *f.min {
		viols = append(viols, Violation{
			Path:   path,
			Code:   CodeTooSmall,
			Params: map[string]any{"min": int(*f.min), "actual": length},
		})
	}
	if f.max != nil && float64(length) > *f.max {
		viols = append(viols, Violation{
			Path:   path,
			Code:   CodeTooBig,
			Params: map[string]any{"max": int(*f.max), "actual": length},
		})
	}
	if f.pattern != nil && !f.pattern.MatchString(s) {
		viols = append(viols, Violation{
			Path:     path,
			Code:     CodeInvalidFormat,
			Expected: f.pattern.String(),
		})
	}
	if f.format != "" && !checkFormat(s, f.format) {
		viols = append(viols, Violation{
			Path:     path,
			Code:     CodeInvalidFormat,
			Expected: f.format,
			Params:   map[string]any{"format": f.format},
		})
	}
	if len(f.enum) > 0 && !slices.Contains(f.enum, s) {
		viols = append(viols, Violation{
			Path:     path,
			Code:     CodeInvalidFormat,
			Expected: "one of " + strings.Join(f.enum, ", "),
			Received: s,
		})
	}
	return s, viols
}

func (f *Field) evalNumber(raw any, path []string) (any, []Violation) {
	n, ok := toFloat(raw)
	if !ok {
		return nil, []Violation{typeMismatch(path, f.kind.String(), raw)}
	}
	if f.kind == kindInt && n != float64(int64(n)) {
		return nil, []Violation{typeMismatch(path, "integer", raw)}
	}

	var viols []Violation
	if f.min != nil && n < *f.min {
		viols = append(viols, Violation{
			Path:   path,
			Code:   CodeTooSmall,
			Params: map[string]any{"min": formatNumber(*f.min), "actual": formatNumber(n)},
		})
	}
	if f.max != nil && n > *f.max {
		viols = append(viols, Violation{
			Path:   path,
			Code:   CodeTooBig,
			Params: map[string]any{"max": formatNumber(*f.max), "actual": formatNumber(n)},
		})
	}
	return raw, viols
}

func (f *Field) evalArray(raw any, path []string, opts EvalOptions) (any, []Violation) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, []Violation{typeMismatch(path, "array", raw)}
	}
	if f.required && len(arr) == 0 {
		return nil, []Violation{{Path: path, Code: CodeRequired}}
	}

	var viols []Violation
	if f.min != nil && float64(len(arr)) < *f.min {
		viols = append(viols, Violation{
			Path:   path,
			Code:   CodeTooSmall,
			Params: map[string]any{"min": int(*f.min), "actual": len(arr)},
		})
	}
	if f.max != nil && float64(len(arr)) > *f.max {
		viols = append(viols, Violation{
			Path:   path,
			Code:   CodeTooBig,
			Params: map[string]any{"max": int(*f.max), "actual": len(arr)},
		})
	}
	out := make([]any, 0, len(arr))
	for i, item := range arr {
		itemPath := append(append([]string(nil), path...), strconv.Itoa(i))
		normalized, iv := f.elem.evaluate(item, true, itemPath, opts)
		if len(iv) > 0 {
			viols = append(viols, iv...)
			continue
		}
		out = append(out, normalized)
	}
	if len(viols) > 0 {
		return nil, viols
	}
	return out, nil
}

func typeMismatch(path []string, expected string, raw any) Violation {
	return Violation{
		Path:     path,
		Code:     CodeInvalidType,
		Expected: expected,
		Received: typeName(raw),
	}
}

// typeName reports the JSON-ish type name of a value for INVALID_TYPE
// diagnostics.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return reflect.TypeOf(v).String()
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

var phonePattern = regexp.MustCompile(`^\+?[1-9][0-9]{6,14}$`)

// checkFormat validates s against a named format using real parsers.
func checkFormat(s, format string) bool {
	switch format {
	case FormatEmail:
		addr, err := mail.ParseAddress(s)
		return err == nil && addr.Address == s
	case FormatUUID:
		return uuid.Validate(s) == nil
	case FormatURL:
		u, err := url.ParseRequestURI(s)
		return err == nil && u.Scheme != "" && u.Host != ""
	case FormatDateTime:
		_, err := time.Parse(time.RFC3339, s)
		return err == nil
	case FormatDate:
		_, err := time.Parse("2006-01-02", s)
		return err == nil
	case FormatPhone:
		return phonePattern.MatchString(strings.ReplaceAll(s, " ", ""))
	}
	return false
}
