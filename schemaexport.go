package validy

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// JSONSchema renders the contract as a raw JSON Schema map, for handing the
// same rules to form clients that pre-validate in the browser. The map is
// freshly built on every call; callers may mutate it.
func (o *ObjectContract) JSONSchema() map[string]any {
	props := make(map[string]any, len(o.fields))
	var required []string
	for _, f := range o.fields {
		props[f.name] = fieldSchema(f)
		if f.required {
			required = append(required, f.name)
		}
	}
	out := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	if !o.open {
		out["additionalProperties"] = false
	}
	return out
}

func fieldSchema(f *Field) map[string]any {
	out := map[string]any{"type": f.kind.String()}
	switch f.kind {
	case kindString:
		if f.min != nil {
			out["minLength"] = int(*f.min)
		}
		if f.max != nil {
			out["maxLength"] = int(*f.max)
		}
		if f.pattern != nil {
			out["pattern"] = f.pattern.String()
		}
		if ef := exportFormat(f.format); ef != "" {
			out["format"] = ef
		}
		if len(f.enum) > 0 {
			enum := make([]any, len(f.enum))
			for i, v := range f.enum {
				enum[i] = v
			}
			out["enum"] = enum
		}
	case kindNumber, kindInt:
		if f.min != nil {
			out["minimum"] = *f.min
		}
		if f.max != nil {
			out["maximum"] = *f.max
		}
	case kindArray:
		if f.min != nil {
			out["minItems"] = int(*f.min)
		}
		if f.max != nil {
			out["maxItems"] = int(*f.max)
		}
		out["items"] = fieldSchema(f.elem)
	case kindObject:
		return f.nested.JSONSchema()
	}
	return out
}

// exportFormat maps builder format names onto their JSON Schema spellings.
// Phone has no standard format keyword, so it exports as a bare string.
func exportFormat(format string) string {
	switch format {
	case FormatURL:
		return "uri"
	case FormatPhone:
		return ""
	}
	return format
}

// CompileJSONSchema compiles a raw JSON Schema map into a resolved
// validator, proving the export is a well-formed schema. The map is not
// mutated.
func CompileJSONSchema(schemaMap map[string]any) (*jsonschema.Resolved, error) {
	data, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, err
	}
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s.Resolve(nil)
}
