package validy

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Messages maps taxonomy codes to message templates for one locale.
// Templates reference parameters as {name}; every template can use {field},
// and codes additionally receive the parameters their checks produce
// (e.g. {min}, {max}, {expected}, {received}, {format}).
type Messages map[Code]string

var englishMessages = Messages{
	CodeRequired:      "{field} is required",
	CodeInvalidType:   "expected {expected}, got {received}",
	CodeTooSmall:      "must be at least {min}",
	CodeTooBig:        "must be at most {max}",
	CodeInvalidFormat: "does not match required format",
	CodeCustom:        "invalid value",
	CodeSystem:        "internal validation error",
}

var (
	localesMu sync.RWMutex
	locales   = map[string]Messages{"en": englishMessages}
)

// RegisterLocale installs a message table under the given locale tag. Codes
// missing from msgs fall back to the English template, so partial tables are
// fine. Call RegisterLocale at application startup, before the first
// validation; adding a locale never touches engine control flow.
func RegisterLocale(locale string, msgs Messages) {
	if locale == "" {
		panic("validy: RegisterLocale locale must not be empty")
	}
	merged := make(Messages, len(englishMessages))
	maps.Copy(merged, englishMessages)
	maps.Copy(merged, msgs)
	localesMu.Lock()
	defer localesMu.Unlock()
	locales[locale] = merged
}

// Locales returns the registered locale tags, sorted.
func Locales() []string {
	localesMu.RLock()
	defer localesMu.RUnlock()
	out := make([]string, 0, len(locales))
	for tag := range locales {
		out = append(out, tag)
	}
	slices.Sort(out)
	return out
}

// lookupLocale returns the message table for a locale, defaulting to English.
func lookupLocale(locale string) Messages {
	localesMu.RLock()
	defer localesMu.RUnlock()
	if msgs, ok := locales[locale]; ok {
		return msgs
	}
	return englishMessages
}

// renderMessage substitutes {name} placeholders with parameter values.
// Unknown placeholders are left as-is so a broken template stays visible.
func renderMessage(tmpl string, params map[string]any) string {
	out := tmpl
	for name, value := range params {
		out = strings.ReplaceAll(out, "{"+name+"}", fmt.Sprint(value))
	}
	return out
}

// formatViolation renders one Violation into a FieldError using the given
// message table. A violation-supplied Message wins over the table.
func formatViolation(v Violation, msgs Messages) FieldError {
	field := joinPath(v.Path)
	msg := v.Message
	if msg == "" {
		tmpl, ok := msgs[v.Code]
		if !ok {
			tmpl = englishMessages[v.Code]
		}
		params := make(map[string]any, len(v.Params)+3)
		maps.Copy(params, v.Params)
		params["field"] = field
		if v.Expected != "" {
			params["expected"] = v.Expected
		}
		if v.Received != "" {
			params["received"] = v.Received
		}
		msg = renderMessage(tmpl, params)
	}
	return FieldError{
		Field:    field,
		Message:  msg,
		Code:     v.Code,
		Path:     slices.Clone(v.Path),
		Received: v.Received,
		Expected: v.Expected,
	}
}
