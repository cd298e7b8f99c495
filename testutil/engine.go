// Package testutil provides helpers for tests that need a configured engine
// or a canned contract.
package testutil

import (
	"testing"

	"github.com/skorin/validy"
	"github.com/skorin/validy/catalog"
)

// NewTestEngine returns an Engine with panic recovery enabled and the full
// CRM catalog installed, suitable for tests.
func NewTestEngine(tb testing.TB, opts ...validy.Option) *validy.Engine {
	tb.Helper()
	e := validy.New(opts...)
	if err := catalog.Install(e); err != nil {
		tb.Fatalf("install catalog: %v", err)
	}
	return e
}

// RequireValid fails the test unless res succeeded with data and no errors.
func RequireValid(tb testing.TB, res validy.Result) {
	tb.Helper()
	if !res.Success {
		tb.Fatalf("expected success, got errors: %+v", res.Errors)
	}
	if res.Data == nil {
		tb.Fatalf("success result must carry data")
	}
	if len(res.Errors) != 0 {
		tb.Fatalf("success result must not carry errors: %+v", res.Errors)
	}
}

// RequireInvalid fails the test unless res failed with an error carrying the
// given field path and code.
func RequireInvalid(tb testing.TB, res validy.Result, field string, code validy.Code) {
	tb.Helper()
	if res.Success {
		tb.Fatalf("expected failure for field %q", field)
	}
	if res.Data != nil {
		tb.Fatalf("failed result must not carry data")
	}
	fe, ok := res.ErrorFor(field)
	if !ok {
		tb.Fatalf("no error for field %q, got: %+v", field, res.Errors)
	}
	if fe.Code != code {
		tb.Fatalf("field %q: expected code %s, got %s (%s)", field, code, fe.Code, fe.Message)
	}
}
