package validy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestResult_Invariant(t *testing.T) {
	e := New()
	require.NoError(t, e.Register("thing", Object(
		String("name").Required(),
	)))

	ok, err := e.Validate("thing", map[string]any{"name": "x"})
	require.NoError(t, err)
	assert.True(t, ok.Success)
	assert.NotNil(t, ok.Data)
	assert.Empty(t, ok.Errors)

	bad, err := e.Validate("thing", map[string]any{})
	require.NoError(t, err)
	assert.False(t, bad.Success)
	assert.Nil(t, bad.Data)
	assert.NotEmpty(t, bad.Errors)
}

func TestResult_HasError_ErrorFor(t *testing.T) {
	res := Result{Errors: []FieldError{
		{Field: "email", Code: CodeInvalidFormat},
		{Field: "company.name", Code: CodeRequired},
	}}
	assert.True(t, res.HasError("email"))
	assert.True(t, res.HasError("company.name"))
	assert.False(t, res.HasError("password"))

	fe, ok := res.ErrorFor("company.name")
	require.True(t, ok)
	assert.Equal(t, CodeRequired, fe.Code)
	_, ok = res.ErrorFor("missing")
	assert.False(t, ok)
}

func TestOK_Fail(t *testing.T) {
	ok := OK("data")
	assert.True(t, ok.Success)
	assert.Equal(t, "data", ok.Data)
	assert.Empty(t, ok.Errors)

	fail := Fail(FieldError{Field: "x", Code: CodeCustom})
	assert.False(t, fail.Success)
	assert.Nil(t, fail.Data)
	require.Len(t, fail.Errors, 1)
	assert.Equal(t, "x", fail.Errors[0].Field)
}
