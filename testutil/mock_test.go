package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skorin/validy"
)

func TestMockContract_Defaults(t *testing.T) {
	m := &MockContract{}
	assert.Equal(t, "test", m.Version())
	assert.Nil(t, m.Sample())

	out, viols := m.Evaluate("echo", validy.EvalOptions{})
	assert.Equal(t, "echo", out)
	assert.Empty(t, viols)
	assert.Equal(t, 1, m.Calls)
}

func TestMockContract_CannedOutcomes(t *testing.T) {
	t.Run("fixed output", func(t *testing.T) {
		m := &MockContract{Out: map[string]any{"fixed": true}}
		out, viols := m.Evaluate("ignored", validy.EvalOptions{})
		assert.Empty(t, viols)
		assert.Equal(t, map[string]any{"fixed": true}, out)
	})

	t.Run("fixed violations", func(t *testing.T) {
		m := &MockContract{Violations: []validy.Violation{
			{Path: []string{"field"}, Code: validy.CodeCustom},
		}}
		out, viols := m.Evaluate("ignored", validy.EvalOptions{})
		assert.Nil(t, out)
		require.Len(t, viols, 1)
		assert.Equal(t, validy.CodeCustom, viols[0].Code)
	})

	t.Run("panic", func(t *testing.T) {
		m := &MockContract{PanicWith: "boom"}
		assert.Panics(t, func() {
			m.Evaluate("ignored", validy.EvalOptions{})
		})
	})
}

func TestMockContract_WithEngine(t *testing.T) {
	e := validy.New()
	mock := &MockContract{
		ContractVersion: "0.1.0",
		SamplePayload:   map[string]any{"x": 1},
	}
	require.NoError(t, e.Register("mock", mock))

	res, err := e.Validate("mock", map[string]any{"x": 1})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "0.1.0", res.Meta.Version)
	assert.Equal(t, 1, mock.Calls)

	results := e.ValidateAll()
	assert.Contains(t, results, "mock")
	assert.Equal(t, 2, mock.Calls)
}

func TestNewTestEngine_HelpersRoundtrip(t *testing.T) {
	e := NewTestEngine(t)

	res, err := e.Validate("login", map[string]any{
		"email":    "ana@acme.com",
		"password": "secret1",
	})
	require.NoError(t, err)
	RequireValid(t, res)

	res, err = e.Validate("login", map[string]any{})
	require.NoError(t, err)
	RequireInvalid(t, res, "email", validy.CodeRequired)
	RequireInvalid(t, res, "password", validy.CodeRequired)
}
