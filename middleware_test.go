package validy

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingMiddleware records how many evaluations pass through it.
func countingMiddleware(calls *int) Middleware {
	return func(next Contract) Contract {
		return &countingContract{contractBase: contractBase{next: next}, calls: calls}
	}
}

type countingContract struct {
	contractBase
	calls *int
}

func (c *countingContract) Evaluate(value any, opts EvalOptions) (any, []Violation) {
	*c.calls++
	return c.next.Evaluate(value, opts)
}

func TestUse_WrapsExistingAndFutureContracts(t *testing.T) {
	var calls int
	e := New()
	require.NoError(t, e.Register("before", Object(String("a"))))
	e.Use(countingMiddleware(&calls))
	require.NoError(t, e.Register("after", Object(String("a"))))

	_, err := e.Validate("before", map[string]any{"a": "v"})
	require.NoError(t, err)
	_, err = e.Validate("after", map[string]any{"a": "v"})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestUse_ReplacesChainWithoutDoubleWrapping(t *testing.T) {
	var first, second int
	e := New()
	require.NoError(t, e.Register("s", Object(String("a"))))

	e.Use(countingMiddleware(&first))
	e.Use(countingMiddleware(&second))

	_, err := e.Validate("s", map[string]any{"a": "v"})
	require.NoError(t, err)
	assert.Equal(t, 0, first, "replaced middleware must not run")
	assert.Equal(t, 1, second)
}

func TestUse_OnionOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next Contract) Contract {
			return &tagContract{contractBase: contractBase{next: next}, name: name, order: &order}
		}
	}
	e := New()
	require.NoError(t, e.Register("s", Object(String("a"))))
	e.Use(tag("outer"), tag("inner"))

	_, err := e.Validate("s", map[string]any{"a": "v"})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

type tagContract struct {
	contractBase
	name  string
	order *[]string
}

func (c *tagContract) Evaluate(value any, opts EvalOptions) (any, []Violation) {
	*c.order = append(*c.order, c.name)
	return c.next.Evaluate(value, opts)
}

func TestWithEvalLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := New()
	require.NoError(t, e.Register("s", Object(String("a").Required()).WithVersion("1.4.0")))
	e.Use(WithEvalLogging(logger))

	_, err := e.Validate("s", map[string]any{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "contract evaluated")
	assert.Contains(t, out, "version=1.4.0")
	assert.Contains(t, out, "violations=1")
}

func TestWithRecovery_Middleware(t *testing.T) {
	contract := WithRecovery()(Object(
		String("x").Check(func(any) bool { panic("direct call bug") }, ""),
	))

	out, viols := contract.Evaluate(map[string]any{"x": "v"}, EvalOptions{})
	assert.Nil(t, out)
	require.Len(t, viols, 1)
	assert.Equal(t, CodeSystem, viols[0].Code)
	assert.Equal(t, []string{FieldSystem}, viols[0].Path)
}

func TestContractBase_DelegatesVersionAndSample(t *testing.T) {
	inner := Object(String("a")).WithVersion("9.9.9").WithSample(map[string]any{"a": "x"})
	wrapped := WithRecovery()(inner)

	assert.Equal(t, "9.9.9", wrapped.Version())
	s, ok := wrapped.(Sampler)
	require.True(t, ok)
	assert.NotNil(t, s.Sample())
}
