package validy

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Age      int         `json:"age" validate:"omitempty,gte=18,lte=120"`
	Plan     string      `json:"plan" validate:"omitempty,oneof=free pro"`
	Company  companyInfo `json:"company"`
}

type companyInfo struct {
	Name string `json:"name" validate:"omitempty,min=2"`
}

func TestStructContract_Evaluate(t *testing.T) {
	c := FromStruct[signupForm]("1.0.0")

	t.Run("valid struct input", func(t *testing.T) {
		out, viols := c.Evaluate(signupForm{
			Email:    "ana@acme.com",
			Password: "longenough",
			Age:      30,
		}, EvalOptions{})
		require.Empty(t, viols)
		form := out.(signupForm)
		assert.Equal(t, "ana@acme.com", form.Email)
	})

	t.Run("pointer input", func(t *testing.T) {
		out, viols := c.Evaluate(&signupForm{Email: "ana@acme.com", Password: "longenough"}, EvalOptions{})
		require.Empty(t, viols)
		assert.IsType(t, signupForm{}, out)
	})

	t.Run("map input decodes through json", func(t *testing.T) {
		out, viols := c.Evaluate(map[string]any{
			"email":    "ana@acme.com",
			"password": "longenough",
			"ignored":  "dropped by decode",
		}, EvalOptions{})
		require.Empty(t, viols)
		form := out.(signupForm)
		assert.Equal(t, "longenough", form.Password)
	})

	tests := []struct {
		name  string
		input any
		field string
		code  Code
	}{
		{"missing required", map[string]any{"password": "longenough"}, "email", CodeRequired},
		{"bad email", map[string]any{"email": "nope", "password": "longenough"}, "email", CodeInvalidFormat},
		{"too short", map[string]any{"email": "a@b.co", "password": "short"}, "password", CodeTooSmall},
		{"below gte", map[string]any{"email": "a@b.co", "password": "longenough", "age": 10.0}, "age", CodeTooSmall},
		{"above lte", map[string]any{"email": "a@b.co", "password": "longenough", "age": 200.0}, "age", CodeTooBig},
		{"oneof", map[string]any{"email": "a@b.co", "password": "longenough", "plan": "gold"}, "plan", CodeInvalidFormat},
		{"nested json-tag path", map[string]any{"email": "a@b.co", "password": "longenough", "company": map[string]any{"name": "A"}}, "company.name", CodeTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, viols := c.Evaluate(tt.input, EvalOptions{})
			assert.Nil(t, out)
			v := firstViolation(t, viols, tt.field)
			assert.Equal(t, tt.code, v.Code)
		})
	}
}

func TestStructContract_DecodeFailures(t *testing.T) {
	c := FromStruct[signupForm]("")

	t.Run("unmarshalable value", func(t *testing.T) {
		_, viols := c.Evaluate(func() {}, EvalOptions{})
		require.Len(t, viols, 1)
		assert.Equal(t, CodeInvalidType, viols[0].Code)
		assert.Equal(t, "object", viols[0].Expected)
	})

	t.Run("shape mismatch", func(t *testing.T) {
		_, viols := c.Evaluate([]any{"not", "a", "form"}, EvalOptions{})
		require.Len(t, viols, 1)
		assert.Equal(t, CodeInvalidType, viols[0].Code)
		assert.Contains(t, viols[0].Expected, "signupForm")
	})
}

func TestStructContract_MinMaxParams(t *testing.T) {
	c := FromStruct[signupForm]("")
	_, viols := c.Evaluate(map[string]any{"email": "a@b.co", "password": "short"}, EvalOptions{})
	v := firstViolation(t, viols, "password")
	assert.Equal(t, "8", v.Params["min"])
	assert.Equal(t, "short", v.Received)
}

func TestStructContract_AbortEarly(t *testing.T) {
	c := FromStruct[signupForm]("")
	_, viols := c.Evaluate(map[string]any{}, EvalOptions{AbortEarly: true})
	assert.Len(t, viols, 1)
}

func TestStructContract_RegisterRule(t *testing.T) {
	type invite struct {
		Code string `json:"code" validate:"required,invitecode"`
	}
	c := FromStruct[invite]("")
	require.NoError(t, c.RegisterRule("invitecode", func(fl validator.FieldLevel) bool {
		return strings.HasPrefix(fl.Field().String(), "INV-")
	}))

	_, viols := c.Evaluate(map[string]any{"code": "INV-123"}, EvalOptions{})
	assert.Empty(t, viols)

	_, viols = c.Evaluate(map[string]any{"code": "nope"}, EvalOptions{})
	v := firstViolation(t, viols, "code")
	assert.Equal(t, CodeCustom, v.Code)
}

func TestStructContract_ThroughEngine(t *testing.T) {
	e := New()
	sample := signupForm{Email: "ana@acme.com", Password: "longenough"}
	require.NoError(t, e.Register("signup", FromStruct[signupForm]("1.2.0").WithSample(sample)))

	res, err := e.Validate("signup", map[string]any{"email": "bad", "password": "longenough"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.True(t, res.HasError("email"))
	assert.Equal(t, "1.2.0", res.Meta.Version)

	res, err = e.Validate("signup", sample)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.IsType(t, signupForm{}, res.Data)
}

func TestStructContract_JSONSchema(t *testing.T) {
	c := FromStruct[signupForm]("")
	schema, err := c.JSONSchema()
	require.NoError(t, err)
	assert.NotEmpty(t, schema)

	data, ok := schema["$ref"].(string)
	if ok {
		defs := schema["$defs"].(map[string]any)
		def := defs[strings.TrimPrefix(data, "#/$defs/")].(map[string]any)
		props := def["properties"].(map[string]any)
		assert.Contains(t, props, "email")
	} else {
		props := schema["properties"].(map[string]any)
		assert.Contains(t, props, "email")
	}
}

func TestCodeForTag(t *testing.T) {
	tests := []struct {
		tag  string
		want Code
	}{
		{"required", CodeRequired},
		{"min", CodeTooSmall},
		{"gte", CodeTooSmall},
		{"gt", CodeTooSmall},
		{"max", CodeTooBig},
		{"lte", CodeTooBig},
		{"lt", CodeTooBig},
		{"email", CodeInvalidFormat},
		{"uuid", CodeInvalidFormat},
		{"oneof", CodeInvalidFormat},
		{"eqfield", CodeCustom},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, codeForTag(tt.tag))
		})
	}
}
