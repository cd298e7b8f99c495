package validy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSchema_Shape(t *testing.T) {
	contract := Object(
		String("email").Required().Format(FormatEmail),
		String("plan").Enum("free", "pro"),
		String("code").Pattern(`^[A-Z]{3}$`).Min(3).Max(3),
		Number("score").Min(0).Max(100),
		Int("seats").Min(1),
		Bool("active"),
		Array("tags", String("").Min(2)).Min(1).Max(5),
		Nested("company", Object(String("name").Required())),
	)

	schema := contract.JSONSchema()
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.Equal(t, []string{"email"}, schema["required"])

	props := schema["properties"].(map[string]any)

	email := props["email"].(map[string]any)
	assert.Equal(t, "string", email["type"])
	assert.Equal(t, "email", email["format"])

	plan := props["plan"].(map[string]any)
	assert.Equal(t, []any{"free", "pro"}, plan["enum"])

	code := props["code"].(map[string]any)
	assert.Equal(t, `^[A-Z]{3}$`, code["pattern"])
	assert.Equal(t, 3, code["minLength"])
	assert.Equal(t, 3, code["maxLength"])

	score := props["score"].(map[string]any)
	assert.Equal(t, "number", score["type"])
	assert.Equal(t, 0.0, score["minimum"])
	assert.Equal(t, 100.0, score["maximum"])

	seats := props["seats"].(map[string]any)
	assert.Equal(t, "integer", seats["type"])

	active := props["active"].(map[string]any)
	assert.Equal(t, "boolean", active["type"])

	tags := props["tags"].(map[string]any)
	assert.Equal(t, "array", tags["type"])
	assert.Equal(t, 1, tags["minItems"])
	assert.Equal(t, 5, tags["maxItems"])
	items := tags["items"].(map[string]any)
	assert.Equal(t, "string", items["type"])
	assert.Equal(t, 2, items["minLength"])

	company := props["company"].(map[string]any)
	assert.Equal(t, "object", company["type"])
	nestedProps := company["properties"].(map[string]any)
	assert.Contains(t, nestedProps, "name")
	assert.Equal(t, []string{"name"}, company["required"])
}

func TestJSONSchema_OpenContractAllowsExtras(t *testing.T) {
	schema := Object(String("a")).Open().JSONSchema()
	assert.NotContains(t, schema, "additionalProperties")
}

func TestJSONSchema_FormatSpellings(t *testing.T) {
	schema := Object(
		String("site").Format(FormatURL),
		String("phone").Format(FormatPhone),
		String("id").Format(FormatUUID),
	).JSONSchema()
	props := schema["properties"].(map[string]any)

	assert.Equal(t, "uri", props["site"].(map[string]any)["format"])
	assert.NotContains(t, props["phone"].(map[string]any), "format")
	assert.Equal(t, "uuid", props["id"].(map[string]any)["format"])
}

func TestJSONSchema_IsSerializable(t *testing.T) {
	schema := Object(
		String("email").Required().Format(FormatEmail),
		Array("tags", String("")),
	).JSONSchema()
	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"email"`)
}

func TestCompileJSONSchema(t *testing.T) {
	t.Run("export compiles", func(t *testing.T) {
		schema := Object(
			String("email").Required().Format(FormatEmail),
			Number("score").Min(0).Max(100),
			Array("tags", String("").Min(2)).Max(5),
			Nested("company", Object(String("name").Required())),
		).JSONSchema()
		resolved, err := CompileJSONSchema(schema)
		require.NoError(t, err)
		assert.NotNil(t, resolved)
	})

	t.Run("roundtrip validates like the contract", func(t *testing.T) {
		contract := Object(String("name").Required().Min(2))
		resolved, err := CompileJSONSchema(contract.JSONSchema())
		require.NoError(t, err)

		assert.NoError(t, resolved.Validate(map[string]any{"name": "Acme"}))
		assert.Error(t, resolved.Validate(map[string]any{}))
		assert.Error(t, resolved.Validate(map[string]any{"name": "A"}))
	})
}
