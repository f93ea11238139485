package tools

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// reflectSchema derives the JSON-Schema object for a tool's argument
// struct. The result is a closed object: additional properties are
// forbidden and every tagged field is required.
func reflectSchema(v any) map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(v)

	raw, _ := json.Marshal(schema)
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	delete(out, "$schema")
	delete(out, "$id")
	return out
}
