package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of a scene file.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&Scene{})
}

// SchemaJSON returns the indented JSON schema of a scene file.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}
