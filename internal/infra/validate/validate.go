// Package validate checks inbound API payloads against embedded JSON
// Schemas before they reach the merge layer, so that nothing outside the
// declared shape is ever persisted.
package validate

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// SessionPatch validates PATCH /api/session bodies.
var SessionPatch = mustCompile("schemas/session_patch.json")

// ConfigUpdate validates PUT /api/config bodies.
var ConfigUpdate = mustCompile("schemas/config_update.json")

func mustCompile(name string) *jsonschema.Schema {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("read embedded schema %s: %v", name, err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("add schema resource %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return schema
}

// Check validates raw JSON against the schema.
func Check(schema *jsonschema.Schema, raw []byte) error {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return schema.Validate(payload)
}
