package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// documentSchemaJSON is the structural JSON Schema for a manifest
// document, in the same spirit as the teacher's embedded
// ManifestSchemaJSON but shaped for effect mappings instead of example
// records.
const documentSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "$id": "calor.manifest/v1",
  "title": "Calor Effect Manifest",
  "type": "object",
  "required": ["version"],
  "properties": {
    "version": {"type": "string", "const": "1.0"},
    "description": {"type": "string"},
    "mappings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type"],
        "properties": {
          "type": {"type": "string", "minLength": 1},
          "defaultEffects": {"type": "array", "items": {"type": "string"}},
          "methods": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
          "getters": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
          "setters": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}},
          "constructors": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}
        }
      }
    },
    "namespaceDefaults": {
      "type": "object",
      "additionalProperties": {"type": "array", "items": {"type": "string"}}
    }
  }
}`

var compiledSchema *jsonschema.Schema

func compiledDocumentSchema() (*jsonschema.Schema, error) {
	if compiledSchema != nil {
		return compiledSchema, nil
	}
	var raw any
	if err := json.Unmarshal([]byte(documentSchemaJSON), &raw); err != nil {
		return nil, fmt.Errorf("embedded manifest schema is malformed: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("calor.manifest/v1", raw); err != nil {
		return nil, err
	}
	sch, err := c.Compile("calor.manifest/v1")
	if err != nil {
		return nil, err
	}
	compiledSchema = sch
	return sch, nil
}

// ValidateAgainstSchema checks raw manifest JSON against the structural
// JSON Schema, ahead of the semantic checks in validate.go (unknown
// effect codes, duplicate types). Intended for manifests authored by
// hand, where a missing required field should fail fast with a
// schema-shaped error rather than silently unmarshal into zero values.
func ValidateAgainstSchema(raw []byte) error {
	sch, err := compiledDocumentSchema()
	if err != nil {
		return err
	}
	var inst any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&inst); err != nil {
		return fmt.Errorf("manifest is not valid JSON: %w", err)
	}
	return sch.Validate(inst)
}
