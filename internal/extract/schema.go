package extract

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const flashcardsSchema = `{
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["question", "answer"],
    "properties": {
      "question": {"type": "string", "minLength": 1},
      "answer": {"type": "string"}
    }
  }
}`

const mindMapTreeSchema = `{
  "$defs": {
    "node": {
      "type": "object",
      "required": ["topic"],
      "properties": {
        "topic": {"type": "string", "minLength": 1},
        "subtopics": {"type": "array", "items": {"$ref": "#/$defs/node"}}
      }
    }
  },
  "$ref": "#/$defs/node"
}`

var schemaSources = map[string]string{
	"flashcards":   flashcardsSchema,
	"mindmap-tree": mindMapTreeSchema,
}

var schemaCache sync.Map // map[string]*jsonschema.Schema

func validate(name string, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	compiled, err := compiledSchema(name)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema(name string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}
	src, ok := schemaSources[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema")
	}
	var def any
	if err := json.Unmarshal([]byte(src), &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}
	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	schemaCache.Store(name, compiled)
	return compiled, nil
}
