package oracle

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrDecode is returned when oracle output cannot be turned into structured data.
var ErrDecode = errors.New("oracle: undecodable output")

// Schema is an output-schema descriptor: a named JSON Schema document.
type Schema struct {
	// Name identifies the schema to backends and scripts.
	Name string
	// Document is the JSON Schema source, shown to backends that cannot enforce it.
	Document string

	compiled *jsonschema.Schema
}

// NewSchema compiles document under name.
//
// Precondition: name is non-empty; document is a JSON Schema.
// Postcondition: Returns a compiled Schema or an error.
func NewSchema(name, document string) (*Schema, error) {
	if name == "" {
		return nil, fmt.Errorf("oracle.NewSchema: name must not be empty")
	}
	compiled, err := jsonschema.CompileString(name+".json", document)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %q: %w", name, err)
	}
	return &Schema{Name: name, Document: document, compiled: compiled}, nil
}

// MustSchema is NewSchema for package-level schemas; it panics on error.
func MustSchema(name, document string) *Schema {
	s, err := NewSchema(name, document)
	if err != nil {
		panic("oracle.MustSchema: " + err.Error())
	}
	return s
}

// Validate checks a decoded JSON value (as produced by json.Unmarshal into any).
func (s *Schema) Validate(v any) error {
	return s.compiled.Validate(v)
}

// Instruction is the text appended to system prompts of backends that cannot
// enforce a schema natively.
func (s *Schema) Instruction() string {
	return "Respond with a single JSON object and nothing else. It must conform to this JSON Schema:\n" + s.Document
}

func decode(text string, schema *Schema, v any) error {
	raw, err := extractObject(text)
	if err != nil {
		return err
	}
	if schema != nil {
		var doc any
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}
		if err := schema.Validate(doc); err != nil {
			return fmt.Errorf("%w: schema %q: %v", ErrDecode, schema.Name, err)
		}
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// extractObject returns the outermost JSON object in text, ignoring Markdown
// code fences and any prose around it.
func extractObject(text string) (string, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("%w: no JSON object in %q", ErrDecode, truncate(text, 80))
	}
	return s[start : end+1], nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
