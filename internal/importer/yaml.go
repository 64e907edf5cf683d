package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

const syllabusSchemaURL = "schema://syllabus.json"

// syllabusSchema constrains YAML imports before they are decoded.
const syllabusSchema = `{
  "type": "object",
  "required": ["subjects"],
  "additionalProperties": false,
  "properties": {
    "subjects": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "additionalProperties": false,
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "strength": {"enum": ["weak", "average", "strong", "Weak", "Average", "Strong"]},
          "color": {"type": "string"},
          "topics": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name"],
              "additionalProperties": false,
              "properties": {
                "name": {"type": "string", "minLength": 1},
                "confidence": {"type": "integer", "minimum": 1, "maximum": 5},
                "priority": {"type": "integer", "minimum": 0, "maximum": 100},
                "estimated_hours": {"type": "number", "minimum": 0},
                "completed_hours": {"type": "number", "minimum": 0},
                "completed": {"type": "boolean"}
              }
            }
          }
        }
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// schema returns the compiled syllabus schema, compiling it on first use.
func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not raw bytes.
		var def any
		if err := json.Unmarshal([]byte(syllabusSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(syllabusSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(syllabusSchemaURL)
	})
	return compiled, compileErr
}

// ParseYAML reads a syllabus document and validates it against the syllabus
// schema. Subjects repeated in the document are merged.
func ParseYAML(r io.Reader) (Syllabus, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Syllabus{}, fmt.Errorf("read yaml: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Syllabus{}, fmt.Errorf("invalid YAML: %w", err)
	}

	// Marshal then unmarshal through JSON to get the plain any representation
	// the validator works on.
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return Syllabus{}, fmt.Errorf("convert yaml: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(asJSON, &parsed); err != nil {
		return Syllabus{}, fmt.Errorf("convert yaml: %w", err)
	}

	sch, err := schema()
	if err != nil {
		return Syllabus{}, fmt.Errorf("compile syllabus schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return Syllabus{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var s Syllabus
	if err := json.Unmarshal(asJSON, &s); err != nil {
		return Syllabus{}, fmt.Errorf("decode syllabus: %w", err)
	}
	return s.merge(), nil
}
