package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrShapeInvalid indicates a stored content value does not match the shape
// its page expects. Readers fall back to their defaults instead of rendering
// a malformed value.
var ErrShapeInvalid = errors.New("validation: content shape mismatch")

// ErrSchemaInvalid indicates the shape schema itself cannot be compiled.
var ErrSchemaInvalid = errors.New("validation: shape schema invalid")

// Issue captures a single validation failure.
type Issue struct {
	Location string
	Message  string
}

// ShapeError surfaces shape-check failures with location context.
type ShapeError struct {
	Issues []Issue
	Cause  error
}

func (e *ShapeError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrShapeInvalid.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeInvalid
}

// Shape is a compiled value-shape check for one content key.
type Shape struct {
	compiled *jsonschema.Schema
}

// CompileShape builds a Shape from a JSON-schema document.
func CompileShape(schema map[string]any) (*Shape, error) {
	encoded, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("shape.json", bytes.NewReader(encoded)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	compiled, err := compiler.Compile("shape.json")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}
	return &Shape{compiled: compiled}, nil
}

// MustCompileShape is CompileShape for package-level shape declarations.
func MustCompileShape(schema map[string]any) *Shape {
	shape, err := CompileShape(schema)
	if err != nil {
		panic(err)
	}
	return shape
}

// Check validates a stored value. Values are round-tripped through JSON so
// in-memory and remote-decoded representations validate identically.
func (s *Shape) Check(value any) error {
	if s == nil || s.compiled == nil {
		return nil
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return &ShapeError{Cause: err}
	}
	var normalized any
	if err := json.Unmarshal(encoded, &normalized); err != nil {
		return &ShapeError{Cause: err}
	}

	if err := s.compiled.Validate(normalized); err != nil {
		return &ShapeError{Issues: collectIssues(err), Cause: err}
	}
	return nil
}

// IssuesOf extracts validation issues from an error chain.
func IssuesOf(err error) []Issue {
	if err == nil {
		return nil
	}
	var shapeErr *ShapeError
	if errors.As(err, &shapeErr) && shapeErr != nil {
		return shapeErr.Issues
	}
	return []Issue{{Message: err.Error()}}
}

func collectIssues(err error) []Issue {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) || validationErr == nil {
		return []Issue{{Message: err.Error()}}
	}

	issues := []Issue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  node.Message,
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)
	return issues
}

// StringShape accepts any JSON string; the shape used by scalar text keys.
func StringShape() *Shape {
	return MustCompileShape(map[string]any{"type": "string"})
}

// ItemListShape accepts an array of objects that each carry a string id;
// the shape used by collection keys.
func ItemListShape() *Shape {
	return MustCompileShape(map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []string{"id"},
			"properties": map[string]any{
				"id": map[string]any{"type": "string"},
			},
		},
	})
}
