// Package schema validates raw build configuration against the embedded
// JSON Schema.
//
// Validate distinguishes two failure tiers. A configuration that does not
// match the schema yields *OptionsValidationError, which callers report as a
// warning and otherwise ignore. Any other error means the validation
// machinery itself failed and must abort resolution.
package schema

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed yoshi.schema.json
var schemaSource string

const schemaURL = "yoshi.schema.json"

// Issue is a single schema violation.
type Issue struct {
	// Path is the dotted location of the offending value, "" for the root.
	Path    string
	Message string
}

// OptionsValidationError reports a configuration that does not match the
// schema.
type OptionsValidationError struct {
	Issues []Issue
}

func (e *OptionsValidationError) Error() string {
	var b strings.Builder
	b.WriteString("Invalid configuration object. Yoshi has been initialised using a configuration object that does not match the API schema.")
	for _, issue := range e.Issues {
		b.WriteString("\n - config")
		if issue.Path != "" {
			b.WriteString(".")
			b.WriteString(issue.Path)
		}
		b.WriteString(" ")
		b.WriteString(issue.Message)
	}
	return b.String()
}

// IsOptionsValidationError reports whether err (or anything it wraps) is a
// schema mismatch.
func IsOptionsValidationError(err error) bool {
	var target *OptionsValidationError
	return errors.As(err, &target)
}

// Validator checks documents against a compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the given schema document.
func NewValidator(url, source string) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	compiler.AssertFormat = true

	if err := compiler.AddResource(url, strings.NewReader(source)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

var defaultValidator = sync.OnceValues(func() (*Validator, error) {
	return NewValidator(schemaURL, schemaSource)
})

// Default returns the validator for the embedded configuration schema.
func Default() (*Validator, error) {
	return defaultValidator()
}

// Validate checks raw against the embedded configuration schema.
func Validate(raw map[string]any) error {
	v, err := Default()
	if err != nil {
		return err
	}
	return v.Validate(raw)
}

// Validate checks raw against the compiled schema. A nil document is valid.
func (v *Validator) Validate(raw map[string]any) error {
	if raw == nil {
		return nil
	}

	// Round-trip through JSON so every decoder's number and table types
	// reach the schema in one representation.
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("marshal config for validation: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal config for validation: %w", err)
	}

	if err := v.schema.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return fmt.Errorf("validate config: %w", err)
		}
		issues := collectIssues(nil, ve)
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].Path < issues[j].Path
		})
		return &OptionsValidationError{Issues: issues}
	}
	return nil
}

func collectIssues(issues []Issue, err *jsonschema.ValidationError) []Issue {
	if err == nil {
		return issues
	}
	if len(err.Causes) == 0 {
		return append(issues, Issue{
			Path:    jsonPointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
	}
	for _, cause := range err.Causes {
		issues = collectIssues(issues, cause)
	}
	return issues
}

// jsonPointerToPath converts a JSON Pointer (RFC 6901) to a dotted path,
// e.g. "/servers/cdn/port" becomes "servers.cdn.port" and "/externals/0"
// becomes "externals[0]".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if _, err := strconv.Atoi(part); err == nil {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
