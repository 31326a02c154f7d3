package tasks

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/nibzard/tasker-go/tasks.schema.json"

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // Path to the error location, e.g. "[0].priority"
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid    bool
	Exists   bool
	Tasks    int
	Errors   []error
	Warnings []string
}

// Validate checks the task file at path against the embedded schema.
// A missing file is valid. Duplicate ids are reported as warnings.
func Validate(path string) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Warnings = append(result.Warnings, "not found (will be created on first add)")
			return result
		}
		result.fail(&ValidationError{Err: fmt.Errorf("read tasks file: %w", err)})
		return result
	}
	result.Exists = true

	return validateBytes(data, result)
}

func validateBytes(data []byte, result *ValidationResult) *ValidationResult {
	schema, err := compileSchema()
	if err != nil {
		result.fail(&ValidationError{Err: fmt.Errorf("compile schema: %w", err)})
		return result
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		result.fail(&ValidationError{Err: fmt.Errorf("parse tasks file: %w", err)})
		return result
	}
	if err := dec.Decode(new(interface{})); !errors.Is(err, io.EOF) {
		result.fail(&ValidationError{Err: errors.New("parse tasks file: trailing data after top-level value")})
		return result
	}

	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}

	var list []Task
	if err := json.Unmarshal(data, &list); err != nil {
		// Shape errors are already reported by the schema.
		return result
	}
	result.Tasks = len(list)
	for _, id := range duplicateIDs(list) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("duplicate id %d", id))
	}
	return result
}

func (r *ValidationResult) fail(err error) {
	r.Valid = false
	r.Errors = append(r.Errors, err)
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
}

// duplicateIDs returns ids that occur more than once, in ascending order.
func duplicateIDs(list []Task) []int {
	seen := make(map[int]int, len(list))
	for _, t := range list {
		seen[t.ID]++
	}
	var dups []int
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Ints(dups)
	return dups
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath turns "/0/priority" into "[0].priority".
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
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
