// Package schema validates parsed configuration and checks documents against
// the two fixed JSON Schemas embedded in this package.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Kind selects which schema a document is validated against.
type Kind int

const (
	Config Kind = iota // main configuration: chasten.checks-file
	Checks             // checks document: checks[]
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "config"
	case Checks:
		return "checks"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) file() string {
	return "schemas/" + k.String() + ".schema.json"
}

// resourceURL names the in-memory schema resource; nothing is fetched from it.
func (k Kind) resourceURL() string {
	return "https://chasten.local/" + k.String() + ".schema.json"
}

// ErrInvalid is matched by every *ValidationError via errors.Is.
var ErrInvalid = errors.New("schema validation failed")

// ValidationError carries the first violation found in a document.
type ValidationError struct {
	Kind   Kind
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s document: %s", e.Kind, e.Detail)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// Validator holds the compiled schemas.
type Validator struct {
	compiled map[Kind]*jsonschema.Schema
}

// New compiles both embedded schemas.
func New() (*Validator, error) {
	v := &Validator{compiled: make(map[Kind]*jsonschema.Schema, 2)}
	for _, k := range []Kind{Config, Checks} {
		s, err := compile(k)
		if err != nil {
			return nil, err
		}
		v.compiled[k] = s
	}
	return v, nil
}

func compile(k Kind) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile(k.file())
	if err != nil {
		return nil, fmt.Errorf("read %s schema: %w", k, err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(k.resourceURL(), bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("add %s schema resource: %w", k, err)
	}
	s, err := compiler.Compile(k.resourceURL())
	if err != nil {
		return nil, fmt.Errorf("compile %s schema: %w", k, err)
	}
	return s, nil
}

// Validate checks doc, a generic tree of maps, slices and scalars, against
// the schema for kind. A nil error means the document is valid; otherwise the
// error is a *ValidationError.
func (v *Validator) Validate(doc any, kind Kind) error {
	s, ok := v.compiled[kind]
	if !ok {
		return &ValidationError{Kind: kind, Detail: "unknown schema"}
	}
	payload, err := toJSONValue(doc)
	if err != nil {
		return &ValidationError{Kind: kind, Detail: err.Error()}
	}
	// An empty document stands for an empty object: nothing configured.
	if payload == nil {
		payload = map[string]any{}
	}
	if err := s.Validate(payload); err != nil {
		return &ValidationError{Kind: kind, Detail: firstViolation(err)}
	}
	return nil
}

var (
	defaultOnce      sync.Once
	defaultValidator *Validator
	defaultErr       error
)

// Default returns a process-wide validator compiled on first use.
func Default() (*Validator, error) {
	defaultOnce.Do(func() {
		defaultValidator, defaultErr = New()
	})
	return defaultValidator, defaultErr
}

// Validate uses the default validator.
func Validate(doc any, kind Kind) error {
	v, err := Default()
	if err != nil {
		return err
	}
	return v.Validate(doc, kind)
}

// toJSONValue round-trips doc through encoding/json so the validator sees
// only the value types it understands (json.Number for numbers).
func toJSONValue(doc any) (any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("document is not representable as JSON: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// firstViolation walks to the leftmost leaf cause and renders it.
func firstViolation(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return strings.TrimSpace(err.Error())
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, ve.Message)
}
