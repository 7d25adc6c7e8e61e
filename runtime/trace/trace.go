// Package trace replays recorded grammar reductions against the semantic actions.
//
// A trace is a YAML (or JSON) document listing, in order, the action calls a
// grammar driver made while parsing one file. Replaying it rebuilds the tree and
// the diagnostics without a grammar, which makes action behavior easy to pin down
// in fixtures.
package trace

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/opal-lang/semact/runtime/parser"
)

// FormatMajor is the only trace format major version this package reads.
const FormatMajor = "v1"

//go:embed schema.json
var schemaJSON string

// Trace is one recorded parse.
type Trace struct {
	Version   string   `yaml:"version"`
	File      string   `yaml:"file,omitempty"`
	Verbosity string   `yaml:"verbosity,omitempty"`
	Inline    bool     `yaml:"inline,omitempty"`
	Locals    []string `yaml:"locals,omitempty"`
	Steps     []Step   `yaml:"steps"`
}

// Step is one action call. Operands that refer to earlier results name the
// register the result was stored in; an empty operand is the empty tree.
type Step struct {
	Op    string   `yaml:"op"`
	As    string   `yaml:"as,omitempty"`
	ID    string   `yaml:"id,omitempty"`
	Kind  string   `yaml:"kind,omitempty"`
	Name  string   `yaml:"name,omitempty"`
	Value string   `yaml:"value,omitempty"`
	Args  []string `yaml:"args,omitempty"`
	Line  int      `yaml:"line,omitempty"`
	Tok   string   `yaml:"tok,omitempty"`
	Chop  bool     `yaml:"chop,omitempty"`
	Split bool     `yaml:"split,omitempty"`

	// SourceLine is the line of the step in the trace document.
	SourceLine int `yaml:"-"`
}

// UnmarshalYAML keeps the document line of each step and accepts any scalar for
// value.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Op    string    `yaml:"op"`
		As    string    `yaml:"as"`
		ID    string    `yaml:"id"`
		Kind  string    `yaml:"kind"`
		Name  string    `yaml:"name"`
		Value yaml.Node `yaml:"value"`
		Args  []string  `yaml:"args"`
		Line  int       `yaml:"line"`
		Tok   string    `yaml:"tok"`
		Chop  bool      `yaml:"chop"`
		Split bool      `yaml:"split"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*s = Step{
		Op:         raw.Op,
		As:         raw.As,
		ID:         raw.ID,
		Kind:       raw.Kind,
		Name:       raw.Name,
		Value:      raw.Value.Value,
		Args:       raw.Args,
		Line:       raw.Line,
		Tok:        raw.Tok,
		Chop:       raw.Chop,
		Split:      raw.Split,
		SourceLine: node.Line,
	}
	return nil
}

// VerbosityLevel maps the document's verbosity onto the parser setting.
func (t *Trace) VerbosityLevel() parser.Verbosity {
	switch t.Verbosity {
	case "quiet":
		return parser.VerbosityQuiet
	case "verbose":
		return parser.VerbosityVerbose
	default:
		return parser.VerbosityNormal
	}
}

// LoadFile reads and validates a trace document from disk.
func LoadFile(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	tr, err := Load(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if tr.File == "" {
		tr.File = path
	}
	return tr, nil
}

// Load parses and validates a trace document.
func Load(data []byte) (*Trace, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var tr Trace
	if err := yaml.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	if err := checkVersion(tr.Version); err != nil {
		return nil, err
	}
	return &tr, nil
}

func checkVersion(version string) error {
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("trace version %q is not a semantic version", version)
	}
	if semver.Major(v) != FormatMajor {
		return fmt.Errorf("trace version %s is not supported (want %s.x)", version, FormatMajor)
	}
	return nil
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func traceSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		compiler.AssertFormat = true
		if compiler.Formats == nil {
			compiler.Formats = make(map[string]func(interface{}) bool)
		}
		compiler.Formats["semver"] = func(v interface{}) bool {
			s, ok := v.(string)
			if !ok {
				return true
			}
			if !strings.HasPrefix(s, "v") {
				s = "v" + s
			}
			return semver.IsValid(s)
		}
		const url = "trace.schema.json"
		if err := compiler.AddResource(url, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile(url)
	})
	return compiledSchema, schemaErr
}

// validate checks the decoded YAML against the trace schema. The document is
// round-tripped through JSON so the validator sees JSON types only.
func validate(doc interface{}) error {
	schema, err := traceSchema()
	if err != nil {
		return fmt.Errorf("compile trace schema: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("trace is not representable as JSON: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return fmt.Errorf("trace is not representable as JSON: %w", err)
	}

	if err := schema.Validate(value); err != nil {
		return fmt.Errorf("invalid trace: %w", err)
	}
	return nil
}
