// Package config loads run configuration documents: an inline program source
// with its input values and an optional cycle cap.
//
// Documents may be written in TOML, YAML, JSON or CUE, chosen by file
// extension. Every format is checked against the same closed CUE schema, so
// a missing source or a misspelled field fails the same way in all of them.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"github.com/jcorbin/sbrain/internal/runner"
	"github.com/jcorbin/sbrain/internal/sbrain"
)

// Schema is the CUE schema that every document must satisfy.
const Schema = `
input?:       [...uint64]
source!:      string
max_runtime?: uint64
cell_width?:  uint & >=1 & <=32
capacity?:    uint & >=1
`

// Document is a validated configuration document.
type Document struct {
	Input      []uint64 `json:"input"`
	Source     string   `json:"source"`
	MaxRuntime *uint64  `json:"max_runtime"`
	CellWidth  uint     `json:"cell_width"`
	Capacity   uint     `json:"capacity"`
}

// Format is a document syntax.
type Format string

// Supported formats.
const (
	CUE  Format = "cue"
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatOf picks the format of a document from its file name; CUE, being a
// superset of JSON, is the fallback.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return TOML
	case ".yaml", ".yml":
		return YAML
	}
	return CUE
}

// Load reads and parses the document at path.
func Load(path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, runner.FileAccessFault.Wrap(err, "couldn't read %v", path)
	}
	return Parse(path, content)
}

// Parse parses a document, with name giving its format and error location.
// Any syntax or schema violation is a runner.ParseFault.
func Parse(name string, content []byte) (Document, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString("close({"+Schema+"})", cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Document{}, runner.InternalFault.Wrap(err, "invalid configuration schema")
	}

	value, err := compile(ctx, FormatOf(name), name, content)
	if err != nil {
		return Document{}, runner.ParseFault.Wrap(err, "couldn't parse %v", name)
	}

	value = schema.Unify(value)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return Document{}, runner.ParseFault.Wrap(err, "invalid configuration %v", name)
	}

	var doc Document
	if err := value.Decode(&doc); err != nil {
		return Document{}, runner.ParseFault.Wrap(err, "couldn't decode %v", name)
	}
	return doc, nil
}

func compile(ctx *cue.Context, format Format, name string, content []byte) (cue.Value, error) {
	var fields map[string]any
	switch format {
	case TOML:
		if err := toml.NewDecoder(bytes.NewReader(content)).Decode(&fields); err != nil {
			return cue.Value{}, err
		}
	case YAML:
		if err := yaml.Unmarshal(content, &fields); err != nil {
			return cue.Value{}, err
		}
	default:
		value := ctx.CompileBytes(content, cue.Filename(name))
		return value, value.Err()
	}
	if fields == nil {
		fields = map[string]any{}
	}
	value := ctx.Encode(fields)
	return value, value.Err()
}

// File is a runner.Inputs that loads its run from a configuration document.
type File string

// Resolve loads the document, taking the source name from the file's path.
func (path File) Resolve() (runner.Resolved, error) {
	doc, err := Load(string(path))
	if err != nil {
		return runner.Resolved{}, err
	}
	return doc.Resolved(string(path)), nil
}

// Resolved converts the document into pipeline inputs.
func (doc Document) Resolved(name string) runner.Resolved {
	res := runner.Resolved{
		Name:     name,
		Source:   doc.Source,
		Input:    runner.ValuesInput(doc.Input),
		Width:    doc.CellWidth,
		Capacity: doc.Capacity,
	}
	if doc.MaxRuntime != nil {
		res.Bound = sbrain.MaxCycles(*doc.MaxRuntime)
	}
	return res
}
