package registry

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

//go:embed models.yaml
var builtinModels []byte

// Format identifies the encoding of a model table.
type Format string

// Supported model table formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Table is the on-disk shape of a model table.
//
//	default_model: gpt-3.5-turbo
//	models:
//	  - name: gpt-3.5-turbo
//	    context_window: 4096
//	    input_cost_per_1k: 0.0015
//	    output_cost_per_1k: 0.002
type Table struct {
	DefaultModel string         `json:"default_model" yaml:"default_model" toml:"default_model"`
	Models       []ModelProfile `json:"models" yaml:"models" toml:"models"`
}

// Builtin returns a registry built from the embedded model table.
func Builtin() (*Registry, error) {
	r, err := Load(builtinModels, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("builtin models: %w", err)
	}
	return r, nil
}

// MustBuiltin is like Builtin but panics on error.
// The embedded table is covered by tests, so this only fails on a broken build.
func MustBuiltin() *Registry {
	r, err := Builtin()
	if err != nil {
		panic(err)
	}
	return r
}

// Load parses a model table and builds a registry from it.
func Load(data []byte, format Format) (*Registry, error) {
	var table Table

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&table); err != nil {
			return nil, fmt.Errorf("parse yaml model table: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &table)
		if err != nil {
			return nil, fmt.Errorf("parse toml model table: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse toml model table: unknown keys %v", undecoded)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&table); err != nil {
			return nil, fmt.Errorf("parse json model table: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	var opts []Option
	if table.DefaultModel != "" {
		opts = append(opts, WithDefaultModel(table.DefaultModel))
	}
	return New(table.Models, opts...)
}

// LoadFile reads a model table from path. The format follows the file
// extension: .yaml/.yml, .toml or .json.
func LoadFile(path string) (*Registry, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model table: %w", err)
	}
	return Load(data, format)
}

// FormatFromPath derives the table format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}
