// FILE: optkit/source.go
package optkit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ValueSource is an external key-value store consulted when an option
// has a source key and was not invoked directly, typically backed by a
// config file. Entries returns the ordered raw values stored under
// key, and whether the key is present at all.
//
// Sourced values are treated as pre-structured: the split pattern is
// never applied to them.
type ValueSource interface {
	Entries(key string) ([]string, bool)
}

// MapSource is an in-memory ValueSource, mainly useful in tests and
// for programmatic defaults.
type MapSource map[string][]string

// Entries implements ValueSource.
func (s MapSource) Entries(key string) ([]string, bool) {
	values, ok := s[key]
	return values, ok
}

// FileSource is a ValueSource backed by a TOML, JSON or YAML file.
// Nested tables flatten to dot-separated keys ("server.port"), scalar
// leaves become a single entry, and arrays become one entry per
// element, preserving order.
type FileSource struct {
	path    string
	entries map[string][]string
}

// NewFileSource reads and parses the file at path. The format is
// detected from the extension first, then by content sniffing. A
// missing file returns ErrSourceNotFound, which callers usually treat
// as "no source configured".
func NewFileSource(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to read source file '%s': %w", path, err)
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
		if format == "" {
			return nil, fmt.Errorf("unable to determine format of source file '%s'", path)
		}
	}

	parsed := make(map[string]any)
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse TOML source file '%s': %w", path, err)
		}
	case "json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&parsed); err != nil {
			return nil, fmt.Errorf("failed to parse JSON source file '%s': %w", path, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse YAML source file '%s': %w", path, err)
		}
	}

	entries := make(map[string][]string)
	for key, value := range flattenMap(parsed, "") {
		strs, err := coerceEntries(value)
		if err != nil {
			return nil, fmt.Errorf("source file '%s', key %q: %w", path, key, err)
		}
		entries[key] = strs
	}

	return &FileSource{path: path, entries: entries}, nil
}

// Entries implements ValueSource.
func (s *FileSource) Entries(key string) ([]string, bool) {
	values, ok := s.entries[key]
	return values, ok
}

// Path returns the file the source was loaded from.
func (s *FileSource) Path() string {
	return s.path
}

// coerceEntries converts a parsed leaf value into ordered string
// entries. Weak typing lets numbers, booleans and json.Number become
// strings, and wraps scalars into single-element slices.
func coerceEntries(value any) ([]string, error) {
	var out []string
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create entry decoder: %w", err)
	}
	if err := decoder.Decode(value); err != nil {
		return nil, fmt.Errorf("cannot convert %T to source entries: %w", value, err)
	}
	return out, nil
}

// flattenMap converts a nested map to a flat map with dot-notation
// keys. Leaf slices stay intact so ordered entries survive.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(nestedMap, path) {
				flat[subPath] = subValue
			}
		} else {
			flat[path] = value
		}
	}

	return flat
}

// detectFileFormat determines format from the file extension.
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing.
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// YAML is a superset of JSON, so check it after JSON
	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}

	var tomlTest any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	return ""
}
