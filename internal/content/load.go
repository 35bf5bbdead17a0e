package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.json
var defaultDocument []byte

// Load reads a content document from path. JSON is the default format;
// .yaml and .yml files are parsed as YAML. An empty path loads the
// document bundled with the binary.
func Load(path string) (*Document, error) {
	if path == "" {
		return Parse(defaultDocument, FormatJSON)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}

	doc, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return doc, nil
}

type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor picks the document format from the file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes a content document. Missing optional sections are left
// empty; only malformed input is an error.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
	}
	doc.normalize()
	return &doc, nil
}
