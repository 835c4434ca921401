package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk catalog format. JSON documents decode as well,
// since JSON is a subset of YAML.
type Document struct {
	Version  string   `json:"version" yaml:"version"`
	Families []Family `json:"families" yaml:"families"`
}

// Decode reads a catalog document. A bare list of families is accepted too.
func Decode(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read catalog: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		var families []Family
		if err := node.Content[0].Decode(&families); err != nil {
			return Document{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		return Document{Families: families}, nil
	}

	var doc Document
	if err := node.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return doc, nil
}

// LoadFile reads a catalog document from disk.
func LoadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("load catalog %q: %w", path, err)
	}
	defer f.Close()
	doc, err := Decode(f)
	if err != nil {
		return Document{}, fmt.Errorf("load catalog %q: %w", path, err)
	}
	return doc, nil
}
