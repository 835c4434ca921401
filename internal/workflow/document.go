package workflow

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/gowebpki/jcs"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"srtm-backend/internal/categorizations"
	"srtm-backend/internal/designelements"
	"srtm-backend/internal/requirements"
	"srtm-backend/internal/shared/util"
)

// FormatVersion is written into every export.
const FormatVersion = "1.1.0"

const (
	supportedVersions = ">= 1.0.0, < 2.0.0"
	schemaURL         = "https://srtm.local/schemas/workflow.schema.json"
)

//go:embed schema.json
var schemaSource string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// Document is the portable workflow file: everything needed to rebuild a
// traceability matrix elsewhere.
type Document struct {
	SystemCategorizations []categorizations.Categorization `json:"systemCategorizations"`
	DesignElements        []designelements.DesignElement   `json:"designElements"`
	Requirements          []requirements.Requirement       `json:"requirements"`
	ExportDate            time.Time                        `json:"exportDate"`
	Version               string                           `json:"version"`
	Checksum              string                           `json:"checksum,omitempty"`
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, strings.NewReader(schemaSource)); err != nil {
			schemaErr = fmt.Errorf("workflow schema load failed: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Checksum returns the hex SHA-256 of the RFC 8785 canonical form of doc,
// ignoring any checksum it already carries.
func Checksum(doc Document) (string, error) {
	doc.Checksum = ""
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return canonicalChecksum(raw)
}

func canonicalChecksum(raw []byte) (string, error) {
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize workflow: %w", err)
	}
	return util.SHA256Hex(canonical), nil
}

// Decode validates raw against the workflow schema and version range and
// verifies the checksum when one is present. The checksum is computed over
// the document as received, so exports from other tools verify as long as
// they canonicalize the same way.
func Decode(raw []byte) (Document, bool, error) {
	s, err := compiledSchema()
	if err != nil {
		return Document{}, false, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return Document{}, false, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := s.Validate(generic); err != nil {
		return Document{}, false, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, false, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := checkVersion(doc.Version); err != nil {
		return Document{}, false, err
	}

	if doc.Checksum == "" {
		return doc, false, nil
	}
	obj := generic.(map[string]any)
	delete(obj, "checksum")
	stripped, err := json.Marshal(obj)
	if err != nil {
		return Document{}, false, err
	}
	sum, err := canonicalChecksum(stripped)
	if err != nil {
		return Document{}, false, err
	}
	if sum != doc.Checksum {
		return Document{}, false, fmt.Errorf("%w: expected %s, computed %s", ErrChecksumMismatch, doc.Checksum, sum)
	}
	return doc, true, nil
}

func checkVersion(raw string) error {
	v, err := semver.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, raw)
	}
	c, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s is outside %s", ErrUnsupportedVersion, v, supportedVersions)
	}
	return nil
}
