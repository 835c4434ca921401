// Package library stores raw STIG documents and turns them into requirement records.
package library

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"srtm-backend/internal/shared/storage/object"
	"srtm-backend/internal/shared/telemetry"
	"srtm-backend/internal/shared/util"
)

const keyPrefix = "stig-library/"

var (
	ErrNotFound          = errors.New("stig document not found")
	ErrInvalidIdentifier = errors.New("invalid stig document identifier")
)

// Document is a raw STIG document as stored in the library.
type Document struct {
	ID     string `json:"id"`
	Format Format `json:"format"`
	Key    string `json:"key"`
	Data   []byte `json:"-"`
}

// Library is a keyed collection of STIG documents in an object store.
type Library struct {
	store object.ObjectStore
}

func New(store object.ObjectStore) *Library {
	return &Library{store: store}
}

// Lookup returns the document stored under id, preferring XML over CSV.
func (l *Library) Lookup(ctx context.Context, id string) (Document, error) {
	clean, err := cleanID(id)
	if err != nil {
		return Document{}, err
	}
	for _, format := range []Format{FormatXML, FormatCSV} {
		key := storageKey(clean, format)
		rc, err := l.store.Open(ctx, key)
		if errors.Is(err, object.ErrNotFound) {
			continue
		}
		if err != nil {
			return Document{}, fmt.Errorf("open %s: %w", key, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return Document{}, fmt.Errorf("read %s: %w", key, err)
		}
		return Document{ID: clean, Format: format, Key: key, Data: data}, nil
	}
	return Document{}, fmt.Errorf("%w: %s", ErrNotFound, clean)
}

// Requirements looks up id and parses it.
func (l *Library) Requirements(ctx context.Context, id string) (Document, []StigRequirement, error) {
	doc, err := l.Lookup(ctx, id)
	if err != nil {
		return Document{}, nil, err
	}
	reqs, err := Parse(doc.Format, doc.Data)
	if err != nil {
		telemetry.Warn("stig_library.parse_failed", map[string]any{
			"id":     doc.ID,
			"format": string(doc.Format),
			"error":  err.Error(),
		})
		return doc, nil, err
	}
	return doc, reqs, nil
}

// Store validates and saves a document. An empty format is detected from the content.
func (l *Library) Store(ctx context.Context, id string, format Format, r io.Reader) (Document, error) {
	clean, err := cleanID(id)
	if err != nil {
		return Document{}, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	if format == "" {
		format = DetectFormat(data)
	}
	format, err = ParseFormat(string(format))
	if err != nil {
		return Document{}, err
	}
	if _, err := Parse(format, data); err != nil {
		return Document{}, err
	}

	key := storageKey(clean, format)
	size, err := l.store.Put(ctx, key, format.ContentType(), bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("store %s: %w", key, err)
	}
	telemetry.Info("stig_library.stored", map[string]any{
		"id":         clean,
		"format":     string(format),
		"size_bytes": size,
	})
	return Document{ID: clean, Format: format, Key: key, Data: data}, nil
}

func cleanID(id string) (string, error) {
	clean, err := util.SanitizeFileName(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	if strings.HasPrefix(clean, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
	}
	return clean, nil
}

func storageKey(id string, format Format) string {
	return keyPrefix + id + "." + string(format)
}
