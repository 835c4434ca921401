// Package workflow exports and imports the full SRTM working set as a single
// checksummed JSON document.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"srtm-backend/internal/categorizations"
	"srtm-backend/internal/designelements"
	"srtm-backend/internal/requirements"
	"srtm-backend/internal/shared/metrics"
	"srtm-backend/internal/shared/storage/object"
	"srtm-backend/internal/shared/telemetry"
	"srtm-backend/internal/shared/util"
)

const keyPrefix = "workflows/"

type RequirementStore interface {
	List(ctx context.Context, f requirements.Filter) ([]requirements.Requirement, error)
	ReplaceAll(ctx context.Context, items []requirements.Requirement) ([]requirements.Requirement, error)
}

type DesignElementStore interface {
	List(ctx context.Context, f designelements.Filter) ([]designelements.DesignElement, error)
	ReplaceAll(ctx context.Context, items []designelements.DesignElement) ([]designelements.DesignElement, error)
}

type CategorizationStore interface {
	List(ctx context.Context, f categorizations.Filter) ([]categorizations.Categorization, error)
	ReplaceAll(ctx context.Context, items []categorizations.Categorization) ([]categorizations.Categorization, error)
}

// Service moves workflows in and out of the entity stores.
type Service struct {
	Requirements    RequirementStore
	DesignElements  DesignElementStore
	Categorizations CategorizationStore
	Store           object.ObjectStore
	Now             func() time.Time
}

// Export is a saved workflow document and where it was written.
type Export struct {
	Key      string   `json:"key"`
	Document Document `json:"document"`
}

// ImportResult summarizes an applied workflow.
type ImportResult struct {
	Version          string `json:"version"`
	ChecksumVerified bool   `json:"checksumVerified"`
	Requirements     int    `json:"requirements"`
	DesignElements   int    `json:"designElements"`
	Categorizations  int    `json:"categorizations"`
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Export snapshots all collections, stamps and checksums the document and
// saves it to the object store.
func (s *Service) Export(ctx context.Context) (Export, error) {
	out, err := s.export(ctx)
	if err != nil {
		metrics.IncWorkflowTransfer("export", "error")
		return Export{}, err
	}
	metrics.IncWorkflowTransfer("export", "ok")
	return out, nil
}

func (s *Service) export(ctx context.Context) (Export, error) {
	doc, err := s.collect(ctx)
	if err != nil {
		return Export{}, err
	}
	doc.ExportDate = s.now()
	doc.Version = FormatVersion
	if doc.Checksum, err = Checksum(doc); err != nil {
		return Export{}, err
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Export{}, err
	}
	key := keyPrefix + doc.ExportDate.Format("20060102T150405.000000000Z") + ".json"
	if _, err := s.Store.Put(ctx, key, "application/json", bytes.NewReader(raw)); err != nil {
		return Export{}, fmt.Errorf("store workflow %s: %w", key, err)
	}
	telemetry.Info("workflow.exported", map[string]any{
		"key":             key,
		"requirements":    len(doc.Requirements),
		"design_elements": len(doc.DesignElements),
		"categorizations": len(doc.SystemCategorizations),
		"checksum":        doc.Checksum,
	})
	return Export{Key: key, Document: doc}, nil
}

func (s *Service) collect(ctx context.Context) (Document, error) {
	reqs, err := s.Requirements.List(ctx, requirements.Filter{})
	if err != nil {
		return Document{}, fmt.Errorf("list requirements: %w", err)
	}
	els, err := s.DesignElements.List(ctx, designelements.Filter{})
	if err != nil {
		return Document{}, fmt.Errorf("list design elements: %w", err)
	}
	cats, err := s.Categorizations.List(ctx, categorizations.Filter{})
	if err != nil {
		return Document{}, fmt.Errorf("list categorizations: %w", err)
	}
	if reqs == nil {
		reqs = []requirements.Requirement{}
	}
	if els == nil {
		els = []designelements.DesignElement{}
	}
	if cats == nil {
		cats = []categorizations.Categorization{}
	}
	return Document{Requirements: reqs, DesignElements: els, SystemCategorizations: cats}, nil
}

// Import validates a workflow document and replaces all three collections
// with its contents. When a later collection is rejected the earlier ones
// are put back.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	res, err := s.importDocument(ctx, r)
	if err != nil {
		metrics.IncWorkflowTransfer("import", "error")
		telemetry.Warn("workflow.import_failed", map[string]any{"error": err.Error()})
		return ImportResult{}, err
	}
	metrics.IncWorkflowTransfer("import", "ok")
	telemetry.Info("workflow.imported", map[string]any{
		"version":           res.Version,
		"checksum_verified": res.ChecksumVerified,
		"requirements":      res.Requirements,
		"design_elements":   res.DesignElements,
		"categorizations":   res.Categorizations,
	})
	return res, nil
}

func (s *Service) importDocument(ctx context.Context, r io.Reader) (ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("read workflow: %w", err)
	}
	doc, verified, err := Decode(raw)
	if err != nil {
		return ImportResult{}, err
	}

	previous, err := s.collect(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	reqs, err := s.Requirements.ReplaceAll(ctx, doc.Requirements)
	if err != nil {
		return ImportResult{}, fmt.Errorf("import requirements: %w", err)
	}
	els, err := s.DesignElements.ReplaceAll(ctx, doc.DesignElements)
	if err != nil {
		s.rollback(ctx, previous, true, false)
		return ImportResult{}, fmt.Errorf("import design elements: %w", err)
	}
	cats, err := s.Categorizations.ReplaceAll(ctx, doc.SystemCategorizations)
	if err != nil {
		s.rollback(ctx, previous, true, true)
		return ImportResult{}, fmt.Errorf("import categorizations: %w", err)
	}

	return ImportResult{
		Version:          doc.Version,
		ChecksumVerified: verified,
		Requirements:     len(reqs),
		DesignElements:   len(els),
		Categorizations:  len(cats),
	}, nil
}

func (s *Service) rollback(ctx context.Context, previous Document, reqs, els bool) {
	var errs []error
	if reqs {
		if _, err := s.Requirements.ReplaceAll(ctx, previous.Requirements); err != nil {
			errs = append(errs, err)
		}
	}
	if els {
		if _, err := s.DesignElements.ReplaceAll(ctx, previous.DesignElements); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		telemetry.Error("workflow.rollback_failed", map[string]any{"error": err.Error()})
	}
}

// Fetch returns a saved export by its storage key. Bare file names are
// resolved under the workflows prefix.
func (s *Service) Fetch(ctx context.Context, key string) ([]byte, error) {
	name, err := util.SanitizeFileName(strings.TrimPrefix(strings.TrimPrefix(key, "/"), keyPrefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	full := keyPrefix + name
	rc, err := s.Store.Open(ctx, full)
	if errors.Is(err, object.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, full)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", full, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
