// Package stig serves STIG family recommendations, the family catalog and the
// STIG document library over the stored requirements and design elements.
package stig

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"srtm-backend/internal/designelements"
	"srtm-backend/internal/requirements"
	"srtm-backend/internal/shared/metrics"
	"srtm-backend/internal/shared/telemetry"
	"srtm-backend/internal/shared/validation"
	"srtm-backend/internal/stig/catalog"
	"srtm-backend/internal/stig/library"
	"srtm-backend/internal/stig/recommendations"
)

var ErrInvalidInput = errors.New("invalid input")

// RequirementLister is the slice of the requirements service the engine reads.
type RequirementLister interface {
	List(ctx context.Context, f requirements.Filter) ([]requirements.Requirement, error)
}

// DesignElementLister is the slice of the design element service the engine reads.
type DesignElementLister interface {
	List(ctx context.Context, f designelements.Filter) ([]designelements.DesignElement, error)
}

// Service runs the recommendation engine and manages the catalog and library.
type Service struct {
	Catalog        *catalog.Repository
	Library        *library.Library
	Requirements   RequirementLister
	DesignElements DesignElementLister
	ProfileName    string
}

// Run is the result of one recommendation pass.
type Run struct {
	Profile         string                           `json:"profile"`
	ProfileVersion  string                           `json:"profileVersion"`
	CatalogVersion  string                           `json:"catalogVersion"`
	Recommendations []recommendations.Recommendation `json:"recommendations"`
}

// EffortReport is the implementation estimate for a recommendation pass.
type EffortReport struct {
	Profile  string                 `json:"profile"`
	Families []string               `json:"families"`
	Effort   recommendations.Effort `json:"effort"`
}

// AdhocInput is a posted recommendation request that bypasses storage.
type AdhocInput struct {
	Requirements   []recommendations.Requirement   `json:"requirements" validate:"max=10000"`
	DesignElements []recommendations.DesignElement `json:"designElements" validate:"max=10000"`
}

// CatalogState lists the active snapshot and its backups.
type CatalogState struct {
	Current catalog.SnapshotInfo   `json:"current"`
	History []catalog.SnapshotInfo `json:"history"`
}

func (s *Service) profile(name string) (recommendations.Profile, error) {
	if strings.TrimSpace(name) == "" {
		name = s.ProfileName
	}
	return recommendations.ProfileByName(name)
}

// Recommend scores the catalog against everything in storage.
func (s *Service) Recommend(ctx context.Context, profileName string) (Run, error) {
	p, err := s.profile(profileName)
	if err != nil {
		return Run{}, err
	}
	reqs, err := s.Requirements.List(ctx, requirements.Filter{})
	if err != nil {
		return Run{}, fmt.Errorf("list requirements: %w", err)
	}
	els, err := s.DesignElements.List(ctx, designelements.Filter{})
	if err != nil {
		return Run{}, fmt.Errorf("list design elements: %w", err)
	}
	return s.run(p, requirements.EngineRequirements(reqs), designelements.EngineDesignElements(els)), nil
}

// RecommendAdhoc scores the catalog against a posted input.
func (s *Service) RecommendAdhoc(in AdhocInput, profileName string) (Run, error) {
	p, err := s.profile(profileName)
	if err != nil {
		return Run{}, err
	}
	if err := validation.Struct(in); err != nil {
		return Run{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.run(p, in.Requirements, in.DesignElements), nil
}

func (s *Service) run(p recommendations.Profile, reqs []recommendations.Requirement, els []recommendations.DesignElement) Run {
	start := time.Now()
	info := s.Catalog.Current()
	recs := recommendations.Generate(recommendations.Input{
		Requirements:   reqs,
		DesignElements: els,
		Families:       s.Catalog.Families(),
		Profile:        p,
	})
	elapsed := time.Since(start)
	metrics.ObserveRecommendationRun(p.Name, len(recs), elapsed)
	telemetry.Info("stig.recommendations.generated", map[string]any{
		"profile":         p.Name,
		"catalog_version": info.Version,
		"requirements":    len(reqs),
		"design_elements": len(els),
		"results":         len(recs),
		"duration_ms":     elapsed.Milliseconds(),
	})
	return Run{
		Profile:         p.Name,
		ProfileVersion:  p.Version,
		CatalogVersion:  info.Version,
		Recommendations: recs,
	}
}

// Effort estimates implementation effort over the stored data, optionally
// restricted to the selected family ids.
func (s *Service) Effort(ctx context.Context, profileName string, familyIDs []string) (EffortReport, error) {
	run, err := s.Recommend(ctx, profileName)
	if err != nil {
		return EffortReport{}, err
	}
	p, _ := recommendations.ProfileByName(run.Profile)
	selected := recommendations.FilterByFamily(run.Recommendations, familyIDs)
	ids := make([]string, 0, len(selected))
	for _, rec := range selected {
		ids = append(ids, rec.Family.ID)
	}
	return EffortReport{
		Profile:  p.Name,
		Families: ids,
		Effort:   recommendations.EstimateEffort(selected, p),
	}, nil
}

// Families lists the active catalog.
func (s *Service) Families() []catalog.Family {
	return s.Catalog.Families()
}

// Family returns one catalog entry.
func (s *Service) Family(id string) (catalog.Family, error) {
	return s.Catalog.Get(id)
}

// CatalogState describes the active snapshot and the backup history.
func (s *Service) CatalogState() CatalogState {
	return CatalogState{Current: s.Catalog.Current(), History: s.Catalog.History()}
}

// Backup snapshots the active catalog.
func (s *Service) Backup(label string) catalog.SnapshotInfo {
	if strings.TrimSpace(label) == "" {
		label = "manual"
	}
	info := s.Catalog.Backup(label)
	metrics.IncCatalogChange("backup")
	telemetry.Info("stig.catalog.backup", map[string]any{
		"revision": info.Revision,
		"version":  info.Version,
		"label":    info.Label,
	})
	return info
}

// Restore re-activates a backed-up revision.
func (s *Service) Restore(revision int) (catalog.SnapshotInfo, error) {
	info, err := s.Catalog.Restore(revision)
	if err != nil {
		return catalog.SnapshotInfo{}, err
	}
	metrics.IncCatalogChange("restore")
	telemetry.Info("stig.catalog.restored", map[string]any{
		"from_revision": revision,
		"revision":      info.Revision,
		"version":       info.Version,
	})
	return info, nil
}

// ApplyUpdates decodes a YAML or JSON catalog document and merges it into the
// active catalog.
func (s *Service) ApplyUpdates(r io.Reader, source string) (catalog.UpdateResult, error) {
	doc, err := catalog.Decode(r)
	if err != nil {
		return catalog.UpdateResult{}, err
	}
	res, err := s.Catalog.ApplyUpdates(doc, source)
	if err != nil {
		return catalog.UpdateResult{}, err
	}
	if res.Changed() {
		metrics.IncCatalogChange("update")
	}
	telemetry.Info("stig.catalog.updated", map[string]any{
		"source":   source,
		"added":    len(res.Added),
		"updated":  len(res.Updated),
		"skipped":  len(res.Skipped),
		"revision": res.Snapshot.Revision,
	})
	return res, nil
}

// LibraryRequirements returns the parsed rules of a stored STIG document.
func (s *Service) LibraryRequirements(ctx context.Context, id string) (library.Document, []library.StigRequirement, error) {
	return s.Library.Requirements(ctx, id)
}

// StoreLibraryDocument validates and saves a STIG document. An empty format
// is detected from the content.
func (s *Service) StoreLibraryDocument(ctx context.Context, id, format string, r io.Reader) (library.Document, error) {
	f := library.Format("")
	if strings.TrimSpace(format) != "" {
		parsed, err := library.ParseFormat(format)
		if err != nil {
			return library.Document{}, err
		}
		f = parsed
	}
	return s.Library.Store(ctx, id, f, r)
}
