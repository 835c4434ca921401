// Package matrix builds the security requirements traceability matrix: one
// row per requirement with the design elements and STIG families that cover it.
package matrix

import (
	"context"
	"fmt"

	"srtm-backend/internal/designelements"
	"srtm-backend/internal/requirements"
	"srtm-backend/internal/stig"
)

// FamilyRef names a STIG family recommended for a requirement.
type FamilyRef struct {
	ID                     string  `json:"id"`
	Name                   string  `json:"name"`
	RelevanceScore         float64 `json:"relevanceScore"`
	ImplementationPriority string  `json:"implementationPriority"`
}

// ElementRef names a design element linked to a requirement.
type ElementRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Technology string `json:"technology,omitempty"`
}

// Row traces one requirement.
type Row struct {
	Requirement    requirements.Requirement `json:"requirement"`
	ControlFamily  string                   `json:"controlFamily"`
	DesignElements []ElementRef             `json:"designElements"`
	StigFamilies   []FamilyRef              `json:"stigFamilies"`
}

// Coverage counts requirements missing either kind of trace.
type Coverage struct {
	TotalRequirements     int `json:"totalRequirements"`
	WithoutDesignElements int `json:"withoutDesignElements"`
	WithoutStigFamilies   int `json:"withoutStigFamilies"`
	FullyTraced           int `json:"fullyTraced"`
}

// Matrix is the full traceability view.
type Matrix struct {
	Profile        string   `json:"profile"`
	CatalogVersion string   `json:"catalogVersion"`
	Rows           []Row    `json:"rows"`
	Coverage       Coverage `json:"coverage"`
}

type Recommender interface {
	Recommend(ctx context.Context, profile string) (stig.Run, error)
}

// Service assembles the matrix from stored entities and a recommendation pass.
type Service struct {
	Requirements   stig.RequirementLister
	DesignElements stig.DesignElementLister
	Recommender    Recommender
}

// Build returns the matrix for the stored data, scored with the named profile.
func (s *Service) Build(ctx context.Context, profile string) (Matrix, error) {
	run, err := s.Recommender.Recommend(ctx, profile)
	if err != nil {
		return Matrix{}, err
	}
	reqs, err := s.Requirements.List(ctx, requirements.Filter{})
	if err != nil {
		return Matrix{}, fmt.Errorf("list requirements: %w", err)
	}
	els, err := s.DesignElements.List(ctx, designelements.Filter{})
	if err != nil {
		return Matrix{}, fmt.Errorf("list design elements: %w", err)
	}
	return assemble(run, reqs, els), nil
}

func assemble(run stig.Run, reqs []requirements.Requirement, els []designelements.DesignElement) Matrix {
	linked := map[string][]ElementRef{}
	for _, el := range els {
		ref := ElementRef{ID: el.ID, Name: el.Name, Type: el.Type, Technology: el.Technology}
		for _, id := range el.RequirementIDs {
			linked[id] = append(linked[id], ref)
		}
	}
	families := map[string][]FamilyRef{}
	for _, rec := range run.Recommendations {
		ref := FamilyRef{
			ID:                     rec.Family.ID,
			Name:                   rec.Family.Name,
			RelevanceScore:         rec.RelevanceScore,
			ImplementationPriority: string(rec.ImplementationPriority),
		}
		for _, id := range rec.MatchingRequirements {
			families[id] = append(families[id], ref)
		}
	}

	m := Matrix{
		Profile:        run.Profile,
		CatalogVersion: run.CatalogVersion,
		Rows:           make([]Row, 0, len(reqs)),
	}
	for _, req := range reqs {
		row := Row{
			Requirement:    req,
			ControlFamily:  req.ControlFamily,
			DesignElements: linked[req.ID],
			StigFamilies:   families[req.ID],
		}
		if row.DesignElements == nil {
			row.DesignElements = []ElementRef{}
		}
		if row.StigFamilies == nil {
			row.StigFamilies = []FamilyRef{}
		}
		m.Coverage.TotalRequirements++
		if len(row.DesignElements) == 0 {
			m.Coverage.WithoutDesignElements++
		}
		if len(row.StigFamilies) == 0 {
			m.Coverage.WithoutStigFamilies++
		}
		if len(row.DesignElements) > 0 && len(row.StigFamilies) > 0 {
			m.Coverage.FullyTraced++
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}
