package matrix

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srtm-backend/internal/designelements"
	"srtm-backend/internal/requirements"
	"srtm-backend/internal/stig"
	"srtm-backend/internal/stig/catalog"
	"srtm-backend/internal/stig/recommendations"
)

type fakeRecommender struct {
	run stig.Run
	err error
}

func (f fakeRecommender) Recommend(context.Context, string) (stig.Run, error) {
	return f.run, f.err
}

func TestBuildTracesRequirements(t *testing.T) {
	ctx := context.Background()
	reqs := requirements.NewService(requirements.NewMemoryRepo())
	els := designelements.NewService(designelements.NewMemoryRepo())

	db, err := reqs.Create(ctx, requirements.Input{Title: "Database access", ControlFamily: "AC"})
	require.NoError(t, err)
	training, err := reqs.Create(ctx, requirements.Input{Title: "Annual training"})
	require.NoError(t, err)
	orphan, err := reqs.Create(ctx, requirements.Input{Title: "Backups", ControlFamily: "CP"})
	require.NoError(t, err)
	_, err = els.Create(ctx, designelements.Input{Name: "Primary DB", Type: "Database", Technology: "PostgreSQL", RequirementIDs: []string{db.ID}})
	require.NoError(t, err)
	_, err = els.Create(ctx, designelements.Input{Name: "LMS", Type: "Service", RequirementIDs: []string{training.ID, db.ID}})
	require.NoError(t, err)

	run := stig.Run{
		Profile:        "validated",
		CatalogVersion: catalog.BuiltinVersion,
		Recommendations: []recommendations.Recommendation{{
			Family:                 catalog.Family{ID: "postgresql-9x", Name: "PostgreSQL 9.x"},
			RelevanceScore:         25,
			ImplementationPriority: recommendations.PriorityCritical,
			MatchingRequirements:   []string{db.ID},
		}},
	}
	svc := &Service{Requirements: reqs, DesignElements: els, Recommender: fakeRecommender{run: run}}

	m, err := svc.Build(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "validated", m.Profile)
	require.Len(t, m.Rows, 3)

	first := m.Rows[0]
	assert.Equal(t, db.ID, first.Requirement.ID)
	assert.Equal(t, "AC", first.ControlFamily)
	require.Len(t, first.DesignElements, 2)
	assert.Equal(t, "Primary DB", first.DesignElements[0].Name)
	assert.Equal(t, []FamilyRef{{ID: "postgresql-9x", Name: "PostgreSQL 9.x", RelevanceScore: 25, ImplementationPriority: "Critical"}}, first.StigFamilies)

	assert.Len(t, m.Rows[1].DesignElements, 1)
	assert.NotNil(t, m.Rows[2].StigFamilies)
	assert.Empty(t, m.Rows[2].DesignElements)
	assert.Equal(t, orphan.ID, m.Rows[2].Requirement.ID)

	assert.Equal(t, Coverage{TotalRequirements: 3, WithoutDesignElements: 1, WithoutStigFamilies: 2, FullyTraced: 1}, m.Coverage)
}

func TestBuildPropagatesRecommenderErrors(t *testing.T) {
	svc := &Service{
		Requirements:   requirements.NewService(requirements.NewMemoryRepo()),
		DesignElements: designelements.NewService(designelements.NewMemoryRepo()),
		Recommender:    fakeRecommender{err: recommendations.ErrUnknownProfile},
	}
	_, err := svc.Build(context.Background(), "bogus")
	assert.True(t, errors.Is(err, recommendations.ErrUnknownProfile))
}

func TestBuildWithEngine(t *testing.T) {
	ctx := context.Background()
	reqs := requirements.NewService(requirements.NewMemoryRepo())
	els := designelements.NewService(designelements.NewMemoryRepo())
	req, err := reqs.Create(ctx, requirements.Input{Title: "Database access", Description: "PostgreSQL database"})
	require.NoError(t, err)
	_, err = els.Create(ctx, designelements.Input{Name: "Primary DB", Type: "Database", Technology: "PostgreSQL", RequirementIDs: []string{req.ID}})
	require.NoError(t, err)

	engine := &stig.Service{Catalog: catalog.NewBuiltinRepository(0), Requirements: reqs, DesignElements: els}
	svc := &Service{Requirements: reqs, DesignElements: els, Recommender: engine}

	m, err := svc.Build(ctx, "standard")
	require.NoError(t, err)
	require.Len(t, m.Rows, 1)
	require.NotEmpty(t, m.Rows[0].StigFamilies)
	assert.Equal(t, "postgresql-9x", m.Rows[0].StigFamilies[0].ID)
	assert.Equal(t, 0, m.Coverage.WithoutStigFamilies)
}
