package stig

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srtm-backend/internal/designelements"
	"srtm-backend/internal/requirements"
	"srtm-backend/internal/shared/storage/object/local"
	"srtm-backend/internal/stig/catalog"
	"srtm-backend/internal/stig/library"
	"srtm-backend/internal/stig/recommendations"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	reqs := requirements.NewService(requirements.NewMemoryRepo())
	els := designelements.NewService(designelements.NewMemoryRepo())

	_, err := reqs.Create(ctx, requirements.Input{Title: "Database access", Description: "PostgreSQL database"})
	require.NoError(t, err)
	_, err = els.Create(ctx, designelements.Input{Name: "Primary DB", Type: "Database", Technology: "PostgreSQL"})
	require.NoError(t, err)

	return &Service{
		Catalog:        catalog.NewBuiltinRepository(5),
		Library:        library.New(local.New(t.TempDir())),
		Requirements:   reqs,
		DesignElements: els,
	}
}

func TestRecommendUsesStoredData(t *testing.T) {
	svc := newTestService(t)

	run, err := svc.Recommend(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "validated", run.Profile)
	assert.Equal(t, catalog.BuiltinVersion, run.CatalogVersion)
	require.NotEmpty(t, run.Recommendations)
	assert.Equal(t, "postgresql-9x", run.Recommendations[0].Family.ID)
	assert.Equal(t, 25.0, run.Recommendations[0].RelevanceScore)

	run, err = svc.Recommend(context.Background(), "standard")
	require.NoError(t, err)
	assert.Equal(t, 20.5, run.Recommendations[0].RelevanceScore)
	assert.Nil(t, run.Recommendations[0].ConfidenceScore)
}

func TestRecommendUsesConfiguredProfile(t *testing.T) {
	svc := newTestService(t)
	svc.ProfileName = "standard"

	run, err := svc.Recommend(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "standard", run.Profile)
}

func TestRecommendUnknownProfile(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Recommend(context.Background(), "experimental")
	assert.ErrorIs(t, err, recommendations.ErrUnknownProfile)
}

func TestRecommendAdhoc(t *testing.T) {
	svc := newTestService(t)
	run, err := svc.RecommendAdhoc(AdhocInput{}, "")
	require.NoError(t, err)
	assert.NotNil(t, run.Recommendations)
	assert.Empty(t, run.Recommendations)

	run, err = svc.RecommendAdhoc(AdhocInput{
		Requirements: []recommendations.Requirement{{ID: "r1", Title: "Windows Server Security", Description: "Secure Windows Server 2022", ControlFamily: "AC"}},
		DesignElements: []recommendations.DesignElement{{
			ID: "d1", Name: "Domain Controller", Description: "Windows Server 2022 domain controller", Type: "Server", Technology: "Windows Server 2022",
		}},
	}, "validated")
	require.NoError(t, err)
	require.NotEmpty(t, run.Recommendations)
	assert.Equal(t, "windows-server-2022", run.Recommendations[0].Family.ID)
}

func TestEffortSelectedFamilies(t *testing.T) {
	svc := newTestService(t)

	report, err := svc.Effort(context.Background(), "validated", []string{"postgresql-9x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"postgresql-9x"}, report.Families)
	assert.Equal(t, 124, report.Effort.TotalRequirements)
	assert.Equal(t, 186.0, report.Effort.EstimatedHours)
	assert.Equal(t, 24, report.Effort.EstimatedDays)
	assert.Equal(t, 1, report.Effort.PriorityCounts.Critical)

	report, err = svc.Effort(context.Background(), "", []string{"no-such-family"})
	require.NoError(t, err)
	assert.Empty(t, report.Families)
	assert.Equal(t, recommendations.Effort{}, report.Effort)
}

func TestCatalogBackupRestoreAndUpdates(t *testing.T) {
	svc := newTestService(t)

	info := svc.Backup("")
	assert.Equal(t, "manual", info.Label)

	res, err := svc.ApplyUpdates(strings.NewReader(`
version: "2026.01"
families:
  - id: postgresql-9x
    name: PostgreSQL 9.x
    triggerKeywords: [postgresql, postgres]
    priority: High
    estimatedRequirements: 130
    version: V2R6
  - id: mongodb-7
    name: MongoDB Enterprise Advanced 7.x
    triggerKeywords: [mongodb]
    priority: Medium
    estimatedRequirements: 90
    version: V1R1
`), "test")
	require.NoError(t, err)
	assert.Equal(t, []string{"mongodb-7"}, res.Added)
	assert.Equal(t, []string{"postgresql-9x"}, res.Updated)
	assert.Equal(t, "2026.01", res.Snapshot.Version)

	f, err := svc.Family("postgresql-9x")
	require.NoError(t, err)
	assert.Equal(t, 130, f.EstimatedRequirements)

	restored, err := svc.Restore(res.Snapshot.Revision - 1)
	require.NoError(t, err)
	assert.Equal(t, catalog.BuiltinVersion, restored.Version)
	_, err = svc.Family("mongodb-7")
	assert.ErrorIs(t, err, catalog.ErrFamilyNotFound)

	state := svc.CatalogState()
	assert.Equal(t, restored.Revision, state.Current.Revision)
	assert.NotEmpty(t, state.History)

	_, err = svc.ApplyUpdates(strings.NewReader("families: [{id: broken}]"), "test")
	assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
}

func TestLibraryDocuments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	csv := "Vuln ID,Rule ID,Severity,Rule Title,CCI\nV-1,SV-1r1_rule,CAT I,Require MFA,CCI-000765 IA-2 (1)\n"
	doc, err := svc.StoreLibraryDocument(ctx, "windows-export", "", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, library.FormatCSV, doc.Format)

	_, reqs, err := svc.LibraryRequirements(ctx, "windows-export")
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "high", reqs[0].Severity)

	_, err = svc.StoreLibraryDocument(ctx, "windows-export", "pdf", strings.NewReader(csv))
	assert.ErrorIs(t, err, library.ErrUnsupportedFormat)
}
