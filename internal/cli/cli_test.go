package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srtm-backend/internal/stig/catalog"
	"srtm-backend/internal/stig/recommendations"
)

const postgresInput = `{
  "requirements": [{"id": "req-1", "title": "Database access", "description": "PostgreSQL database"}],
  "designElements": [{"id": "de-1", "name": "Primary DB", "type": "Database", "technology": "PostgreSQL"}]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRecommendJSON(t *testing.T) {
	input := writeFile(t, "input.json", postgresInput)
	out, err := execute(t, "recommend", "--input", input, "--output", "json")
	require.NoError(t, err)

	var recs []recommendations.Recommendation
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.NotEmpty(t, recs)
	assert.Equal(t, "postgresql-9x", recs[0].Family.ID)
	assert.Equal(t, 25.0, recs[0].RelevanceScore)
}

func TestRecommendTable(t *testing.T) {
	input := writeFile(t, "input.json", postgresInput)
	out, err := execute(t, "recommend", "-i", input, "-p", "standard", "--reasons")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], "FAMILY")
	assert.Contains(t, lines[1], "postgresql-9x")
	assert.Contains(t, lines[1], "20.5")
	assert.Contains(t, out, "Direct technology match")
}

func TestRecommendEmptyInput(t *testing.T) {
	input := writeFile(t, "input.json", `{"requirements":[],"designElements":[]}`)
	out, err := execute(t, "recommend", "-i", input)
	require.NoError(t, err)
	assert.Equal(t, "No STIG families matched.\n", out)
}

func TestRecommendErrors(t *testing.T) {
	input := writeFile(t, "input.json", postgresInput)
	_, err := execute(t, "recommend")
	assert.ErrorContains(t, err, "--input")

	_, err = execute(t, "recommend", "-i", input, "-p", "fast")
	assert.ErrorIs(t, err, recommendations.ErrUnknownProfile)

	_, err = execute(t, "recommend", "-i", input, "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")

	bad := writeFile(t, "bad.json", "{")
	_, err = execute(t, "recommend", "-i", bad)
	assert.Error(t, err)
}

func TestEffort(t *testing.T) {
	input := writeFile(t, "input.json", postgresInput)
	out, err := execute(t, "effort", "-i", input, "--families", "postgresql-9x", "-o", "json")
	require.NoError(t, err)

	var effort recommendations.Effort
	require.NoError(t, json.Unmarshal([]byte(out), &effort))
	assert.Equal(t, 124, effort.TotalRequirements)
	assert.Equal(t, 186.0, effort.EstimatedHours)
	assert.Equal(t, 24, effort.EstimatedDays)

	out, err = execute(t, "effort", "-i", input, "--families", "postgresql-9x")
	require.NoError(t, err)
	assert.Contains(t, out, "Estimated hours:     186\n")
	assert.Contains(t, out, "critical=1")
}

func TestFamiliesWithCustomCatalog(t *testing.T) {
	out, err := execute(t, "families", "-o", "json")
	require.NoError(t, err)
	var families []catalog.Family
	require.NoError(t, json.Unmarshal([]byte(out), &families))
	assert.Len(t, families, len(catalog.Builtin()))

	path := writeFile(t, "catalog.yaml", "families:\n  - id: custom\n    name: Custom SRG\n    triggerKeywords: [custom]\n    priority: low\n")
	out, err = execute(t, "--catalog", path, "families")
	require.NoError(t, err)
	assert.Contains(t, out, "custom")
	assert.Contains(t, out, "Low")
	assert.NotContains(t, out, "postgresql-9x")
}

func TestParse(t *testing.T) {
	out, err := execute(t, "parse", "../stig/library/testdata/postgres_xccdf.xml", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"vulnId": "V-214048"`)

	out, err = execute(t, "parse", "../stig/library/testdata/windows_export.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "V-254239")

	_, err = execute(t, "parse", "../stig/library/testdata/windows_export.csv", "--format", "pdf")
	assert.Error(t, err)
}
