package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srtm-backend/internal/shared/config"
	"srtm-backend/internal/stig/catalog"
)

func devConfig(t *testing.T) config.Config {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return config.Config{
		Env:            "dev",
		LocalStoreDir:  t.TempDir(),
		ScoringProfile: "validated",
	}
}

func TestBuildInMemory(t *testing.T) {
	app, err := Build(devConfig(t))
	require.NoError(t, err)
	assert.Nil(t, app.DB)
	assert.Equal(t, catalog.BuiltinVersion, app.Catalog.Current().Version)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"memory"`)

	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/matrix", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildRejectsBadSettings(t *testing.T) {
	cfg := devConfig(t)
	cfg.ScoringProfile = "aggressive"
	_, err := Build(cfg)
	assert.Error(t, err)

	cfg = devConfig(t)
	cfg.Env = "production"
	_, err = Build(cfg)
	assert.ErrorContains(t, err, "DATABASE_URL")

	cfg = devConfig(t)
	cfg.ObjectStoreType = "s3"
	_, err = Build(cfg)
	assert.ErrorContains(t, err, "S3_BUCKET")
}

func TestBuildCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := strings.Join([]string{
		"families:",
		"  - id: custom-app",
		"    name: Custom Application SRG",
		"    triggerKeywords: [custom]",
		"    priority: Medium",
		"    estimatedRequirements: 12",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	repo, err := BuildCatalog(config.Config{CatalogFile: path, CatalogHistoryLimit: 3})
	require.NoError(t, err)
	assert.Equal(t, "file:"+path, repo.Current().Version)
	require.Len(t, repo.Families(), 1)

	_, err = BuildCatalog(config.Config{CatalogFile: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}
