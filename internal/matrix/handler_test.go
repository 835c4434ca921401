package matrix_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"srtm-backend/internal/designelements"
	"srtm-backend/internal/matrix"
	"srtm-backend/internal/requirements"
	"srtm-backend/internal/stig"
	"srtm-backend/internal/stig/catalog"
)

func TestMatrixHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reqs := requirements.NewService(requirements.NewMemoryRepo())
	els := designelements.NewService(designelements.NewMemoryRepo())
	engine := &stig.Service{Catalog: catalog.NewBuiltinRepository(0), Requirements: reqs, DesignElements: els}

	router := gin.New()
	matrix.NewHandler(&matrix.Service{Requirements: reqs, DesignElements: els, Recommender: engine}).RegisterRoutes(router.Group("/api/v1"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/matrix", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var m matrix.Matrix
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Rows == nil || len(m.Rows) != 0 || m.Coverage.TotalRequirements != 0 {
		t.Fatalf("expected an empty matrix, got %+v", m)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/matrix?profile=unknown", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
