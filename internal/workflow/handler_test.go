package workflow_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"srtm-backend/internal/categorizations"
	"srtm-backend/internal/designelements"
	"srtm-backend/internal/requirements"
	"srtm-backend/internal/shared/storage/object/local"
	"srtm-backend/internal/workflow"
)

func TestWorkflowHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &workflow.Service{
		Requirements:    requirements.NewService(requirements.NewMemoryRepo()),
		DesignElements:  designelements.NewService(designelements.NewMemoryRepo()),
		Categorizations: categorizations.NewService(categorizations.NewMemoryRepo()),
		Store:           local.New(t.TempDir()),
	}
	router := gin.New()
	workflow.NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/workflow/export", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out workflow.Export
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/workflow/exports/"+out.Key, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected saved export, got %d", rec.Code)
	}
	saved := rec.Body.Bytes()

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/workflow/import", bytes.NewReader(saved)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected import to succeed, got %d: %s", rec.Code, rec.Body.String())
	}

	cases := []struct {
		body string
		want int
	}{
		{`{"version":"3.0.0","systemCategorizations":[],"designElements":[]}`, http.StatusUnprocessableEntity},
		{`{"version":"1.1.0"}`, http.StatusBadRequest},
		{`{"version":"1.1.0","systemCategorizations":[],"designElements":[{"name":"  "}]}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/workflow/import", bytes.NewBufferString(tc.body)))
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.body, tc.want, rec.Code)
		}
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/workflow/exports/workflows/none.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
