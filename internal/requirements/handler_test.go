package requirements_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"srtm-backend/internal/requirements"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := requirements.NewHandler(requirements.NewService(requirements.NewMemoryRepo()))
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequirementsCRUD(t *testing.T) {
	router := newRouter()

	rec := do(t, router, http.MethodPost, "/api/v1/requirements", map[string]string{
		"title":         "Audit logging",
		"description":   "Log admin actions",
		"controlFamily": "au",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created requirements.Requirement
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.ControlFamily != "AU" {
		t.Fatalf("unexpected created requirement: %+v", created)
	}

	rec = do(t, router, http.MethodPut, "/api/v1/requirements/"+created.ID, map[string]string{"title": "Audit logging v2"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/api/v1/requirements?q=v2", nil)
	var items []requirements.Requirement
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Audit logging v2" {
		t.Fatalf("unexpected list: %+v", items)
	}

	rec = do(t, router, http.MethodDelete, "/api/v1/requirements/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on delete, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/api/v1/requirements/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestRequirementsValidationErrorEnvelope(t *testing.T) {
	router := newRouter()

	rec := do(t, router, http.MethodPost, "/api/v1/requirements", map[string]string{"controlFamily": "A1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details []struct {
				Field string `json:"field"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "validation_error" || len(body.Error.Details) != 2 {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestRequirementsMalformedBody(t *testing.T) {
	router := newRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/requirements", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
