package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"srtm-backend/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	telemetry.SetOutput(&buf)
	t.Cleanup(func() { telemetry.SetOutput(os.Stdout) })

	router := gin.New()
	router.Use(RequestID(), Logging())
	router.GET("/requirements/:id", func(c *gin.Context) {
		c.Set(EntityKindKey, "requirement")
		c.Set(EntityIDKey, c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/requirements/req-1", nil)
	req.Header.Set("X-Request-Id", "req-abc")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) == 0 || lines[0] == "" {
		t.Fatalf("expected log output")
	}
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	required := []string{"request_id", "route", "duration_ms", "status", "entity_kind", "entity_id"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["request_id"] != "req-abc" {
		t.Fatalf("unexpected request_id: %v", payload["request_id"])
	}
	if payload["route"] != "/requirements/:id" {
		t.Fatalf("unexpected route: %v", payload["route"])
	}
	if payload["entity_id"] != "req-1" {
		t.Fatalf("unexpected entity_id: %v", payload["entity_id"])
	}
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	header := resp.Header().Get("X-Request-Id")
	if header == "" {
		t.Fatalf("expected generated request id header")
	}
	if resp.Body.String() != header {
		t.Fatalf("expected context id %q to match header %q", resp.Body.String(), header)
	}
}
