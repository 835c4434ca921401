package workflow

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"srtm-backend/internal/categorizations"
	"srtm-backend/internal/designelements"
	"srtm-backend/internal/requirements"
	"srtm-backend/internal/shared/server/respond"
	"srtm-backend/internal/shared/validation"
)

const maxWorkflowSize = 20 << 20 // 20MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches workflow routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/workflow/export", h.export)
	rg.POST("/workflow/import", h.importWorkflow)
	rg.GET("/workflow/exports/*key", h.fetch)
}

func (h *Handler) export(c *gin.Context) {
	out, err := h.Svc.Export(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Location", "/api/v1/workflow/exports/"+out.Key)
	respond.OK(c, out)
}

func (h *Handler) importWorkflow(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWorkflowSize)
	res, err := h.Svc.Import(c.Request.Context(), c.Request.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, res)
}

func (h *Handler) fetch(c *gin.Context) {
	data, err := h.Svc.Fetch(c.Request.Context(), c.Param("key"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

func writeError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "workflow exceeds the size limit", nil)
	case errors.Is(err, ErrInvalidDocument):
		respond.Error(c, http.StatusBadRequest, "invalid_workflow", err.Error(), nil)
	case errors.Is(err, ErrUnsupportedVersion):
		respond.Error(c, http.StatusUnprocessableEntity, "unsupported_version", err.Error(), nil)
	case errors.Is(err, ErrChecksumMismatch):
		respond.Error(c, http.StatusUnprocessableEntity, "checksum_mismatch", err.Error(), nil)
	case errors.Is(err, requirements.ErrInvalidInput),
		errors.Is(err, designelements.ErrInvalidInput),
		errors.Is(err, categorizations.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), validation.Details(err))
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "workflow export not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "workflow operation failed", nil)
	}
}
