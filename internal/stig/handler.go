package stig

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"srtm-backend/internal/shared/server/middleware"
	"srtm-backend/internal/shared/server/respond"
	"srtm-backend/internal/shared/validation"
	"srtm-backend/internal/stig/catalog"
	"srtm-backend/internal/stig/library"
	"srtm-backend/internal/stig/recommendations"
)

const maxDocumentSize = 20 << 20 // 20MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches STIG routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/stig")
	g.GET("/recommendations", h.recommend)
	g.POST("/recommendations", h.recommendAdhoc)
	g.GET("/effort", h.effort)
	g.GET("/families", h.families)
	g.GET("/families/:id", h.family)
	g.GET("/catalog/history", h.history)
	g.POST("/catalog/backup", h.backup)
	g.POST("/catalog/restore", h.restore)
	g.POST("/catalog/updates", h.updates)
	g.GET("/library/:id", h.libraryGet)
	g.PUT("/library/:id", h.libraryPut)
}

func (h *Handler) recommend(c *gin.Context) {
	profile := c.Query("profile")
	c.Set(middleware.ProfileKey, profile)
	run, err := h.Svc.Recommend(c.Request.Context(), profile)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.ProfileKey, run.Profile)
	respond.OK(c, run)
}

func (h *Handler) recommendAdhoc(c *gin.Context) {
	var in AdhocInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	run, err := h.Svc.RecommendAdhoc(in, c.Query("profile"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.ProfileKey, run.Profile)
	respond.OK(c, run)
}

func (h *Handler) effort(c *gin.Context) {
	report, err := h.Svc.Effort(c.Request.Context(), c.Query("profile"), splitList(c.Query("families")))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.ProfileKey, report.Profile)
	respond.OK(c, report)
}

func (h *Handler) families(c *gin.Context) {
	respond.OK(c, h.Svc.Families())
}

func (h *Handler) family(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.EntityKindKey, "stig_family")
	c.Set(middleware.EntityIDKey, id)
	f, err := h.Svc.Family(id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, f)
}

func (h *Handler) history(c *gin.Context) {
	respond.OK(c, h.Svc.CatalogState())
}

type backupRequest struct {
	Label string `json:"label"`
}

func (h *Handler) backup(c *gin.Context) {
	var req backupRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}
	respond.JSON(c, http.StatusCreated, h.Svc.Backup(req.Label))
}

type restoreRequest struct {
	Revision int `json:"revision" binding:"required,min=1"`
}

func (h *Handler) restore(c *gin.Context) {
	var req restoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "revision is required", nil)
		return
	}
	info, err := h.Svc.Restore(req.Revision)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, info)
}

func (h *Handler) updates(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentSize)
	source := strings.TrimSpace(c.Query("source"))
	if source == "" {
		source = "api"
	}
	res, err := h.Svc.ApplyUpdates(c.Request.Body, source)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, res)
}

type libraryResponse struct {
	ID           string                    `json:"id"`
	Format       library.Format            `json:"format"`
	Key          string                    `json:"key"`
	Requirements []library.StigRequirement `json:"requirements"`
}

func (h *Handler) libraryGet(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.EntityKindKey, "stig_document")
	c.Set(middleware.EntityIDKey, id)
	doc, reqs, err := h.Svc.LibraryRequirements(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, libraryResponse{ID: doc.ID, Format: doc.Format, Key: doc.Key, Requirements: reqs})
}

func (h *Handler) libraryPut(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.EntityKindKey, "stig_document")
	c.Set(middleware.EntityIDKey, id)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxDocumentSize)
	doc, err := h.Svc.StoreLibraryDocument(c.Request.Context(), id, c.Query("format"), c.Request.Body)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{"id": doc.ID, "format": doc.Format, "key": doc.Key})
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "document exceeds the size limit", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), validation.Details(err))
	case errors.Is(err, recommendations.ErrUnknownProfile):
		respond.Error(c, http.StatusBadRequest, "unknown_profile", err.Error(), nil)
	case errors.Is(err, catalog.ErrInvalidCatalog),
		errors.Is(err, library.ErrInvalidIdentifier),
		errors.Is(err, library.ErrUnsupportedFormat),
		errors.Is(err, library.ErrMalformedDocument):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, catalog.ErrFamilyNotFound),
		errors.Is(err, catalog.ErrRevisionNotFound),
		errors.Is(err, library.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "stig operation failed", nil)
	}
}
