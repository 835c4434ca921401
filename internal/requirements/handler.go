package requirements

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"srtm-backend/internal/shared/server/middleware"
	"srtm-backend/internal/shared/server/respond"
	"srtm-backend/internal/shared/validation"
)

const entityKind = "requirement"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches requirement routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/requirements", h.list)
	rg.POST("/requirements", h.create)
	rg.GET("/requirements/:id", h.get)
	rg.PUT("/requirements/:id", h.update)
	rg.DELETE("/requirements/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	c.Set(middleware.EntityKindKey, entityKind)
	items, err := h.Svc.List(c.Request.Context(), Filter{
		Query:         c.Query("q"),
		Category:      c.Query("category"),
		ControlFamily: c.Query("controlFamily"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) create(c *gin.Context) {
	c.Set(middleware.EntityKindKey, entityKind)
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.EntityIDKey, req.ID)
	respond.JSON(c, http.StatusCreated, req)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.EntityKindKey, entityKind)
	c.Set(middleware.EntityIDKey, id)
	req, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, req)
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.EntityKindKey, entityKind)
	c.Set(middleware.EntityIDKey, id)
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req, err := h.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, req)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.EntityKindKey, entityKind)
	c.Set(middleware.EntityIDKey, id)
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), validation.Details(err))
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "requirement not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "requirement operation failed", nil)
	}
}
