package designelements

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"srtm-backend/internal/shared/server/middleware"
	"srtm-backend/internal/shared/server/respond"
	"srtm-backend/internal/shared/validation"
)

const entityKind = "design_element"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches design element routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/design-elements", h.list)
	rg.POST("/design-elements", h.create)
	rg.GET("/design-elements/:id", h.get)
	rg.PUT("/design-elements/:id", h.update)
	rg.DELETE("/design-elements/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	c.Set(middleware.EntityKindKey, entityKind)
	items, err := h.Svc.List(c.Request.Context(), Filter{
		Query:         c.Query("q"),
		Type:          c.Query("type"),
		RequirementID: c.Query("requirementId"),
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
	el, err := h.Svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.EntityIDKey, el.ID)
	respond.JSON(c, http.StatusCreated, el)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set(middleware.EntityKindKey, entityKind)
	c.Set(middleware.EntityIDKey, id)
	el, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, el)
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
	el, err := h.Svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, el)
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
		respond.Error(c, http.StatusNotFound, "not_found", "design element not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "design element operation failed", nil)
	}
}
