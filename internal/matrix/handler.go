package matrix

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"srtm-backend/internal/shared/server/middleware"
	"srtm-backend/internal/shared/server/respond"
	"srtm-backend/internal/stig/recommendations"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the matrix route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/matrix", h.get)
}

func (h *Handler) get(c *gin.Context) {
	m, err := h.Svc.Build(c.Request.Context(), c.Query("profile"))
	if err != nil {
		if errors.Is(err, recommendations.ErrUnknownProfile) {
			respond.Error(c, http.StatusBadRequest, "unknown_profile", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build matrix", nil)
		return
	}
	c.Set(middleware.ProfileKey, m.Profile)
	respond.OK(c, m)
}
