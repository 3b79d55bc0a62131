package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authmw "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", authmw.RequireAdmin(), h.overview)
}

func (h *Handler) overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to collect stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "stats": overview})
}
