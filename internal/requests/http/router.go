package http

import (
	"github.com/gin-gonic/gin"

	authmw "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/middleware"
)

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.submit)
	rg.GET("/mine", h.listMine)
	rg.GET("/:id", h.get)

	rg.GET("", authmw.RequireAdmin(), h.list)
	rg.PATCH("/:id/status", authmw.RequireAdmin(), h.transition)
}
