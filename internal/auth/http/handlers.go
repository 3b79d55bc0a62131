package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/service"
)

type Handler struct {
	profiles *service.ProfileService
}

func NewHandler(profiles *service.ProfileService) *Handler {
	return &Handler{profiles: profiles}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/profile", h.getProfile)
	rg.PUT("/profile", h.updateProfile)
}

func (h *Handler) getProfile(c *gin.Context) {
	p, err := h.profiles.GetProfile(c.Request.Context(), auth.UserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}

func (h *Handler) updateProfile(c *gin.Context) {
	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.profiles.UpdateProfile(c.Request.Context(), auth.UserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, domain.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "profile not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "profile": p})
}
