package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth"
	authmw "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/middleware"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/volunteers/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/volunteers/service"
)

type Handler struct {
	volunteers *service.VolunteerService
}

func NewHandler(volunteers *service.VolunteerService) *Handler {
	return &Handler{volunteers: volunteers}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.register)
	rg.GET("/me", h.me)
	rg.PATCH("/me", h.updateMe)

	rg.GET("", authmw.RequireAdmin(), h.list)
}

type registerReq struct {
	Skills       []string `json:"skills"`
	Location     *string  `json:"location,omitempty"`
	Availability *string  `json:"availability,omitempty"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	v, err := h.volunteers.Register(c.Request.Context(), auth.UserID(c), req.Skills, req.Location, req.Availability)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "volunteer": v})
}

func (h *Handler) me(c *gin.Context) {
	v, err := h.volunteers.GetMine(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "volunteer": v})
}

func (h *Handler) updateMe(c *gin.Context) {
	var req domain.UpdateVolunteerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	v, err := h.volunteers.UpdateMine(c.Request.Context(), auth.UserID(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "volunteer": v})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.volunteers.ListAll(c.Request.Context(), auth.Role(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "volunteers": items})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "volunteer not found"})
	case errors.Is(err, domain.ErrAlreadyRegistered):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "already registered as volunteer"})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrAdminOnly):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "admin role required"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
