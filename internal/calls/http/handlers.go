package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth"
	authmw "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/middleware"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/calls/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/calls/service"
	volunteerdomain "github.com/jeromemathew2004/rescue-nexus-hub/internal/volunteers/domain"
)

type Handler struct {
	calls *service.CallService
}

func NewHandler(calls *service.CallService) *Handler {
	return &Handler{calls: calls}
}

// Register mounts call routes under /calls and application routes under
// /applications.
func (h *Handler) Register(callsGroup, applicationsGroup *gin.RouterGroup) {
	callsGroup.GET("", h.listCalls)
	callsGroup.GET("/:id", h.getCall)
	callsGroup.POST("/:id/apply", h.apply)

	callsGroup.POST("", authmw.RequireAdmin(), h.createCall)
	callsGroup.POST("/:id/close", authmw.RequireAdmin(), h.closeCall)
	callsGroup.GET("/:id/applications", authmw.RequireAdmin(), h.listCallApplications)

	applicationsGroup.GET("/mine", h.listMyApplications)
	applicationsGroup.PATCH("/:id", authmw.RequireAdmin(), h.review)
}

func (h *Handler) createCall(c *gin.Context) {
	var req service.CreateCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	call, err := h.calls.CreateCall(c.Request.Context(), auth.UserID(c), auth.Role(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "call": call})
}

func (h *Handler) listCalls(c *gin.Context) {
	items, err := h.calls.ListCalls(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "calls": items})
}

func (h *Handler) getCall(c *gin.Context) {
	call, err := h.calls.GetCall(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "call": call})
}

func (h *Handler) closeCall(c *gin.Context) {
	call, err := h.calls.CloseCall(c.Request.Context(), auth.Role(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "call": call})
}

func (h *Handler) apply(c *gin.Context) {
	app, err := h.calls.Apply(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "application": app})
}

type reviewReq struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

func (h *Handler) review(c *gin.Context) {
	var req reviewReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	app, call, err := h.calls.Review(c.Request.Context(), auth.UserID(c), auth.Role(c), c.Param("id"), req.Status, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := gin.H{"ok": true, "application": app}
	if call != nil {
		resp["call"] = call
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) listCallApplications(c *gin.Context) {
	items, err := h.calls.ListApplicationsForCall(c.Request.Context(), auth.Role(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "applications": items})
}

func (h *Handler) listMyApplications(c *gin.Context) {
	items, err := h.calls.ListMyApplications(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "applications": items})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCallNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "call not found"})
	case errors.Is(err, domain.ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "application not found"})
	case errors.Is(err, volunteerdomain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "volunteer registration required"})
	case errors.Is(err, domain.ErrCallClosed):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "call is closed"})
	case errors.Is(err, domain.ErrCallFull):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "call is at capacity"})
	case errors.Is(err, domain.ErrDuplicateApplication):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "already applied to this call"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrAdminOnly):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "admin role required"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
