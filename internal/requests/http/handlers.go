package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/requests/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/requests/service"
)

type Handler struct {
	requests *service.RequestService
}

func NewHandler(requests *service.RequestService) *Handler {
	return &Handler{requests: requests}
}

type submitReq struct {
	Location    string  `json:"location"`
	Description string  `json:"description"`
	UrgentNeeds *string `json:"urgent_needs,omitempty"`
}

func (h *Handler) submit(c *gin.Context) {
	var req submitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	created, err := h.requests.Submit(c.Request.Context(), auth.UserID(c), req.Location, req.Description, req.UrgentNeeds)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "request": created})
}

func (h *Handler) listMine(c *gin.Context) {
	items, err := h.requests.ListMine(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "requests": items})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.requests.ListAll(c.Request.Context(), auth.Role(c), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "requests": items})
}

func (h *Handler) get(c *gin.Context) {
	req, err := h.requests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	// Owners and admins only; a request is private to its submitter.
	if req.UserID != auth.UserID(c) && !auth.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "not your request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "request": req})
}

type transitionReq struct {
	Status              string  `json:"status"`
	AssignedVolunteerID *string `json:"assigned_volunteer_id,omitempty"`
}

func (h *Handler) transition(c *gin.Context) {
	var req transitionReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	updated, err := h.requests.Transition(c.Request.Context(), c.Param("id"), auth.Role(c), req.Status, req.AssignedVolunteerID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "request": updated})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "request not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrVolunteerInactive):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrAdminOnly):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "admin role required"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
