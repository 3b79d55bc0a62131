package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth"
	authmw "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/middleware"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/resources/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/resources/service"
)

type Handler struct {
	resources *service.ResourceService
}

func NewHandler(resources *service.ResourceService) *Handler {
	return &Handler{resources: resources}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:id", h.get)

	rg.POST("", authmw.RequireAdmin(), h.create)
	rg.PATCH("/:id", authmw.RequireAdmin(), h.update)
	rg.POST("/:id/allocate", authmw.RequireAdmin(), h.allocate)
	rg.GET("/:id/allocations", authmw.RequireAdmin(), h.listAllocations)
}

// RegisterRequestAllocations mounts the per-request allocation listing
// under the requests route group.
func (h *Handler) RegisterRequestAllocations(requestsGroup *gin.RouterGroup) {
	requestsGroup.GET("/:id/allocations", authmw.RequireAdmin(), h.listRequestAllocations)
}

type createReq struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Unit     *string `json:"unit,omitempty"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, err := h.resources.Create(c.Request.Context(), auth.Role(c), req.Name, req.Category, req.Quantity, req.Unit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "resource": res})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.resources.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "resources": items})
}

func (h *Handler) get(c *gin.Context) {
	res, err := h.resources.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "resource": res})
}

func (h *Handler) update(c *gin.Context) {
	var req domain.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, err := h.resources.Update(c.Request.Context(), auth.Role(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "resource": res})
}

type allocateReq struct {
	RequestID string `json:"request_id"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) allocate(c *gin.Context) {
	var req allocateReq
	if err := c.ShouldBindJSON(&req); err != nil || req.RequestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	res, alloc, err := h.resources.Allocate(c.Request.Context(), auth.UserID(c), auth.Role(c), c.Param("id"), req.RequestID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "resource": res, "allocation": alloc})
}

func (h *Handler) listAllocations(c *gin.Context) {
	items, err := h.resources.ListAllocationsByResource(c.Request.Context(), auth.Role(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "allocations": items})
}

func (h *Handler) listRequestAllocations(c *gin.Context) {
	items, err := h.resources.ListAllocationsByRequest(c.Request.Context(), auth.Role(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "allocations": items})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "resource not found"})
	case errors.Is(err, domain.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "request not found"})
	case errors.Is(err, domain.ErrInsufficientQuantity):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrAdminOnly):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "admin role required"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
