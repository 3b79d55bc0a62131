package reports

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth"
	authmw "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/middleware"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

// Register mounts report routes under the requests route group.
func (h *Handler) Register(requestsGroup *gin.RouterGroup) {
	requestsGroup.POST("/:id/reports", h.create)
	requestsGroup.GET("/:id/reports", authmw.RequireAdmin(), h.list)
}

type createReq struct {
	Report string `json:"report"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Report) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	rep, err := h.repo.Create(c.Request.Context(), c.Param("id"), auth.UserID(c), strings.TrimSpace(req.Report))
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "report": rep})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.ListByRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "reports": items})
}
