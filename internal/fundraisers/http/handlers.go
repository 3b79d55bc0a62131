package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeromemathew2004/rescue-nexus-hub/internal/auth"
	authmw "github.com/jeromemathew2004/rescue-nexus-hub/internal/auth/middleware"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/fundraisers/domain"
	"github.com/jeromemathew2004/rescue-nexus-hub/internal/fundraisers/service"
)

type Handler struct {
	fundraisers *service.FundraiserService
}

func NewHandler(fundraisers *service.FundraiserService) *Handler {
	return &Handler{fundraisers: fundraisers}
}

func (h *Handler) Register(fundraisersGroup, donationsGroup *gin.RouterGroup) {
	fundraisersGroup.GET("", h.list)
	fundraisersGroup.GET("/:id", h.get)
	fundraisersGroup.POST("/:id/donate", h.donate)

	fundraisersGroup.POST("", authmw.RequireAdmin(), h.create)
	fundraisersGroup.PATCH("/:id/status", authmw.RequireAdmin(), h.close)
	fundraisersGroup.GET("/:id/donations", authmw.RequireAdmin(), h.listDonations)

	donationsGroup.GET("/mine", h.listMyDonations)
}

func (h *Handler) create(c *gin.Context) {
	var req service.CreateFundraiserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	f, err := h.fundraisers.Create(c.Request.Context(), auth.UserID(c), auth.Role(c), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "fundraiser": f})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.fundraisers.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "fundraisers": items})
}

func (h *Handler) get(c *gin.Context) {
	f, err := h.fundraisers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "fundraiser": f})
}

type closeReq struct {
	Status string `json:"status"`
}

func (h *Handler) close(c *gin.Context) {
	var req closeReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	f, err := h.fundraisers.Close(c.Request.Context(), auth.Role(c), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "fundraiser": f})
}

type donateReq struct {
	DonorName   string  `json:"donor_name"`
	Amount      float64 `json:"amount"`
	IsAnonymous bool    `json:"is_anonymous"`
}

func (h *Handler) donate(c *gin.Context) {
	var req donateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	f, d, err := h.fundraisers.Donate(c.Request.Context(), c.Param("id"), auth.UserID(c), req.DonorName, req.Amount, req.IsAnonymous)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "fundraiser": f, "donation": d})
}

func (h *Handler) listDonations(c *gin.Context) {
	items, err := h.fundraisers.ListDonations(c.Request.Context(), auth.Role(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "donations": items})
}

func (h *Handler) listMyDonations(c *gin.Context) {
	items, err := h.fundraisers.ListMyDonations(c.Request.Context(), auth.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "donations": items})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "fundraiser not found"})
	case errors.Is(err, domain.ErrNotActive):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
	case errors.Is(err, domain.ErrAdminOnly):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "admin role required"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}
