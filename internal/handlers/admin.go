package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"socialgram/internal/auth"
	"socialgram/internal/services"
)

// AdminHandler handles account administration and reporting
type AdminHandler struct {
	adminService *services.AdminService
	userService  *services.UserService
	adService    *services.AdService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	adminService *services.AdminService,
	userService *services.UserService,
	adService *services.AdService,
) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		userService:  userService,
		adService:    adService,
	}
}

// RequireAdmin rejects callers without the admin flag. It runs after the
// session middleware, so the identity is already verified.
func (h *AdminHandler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := auth.GetUserID(c)
		isAdmin, err := h.userService.IsAdmin(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to check admin"})
			return
		}
		if !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}

// GetUsers lists all accounts.
// GET /api/admin/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// MakeAdmin grants the admin flag to another user.
// POST /api/admin/users/:id/admin
func (h *AdminHandler) MakeAdmin(c *gin.Context) {
	err := h.userService.MakeAdmin(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, services.ErrAlreadyAdmin):
			c.JSON(http.StatusConflict, gin.H{"error": "already an admin"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to grant admin"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"successful": true})
}

// RemoveAdmin revokes the admin flag from another user.
// DELETE /api/admin/users/:id/admin
func (h *AdminHandler) RemoveAdmin(c *gin.Context) {
	err := h.userService.RemoveAdmin(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, services.ErrNotAdmin):
			c.JSON(http.StatusConflict, gin.H{"error": "not an admin"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke admin"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"successful": true})
}

// DeleteUser hard-deletes an account.
// DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	err := h.userService.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"successful": true})
}

// GetActiveUsers reports users with at least the average post count and a
// post in the last 30 days, or since ?since= when given.
// GET /api/admin/reports/active-users
func (h *AdminHandler) GetActiveUsers(c *gin.Context) {
	since := time.Now().AddDate(0, 0, -30)
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request", "reason": "since"})
			return
		}
		since = parsed
	}

	users, err := h.adminService.ActiveUsers(c.Request.Context(), since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activeUsers": users})
}

// GetAdClicks reports per-ad click counts.
// GET /api/admin/reports/ad-clicks
func (h *AdminHandler) GetAdClicks(c *gin.Context) {
	clicks, err := h.adService.GetAdClicks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"adClicks": clicks})
}

// GetSuccessfulAds reports ads whose click rate exceeds a threshold
// (default 0.5, overridable with ?rate=).
// GET /api/admin/reports/successful-ads
func (h *AdminHandler) GetSuccessfulAds(c *gin.Context) {
	rate := 0.5
	var req struct {
		Rate *float64 `form:"rate"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request", "reason": "rate"})
		return
	}
	if req.Rate != nil {
		rate = *req.Rate
	}

	ads, err := h.adService.GetSuccessfulAds(c.Request.Context(), rate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"successfulAds": ads})
}

// GetViewedByAllAds reports the ads every user has seen.
// GET /api/admin/reports/viewed-by-all
func (h *AdminHandler) GetViewedByAllAds(c *gin.Context) {
	ids, err := h.adService.GetViewedByAllAds(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"adIDs": ids})
}

// GetTables lists the browsable tables.
// GET /api/admin/tables
func (h *AdminHandler) GetTables(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tables": h.adminService.Tables()})
}

// GetAttributes lists the browsable columns of a table.
// GET /api/admin/tables/:table/attributes
func (h *AdminHandler) GetAttributes(c *gin.Context) {
	columns, err := h.adminService.Attributes(c.Param("table"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"attributes": columns})
}

// GetSelectedAttributes projects the requested columns of a table.
// POST /api/admin/tables/:table/rows
func (h *AdminHandler) GetSelectedAttributes(c *gin.Context) {
	var req struct {
		Attributes []string `json:"attributes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	rows, err := h.adminService.SelectedAttributes(c.Request.Context(), c.Param("table"), req.Attributes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}
