package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"socialgram/internal/auth"
	"socialgram/internal/services"
)

// UserHandler handles profile and social-graph endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile returns a user's public profile.
// GET /api/users/:id
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetUsername returns a user's handle.
// GET /api/users/:id/username
func (h *UserHandler) GetUsername(c *gin.Context) {
	username, err := h.userService.GetUsername(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load username"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username})
}

// GetDisplayName returns a user's display name, falling back to the handle.
// GET /api/users/:id/display-name
func (h *UserHandler) GetDisplayName(c *gin.Context) {
	name, err := h.userService.GetDisplayName(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load display name"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"displayName": name})
}

// Follow creates a follower edge from the caller to the target user.
// POST /api/users/:id/follow
func (h *UserHandler) Follow(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	err := h.userService.Follow(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFollowSelf):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow self"})
		case errors.Is(err, services.ErrAlreadyFollowing):
			c.JSON(http.StatusConflict, gin.H{"error": "already following"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to follow"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"successful": true})
}

// Unfollow removes the caller's follower edge to the target user.
// POST /api/users/:id/unfollow
func (h *UserHandler) Unfollow(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	err := h.userService.Unfollow(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrFollowSelf):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot unfollow self"})
		case errors.Is(err, services.ErrNotFollowing):
			c.JSON(http.StatusConflict, gin.H{"error": "not following"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unfollow"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"successful": true})
}

// UpdateSettings applies a partial settings update to the caller's account.
// POST /api/settings
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req struct {
		Username    *string `json:"username"`
		Password    *string `json:"password"`
		DisplayName *string `json:"displayName"`
		Bio         *string `json:"bio"`
		Birthday    *string `json:"birthday"`
		Location    *string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	settings := services.Settings{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		LocationID:  req.Location,
	}
	if req.Birthday != nil {
		birthday, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request", "reason": "birthday"})
			return
		}
		settings.Birthday = &birthday
	}

	err := h.userService.UpdateSettings(c.Request.Context(), userID, settings)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidUsername),
			errors.Is(err, services.ErrInvalidPassword),
			errors.Is(err, services.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "reason": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		}
		return
	}

	// A password change invalidates the secret cookie; reissue when possible.
	if req.Password != nil {
		auth.SetSessionCookies(c, userID, *req.Password)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetBlockedUsers lists the users the caller has blocked.
// GET /api/users/blocked
func (h *UserHandler) GetBlockedUsers(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	blocked, err := h.userService.GetBlockedUsers(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load blocked users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blockedUsers": blocked})
}
