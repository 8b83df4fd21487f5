package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialgram/internal/auth"
	"socialgram/internal/services"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account and issues the identity cookie pair.
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		auth.ClearSessionCookies(c)
		switch {
		case errors.Is(err, services.ErrInvalidUsername),
			errors.Is(err, services.ErrInvalidPassword),
			errors.Is(err, services.ErrUsernameTaken):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "reason": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		}
		return
	}

	auth.SetSessionCookies(c, user.ID, req.Password)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Login verifies credentials and issues the identity cookie pair.
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		auth.ClearSessionCookies(c)
		if errors.Is(err, services.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect username or password"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to authenticate"})
		}
		return
	}

	auth.SetSessionCookies(c, user.ID, req.Password)
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// Logout clears the identity cookie pair.
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	auth.ClearSessionCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GetMe returns the currently authenticated user's account.
// GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
