package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	// UserCookie carries the opaque user ID and is readable by client script.
	UserCookie = "user"
	// SecretCookie carries the secret and is never readable by client script.
	SecretCookie = "password"

	cookieMaxAge = 30 * 24 * 60 * 60 // 30 days, in seconds

	identityKey = "identity"
)

// SetSessionCookies issues the identity cookie pair after login or signup.
func SetSessionCookies(c *gin.Context, userID, secret string) {
	c.SetCookie(UserCookie, userID, cookieMaxAge, "/", "", false, false)
	c.SetCookie(SecretCookie, secret, cookieMaxAge, "/", "", false, true)
}

// ClearSessionCookies removes both identity cookies. Always done together,
// on logout and on every authentication failure, so clients never retry
// with stale credentials.
func ClearSessionCookies(c *gin.Context) {
	c.SetCookie(UserCookie, "", -1, "/", "", false, false)
	c.SetCookie(SecretCookie, "", -1, "/", "", false, true)
}

func resolve(c *gin.Context, db *gorm.DB) (Identity, error) {
	userID, err := c.Cookie(UserCookie)
	if err != nil {
		return Identity{}, nil
	}
	secret, _ := c.Cookie(SecretCookie)
	return Authenticate(db, userID, secret)
}

// Required aborts with 401 (and clears the cookie pair) unless the request
// carries a verified identity.
func Required(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := resolve(c, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to authenticate"})
			c.Abort()
			return
		}
		if !identity.Authenticated {
			ClearSessionCookies(c)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// Optional resolves the identity if present but never rejects the request.
// Routes that render differently for anonymous viewers use this.
func Optional(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := resolve(c, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to authenticate"})
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// GetIdentity retrieves the resolved identity from the context.
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

// GetUserID retrieves the authenticated user's ID from the context.
func GetUserID(c *gin.Context) (string, bool) {
	identity, ok := GetIdentity(c)
	if !ok || !identity.Authenticated {
		return "", false
	}
	return identity.UserID, true
}
