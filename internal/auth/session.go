package auth

import (
	"errors"

	"socialgram/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// BcryptCost is the hashing cost for stored credentials. Verification runs
// on every authenticated request, so this is deliberately expensive.
const BcryptCost = 12

// Identity is the outcome of resolving a request's identity claim.
// Authenticated=false with a non-empty UserID means the claimed user exists
// but the secret was wrong or absent; an empty UserID means no claim was
// made or the claimed user does not exist.
type Identity struct {
	Authenticated bool
	UserID        string
}

// HashPassword hashes a plaintext secret for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Authenticate resolves a (user ID, secret) claim against stored credentials.
// It is a pure lookup-and-compare: no side effects, and never fatal to the
// caller. The secret is re-verified against the hash on every call.
func Authenticate(db *gorm.DB, userID, secret string) (Identity, error) {
	if userID == "" {
		return Identity{}, nil
	}

	var user models.User
	err := db.Select("id", "password_hash").Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// The claim refers to nothing real, so the user reference is dropped.
		return Identity{}, nil
	}
	if err != nil {
		return Identity{}, err
	}

	if secret != "" &&
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)) == nil {
		return Identity{Authenticated: true, UserID: userID}, nil
	}

	// Wrong or absent secret: keep the user reference so callers can
	// distinguish "wrong password" from "no such user".
	return Identity{Authenticated: false, UserID: userID}, nil
}
