package auth

import (
	"context"
	"errors"
	"strings"

	"portfolio-backend/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginInput for login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Account is the authenticated admin identity kept in the session.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Authenticator checks admin credentials (hosted auth provider or local table).
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*Account, error)
}

// GormAuthenticator implements Authenticator using the admins table and bcrypt.
type GormAuthenticator struct{ DB *gorm.DB }

func (g *GormAuthenticator) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	if email == "" || password == "" {
		return nil, ErrEmailPasswordRequired
	}
	var a domain.Admin
	if err := g.DB.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if a.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &Account{ID: a.ID.String(), Email: a.Email}, nil
}

// SeedAdmin creates the local admin account when it does not exist yet.
// Existing accounts are left untouched. Returns true when a row was created.
func SeedAdmin(ctx context.Context, db *gorm.DB, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}
	var n int64
	if err := db.WithContext(ctx).Model(&domain.Admin{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	if err := db.WithContext(ctx).Create(&domain.Admin{Email: email, PasswordHash: string(hash)}).Error; err != nil {
		return false, err
	}
	return true, nil
}

// VerifyUser validates the session user and returns it for /me.
func VerifyUser(sessionUser interface{}) (*Account, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	id, _ := m["id"].(string)
	if id == "" {
		return nil, ErrNotAuthenticated
	}
	email, _ := m["email"].(string)
	return &Account{ID: id, Email: email}, nil
}
