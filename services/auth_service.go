package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"villa-backend/models"
	"villa-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService checks admin credentials and issues JWTs. Without a database
// only the configured demo credential is accepted.
type AuthService struct {
	DB           *gorm.DB
	Secret       string
	TTL          time.Duration
	DemoEmail    string
	DemoPassword string
	Now          func() time.Time
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration, demoEmail, demoPassword string) *AuthService {
	return &AuthService{
		DB:           db,
		Secret:       secret,
		TTL:          ttl,
		DemoEmail:    strings.ToLower(strings.TrimSpace(demoEmail)),
		DemoPassword: demoPassword,
		Now:          func() time.Time { return time.Now().UTC() },
	}
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	Admin     models.Admin `json:"admin"`
}

var errInvalidCredentials = &ServiceError{Code: CodeUnauthorized, Message: "invalid credentials"}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, validationError("email and password required")
	}

	var admin models.Admin
	if s.DB == nil {
		if s.DemoEmail == "" || email != s.DemoEmail || password != s.DemoPassword {
			return nil, errInvalidCredentials
		}
		admin = models.Admin{FullName: "Resort Admin", Email: s.DemoEmail}
	} else {
		err := s.DB.WithContext(ctx).Where("email = ?", email).First(&admin).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errInvalidCredentials
			}
			return nil, ClassifyDBError(err)
		}
		if !isBcryptHash(admin.Password) ||
			bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
			return nil, errInvalidCredentials
		}
	}

	token, expires, err := utils.CreateAdminToken(s.Secret, admin.ID, admin.Email, s.TTL, s.Now())
	if err != nil {
		return nil, &ServiceError{Code: CodeInternal, Message: "failed to generate token", Err: err}
	}
	return &LoginResult{Token: token, ExpiresAt: expires, Admin: admin}, nil
}
