package service

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/educonnect-backend/internal/model"
)

// ErrFieldsRequired is returned when the login form is incomplete.
var ErrFieldsRequired = errors.New("email and password are required")

// LoginRedirect is where the portal lands after signing in.
const LoginRedirect = "/cronograma"

// AuthService handles the staff portal login. Credentials are not checked
// against any store; a complete form always signs in.
type AuthService struct {
	log zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(log zerolog.Logger) *AuthService {
	return &AuthService{log: log.With().Str("component", "auth_service").Logger()}
}

// Login accepts any complete email/password pair.
func (s *AuthService) Login(req model.LoginRequest) (*model.LoginResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrFieldsRequired
	}

	s.log.Info().Str("email", email).Msg("Staff signed in")
	return &model.LoginResult{Email: email, Redirect: LoginRedirect}, nil
}
