package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/portal-platform/internal/errs"
	"github.com/deppfellow/portal-platform/internal/repository"
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/deppfellow/portal-platform/internal/token"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles credential checks and token issuance.
type AuthService struct {
	server *server.Server
	repos  *repository.Repositories
}

// NewAuthService constructs an AuthService.
func NewAuthService(s *server.Server, repos *repository.Repositories) *AuthService {
	return &AuthService{
		server: s,
		repos:  repos,
	}
}

// LoginResult is returned to the client on successful authentication.
type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      *repository.User `json:"user"`
}

// Login verifies email/password and issues an identity token.
//
// Unknown email and wrong password both return the same 401 so the response
// does not reveal whether the account exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repos.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewUnauthorizedError("Invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errs.NewUnauthorizedError("Invalid email or password")
	}

	signed, err := s.server.Token.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(s.server.Config.Auth.TokenTTLHours) * time.Hour

	s.server.Logger.Info().
		Int64("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("user logged in")

	return &LoginResult{
		Token:     signed,
		ExpiresAt: time.Now().Add(ttl),
		User:      user,
	}, nil
}

// Register creates a new account with a bcrypt-hashed password. The role
// defaults to "user" when absent.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role token.Role) (*repository.User, error) {
	if role == "" {
		role = token.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.repos.Users.Create(ctx, name, email, string(hash), role)
	if err != nil {
		return nil, err
	}

	s.server.Logger.Info().
		Int64("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("user registered")

	return user, nil
}
