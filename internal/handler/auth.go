package handler

import (
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/deppfellow/portal-platform/internal/service"
	"github.com/deppfellow/portal-platform/internal/token"
	"github.com/labstack/echo/v4"
)

// AuthHandler serves login and registration.
type AuthHandler struct {
	Handler
	auth *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

// Login verifies credentials and returns a signed token with its expiry.
func (h *AuthHandler) Login(c echo.Context, req *LoginRequest) (Response, error) {
	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return Response{}, err
	}
	return OK(result, "Login successful"), nil
}

// Register creates an account. The role defaults to "user" when omitted.
func (h *AuthHandler) Register(c echo.Context, req *RegisterRequest) (Response, error) {
	user, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Password, token.Role(req.Role))
	if err != nil {
		return Response{}, err
	}
	return OK(user, "User registered successfully"), nil
}
