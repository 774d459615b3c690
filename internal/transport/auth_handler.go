package transport

import (
	"errors"
	"net/http"
	"strings"

	"togetherbikes/internal/identity"
	"togetherbikes/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse represents an authenticated session
type SessionResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// UserProfile represents user profile data
type UserProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
}

func toUserProfile(sess *identity.Session) UserProfile {
	return UserProfile{
		ID:       sess.User.ID.String(),
		Email:    sess.User.Email,
		FullName: sess.User.FullName,
		Phone:    sess.User.Phone,
	}
}

// AuthHandler handles HTTP requests for account operations
type AuthHandler struct {
	gateway identity.Gateway
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(gateway identity.Gateway, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{gateway: gateway, logger: logger}
}

// RegisterRoutes registers all auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/session", h.GetSession)
	})
}

// Register handles account creation and signs the new account in
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Registration validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profileID, _ := middleware.GetProfileID(r.Context())

	sess, err := h.gateway.SignUp(r.Context(), profileID, req.Email, req.Password, identity.Profile{
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		h.logger.Debug("Registration failed", zap.Error(err))

		if errors.Is(err, identity.ErrEmailTaken) {
			middleware.RespondWithError(w, http.StatusConflict, "user with this email already exists")
			return
		}

		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	h.logger.Info("User registered successfully", zap.String("user_id", sess.User.ID.String()))
	middleware.RespondWithJSON(w, http.StatusCreated, SessionResponse{
		Token: sess.Token,
		User:  toUserProfile(sess),
	})
}

// Login handles authentication by email and password
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profileID, _ := middleware.GetProfileID(r.Context())

	sess, err := h.gateway.SignIn(r.Context(), profileID, req.Email, req.Password)
	if err != nil {
		h.logger.Debug("Login failed", zap.Error(err))

		switch {
		case errors.Is(err, identity.ErrInvalidCredentials):
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid email or password")
		case errors.Is(err, identity.ErrEmailNotConfirmed):
			middleware.RespondWithError(w, http.StatusForbidden, "email address not confirmed")
		default:
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		}
		return
	}

	h.logger.Info("User logged in successfully", zap.String("user_id", sess.User.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, SessionResponse{
		Token: sess.Token,
		User:  toUserProfile(sess),
	})
}

// Logout invalidates the bearer token presented in the Authorization header
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		middleware.RespondWithError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	profileID, _ := middleware.GetProfileID(r.Context())

	if err := h.gateway.SignOut(r.Context(), profileID, parts[1]); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to logout")
		return
	}

	h.logger.Info("User logged out successfully")
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// GetSession returns the session resolved by the auth middleware
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess := identity.SessionFromContext(r.Context())
	if sess == nil {
		middleware.RespondWithError(w, http.StatusUnauthorized, "no active session")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, SessionResponse{
		Token: sess.Token,
		User:  toUserProfile(sess),
	})
}
