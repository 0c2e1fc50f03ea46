package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/quickbasket/internal/api/middleware"
	"github.com/example/quickbasket/internal/auth"
	"github.com/example/quickbasket/internal/identity"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	users      *identity.Provider
	jwtService *auth.JWTService
}

func NewAuthHandlers(users *identity.Provider, jwtService *auth.JWTService) *AuthHandlers {
	return &AuthHandlers{
		users:      users,
		jwtService: jwtService,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	User    identity.User `json:"user"`
	Message string        `json:"message,omitempty"`
}

// Login verifies credentials and sets the access token cookie.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			respondJSONError(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(user.ID, user.Name, user.Email, user.Role)
	if err != nil {
		respondJSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	respondJSON(w, http.StatusOK, AuthResponse{
		User:    user,
		Message: "Login successful",
	})
}

// Logout clears the access token cookie.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Logout successful",
	})
}

// Me returns the current authenticated user's profile.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.users.GetUser(r.Context(), claims.UserID)
	if err != nil {
		respondJSONError(w, "user not found", http.StatusNotFound)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
