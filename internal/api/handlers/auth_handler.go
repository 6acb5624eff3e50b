package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/voltpay/billpay-auth-be/internal/auth"
	"github.com/voltpay/billpay-auth-be/internal/services"
)

// AuthHandler handles HTTP requests for signup, signin and signout.
type AuthHandler struct {
	service services.UserServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// AuthPayload defines the structure for signup and signin requests.
type AuthPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup handles new user registration.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Username == "" || payload.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	_, err := h.service.Signup(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			http.Error(w, "Username already exists", http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "User registered successfully"})
}

// Signin handles user authentication and token issuance.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Username == "" || payload.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	user, token, err := h.service.Signin(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			// Same message for unknown user and wrong password.
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Signin failed")
		http.Error(w, "An error occurred while processing your request", http.StatusInternalServerError)
		return
	}

	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User signed in")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Login successful",
		"token":   token,
	})
}

// Signout acknowledges a sign-out. Tokens are stateless and self-verifying,
// so there is no server-side session to tear down; the route is still gated
// by the token middleware.
func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	if claims, ok := r.Context().Value(auth.UserClaimsKey).(*auth.Claims); ok {
		log.Info().Str("user_id", claims.UserID).Msg("User signed out")
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "User signed out successfully"})
}

// GetMe retrieves the currently authenticated user from the token.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(auth.UserClaimsKey).(*auth.Claims)
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("User from token not found in DB")
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
