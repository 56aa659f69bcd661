package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/isdelr/taskdesk-be/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for account registration and sign-in.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// SignInPayload defines the structure for sign-in requests.
type SignInPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpPayload defines the structure for registration requests.
type SignUpPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// SignUp handles new user registration.
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var payload SignUpPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Error().Err(err).Msg("Signup error: invalid request body")
		ServerError(w)
		return
	}

	if _, err := h.service.CreateUser(r.Context(), payload.Username, payload.Email, payload.Password); err != nil {
		logger.Error().Err(err).Str("email", payload.Email).Msg("Signup error")
		ServerError(w)
		return
	}

	writeText(w, http.StatusCreated, "User created successfully")
}

// SignIn checks an email/password pair. Unknown accounts and wrong passwords
// get the same response.
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var payload SignInPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		logger.Error().Err(err).Msg("Signin error: invalid request body")
		ServerError(w)
		return
	}

	if _, err := h.service.AuthenticateUser(r.Context(), payload.Email, payload.Password); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			logger.Warn().Err(err).Str("email", payload.Email).Msg("Signin error")
			writeText(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		logger.Error().Err(err).Str("email", payload.Email).Msg("Signin error")
		ServerError(w)
		return
	}

	writeText(w, http.StatusOK, "Sign-in successful")
}
