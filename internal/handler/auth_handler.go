// Package handler provides the HTTP handlers for the cinelog API.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/cinelog/cinelog/internal/service"
	"github.com/cinelog/cinelog/internal/session"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	userService *service.UserService
	sessions    *session.Manager
	logger      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *service.UserService, sessions *session.Manager, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
		logger:      logger.With().Str("handler", "auth").Logger(),
	}
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/logout", h.handleLogout)
}

// credentialsRequest is the body of register and login requests.
// Register and login also accept classic form posts.
type credentialsRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// userResponse is the public view of an account. The password never
// leaves the server through the API.
type userResponse struct {
	Username string `json:"username"`
}

// decodeCredentials reads credentials from a JSON body or, failing
// that, from form fields.
func decodeCredentials(r *http.Request) credentialsRequest {
	var req credentialsRequest

	if r.Header.Get("Content-Type") == "application/json" {
		_ = json.NewDecoder(r.Body).Decode(&req)
		return req
	}

	_ = r.ParseForm()
	req.Username = r.PostFormValue("username")
	req.Password = r.PostFormValue("password")
	req.ConfirmPassword = r.PostFormValue("confirm_password")
	return req
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	req := decodeCredentials(r)

	user, err := h.userService.Register(r.Context(), service.RegisterInput{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, userResponse{Username: user.Username})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	req := decodeCredentials(r)

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	token := h.sessions.Create(user.Username)
	h.sessions.SetCookie(w, token)

	writeJSON(w, http.StatusOK, userResponse{Username: user.Username})
}

func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(session.CookieName); err == nil {
		h.sessions.Revoke(cookie.Value)
	}
	h.sessions.ClearCookie(w)

	w.WriteHeader(http.StatusNoContent)
}
