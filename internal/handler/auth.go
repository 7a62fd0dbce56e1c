package handler

import (
	"net/http"

	"github.com/dukerupert/sif/internal/auth"
	"github.com/dukerupert/sif/internal/domain"
)

// AuthHandler serves login, registration, and session endpoints.
type AuthHandler struct {
	sessions *auth.Manager
}

func NewAuthHandler(sessions *auth.Manager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	user, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, sessionResponse{User: user, Token: h.sessions.Token()})
}

// Register handles POST /api/auth/register. A successful registration signs
// the customer in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	user, err := h.sessions.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusCreated, sessionResponse{User: user, Token: h.sessions.Token()})
}

// Logout handles POST /api/auth/logout. The local session is always cleared;
// a backend failure is still reported.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ForgotPassword handles POST /api/auth/forgot-password. The response is the
// same whether or not the address belongs to an account.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.sessions.ForgotPassword(r.Context(), req.Email); err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{
		"status": "if that address has an account, a reset link is on its way",
	})
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	if err := h.sessions.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		RespondError(w, r, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.sessions.CurrentUser()
	if user == nil {
		RespondError(w, r, domain.ErrNotAuthenticated)
		return
	}
	RespondJSON(w, http.StatusOK, user)
}
