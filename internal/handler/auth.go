package handler

import (
	"net/http"
	"time"

	"github.com/dormscout/dormscout/internal/ctxkeys"
	"github.com/dormscout/dormscout/internal/middleware"
	"github.com/dormscout/dormscout/internal/service"
)

type AuthHandler struct {
	authService    *service.AuthService
	consentService *service.ConsentService
}

func NewAuthHandler(authService *service.AuthService, consentService *service.ConsentService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		consentService: consentService,
	}
}

type signupRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	AcceptTOS     bool   `json:"accept_tos"`
	AcceptPrivacy bool   `json:"accept_privacy"`
}

// Signup creates the account, records initial consent, and sends the
// verification email. The session starts at login, after verification.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Signup(service.SignupInput{
		Email:         req.Email,
		Password:      req.Password,
		AcceptTOS:     req.AcceptTOS,
		AcceptPrivacy: req.AcceptPrivacy,
		IPAddress:     middleware.ClientIP(r),
		UserAgent:     r.UserAgent(),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"user":    user,
		"message": "check your email to verify your account",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	expiry := time.Now().Add(h.authService.JWTExpiry())
	h.authService.SetJWTCookie(w, token, expiry)

	user.PasswordHash = nil
	writeJSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": token,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Session reports the current user, profile, and whether the consent gate
// will block them. The SPA calls this on boot.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	if user == nil {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	profile := ctxkeys.Profile(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated":   true,
		"user":            user,
		"profile":         profile,
		"needs_reconsent": h.consentService.NeedsReconsent(profile),
	})
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing token")
		return
	}

	user, err := h.authService.VerifyEmail(token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	user.PasswordHash = nil
	writeJSON(w, http.StatusOK, map[string]any{
		"user":    user,
		"message": "email verified",
	})
}
