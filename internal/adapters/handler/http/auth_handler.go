package http

import (
	"encoding/json"
	"net/http"

	"github.com/pollboard/api/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	cookieDomain string
}

func NewAuthHandler(authService ports.AuthService, cookieDomain string) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieDomain: cookieDomain,
	}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleSignInRequest struct {
	Credential string `json:"credential"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{"error": "invalid request body"})
		return
	}

	pair, err := h.authService.SignUp(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	h.setSessionCookies(w, pair)
	respondJSON(w, http.StatusCreated, envelope{})
}

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{"error": "invalid request body"})
		return
	}

	pair, err := h.authService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	h.setSessionCookies(w, pair)
	respondJSON(w, http.StatusOK, envelope{})
}

func (h *AuthHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req googleSignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, envelope{"error": "invalid request body"})
		return
	}
	if req.Credential == "" {
		respondJSON(w, http.StatusBadRequest, envelope{"error": "missing credential"})
		return
	}

	pair, err := h.authService.SignInWithGoogle(r.Context(), req.Credential)
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, envelope{"error": "authentication failed: " + err.Error()})
		return
	}

	h.setSessionCookies(w, pair)
	respondJSON(w, http.StatusOK, envelope{})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, envelope{"error": "missing refresh token"})
		return
	}

	pair, err := h.authService.RefreshAccessToken(r.Context(), cookie.Value)
	if err != nil {
		h.expireCookies(w)
		respondJSON(w, http.StatusUnauthorized, envelope{"error": "refresh failed: " + err.Error()})
		return
	}

	h.setAccessTokenCookie(w, pair.AccessToken)
	if pair.RefreshToken != "" && pair.RefreshToken != cookie.Value {
		h.setRefreshTokenCookie(w, pair.RefreshToken)
	}

	respondJSON(w, http.StatusOK, envelope{})
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err == nil && cookie.Value != "" {
		_ = h.authService.SignOut(r.Context(), cookie.Value)
	}

	h.expireCookies(w)
	respondJSON(w, http.StatusOK, envelope{})
}

func (h *AuthHandler) setSessionCookies(w http.ResponseWriter, pair *ports.TokenPair) {
	h.setAccessTokenCookie(w, pair.AccessToken)
	h.setRefreshTokenCookie(w, pair.RefreshToken)
}

func (h *AuthHandler) setAccessTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   15 * 60,
	})
}

func (h *AuthHandler) setRefreshTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/",
		Domain:   h.cookieDomain,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   7 * 24 * 60 * 60,
	})
}

func (h *AuthHandler) expireCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: "access_token", MaxAge: -1, Path: "/", Domain: h.cookieDomain})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", MaxAge: -1, Path: "/", Domain: h.cookieDomain})
}
