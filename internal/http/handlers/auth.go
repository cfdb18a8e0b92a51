package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/hongminglow/staffly-be/internal/http/respond"
	"github.com/hongminglow/staffly-be/internal/models/dto"
	"github.com/hongminglow/staffly-be/internal/service"
)

const tokenCookie = "token"

// AuthHandler issues and clears access tokens.
type AuthHandler struct {
	tokens     *service.Tokens
	production bool
}

// NewAuthHandler constructs the handler. production marks cookies Secure and
// SameSite=None for cross-site frontends.
func NewAuthHandler(tokens *service.Tokens, production bool) *AuthHandler {
	return &AuthHandler{tokens: tokens, production: production}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /jwt", h.issue)
	mux.HandleFunc("POST /jwt/logout", h.logout)
}

func (h *AuthHandler) issue(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := respond.Decode(w, r, &req); err != nil {
		respond.FromError(w, r, err)
		return
	}
	token, expiresAt, err := h.tokens.Issue(r.Context(), req)
	if err != nil {
		respond.FromError(w, r, err)
		return
	}
	http.SetCookie(w, h.cookie(token, expiresAt))
	respond.JSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	token, _ := bearerToken(r)
	if token == "" {
		if c, err := r.Cookie(tokenCookie); err == nil {
			token = c.Value
		}
	}
	if err := h.tokens.Logout(r.Context(), token); err != nil {
		respond.FromError(w, r, err)
		return
	}
	cleared := h.cookie("", time.Unix(0, 0))
	cleared.MaxAge = -1
	http.SetCookie(w, cleared)
	respond.JSON(w, http.StatusOK, dto.LogoutResponse{Success: true})
}

func (h *AuthHandler) cookie(value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     tokenCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if h.production {
		c.Secure = true
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}

func bearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
