package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// GoogleAuth exchanges OAuth authorization codes for tokens on behalf of the
// frontend, so the client secret never leaves the backend.
type GoogleAuth struct {
	config *oauth2.Config
	logger *slog.Logger
}

func NewGoogleAuth(config *oauth2.Config, logger *slog.Logger) *GoogleAuth {
	return &GoogleAuth{
		config: config,
		logger: logger,
	}
}

// Exchange handles POST /auth with {"code": ..., "redirect_uri": ...}.
func (g *GoogleAuth) Exchange(w http.ResponseWriter, r *http.Request) {
	if g.config == nil || g.config.ClientID == "" {
		Error(w, http.StatusInternalServerError, "oauth is not configured", errors.New("missing google client credentials"))
		return
	}

	var req struct {
		Code        string `json:"code"`
		RedirectURI string `json:"redirect_uri"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "could not decode request body", err)
		return
	}
	if req.Code == "" {
		Error(w, http.StatusBadRequest, "missing authorization code", errors.New("request needs a code field"))
		return
	}

	config := *g.config
	if req.RedirectURI != "" {
		config.RedirectURL = req.RedirectURI
	}

	token, err := config.Exchange(r.Context(), req.Code)
	if err != nil {
		g.logger.Error("token exchange failed", slog.String("error", err.Error()))
		Error(w, http.StatusUnauthorized, "token exchange failed", err)
		return
	}

	JSON(w, http.StatusOK, struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token,omitempty"`
		TokenType    string `json:"token_type"`
		ExpiresIn    int64  `json:"expires_in"`
	}{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresIn:    int64(time.Until(token.Expiry).Seconds()),
	})
}
