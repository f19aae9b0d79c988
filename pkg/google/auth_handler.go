package google

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/spendwell/spendwell/internal/config"
	"github.com/spendwell/spendwell/internal/rest"
	"github.com/spendwell/spendwell/pkg/user"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// UserCookieName carries the signed-in uid between requests. The identity
// middleware reads it when no X-User-Id header is present.
const UserCookieName = "spendwell_uid"

type googleAuthRedirect struct {
	RedirectUrl string `json:"redirectUrl"`
}

// GoogleAuth implements sign-in with Google. A successful callback resolves
// the Google profile to a local user (creating it on first sign-in) and sets
// the identity cookie.
type GoogleAuth struct {
	db          *sql.DB
	userService user.Service
	oauthConfig *oauth2.Config
}

func NewGoogleAuth(db *sql.DB, userService user.Service, cfg config.Application) *GoogleAuth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientId,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.Host + "/api/auth/google/callback",
		Scopes:       []string{oauth2api.UserinfoEmailScope, oauth2api.UserinfoProfileScope},
	}

	return &GoogleAuth{db: db, userService: userService, oauthConfig: oauthConfig}
}

func (g *GoogleAuth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	stateNonce := uuid.New().String()
	finalUrl := r.URL.Query().Get("finalUrl")

	// store nonce for callback verification
	_, err := g.db.ExecContext(r.Context(), "INSERT INTO google_auth (nonce) VALUES ($1)", stateNonce)
	if err != nil {
		log.Errorf("failed to store Google auth nonce: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		rest.WriteError(w, rest.ErrorResponse{Error: "Failed to handle Google authentication"})
		return
	}

	log.Tracef("Redirecting to Google auth URL with nonce: %s", stateNonce)
	u := g.oauthConfig.AuthCodeURL(finalUrl+"|"+stateNonce, oauth2.AccessTypeOffline)

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(googleAuthRedirect{RedirectUrl: u}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (g *GoogleAuth) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	state := r.FormValue("state")

	parts := strings.SplitN(state, "|", 2)
	if len(parts) != 2 {
		http.Error(w, "invalid state", http.StatusBadRequest)
		return
	}
	finalUrl := parts[0]
	nonce := parts[1]
	if finalUrl == "" {
		finalUrl = "/"
	}

	result, err := g.db.ExecContext(r.Context(), "DELETE FROM google_auth WHERE nonce = $1", nonce)
	if err != nil {
		log.Errorf("failed to verify Google auth nonce: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		log.Warnf("Google auth callback with unknown nonce: %s", nonce)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	token, err := g.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		log.Errorf("unable to exchange code for token: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	info, err := g.fetchUserinfo(r.Context(), token)
	if err != nil {
		log.Error(err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	signedIn, err := g.userService.FindOrCreate(r.Context(), user.User{
		Uid:         "google:" + info.Id,
		Username:    info.Email,
		DisplayName: info.Name,
		PhotoUrl:    info.Picture,
	})
	if err != nil {
		log.Errorf("unable to resolve Google user: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	_, err = g.db.ExecContext(r.Context(),
		`INSERT INTO google_tokens (user_id, access_token, refresh_token, expiry)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id) DO UPDATE
			SET access_token = EXCLUDED.access_token,
			    refresh_token = EXCLUDED.refresh_token,
			    expiry = EXCLUDED.expiry`,
		signedIn.Id, token.AccessToken, token.RefreshToken, token.Expiry.Unix())
	if err != nil {
		log.Errorf("unable to store Google token for user %d: %v", signedIn.Id, err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     UserCookieName,
		Value:    signedIn.Uid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	log.Debugf("user %s signed in with Google", signedIn.Uid)
	http.Redirect(w, r, finalUrl+"?success=true", http.StatusFound)
}

func (g *GoogleAuth) OAuthLogout(w http.ResponseWriter, r *http.Request) {
	userId, err := user.CurrentId(r.Context())
	if err != nil {
		log.Error("unable to retrieve current user: ", err)
		http.Error(w, "unable to retrieve current user", http.StatusInternalServerError)
		return
	}

	if _, err := g.db.ExecContext(r.Context(), "DELETE FROM google_tokens WHERE user_id = $1", userId); err != nil {
		log.Errorf("failed to delete Google token for user %d: %v", userId, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		rest.WriteError(w, rest.ErrorResponse{Error: "Failed to handle Google authentication"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:   UserCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (g *GoogleAuth) fetchUserinfo(ctx context.Context, token *oauth2.Token) (*oauth2api.Userinfo, error) {
	service, err := oauth2api.NewService(ctx, option.WithTokenSource(g.oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google userinfo service: %w", err)
	}
	info, err := service.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to fetch Google userinfo: %w", err)
	}
	return info, nil
}
