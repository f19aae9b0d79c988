package app

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/spendwell/spendwell/internal/config"
	"github.com/spendwell/spendwell/pkg/google"
	"github.com/spendwell/spendwell/pkg/user"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Resolve the caller's identity into the request context. The X-User-Id
	// header wins; otherwise the Google sign-in cookie is used. Unknown uids
	// are created on first sight (implicit sign-in, single-user deployments).
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()

			uid := req.Header.Get("X-User-Id")
			if uid == "" {
				if cookie, err := req.Cookie(google.UserCookieName); err == nil {
					uid = cookie.Value
				}
			}

			if strings.TrimSpace(uid) != "" {
				u, err := deps.UserService.FindOrCreate(ctx, user.User{Uid: uid})
				if err != nil {
					log.Errorf("failed to resolve user %s: %v", uid, err)
					http.Error(w, "failed to resolve user", http.StatusInternalServerError)
					return
				}
				log.Tracef("request user: %s", u.Uid)
				ctx = user.WithUser(ctx, u)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
