package user

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const UserKey contextKey = "user"

// ErrNoUser is returned when a request context carries no signed-in user.
var ErrNoUser = errors.New("user not found")

// WithUser returns a context carrying u as the signed-in user.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, UserKey, u)
}

// CurrentUser returns the signed-in user from the context.
func CurrentUser(ctx context.Context) (User, error) {
	u, ok := ctx.Value(UserKey).(User)
	if !ok {
		log.Trace("no user in request context")
		return User{}, ErrNoUser
	}
	return u, nil
}

// CurrentId returns the signed-in user's numeric id from the context.
func CurrentId(ctx context.Context) (int, error) {
	u, err := CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return u.Id, nil
}
