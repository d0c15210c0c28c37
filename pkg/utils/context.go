package utils

import (
	"context"

	"greenmart/internal/data/entity"
)

type contextKey string

const (
	UserKey contextKey = "user"
)

// SetUserContext stores the resolved caller on ctx.
func SetUserContext(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// GetUserFromContext returns the caller stored by the auth middleware, if any.
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserKey).(*entity.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	user, ok := GetUserFromContext(ctx)
	if !ok {
		return 0, false
	}
	return user.ID, true
}
