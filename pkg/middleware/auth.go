package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"greenmart/internal/data/entity"
	"greenmart/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("insufficient permissions")
)

type TokenValidator interface {
	Validate(token string) (int64, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id int64) (*entity.User, error)
}

// Guard turns an Authorization header into the calling user.
type Guard struct {
	tokens TokenValidator
	users  UserFinder
	log    *zap.Logger
}

func NewGuard(tokens TokenValidator, users UserFinder, log *zap.Logger) *Guard {
	return &Guard{
		tokens: tokens,
		users:  users,
		log:    log.With(zap.String("middleware", "auth")),
	}
}

// Resolve returns the active user the header's bearer token belongs to, or
// nil when there is none. Only store failures are reported as errors.
func (g *Guard) Resolve(ctx context.Context, header string) (*entity.User, error) {
	token, ok := bearerToken(header)
	if !ok {
		return nil, nil
	}

	userID, err := g.tokens.Validate(token)
	if err != nil {
		g.log.Debug("Rejected bearer token", zap.Error(err))
		return nil, nil
	}

	user, err := g.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, nil
	}

	return user, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func RequireAuthenticated(user *entity.User) (*entity.User, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func RequireRole(user *entity.User, role entity.UserRole) (*entity.User, error) {
	user, err := RequireAuthenticated(user)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, ErrForbidden
	}
	return user, nil
}

// Authenticate resolves the caller on every request and stores it in the
// request context. Anonymous requests pass through untouched.
func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.Resolve(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			g.log.Error("Failed to resolve user", zap.Error(err))
			utils.ResponseInternalError(w, "Internal server error")
			return
		}

		if user != nil {
			r = r.WithContext(utils.SetUserContext(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

// Authenticated rejects requests without a resolved user.
func Authenticated(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := utils.GetUserFromContext(r.Context())
			if _, err := RequireAuthenticated(user); err != nil {
				logger.Debug("Unauthenticated request", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Not authenticated")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Role rejects requests whose user does not have role.
func Role(role entity.UserRole, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := utils.GetUserFromContext(r.Context())
			_, err := RequireRole(user, role)
			switch {
			case errors.Is(err, ErrUnauthenticated):
				utils.ResponseUnauthorized(w, "Not authenticated")
				return
			case errors.Is(err, ErrForbidden):
				logger.Warn("Role check failed",
					zap.Int64("user_id", user.ID),
					zap.String("role", string(user.Role)),
					zap.String("required", string(role)),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseForbidden(w, string(role)+" access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
