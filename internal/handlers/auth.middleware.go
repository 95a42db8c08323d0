package handlers

import (
	"context"
	"strings"

	"github.com/payformhq/payform/internal/model"
	xhttp "github.com/payformhq/payform/pkg/http"
)

const authUserKey = "auth_user"

// TokenVerifier checks a bearer token and returns the subject user id.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// UserLoader resolves the authenticated user from storage.
type UserLoader interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// AuthMiddleware guards routes that require a registered user. The verified
// user is attached to the request context for handlers to read back.
type AuthMiddleware struct {
	tokens TokenVerifier
	users  UserLoader
}

func NewAuthMiddleware(tokens TokenVerifier, users UserLoader) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
	}
}

func (m *AuthMiddleware) Require(next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		header := string(ctx.Request.Header.Peek("Authorization"))
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(ctx, 401, "missing bearer token")
			return
		}

		userID, err := m.tokens.Verify(token)
		if err != nil {
			writeError(ctx, 401, "invalid or expired token")
			return
		}

		user, err := m.users.GetByID(ctx, userID)
		if err != nil {
			// A valid token for a user that no longer exists
			writeError(ctx, 401, "unknown user")
			return
		}

		ctx.SetUserValue(authUserKey, user)
		next(ctx)
	}
}

// authUser reads the user attached by AuthMiddleware.Require. Handlers behind
// the middleware can rely on it being present.
func authUser(ctx *xhttp.RequestCtx) *model.User {
	if u, ok := ctx.UserValue(authUserKey).(*model.User); ok {
		return u
	}
	return nil
}
