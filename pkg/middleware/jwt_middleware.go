package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"healthkeeper/internal/models/db_models"
	"healthkeeper/pkg/utils"
)

// Context keys set by the auth middleware.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxToken  = "token"
)

// UserResolver and SessionResolver are the two lookups the middleware needs;
// the repositories satisfy them.
type UserResolver interface {
	FindByID(ctx context.Context, id string) (*db_models.User, error)
}

type SessionResolver interface {
	FindActive(ctx context.Context, userID, token string) (*db_models.Session, error)
}

type AuthMiddleware struct {
	tokens   *utils.TokenManager
	users    UserResolver
	sessions SessionResolver
}

func NewAuthMiddleware(tokens *utils.TokenManager, users UserResolver, sessions SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, sessions: sessions}
}

// extractToken pulls the bearer token from the Authorization header, falling
// back to the "token" cookie.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie
	}
	return ""
}

// resolve runs the full four-step check: verify signature/expiry, resolve an
// active user, then require an active unexpired session row matching both
// the user and the exact token string. The two lookups are deliberately
// separate reads, not a transaction.
func (m *AuthMiddleware) resolve(ctx context.Context, tokenString string) (*db_models.User, error) {
	claims, err := m.tokens.Validate(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := m.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil || !user.IsActive {
		return nil, utils.ErrAccountInactive
	}

	session, err := m.sessions.FindActive(ctx, claims.UserID, tokenString)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if session == nil || !session.Valid(tokenString, time.Now()) {
		return nil, utils.ErrSessionExpired
	}

	return user, nil
}

// RequireAuth rejects the request unless a valid token backed by an active
// session is presented.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			utils.RespondError(c, http.StatusUnauthorized, "Access token required")
			c.Abort()
			return
		}

		user, err := m.resolve(c.Request.Context(), tokenString)
		if err != nil {
			utils.HandleServiceError(c, err)
			c.Abort()
			return
		}

		c.Set(CtxUserID, user.ID.String())
		c.Set(CtxRole, user.Role)
		c.Set(CtxToken, tokenString)
		c.Next()
	}
}

// OptionalAuth runs the same checks but never rejects; handlers see an
// anonymous request when anything fails.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		user, err := m.resolve(c.Request.Context(), tokenString)
		if err == nil {
			c.Set(CtxUserID, user.ID.String())
			c.Set(CtxRole, user.Role)
			c.Set(CtxToken, tokenString)
		}
		c.Next()
	}
}

// RoleMiddleware gates a route group to the given roles.
func RoleMiddleware(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}
		utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
		c.Abort()
	}
}
