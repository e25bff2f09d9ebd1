package middleware

import (
	"context"
	"strconv"
	"strings"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/domain/services"
	"sk-barangay-service/internal/error/code"
	"sk-barangay-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by Authentication
const (
	ContextUserID   = "userID"
	ContextPosition = "position"
	ContextClaims   = "claims"
)

// routes a token with a pending password change may still use, matched
// against the route suffix and only for the token owner's own id
var passwordChangeRoutes = map[string]string{
	"/users/:id/change-password": "PUT",
	"/users/:id":                 "GET",
}

// AccountChecker reports whether the account behind a token may still act
type AccountChecker interface {
	CheckActive(ctx context.Context, id uint) error
}

// Authentication validates the bearer token, re-checks the account and stores
// the claims. A nil accounts skips the account check.
func Authentication(jwtService services.InterfaceJWTService, accounts AccountChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			response.Unauthorized(c, "Authorization header format must be Bearer {token}")
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Unauthorized(c, "")
			c.Abort()
			return
		}

		if accounts != nil {
			if err := accounts.CheckActive(c.Request.Context(), claims.UserID); err != nil {
				if code.Is(err, code.ErrUserNotFound) {
					response.Unauthorized(c, "")
				} else {
					response.Error(c, err, "Server error checking account")
				}
				c.Abort()
				return
			}
		}

		if claims.MustChangePassword && !allowedDuringPasswordChange(c, claims.UserID) {
			response.Fail(c, code.ErrPasswordChangeRequired)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextPosition, claims.Position)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

func allowedDuringPasswordChange(c *gin.Context, userID uint) bool {
	for suffix, method := range passwordChangeRoutes {
		if c.Request.Method == method && strings.HasSuffix(c.FullPath(), suffix) {
			return isSelf(c, userID)
		}
	}
	return false
}

func isSelf(c *gin.Context, userID uint) bool {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return err == nil && uint(id) == userID
}

// RequireAdmin rejects callers whose token is not an admin token
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextPosition) != models.PositionAdmin {
			response.FailWithMessage(c, code.ErrForbidden, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin lets admins through and everyone else only for their own :id
func RequireSelfOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextPosition) != models.PositionAdmin && !isSelf(c, ActorID(c)) {
			response.Fail(c, code.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActorID returns the authenticated user id, or 0 outside Authentication
func ActorID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// Claims returns the token claims stored by Authentication
func Claims(c *gin.Context) *services.JWTClaims {
	if v, ok := c.Get(ContextClaims); ok {
		if claims, ok := v.(*services.JWTClaims); ok {
			return claims
		}
	}
	return nil
}
