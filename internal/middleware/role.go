package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	apperrors "taxinator/internal/errors"
	"taxinator/internal/models"
)

const roleHeader = "X-User-Role"

// roleContextKey is where the resolved role is stored on the Gin context.
const roleContextKey = "userRole"

// RequireRole returns a middleware that resolves the caller's role from the
// X-User-Role header and checks it against the allowed set. A missing header
// is an authentication failure (401), an unknown label a bad request (400),
// and a known-but-disallowed role a forbidden (403) — three distinct
// conditions, per the authorization contract.
func RequireRole(allowed ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		label := c.GetHeader(roleHeader)
		if label == "" {
			abortWithAppError(c, apperrors.ErrRoleMissing)
			return
		}

		role, ok := models.ParseRole(label)
		if !ok {
			abortWithAppError(c, apperrors.WithMessage(apperrors.ErrRoleUnknown,
				fmt.Sprintf("Unrecognized user role %q", label)))
			return
		}

		for _, candidate := range allowed {
			if role == candidate {
				c.Set(roleContextKey, role)
				c.Next()
				return
			}
		}

		abortWithAppError(c, apperrors.WithMessage(apperrors.ErrForbidden,
			fmt.Sprintf("Role %q is not permitted for this operation", role)))
	}
}

// ResolvedRole returns the role stored by RequireRole, if any.
func ResolvedRole(c *gin.Context) (models.UserRole, bool) {
	value, exists := c.Get(roleContextKey)
	if !exists {
		return "", false
	}
	return value.(models.UserRole), true
}

// abortWithAppError writes the standard error envelope and stops the chain.
func abortWithAppError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
