package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"veilmarket/internal/models"
	"veilmarket/utils"
)

// Gin context keys set by the auth middleware
const (
	CtxViewerID   = "viewer_id"
	CtxViewerRole = "viewer_role"
)

// Authenticate validates a bearer token and stores the caller's account id
// (sub) and role claims on the context. With allowAnonymous the request
// proceeds as a public viewer when no token is presented; otherwise a
// missing or invalid token is a 401.
func Authenticate(jwtSecret string, allowAnonymous bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if allowAnonymous {
				c.Set(CtxViewerID, "")
				c.Set(CtxViewerRole, models.RolePublic)
				c.Next()
				return
			}
			utils.JSONError(c, http.StatusUnauthorized, nil, "missing bearer token")
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			utils.JSONError(c, http.StatusUnauthorized, err, "invalid token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, nil, "invalid token claims")
			c.Abort()
			return
		}
		sub, _ := claims["sub"].(string)
		if sub == "" {
			utils.JSONError(c, http.StatusUnauthorized, nil, "token has no subject")
			c.Abort()
			return
		}

		role := models.RoleUser
		if claimed, _ := claims["role"].(string); claimed == string(models.RoleAdmin) {
			role = models.RoleAdmin
		}

		c.Set(CtxViewerID, sub)
		c.Set(CtxViewerRole, role)
		c.Next()
	}
}

// RequireAdmin rejects callers whose token does not carry the admin role.
// It must run after Authenticate.
func RequireAdmin(c *gin.Context) {
	if Role(c) != models.RoleAdmin {
		utils.JSONError(c, http.StatusForbidden, nil, "administrator access required")
		c.Abort()
		return
	}
	c.Next()
}

// ViewerID returns the authenticated caller's account id, if any
func ViewerID(c *gin.Context) string {
	id, _ := c.Get(CtxViewerID)
	s, _ := id.(string)
	return s
}

// Role returns the authenticated caller's role, defaulting to public
func Role(c *gin.Context) models.Role {
	v, ok := c.Get(CtxViewerRole)
	if !ok {
		return models.RolePublic
	}
	role, ok := v.(models.Role)
	if !ok {
		return models.RolePublic
	}
	return role
}
