package middleware

import (
	"net/http"
	"strings"
	"time"

	"clubly/internal/shared/config"
	"clubly/internal/shared/utils/response"
	"clubly/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// RoleAdmin is the role claim that unlocks the admin routes
const RoleAdmin = "admin"

// Context keys set by the auth middlewares
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
	ContextRequestID = "request_id"

	HeaderRequestID = "X-Request-ID"
)

// JWTAuthWithConfig verifies access tokens issued by the identity provider
func JWTAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	log := logger.GetDefault()

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortJSON(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			response.AbortJSON(c, http.StatusUnauthorized, "authorization header format must be Bearer {token}")
			return
		}

		claims, err := parseAccessToken(tokenString, cfg.JWT.Secret)
		if err != nil {
			log.LogAuthFailure(c.Request.Context(), err.Error(), c.ClientIP())
			response.AbortJSON(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// RequireRole middleware checks if user has required role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return RequireRoles(requiredRole)
}

// RequireAdmin middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(RoleAdmin)
}

// RequireRoles middleware checks if user has any of the required roles
func RequireRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextUserRole)
		if !exists {
			response.AbortJSON(c, http.StatusUnauthorized, "user role not found in context")
			return
		}

		role, _ := userRole.(string)
		for _, required := range requiredRoles {
			if role == required {
				c.Next()
				return
			}
		}

		response.AbortJSON(c, http.StatusForbidden, "Insufficient permissions")
	}
}

// RequestLogger tags the request with an X-Request-ID and logs it once served
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)
		c.Set(ContextRequestID, requestID)

		c.Next()
		log.WithRequestID(requestID).LogHTTPRequest(c, time.Since(start))
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func parseAccessToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func setClaims(c *gin.Context, claims jwt.MapClaims) {
	c.Set(ContextUserID, claims["user_id"])
	c.Set(ContextUserEmail, claims["email"])
	c.Set(ContextUserRole, claims["role"])
}
