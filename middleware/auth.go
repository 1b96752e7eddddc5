// api/middleware/auth.go

package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	logger "github.com/alcaldia-digital/ausentismo/api/logging"
	"github.com/alcaldia-digital/ausentismo/api/model"
)

// Auth validates the bearer token and injects the caller's identity
// into the gin context: callerID, callerUsername, callerUnitID, and
// the role resolved at token issue time. Decision guards re-check the
// directory bindings and never rely on the token role alone.
func Auth(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := &model.TokenClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			logger.Warn("Rejected bearer token", zap.Error(err), zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set("callerID", claims.UserID)
		c.Set("callerUsername", claims.Username)
		c.Set("callerRole", claims.Role)
		if claims.UnitID != nil {
			c.Set("callerUnitID", *claims.UnitID)
		}

		c.Next()
	}
}

// AdminOnly gates a route group on the administrator allow-list,
// re-checked against the live configuration rather than the token.
func AdminOnly(isAdmin func(username string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, _ := c.Get("callerUsername")
		handle, _ := username.(string)
		if !isAdmin(handle) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}
