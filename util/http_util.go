// api/util/http_util.go
package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	app_errors "github.com/alcaldia-digital/ausentismo/api/errors"
	logger "github.com/alcaldia-digital/ausentismo/api/logging"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// RespondWithDetailedError includes a diagnostic detail payload next
// to the message, used for denied decisions so support can see which
// binding was expected.
func RespondWithDetailedError(c *gin.Context, code int, message string, err error, detail interface{}) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message, "detail": detail})
}

// CallerID returns the authenticated user's id from the gin context,
// as set by the auth middleware.
func CallerID(c *gin.Context) (uint, error) {
	v, exists := c.Get("callerID")
	if !exists {
		return 0, app_errors.ErrUnauthorized
	}
	id, ok := v.(uint)
	if !ok {
		return 0, app_errors.ErrUnauthorized
	}
	return id, nil
}

// CallerUsername returns the authenticated user's login handle.
func CallerUsername(c *gin.Context) string {
	v, exists := c.Get("callerUsername")
	if !exists {
		return ""
	}
	s, _ := v.(string)
	return s
}

// CallerRole returns the role resolved at login time. Decision guards
// never trust it; they re-resolve bindings from the directory.
func CallerRole(c *gin.Context) string {
	v, exists := c.Get("callerRole")
	if !exists {
		return ""
	}
	s, _ := v.(string)
	return s
}
