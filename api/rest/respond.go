package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sawara-dev/ashiato/apperr"
	mw "github.com/sawara-dev/ashiato/middleware"
	"github.com/sawara-dev/ashiato/model"
	"github.com/sawara-dev/ashiato/user"
	"go.uber.org/zap"
)

// abortError maps application error kinds to their fixed responses.
// Everything here is recoverable at the boundary; nothing is fatal to the
// process.
func abortError(c *gin.Context, log *zap.Logger, err error) {
	switch apperr.CodeOf(err) {
	case apperr.CodeAuthentication:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case apperr.CodeDenied:
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case apperr.CodeNotFound:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case apperr.CodeUnavailable:
		log.Error("dependency unavailable",
			zap.Error(err),
			zap.String("trace_id", mw.GetTraceID(c)),
		)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	default:
		log.Error("internal error",
			zap.Error(err),
			zap.String("trace_id", mw.GetTraceID(c)),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// currentUser resolves the authenticated viewer's user row. A session
// pointing at a user that no longer exists reads as an authentication
// failure, not a 404.
func currentUser(c *gin.Context, users *user.Service) (*model.User, error) {
	u, err := users.Get(c.Request.Context(), mw.GetUserID(c))
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return nil, apperr.Authentication("session user missing")
		}
		return nil, err
	}
	return u, nil
}
