package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salescrm/logs"
	"salescrm/services"
)

// Error writes the status and stable message for a service error. Upstream
// failures are logged with the request path before the 500 goes out.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No follow-up date to dismiss"})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case errors.Is(err, services.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	default:
		logs.Log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
