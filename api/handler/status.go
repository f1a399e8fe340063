package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/proflens/proflens/service"
)

// Status returns a handler for GET /api/v1/status.
//
// Capability flags are derived from configuration alone, so repeated calls
// with unchanged configuration return the same flags.
func Status(svc *service.Supervisor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Status())
	}
}

// Debug returns a handler for GET /api/v1/debug. Secrets are reported only
// as presence booleans.
func Debug(svc *service.Supervisor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Debug())
	}
}
