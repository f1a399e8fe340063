package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/proflens/proflens/models"
)

// filenameRe constrains artifact filenames before any filesystem access.
// Only a conservative character set is allowed; there is no slash, so path
// traversal is structurally impossible, and ".." is rejected explicitly as
// a second line of defence.
var filenameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ServeArtifact returns a handler for GET /<kind>/:filename that serves a
// single artifact type out of dir. The extension allowlist is per route:
// screenshots are .png, reports .html, analysis data .json.
func ServeArtifact(dir, ext string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("filename")
		if !validFilename(name, ext) {
			c.JSON(http.StatusBadRequest, models.AnalyzeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "invalid artifact filename",
				},
			})
			return
		}

		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			c.JSON(http.StatusNotFound, models.AnalyzeResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeNotFound,
					Message: "artifact not found",
				},
			})
			return
		}

		c.File(path)
	}
}

// validFilename checks the allowlist pattern and the required extension.
func validFilename(name, ext string) bool {
	if !filenameRe.MatchString(name) {
		return false
	}
	if strings.Contains(name, "..") {
		return false
	}
	return strings.HasSuffix(name, ext)
}
