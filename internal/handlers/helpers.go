package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkadmin/internal/apperrors"
	"linkadmin/internal/middleware"
)

// respondError maps the taxonomy onto HTTP. Anything outside it is a
// collaborator failure and comes back as storage-unavailable; details stay in
// the log, not the response.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, gin.H{
			"code":  appErr.Code,
			"error": appErr.Message,
			"cause": appErr.Cause,
		})
		return
	}
	log.Printf("[http] unexpected error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"code":  apperrors.ErrStorageUnavailable.Code,
		"error": apperrors.ErrStorageUnavailable.Message,
		"cause": apperrors.ErrStorageUnavailable.Cause,
	})
}

func currentEmail(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.ContextEmailKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok && email != ""
}
