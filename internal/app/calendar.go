package app

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"meeting-service/internal/models"
)

var errCalendarNotConfigured = errors.Wrap(models.ValidationError, "google calendar is not configured")

// GET /api/calendar/auth
// Starts the consent flow whose token is later passed to the import endpoint.
func (a *App) GoogleAuthHandler(c *gin.Context) {
	actor, err := identityFromRequest(c)
	if presentError(c, err) {
		return
	}
	if a.OAuth == nil {
		presentError(c, errCalendarNotConfigured)
		return
	}

	state := fmt.Sprintf("user_%s_%s", actor.UserID, uuid.NewString())
	c.JSON(http.StatusOK, gin.H{
		"auth_url": a.OAuth.AuthCodeURL(state),
		"state":    state,
	})
}

// GET /oauth2callback
func (a *App) GoogleOAuth2CallbackHandler(c *gin.Context) {
	if a.OAuth == nil {
		presentError(c, errCalendarNotConfigured)
		return
	}
	code := c.Query("code")
	if code == "" {
		presentError(c, errors.Wrap(models.ValidationError, "authorization code required"))
		return
	}

	token, err := a.OAuth.Exchange(c.Request.Context(), code)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Authorization successful",
		"state":   c.Query("state"),
		"token":   token,
	})
}

// POST /api/users/:id/unavailability/google-import
// The Google token obtained from the consent flow is read from X-Google-Token.
func (a *App) GoogleImportHandler(c *gin.Context) {
	actor, err := identityFromRequest(c)
	if presentError(c, err) {
		return
	}
	token := c.GetHeader("X-Google-Token")
	if token == "" {
		presentError(c, errors.Wrap(models.ValidationError, "Google token required in X-Google-Token header"))
		return
	}
	var payload GoogleImportInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		presentError(c, bindingError(err))
		return
	}

	imported, err := a.Unavailability.ImportBusyIntervals(c.Request.Context(), actor, c.Param("id"),
		token, payload.From, payload.To)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"unavailability": mapSlice(imported, adaptUnavailability),
		"count":          len(imported),
	})
}
