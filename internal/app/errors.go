package app

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"meeting-service/internal/models"
	"meeting-service/internal/utils"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var errorStatuses = []struct {
	target error
	status int
	code   string
}{
	{models.ValidationError, http.StatusBadRequest, "validation_error"},
	{models.StateError, http.StatusBadRequest, "state_error"},
	{models.UnauthenticatedError, http.StatusUnauthorized, "unauthenticated"},
	{models.AuthorizationError, http.StatusForbidden, "authorization_error"},
	{models.NotFoundError, http.StatusNotFound, "not_found"},
	{models.ConflictError, http.StatusBadRequest, "conflict"},
}

// presentError writes the error response and reports whether err was non nil.
func presentError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			c.JSON(e.status, gin.H{"error": errorBody{Code: e.code, Message: err.Error()}})
			return true
		}
	}

	ctx := c.Request.Context()
	utils.LoggerFromContext(ctx).ErrorContext(ctx, "unexpected error", "error", err.Error(),
		"method", c.Request.Method, "path", c.FullPath())
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": errorBody{
		Code:    "internal_error",
		Message: "internal server error",
	}})
	return true
}

func bindingError(err error) error {
	return errors.Wrap(models.ValidationError, err.Error())
}
