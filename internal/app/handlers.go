package app

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"meeting-service/internal/models"
	"meeting-service/internal/usecases"
)

// GET /api/users/:id/availability
func (a *App) GetAvailabilityHandler(c *gin.Context) {
	windows, err := a.Availability.GetAvailability(c.Request.Context(), c.Param("id"))
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": mapSlice(windows, adaptAvailabilityWindow)})
}

// PUT /api/users/:id/availability
// The body is the full desired set of windows for the user.
func (a *App) ReplaceAvailabilityHandler(c *gin.Context) {
	actor, err := identityFromRequest(c)
	if presentError(c, err) {
		return
	}
	userID := c.Param("id")

	var payload []AvailabilityWindowInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		presentError(c, bindingError(err))
		return
	}
	windows := make([]models.AvailabilityWindow, 0, len(payload))
	for _, input := range payload {
		w, err := input.toModel(userID)
		if presentError(c, err) {
			return
		}
		windows = append(windows, w)
	}

	saved, err := a.Availability.ReplaceAvailability(c.Request.Context(), actor, userID, windows)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": mapSlice(saved, adaptAvailabilityWindow)})
}

// DELETE /api/availability/:id
func (a *App) DeleteAvailabilityWindowHandler(c *gin.Context) {
	actor, err := identityFromRequest(c)
	if presentError(c, err) {
		return
	}
	windowID, err := resourceID(c, models.ErrWindowNotFound)
	if presentError(c, err) {
		return
	}
	err = a.Availability.DeleteAvailabilityWindow(c.Request.Context(), actor, windowID)
	if presentError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/users/:id/slots?date=YYYY-MM-DD[&day_of_week=N][&duration=30]
func (a *App) GetSlotsHandler(c *gin.Context) {
	var params struct {
		Date      string `form:"date" binding:"required,datetime=2006-01-02"`
		DayOfWeek *int   `form:"day_of_week" binding:"omitempty,min=0,max=6"`
		Duration  int    `form:"duration" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		presentError(c, bindingError(err))
		return
	}
	date, err := models.ParseDate(params.Date)
	if presentError(c, err) {
		return
	}

	input := usecases.GenerateSlotsInput{
		UserID:   c.Param("id"),
		Date:     date,
		Duration: time.Duration(params.Duration) * time.Minute,
	}
	if params.DayOfWeek != nil {
		day := time.Weekday(*params.DayOfWeek)
		input.DayOfWeek = &day
	}

	result, err := a.Slots.GenerateSlots(c.Request.Context(), input)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, adaptSlotsResult(result))
}

// GET /api/users/:id/unavailability[?from=RFC3339&to=RFC3339]
func (a *App) ListUnavailabilityHandler(c *gin.Context) {
	actor, err := identityFromRequest(c)
	if presentError(c, err) {
		return
	}
	from, err := optionalTime(c, "from")
	if presentError(c, err) {
		return
	}
	to, err := optionalTime(c, "to")
	if presentError(c, err) {
		return
	}

	blackouts, err := a.Unavailability.ListUnavailabilities(c.Request.Context(), actor, c.Param("id"), from, to)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"unavailability": mapSlice(blackouts, adaptUnavailability)})
}

// POST /api/users/:id/unavailability
func (a *App) CreateUnavailabilityHandler(c *gin.Context) {
	actor, err := identityFromRequest(c)
	if presentError(c, err) {
		return
	}
	var payload UnavailabilityInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		presentError(c, bindingError(err))
		return
	}

	blackout, err := a.Unavailability.CreateUnavailability(c.Request.Context(), actor, models.Unavailability{
		UserID:        c.Param("id"),
		StartDateTime: payload.StartDateTime,
		EndDateTime:   payload.EndDateTime,
		Reason:        payload.Reason,
	})
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusCreated, adaptUnavailability(blackout))
}

// DELETE /api/unavailability/:id
func (a *App) DeleteUnavailabilityHandler(c *gin.Context) {
	actor, err := identityFromRequest(c)
	if presentError(c, err) {
		return
	}
	blackoutID, err := resourceID(c, models.ErrBlackoutNotFound)
	if presentError(c, err) {
		return
	}
	err = a.Unavailability.DeleteUnavailability(c.Request.Context(), actor, blackoutID)
	if presentError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// resourceID reads the :id path parameter of a stored resource. Ids are
// UUIDs, so anything else cannot name an existing row.
func resourceID(c *gin.Context, notFound error) (string, error) {
	id := c.Param("id")
	if err := uuid.Validate(id); err != nil {
		return "", notFound
	}
	return id, nil
}

func optionalTime(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, errors.Wrapf(models.ValidationError, "invalid %s, expected RFC3339", name)
	}
	return &t, nil
}

func optionalDate(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := models.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func mapSlice[T, U any](items []T, adapt func(T) U) []U {
	out := make([]U, len(items))
	for i, item := range items {
		out[i] = adapt(item)
	}
	return out
}
