package app

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"meeting-service/internal/models"
)

// POST /api/meetings
func (a *App) RequestMeetingHandler(c *gin.Context) {
	actor, err := identityFromRequest(c)
	if presentError(c, err) {
		return
	}
	var payload CreateMeetingInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		presentError(c, bindingError(err))
		return
	}
	input, err := payload.toModel()
	if presentError(c, err) {
		return
	}

	meeting, err := a.Meetings.RequestMeeting(c.Request.Context(), actor, input)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meeting_id": meeting.ID, "meeting": adaptMeeting(meeting)})
}

// PUT /api/meetings/:id/accept
func (a *App) AcceptMeetingHandler(c *gin.Context) {
	actor, err := identityFromRequest(c)
	if presentError(c, err) {
		return
	}
	meetingID, err := resourceID(c, models.ErrMeetingNotFound)
	if presentError(c, err) {
		return
	}
	meeting, err := a.Meetings.AcceptMeeting(c.Request.Context(), actor, meetingID)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, adaptMeeting(meeting))
}

// PUT /api/meetings/:id/decline
// The body {"reason": "..."} is optional.
func (a *App) DeclineMeetingHandler(c *gin.Context) {
	actor, err := identityFromRequest(c)
	if presentError(c, err) {
		return
	}
	meetingID, err := resourceID(c, models.ErrMeetingNotFound)
	if presentError(c, err) {
		return
	}
	var payload DeclineInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			presentError(c, bindingError(err))
			return
		}
	}

	meeting, err := a.Meetings.DeclineMeeting(c.Request.Context(), actor, meetingID, payload.Reason)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, adaptMeeting(meeting))
}

// PUT /api/meetings/:id/cancel
func (a *App) CancelMeetingHandler(c *gin.Context) {
	actor, err := identityFromRequest(c)
	if presentError(c, err) {
		return
	}
	meetingID, err := resourceID(c, models.ErrMeetingNotFound)
	if presentError(c, err) {
		return
	}
	meeting, err := a.Meetings.CancelMeeting(c.Request.Context(), actor, meetingID)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, adaptMeeting(meeting))
}

// GET /api/meetings/:id
func (a *App) GetMeetingHandler(c *gin.Context) {
	actor, err := identityFromRequest(c)
	if presentError(c, err) {
		return
	}
	meetingID, err := resourceID(c, models.ErrMeetingNotFound)
	if presentError(c, err) {
		return
	}
	meeting, err := a.Meetings.GetMeeting(c.Request.Context(), actor, meetingID)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, adaptMeeting(meeting))
}

// GET /api/meetings?status=requested,accepted&type=&role=requestor|recipient&from=&to=&user_id=
func (a *App) ListMeetingsHandler(c *gin.Context) {
	actor, err := identityFromRequest(c)
	if presentError(c, err) {
		return
	}
	var params struct {
		Status string `form:"status"`
		Type   string `form:"type"`
		Role   string `form:"role" binding:"omitempty,oneof=requestor recipient"`
		UserID string `form:"user_id"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		presentError(c, bindingError(err))
		return
	}

	filters := models.MeetingFilters{
		UserID:      params.UserID,
		MeetingType: params.Type,
		Role:        models.ParticipantRole(params.Role),
	}
	if params.Status != "" {
		for _, raw := range strings.Split(params.Status, ",") {
			status, err := models.MeetingStatusFromString(strings.TrimSpace(raw))
			if presentError(c, err) {
				return
			}
			filters.Statuses = append(filters.Statuses, status)
		}
	}
	if filters.From, err = optionalDate(c, "from"); presentError(c, err) {
		return
	}
	if filters.To, err = optionalDate(c, "to"); presentError(c, err) {
		return
	}

	meetings, err := a.Meetings.ListMeetings(c.Request.Context(), actor, filters)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"meetings": mapSlice(meetings, adaptMeeting)})
}

// POST /api/meetings/:id/feedback
func (a *App) SubmitFeedbackHandler(c *gin.Context) {
	actor, err := identityFromRequest(c)
	if presentError(c, err) {
		return
	}
	meetingID, err := resourceID(c, models.ErrMeetingNotFound)
	if presentError(c, err) {
		return
	}
	var payload FeedbackInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		presentError(c, bindingError(err))
		return
	}

	result, err := a.Feedback.SubmitFeedback(c.Request.Context(), actor, models.Feedback{
		MeetingID:      meetingID,
		SuccessRating:  payload.SuccessRating,
		PlatformRating: payload.PlatformRating,
		Comments:       payload.Comments,
	})
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusCreated, adaptFeedbackResult(result))
}
