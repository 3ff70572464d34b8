package models

type NotificationKind string

const (
	NotificationMeetingRequested NotificationKind = "meeting_requested"
	NotificationMeetingAccepted  NotificationKind = "meeting_accepted"
	NotificationMeetingDeclined  NotificationKind = "meeting_declined"
	NotificationMeetingCancelled NotificationKind = "meeting_cancelled"
	NotificationMeetingExpired   NotificationKind = "meeting_expired"
	NotificationMeetingReminder  NotificationKind = "meeting_reminder"
)

type NotificationPriority string

const (
	PriorityHigh   NotificationPriority = "high"
	PriorityNormal NotificationPriority = "normal"
	PriorityLow    NotificationPriority = "low"
)

// NotificationEvent is what the scheduling core hands to the external
// dispatcher. Delivery channels and templates are not its concern.
type NotificationEvent struct {
	RecipientUserID  string               `json:"recipient_user_id"`
	Kind             NotificationKind     `json:"kind"`
	TemplateVars     map[string]string    `json:"template_vars"`
	Priority         NotificationPriority `json:"priority"`
	RelatedMeetingID string               `json:"related_meeting_id"`
}

// MeetingNotification builds the event sent to recipientID about m.
func MeetingNotification(m Meeting, recipientID string, kind NotificationKind, priority NotificationPriority) NotificationEvent {
	vars := map[string]string{
		"title":        m.Title,
		"date":         m.Date.Format("2006-01-02"),
		"start_time":   m.StartTime.String(),
		"end_time":     m.EndTime.String(),
		"meeting_type": m.MeetingType,
		"requestor_id": m.RequestorID,
		"recipient_id": m.RecipientID,
	}
	if m.DeclineReason != nil {
		vars["decline_reason"] = *m.DeclineReason
	}
	return NotificationEvent{
		RecipientUserID:  recipientID,
		Kind:             kind,
		TemplateVars:     vars,
		Priority:         priority,
		RelatedMeetingID: m.ID,
	}
}
