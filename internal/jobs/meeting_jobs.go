package jobs

import (
	"context"
)

const (
	JobSendReminders  = "send_meeting_reminders"
	JobExpireRequests = "expire_stale_requests"
)

type meetingMaintainer interface {
	SendDueReminders(ctx context.Context) (int, error)
	ExpireStaleRequests(ctx context.Context) (int, error)
}

// RegisterMeetingJobs adds the reminder and expiry tasks to s.
func RegisterMeetingJobs(s *Scheduler, meetings meetingMaintainer, reminderCron, expiryCron string) error {
	if err := s.Register(JobSendReminders, reminderCron, func(ctx context.Context) error {
		_, err := meetings.SendDueReminders(ctx)
		return err
	}); err != nil {
		return err
	}

	return s.Register(JobExpireRequests, expiryCron, func(ctx context.Context) error {
		_, err := meetings.ExpireStaleRequests(ctx)
		return err
	})
}
