package services

import (
	"context"
	"time"

	"salescrm/logs"
	"salescrm/model"

	"github.com/sirupsen/logrus"
)

type DismissalService struct {
	leads      LeadStore
	dismissals DismissalStore
}

func NewDismissalService(leads LeadStore, dismissals DismissalStore) *DismissalService {
	return &DismissalService{leads: leads, dismissals: dismissals}
}

// DismissOne acknowledges the lead's reminder for its current due date only.
// A later change of the due date brings the reminder back.
func (s *DismissalService) DismissOne(ctx context.Context, user model.AuthUser, leadID string, now time.Time) error {
	lead, err := s.leads.GetLead(ctx, leadID)
	if err != nil {
		return upstream("get lead", err)
	}
	if lead == nil {
		return ErrNotFound
	}
	if !CanAccessLead(user, lead) {
		return ErrAccessDenied
	}
	if lead.NextFollowUpDate == nil {
		return ErrInvalidState
	}
	if err := s.dismissals.UpsertDismissal(ctx, user.ID, lead.ID, *lead.NextFollowUpDate, now); err != nil {
		return upstream("upsert dismissal", err)
	}
	return nil
}

// DismissAll dismisses every reminder the user would currently see. Records
// are written independently; the count covers those stored before any error.
func (s *DismissalService) DismissAll(ctx context.Context, user model.AuthUser, now time.Time) (int, error) {
	_, tomorrow := DayBounds(now)
	leads, err := s.leads.FindActiveLeadsWithDueDate(ctx, reminderCandidates(user, tomorrow))
	if err != nil {
		return 0, upstream("find reminder leads", err)
	}
	if len(leads) == 0 {
		return 0, nil
	}

	records := make([]model.DismissedReminder, 0, len(leads))
	for _, lead := range leads {
		if lead.NextFollowUpDate == nil {
			continue
		}
		records = append(records, model.DismissedReminder{
			UserID:           user.ID,
			SalesEntryID:     lead.ID,
			DismissedForDate: *lead.NextFollowUpDate,
			DismissedAt:      now,
		})
	}

	written, err := s.dismissals.UpsertDismissals(ctx, records)
	if err != nil {
		logs.Log.WithFields(logrus.Fields{
			"user_id": user.ID,
			"written": written,
			"total":   len(records),
		}).WithError(err).Warn("dismiss-all stopped early")
		return written, upstream("upsert dismissals", err)
	}
	return written, nil
}
