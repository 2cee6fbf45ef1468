package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"salescrm/model"
)

type ReminderService struct {
	leads      LeadStore
	dismissals DismissalStore
}

func NewReminderService(leads LeadStore, dismissals DismissalStore) *ReminderService {
	return &ReminderService{leads: leads, dismissals: dismissals}
}

// GetReminders lists the user's overdue reminders followed by those due
// today, leaving out every (lead, due date) the user has dismissed.
func (s *ReminderService) GetReminders(ctx context.Context, user model.AuthUser, now time.Time) ([]model.Reminder, model.ReminderSummary, error) {
	today, tomorrow := DayBounds(now)

	var (
		candidates []model.SalesEntry
		dismissed  []model.DismissedReminder
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		candidates, err = s.leads.FindActiveLeadsWithDueDate(gctx, reminderCandidates(user, tomorrow))
		return upstream("find reminder leads", err)
	})
	g.Go(func() error {
		var err error
		dismissed, err = s.dismissals.FindDismissals(gctx, user.ID)
		return upstream("find dismissals", err)
	})
	if err := g.Wait(); err != nil {
		return nil, model.ReminderSummary{}, err
	}

	seen := make(map[string]struct{}, len(dismissed))
	for _, d := range dismissed {
		seen[d.Key()] = struct{}{}
	}

	overdue := make([]model.Reminder, 0)
	dueToday := make([]model.Reminder, 0)
	for _, lead := range candidates {
		if lead.NextFollowUpDate == nil {
			continue
		}
		if _, ok := seen[model.DismissalKey(lead.ID, *lead.NextFollowUpDate)]; ok {
			continue
		}
		due := *lead.NextFollowUpDate
		switch {
		case due.Before(today):
			overdue = append(overdue, model.NewReminder(lead, true))
		case due.Before(tomorrow):
			dueToday = append(dueToday, model.NewReminder(lead, false))
		}
	}

	reminders := append(overdue, dueToday...)
	summary := model.ReminderSummary{
		Total:   len(reminders),
		Overdue: len(overdue),
		Today:   len(dueToday),
	}
	return reminders, summary, nil
}
