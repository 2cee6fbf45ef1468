package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"salescrm/logs"
	"salescrm/model"
)

type OverdueNotifier struct {
	leads         LeadStore
	notifications NotificationStore
}

func NewOverdueNotifier(leads LeadStore, notifications NotificationStore) *OverdueNotifier {
	return &OverdueNotifier{leads: leads, notifications: notifications}
}

// Run stores one overdue reminder notification per open overdue lead, at most
// once per lead per local day. The run is all-or-nothing: any store error
// aborts it and the next run starts over.
func (n *OverdueNotifier) Run(ctx context.Context, now time.Time) (int, error) {
	today, _ := DayBounds(now)
	log := logs.Log.WithField("job", "overdue-notifier")

	leads, err := n.leads.FindActiveLeadsWithDueDate(ctx, model.LeadFilter{
		DueBefore:       today,
		ExcludeStatuses: model.TerminalStatuses,
	})
	if err != nil {
		log.WithError(err).Error("failed to load overdue leads")
		return 0, upstream("find overdue leads", err)
	}

	pending := make([]model.Notification, 0, len(leads))
	for _, lead := range leads {
		exists, err := n.notifications.ExistsOverdueReminderSince(ctx, lead.ID, today)
		if err != nil {
			log.WithError(err).WithField("sales_entry", lead.ID).Error("failed to check existing reminder")
			return 0, upstream("check overdue notification", err)
		}
		if exists {
			continue
		}
		pending = append(pending, overdueNotification(lead, now))
	}

	if len(pending) == 0 {
		log.WithField("overdue", len(leads)).Debug("no new overdue notifications")
		return 0, nil
	}
	if err := n.notifications.InsertMany(ctx, pending); err != nil {
		log.WithError(err).WithField("pending", len(pending)).Error("failed to insert overdue notifications")
		return 0, upstream("insert overdue notifications", err)
	}

	log.WithFields(logrus.Fields{
		"overdue": len(leads),
		"created": len(pending),
	}).Info("overdue notifications generated")
	return len(pending), nil
}

func overdueNotification(lead model.SalesEntry, now time.Time) model.Notification {
	n := model.Notification{
		ID:               uuid.New().String(),
		Type:             model.NotificationReminder,
		SalesEntryID:     lead.ID,
		CompanyName:      lead.CompanyName,
		SalesPersonID:    lead.SalesPersonID,
		SalesPersonName:  lead.SalesPersonName,
		Remark:           lead.Remark,
		NextFollowUpDate: lead.NextFollowUpDate,
		IsOverdue:        true,
		ForUser:          lead.SalesPersonID,
		ForRole:          model.RoleSalesperson,
		CreatedAt:        now,
	}
	n.FillDefaults()
	return n
}
