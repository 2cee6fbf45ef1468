package services

import (
	"context"
	"time"

	"salescrm/model"
)

// LeadStore lookups return (nil, nil) when the lead does not exist.
type LeadStore interface {
	// FindActiveLeadsWithDueDate returns active leads with a follow-up date
	// matching the filter, earliest due first.
	FindActiveLeadsWithDueDate(ctx context.Context, filter model.LeadFilter) ([]model.SalesEntry, error)
	GetLead(ctx context.Context, id string) (*model.SalesEntry, error)
	CreateLead(ctx context.Context, lead *model.SalesEntry) error
	UpdateLead(ctx context.Context, lead *model.SalesEntry) error
	// ListLeads returns one page of matching leads and the total match count.
	ListLeads(ctx context.Context, q model.LeadQuery) ([]model.SalesEntry, int, error)
}

// DismissalStore keeps one record per (user, lead, due date). Both upserts
// must resolve concurrent writers for the same triple inside the store.
type DismissalStore interface {
	UpsertDismissal(ctx context.Context, userID, leadID string, dueDate, now time.Time) error
	// UpsertDismissals applies each record independently and reports how many
	// were written before the first failure.
	UpsertDismissals(ctx context.Context, records []model.DismissedReminder) (int, error)
	FindDismissals(ctx context.Context, userID string) ([]model.DismissedReminder, error)
}

type NotificationStore interface {
	ExistsOverdueReminderSince(ctx context.Context, leadID string, since time.Time) (bool, error)
	// InsertMany stores all notifications or none.
	InsertMany(ctx context.Context, notifications []model.Notification) error
	Create(ctx context.Context, n *model.Notification) error
	Get(ctx context.Context, id string) (*model.Notification, error)
	List(ctx context.Context, q model.NotificationQuery) ([]model.Notification, int, error)
	CountUnread(ctx context.Context, audience model.Audience) (int, error)
	MarkRead(ctx context.Context, id string, at time.Time) error
	MarkAllRead(ctx context.Context, audience model.Audience, at time.Time) (int, error)
	Delete(ctx context.Context, id string) error
	DeleteRead(ctx context.Context, audience model.Audience) (int, error)
}

type FollowUpStore interface {
	CreateFollowUp(ctx context.Context, f *model.FollowUp) error
	ListBySalesEntry(ctx context.Context, salesEntryID string) ([]model.FollowUp, error)
	ListFollowUps(ctx context.Context, q model.FollowUpQuery) ([]model.FollowUp, int, error)
	GetFollowUp(ctx context.Context, id string) (*model.FollowUp, error)
	UpdateFollowUp(ctx context.Context, f *model.FollowUp) error
	DeleteFollowUp(ctx context.Context, id string) error
}

type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error
	UpdateUser(ctx context.Context, u *model.User) error
	ListUsers(ctx context.Context) ([]model.User, error)
}

// RunLocker grants at most one holder per key until the ttl expires.
type RunLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
