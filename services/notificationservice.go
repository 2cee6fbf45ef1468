package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"salescrm/logs"
	"salescrm/model"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageWindow clamps a 1-based page request and returns the row offset.
func pageWindow(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit, (page - 1) * limit
}

type NotificationService struct {
	notifications NotificationStore
	dismissals    *DismissalService
}

func NewNotificationService(notifications NotificationStore, dismissals *DismissalService) *NotificationService {
	return &NotificationService{notifications: notifications, dismissals: dismissals}
}

type NotificationPage struct {
	Items       []model.Notification
	Total       int
	UnreadCount int
	Page        int
	Limit       int
}

func audienceOf(user model.AuthUser) model.Audience {
	return model.Audience{UserID: user.ID, Role: user.Role}
}

// List returns one page of the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, user model.AuthUser, page, limit int, isRead *bool, typ string) (NotificationPage, error) {
	page, limit, offset := pageWindow(page, limit)
	items, total, err := s.notifications.List(ctx, model.NotificationQuery{
		Audience: audienceOf(user),
		IsRead:   isRead,
		Type:     typ,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return NotificationPage{}, upstream("list notifications", err)
	}
	unread, err := s.notifications.CountUnread(ctx, audienceOf(user))
	if err != nil {
		return NotificationPage{}, upstream("count unread", err)
	}
	return NotificationPage{Items: items, Total: total, UnreadCount: unread, Page: page, Limit: limit}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, user model.AuthUser) (int, error) {
	n, err := s.notifications.CountUnread(ctx, audienceOf(user))
	if err != nil {
		return 0, upstream("count unread", err)
	}
	return n, nil
}

// MarkRead marks one notification read. Reminders are not stored as
// notifications, so an id that names a lead dismisses that lead's reminder
// instead.
func (s *NotificationService) MarkRead(ctx context.Context, user model.AuthUser, id string, now time.Time) (*model.Notification, error) {
	n, err := s.notifications.Get(ctx, id)
	if err != nil {
		return nil, upstream("get notification", err)
	}
	if n == nil {
		err := s.dismissals.DismissOne(ctx, user, id, now)
		if err != nil && !errors.Is(err, ErrInvalidState) {
			return nil, err
		}
		return nil, nil
	}
	if !audienceOf(user).Includes(n) && user.Role != model.RoleAdmin {
		return nil, ErrAccessDenied
	}
	if err := s.notifications.MarkRead(ctx, id, now); err != nil {
		return nil, upstream("mark notification read", err)
	}
	n.IsRead = true
	n.ReadAt = &now
	return n, nil
}

type ReadAllResult struct {
	MarkedCount    int `json:"markedCount"`
	DismissedCount int `json:"dismissedCount"`
}

// MarkAllRead marks every unread notification of the user read and, when
// dismissReminders is set, dismisses all of the user's current reminders too.
// The two updates go to separate stores and are not applied atomically.
func (s *NotificationService) MarkAllRead(ctx context.Context, user model.AuthUser, now time.Time, dismissReminders bool) (ReadAllResult, error) {
	marked, err := s.notifications.MarkAllRead(ctx, audienceOf(user), now)
	if err != nil {
		return ReadAllResult{}, upstream("mark all read", err)
	}
	result := ReadAllResult{MarkedCount: marked}
	if !dismissReminders {
		return result, nil
	}
	dismissed, err := s.dismissals.DismissAll(ctx, user, now)
	result.DismissedCount = dismissed
	if err != nil {
		return result, err
	}
	return result, nil
}

func (s *NotificationService) Delete(ctx context.Context, user model.AuthUser, id string) error {
	n, err := s.notifications.Get(ctx, id)
	if err != nil {
		return upstream("get notification", err)
	}
	if n == nil {
		return ErrNotFound
	}
	if !audienceOf(user).Includes(n) && user.Role != model.RoleAdmin {
		return ErrAccessDenied
	}
	if err := s.notifications.Delete(ctx, id); err != nil {
		return upstream("delete notification", err)
	}
	return nil
}

func (s *NotificationService) ClearRead(ctx context.Context, user model.AuthUser) (int, error) {
	n, err := s.notifications.DeleteRead(ctx, audienceOf(user))
	if err != nil {
		return 0, upstream("clear read notifications", err)
	}
	return n, nil
}

// Create stores a notification as given, filling id, timestamps and the
// type-derived title and message.
func (s *NotificationService) Create(ctx context.Context, n *model.Notification, now time.Time) error {
	switch n.Type {
	case model.NotificationFollowUp, model.NotificationReminder, model.NotificationNewEntry:
	default:
		return ErrInvalidInput
	}
	if n.ForRole != "" && n.ForRole != model.RoleAll && !model.IsValidRole(n.ForRole) {
		return ErrInvalidInput
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	n.IsRead = false
	n.ReadAt = nil
	n.CreatedAt = now
	n.FillDefaults()
	if err := s.notifications.Create(ctx, n); err != nil {
		return upstream("create notification", err)
	}
	return nil
}

// notify is the best-effort variant used as a side effect of lead changes.
func (s *NotificationService) notify(ctx context.Context, n model.Notification, now time.Time) {
	if err := s.Create(ctx, &n, now); err != nil {
		logs.Log.WithError(err).WithField("type", n.Type).Warn("notification creation failed")
	}
}
