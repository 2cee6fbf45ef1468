package services

import (
	"time"
)

// Store is the full persistence surface. Every repository backend
// implements it.
type Store interface {
	LeadStore
	DismissalStore
	NotificationStore
	FollowUpStore
	UserStore
}

// Registry wires the services over one store for the HTTP layer.
type Registry struct {
	Users         UserStore
	Reminders     *ReminderService
	Dismissals    *DismissalService
	Notifications *NotificationService
	Notifier      *OverdueNotifier
	Sales         *SalesService

	JWTSecret string
	JWTExpire time.Duration
	Now       func() time.Time
}

func NewRegistry(store Store, jwtSecret string, jwtExpire time.Duration) *Registry {
	dismissals := NewDismissalService(store, store)
	notifications := NewNotificationService(store, dismissals)
	return &Registry{
		Users:         store,
		Reminders:     NewReminderService(store, store),
		Dismissals:    dismissals,
		Notifications: notifications,
		Notifier:      NewOverdueNotifier(store, store),
		Sales:         NewSalesService(store, store, notifications),
		JWTSecret:     jwtSecret,
		JWTExpire:     jwtExpire,
		Now:           time.Now,
	}
}
