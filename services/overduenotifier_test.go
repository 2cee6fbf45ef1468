package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"salescrm/model"
	"salescrm/repository"
)

func overdueReminders(t *testing.T, store *repository.MemoryStore, user model.AuthUser) []model.Notification {
	t.Helper()
	items, _, err := store.List(context.Background(), model.NotificationQuery{
		Audience: model.Audience{UserID: user.ID, Role: user.Role},
		Type:     model.NotificationReminder,
	})
	if err != nil {
		t.Fatal(err)
	}
	return items
}

func TestOverdueNotifierDedupsWithinDay(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	seedLead(t, store, "late", alice, at(8, 9), model.StatusFollowUp)
	notifier := NewOverdueNotifier(store, store)

	created, err := notifier.Run(ctx, testNow)
	if err != nil || created != 1 {
		t.Fatalf("first run = %d, %v", created, err)
	}
	created, err = notifier.Run(ctx, testNow.Add(6*time.Hour))
	if err != nil || created != 0 {
		t.Fatalf("second run = %d, %v", created, err)
	}

	items := overdueReminders(t, store, alice)
	if len(items) != 1 {
		t.Fatalf("got %d notifications, want 1", len(items))
	}
	n := items[0]
	if !n.IsOverdue || n.ForUser != alice.ID || n.ForRole != model.RoleSalesperson || n.SalesEntryID != "late" {
		t.Fatalf("notification = %+v", n)
	}
	if n.Title != "Follow-up Reminder" || n.Message != "Reminder: Follow-up with Company late" {
		t.Fatalf("title/message = %q / %q", n.Title, n.Message)
	}

	created, err = notifier.Run(ctx, testNow.AddDate(0, 0, 1))
	if err != nil || created != 1 {
		t.Fatalf("next day run = %d, %v", created, err)
	}
}

func TestOverdueNotifierSkipsTerminalAndCurrentLeads(t *testing.T) {
	store := repository.NewMemoryStore()
	seedLead(t, store, "converted", alice, at(8, 9), model.StatusConverted)
	seedLead(t, store, "closed-upper", alice, at(8, 9), "CLOSED")
	seedLead(t, store, "not-interested", alice, at(8, 9), model.StatusNotInterested)
	seedLead(t, store, "due-today", alice, at(10, 1), model.StatusNew)
	seedLead(t, store, "open", alice, at(9, 23), model.StatusInProgress)

	created, err := NewOverdueNotifier(store, store).Run(context.Background(), testNow)
	if err != nil {
		t.Fatal(err)
	}
	if created != 1 {
		t.Fatalf("created %d, want 1", created)
	}
	items := overdueReminders(t, store, alice)
	if len(items) != 1 || items[0].SalesEntryID != "open" {
		t.Fatalf("notifications = %+v", items)
	}
}

type failingExists struct {
	*repository.MemoryStore
	calls int
}

func (f *failingExists) ExistsOverdueReminderSince(ctx context.Context, leadID string, since time.Time) (bool, error) {
	f.calls++
	if f.calls > 1 {
		return false, errors.New("deadline exceeded")
	}
	return f.MemoryStore.ExistsOverdueReminderSince(ctx, leadID, since)
}

func TestOverdueNotifierAbortsOnStoreFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	seedLead(t, store, "a", alice, at(7, 9), model.StatusNew)
	seedLead(t, store, "b", alice, at(8, 9), model.StatusNew)

	created, err := NewOverdueNotifier(store, &failingExists{MemoryStore: store}).Run(context.Background(), testNow)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	if created != 0 {
		t.Fatalf("created = %d, want 0", created)
	}
	if items := overdueReminders(t, store, alice); len(items) != 0 {
		t.Fatalf("aborted run left %d notifications", len(items))
	}
}
