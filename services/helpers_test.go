package services

import (
	"context"
	"testing"
	"time"

	"salescrm/model"
	"salescrm/repository"
)

var (
	testNow = time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)

	admin   = model.AuthUser{ID: "admin-1", Name: "Ada", Role: model.RoleAdmin}
	manager = model.AuthUser{ID: "manager-1", Name: "Max", Role: model.RoleManager}
	alice   = model.AuthUser{ID: "sales-alice", Name: "Alice", Role: model.RoleSalesperson}
	bob     = model.AuthUser{ID: "sales-bob", Name: "Bob", Role: model.RoleSalesperson}
)

func at(day, hour int) *time.Time {
	t := time.Date(2025, time.March, day, hour, 0, 0, 0, time.UTC)
	return &t
}

func seedLead(t *testing.T, store *repository.MemoryStore, id string, owner model.AuthUser, due *time.Time, status string) model.SalesEntry {
	t.Helper()
	lead := model.SalesEntry{
		ID:               id,
		CompanyName:      "Company " + id,
		ContactPerson:    "Contact " + id,
		ContactNumber:    "555-0100",
		NextFollowUpDate: due,
		QueryStatus:      status,
		SalesPersonID:    owner.ID,
		SalesPersonName:  owner.Name,
		IsActive:         true,
		CreatedAt:        testNow.AddDate(0, 0, -30),
		UpdatedAt:        testNow.AddDate(0, 0, -30),
	}
	if err := store.CreateLead(context.Background(), &lead); err != nil {
		t.Fatalf("seed lead %s: %v", id, err)
	}
	return lead
}

func reminderIDs(reminders []model.Reminder) []string {
	ids := make([]string, len(reminders))
	for i, r := range reminders {
		ids[i] = r.SalesEntry
	}
	return ids
}

func equalIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
