package services

import (
	"testing"
	"time"

	"salescrm/model"
)

func TestScopeFilter(t *testing.T) {
	if f := ScopeFilter(alice); f.OwnerID != alice.ID {
		t.Fatalf("salesperson filter = %+v", f)
	}
	for _, u := range []model.AuthUser{admin, manager} {
		if f := ScopeFilter(u); f.OwnerID != "" {
			t.Fatalf("%s filter = %+v", u.Role, f)
		}
	}

	lead := &model.SalesEntry{ID: "L", SalesPersonID: alice.ID}
	if !CanAccessLead(alice, lead) || CanAccessLead(bob, lead) || !CanAccessLead(manager, lead) {
		t.Fatalf("CanAccessLead disagrees with ScopeFilter")
	}
	if CanAccessLead(admin, nil) {
		t.Fatalf("nil lead is accessible")
	}
}

func TestDayBoundsUsesLocation(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)
	now := time.Date(2025, time.March, 10, 1, 30, 0, 0, loc)

	today, tomorrow := DayBounds(now)
	if !today.Equal(time.Date(2025, time.March, 10, 0, 0, 0, 0, loc)) {
		t.Fatalf("today = %v", today)
	}
	if tomorrow.Sub(today) != 24*time.Hour {
		t.Fatalf("tomorrow = %v", tomorrow)
	}
}
