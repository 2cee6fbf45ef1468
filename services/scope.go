package services

import (
	"time"

	"salescrm/model"
)

// ScopeFilter is the one place that decides which leads a user may act on.
// Salespeople are limited to leads they own; admins and managers see all.
func ScopeFilter(user model.AuthUser) model.LeadFilter {
	if user.Role == model.RoleSalesperson {
		return model.LeadFilter{OwnerID: user.ID}
	}
	return model.LeadFilter{}
}

// CanAccessLead reports whether the lead falls inside the user's scope.
func CanAccessLead(user model.AuthUser, lead *model.SalesEntry) bool {
	if lead == nil {
		return false
	}
	f := ScopeFilter(user)
	return f.OwnerID == "" || f.OwnerID == lead.SalesPersonID
}

// reminderCandidates is the lead selection shared by the reminder list and
// dismiss-all: everything in scope that is overdue or due before tomorrow.
func reminderCandidates(user model.AuthUser, tomorrow time.Time) model.LeadFilter {
	f := ScopeFilter(user)
	f.DueBefore = tomorrow
	return f
}

// DayBounds returns local midnight of now and the local midnight after it.
func DayBounds(now time.Time) (today, tomorrow time.Time) {
	y, m, d := now.Date()
	today = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	tomorrow = today.AddDate(0, 0, 1)
	return today, tomorrow
}
