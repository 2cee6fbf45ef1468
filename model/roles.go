package model

import "strings"

const (
	RoleAdmin       = "admin"
	RoleManager     = "manager"
	RoleSalesperson = "salesperson"
	RoleAll         = "all"
)

const (
	StatusNew           = "new"
	StatusInProgress    = "in_progress"
	StatusFollowUp      = "follow_up"
	StatusConverted     = "converted"
	StatusClosed        = "closed"
	StatusNotInterested = "not_interested"
)

const (
	NotificationFollowUp = "followup"
	NotificationReminder = "reminder"
	NotificationNewEntry = "new_entry"
)

// TerminalStatuses are query statuses for which no further follow-up is expected.
var TerminalStatuses = []string{StatusConverted, StatusClosed, StatusNotInterested}

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleSalesperson:
		return true
	}
	return false
}

// StatusIn reports whether status matches one of the given statuses, ignoring case.
func StatusIn(status string, statuses []string) bool {
	for _, s := range statuses {
		if strings.EqualFold(strings.TrimSpace(status), s) {
			return true
		}
	}
	return false
}
