package model

import "time"

// DismissedReminder acknowledges one due-date occurrence of a lead's reminder
// for one user. Identity is (UserID, SalesEntryID, DismissedForDate).
type DismissedReminder struct {
	UserID           string    `firestore:"userid" db:"user_id" json:"userId"`
	SalesEntryID     string    `firestore:"salesentryid" db:"sales_entry_id" json:"salesEntry"`
	DismissedForDate time.Time `firestore:"dismissedfordate" db:"dismissed_for_date" json:"dismissedForDate"`
	DismissedAt      time.Time `firestore:"dismissedat" db:"dismissed_at" json:"dismissedAt"`
}

// Key returns the lookup key of the dismissal, see DismissalKey.
func (d DismissedReminder) Key() string {
	return DismissalKey(d.SalesEntryID, d.DismissedForDate)
}

// DismissalKey joins a lead id with its due date rendered in UTC with
// millisecond precision, the resolution every backend keeps.
func DismissalKey(leadID string, dueDate time.Time) string {
	return leadID + "|" + dueDate.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
