package model

import (
	"fmt"
	"time"
)

type Notification struct {
	ID               string     `firestore:"id,omitempty" db:"id" json:"id"`
	Type             string     `firestore:"type,omitempty" db:"type" json:"type"`
	SalesEntryID     string     `firestore:"salesentryid,omitempty" db:"sales_entry_id" json:"salesEntry,omitempty"`
	CompanyName      string     `firestore:"companyname,omitempty" db:"company_name" json:"companyName,omitempty"`
	SalesPersonID    string     `firestore:"salespersonid,omitempty" db:"sales_person_id" json:"salesPerson,omitempty"`
	SalesPersonName  string     `firestore:"salespersonname,omitempty" db:"sales_person_name" json:"salesPersonName,omitempty"`
	Remark           string     `firestore:"remark,omitempty" db:"remark" json:"remark,omitempty"`
	NextFollowUpDate *time.Time `firestore:"nextfollowupdate,omitempty" db:"next_follow_up_date" json:"nextFollowUpDate,omitempty"`
	FollowUpDate     *time.Time `firestore:"followupdate,omitempty" db:"follow_up_date" json:"followUpDate,omitempty"`
	IsOverdue        bool       `firestore:"isoverdue" db:"is_overdue" json:"isOverdue"`
	ForUser          string     `firestore:"foruser,omitempty" db:"for_user" json:"forUser,omitempty"`
	ForRole          string     `firestore:"forrole,omitempty" db:"for_role" json:"forRole"`
	IsRead           bool       `firestore:"isread" db:"is_read" json:"isRead"`
	ReadAt           *time.Time `firestore:"readat,omitempty" db:"read_at" json:"readAt,omitempty"`
	Title            string     `firestore:"title,omitempty" db:"title" json:"title"`
	Message          string     `firestore:"message,omitempty" db:"message" json:"message"`
	CreatedAt        time.Time  `firestore:"createdat,omitempty" db:"created_at" json:"createdAt"`
}

// FillDefaults sets the role target, title and message from the type when
// they were not provided by the caller.
func (n *Notification) FillDefaults() {
	if n.ForRole == "" {
		n.ForRole = RoleAll
	}
	if n.Title != "" || n.Message != "" {
		return
	}
	switch n.Type {
	case NotificationFollowUp:
		n.Title = "Follow-up Scheduled"
		n.Message = fmt.Sprintf("Follow-up scheduled for %s", n.CompanyName)
	case NotificationReminder:
		n.Title = "Follow-up Reminder"
		n.Message = fmt.Sprintf("Reminder: Follow-up with %s", n.CompanyName)
	case NotificationNewEntry:
		n.Title = "New Sales Entry"
		n.Message = fmt.Sprintf("New entry added: %s", n.CompanyName)
	}
}

// Audience is the set of notifications visible to one user: those addressed
// to the user, to the user's role, or to everyone.
type Audience struct {
	UserID string
	Role   string
}

func (a Audience) Includes(n *Notification) bool {
	return n.ForUser == a.UserID || n.ForRole == a.Role || n.ForRole == RoleAll
}

type NotificationQuery struct {
	Audience Audience
	IsRead   *bool
	Type     string
	Offset   int
	Limit    int
}
