package model

import "time"

// Reminder is the projection of a lead whose follow-up is due today or
// overdue. It is derived per request and never stored.
type Reminder struct {
	ID               string     `json:"id"`
	Type             string     `json:"type"`
	SalesEntry       string     `json:"salesEntry"`
	CompanyName      string     `json:"companyName"`
	ContactPerson    string     `json:"contactPerson"`
	ContactNumber    string     `json:"contactNumber"`
	SalesPerson      string     `json:"salesPerson"`
	SalesPersonName  string     `json:"salesPersonName"`
	Remark           string     `json:"remark,omitempty"`
	NextFollowUpDate *time.Time `json:"nextFollowUpDate"`
	FollowUpDate     *time.Time `json:"followUpDate"`
	QueryStatus      string     `json:"queryStatus"`
	Branch           string     `json:"branch,omitempty"`
	IsOverdue        bool       `json:"isOverdue"`
	IsRead           bool       `json:"isRead"`
}

type ReminderSummary struct {
	Total   int `json:"total"`
	Overdue int `json:"overdue"`
	Today   int `json:"today"`
}

func NewReminder(e SalesEntry, overdue bool) Reminder {
	name := e.SalesPersonName
	if name == "" {
		name = "Unknown"
	}
	return Reminder{
		ID:               e.ID,
		Type:             NotificationReminder,
		SalesEntry:       e.ID,
		CompanyName:      e.CompanyName,
		ContactPerson:    e.ContactPerson,
		ContactNumber:    e.ContactNumber,
		SalesPerson:      e.SalesPersonID,
		SalesPersonName:  name,
		Remark:           e.Remark,
		NextFollowUpDate: e.NextFollowUpDate,
		FollowUpDate:     e.NextFollowUpDate,
		QueryStatus:      e.QueryStatus,
		Branch:           e.Branch,
		IsOverdue:        overdue,
		IsRead:           false,
	}
}
