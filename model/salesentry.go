package model

import "time"

type SalesEntry struct {
	ID               string     `firestore:"id,omitempty" db:"id" json:"id"`
	CompanyName      string     `firestore:"companyname,omitempty" db:"company_name" json:"companyName"`
	ContactPerson    string     `firestore:"contactperson,omitempty" db:"contact_person" json:"contactPerson"`
	ContactNumber    string     `firestore:"contactnumber,omitempty" db:"contact_number" json:"contactNumber"`
	ContactEmail     string     `firestore:"contactemail,omitempty" db:"contact_email" json:"contactEmail,omitempty"`
	Requirement      string     `firestore:"requirement,omitempty" db:"requirement" json:"requirement,omitempty"`
	Remark           string     `firestore:"remark,omitempty" db:"remark" json:"remark,omitempty"`
	NextFollowUpDate *time.Time `firestore:"nextfollowupdate,omitempty" db:"next_follow_up_date" json:"nextFollowUpDate"`
	QueryStatus      string     `firestore:"querystatus,omitempty" db:"query_status" json:"queryStatus"`
	SalesPersonID    string     `firestore:"salespersonid,omitempty" db:"sales_person_id" json:"salesPerson"`
	SalesPersonName  string     `firestore:"salespersonname,omitempty" db:"sales_person_name" json:"salesPersonName,omitempty"`
	Branch           string     `firestore:"branch,omitempty" db:"branch" json:"branch,omitempty"`
	TotalFollowUps   int        `firestore:"totalfollowups" db:"total_follow_ups" json:"totalFollowUps"`
	LastFollowUpDate *time.Time `firestore:"lastfollowupdate,omitempty" db:"last_follow_up_date" json:"lastFollowUpDate,omitempty"`
	ConvertedDate    *time.Time `firestore:"converteddate,omitempty" db:"converted_date" json:"convertedDate,omitempty"`
	IsActive         bool       `firestore:"isactive" db:"is_active" json:"isActive"`
	CreatedAt        time.Time  `firestore:"createdat,omitempty" db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `firestore:"updatedat,omitempty" db:"updated_at" json:"updatedAt"`
}

// LeadFilter is the store-neutral predicate used to select active leads that
// carry a follow-up date. Zero values mean "no restriction".
type LeadFilter struct {
	OwnerID         string
	DueFrom         time.Time // inclusive
	DueBefore       time.Time // exclusive
	ExcludeStatuses []string  // compared case-insensitively
}

// Matches applies the filter to a lead in memory. Backends that cannot express
// part of the filter natively use it to finish the job.
func (f LeadFilter) Matches(e *SalesEntry) bool {
	if e == nil || !e.IsActive || e.NextFollowUpDate == nil {
		return false
	}
	if f.OwnerID != "" && e.SalesPersonID != f.OwnerID {
		return false
	}
	due := *e.NextFollowUpDate
	if !f.DueFrom.IsZero() && due.Before(f.DueFrom) {
		return false
	}
	if !f.DueBefore.IsZero() && !due.Before(f.DueBefore) {
		return false
	}
	if len(f.ExcludeStatuses) > 0 && StatusIn(e.QueryStatus, f.ExcludeStatuses) {
		return false
	}
	return true
}

// LeadQuery selects active leads for the paged lead list, newest first.
type LeadQuery struct {
	OwnerID     string
	QueryStatus string
	Branch      string
	Offset      int
	Limit       int
}

func (q LeadQuery) Matches(e *SalesEntry) bool {
	if e == nil || !e.IsActive {
		return false
	}
	if q.OwnerID != "" && e.SalesPersonID != q.OwnerID {
		return false
	}
	if q.QueryStatus != "" && !StatusIn(e.QueryStatus, []string{q.QueryStatus}) {
		return false
	}
	if q.Branch != "" && e.Branch != q.Branch {
		return false
	}
	return true
}
