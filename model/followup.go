package model

import "time"

type FollowUp struct {
	ID               string     `firestore:"id,omitempty" db:"id" json:"id"`
	SalesEntryID     string     `firestore:"salesentryid,omitempty" db:"sales_entry_id" json:"salesEntry"`
	Remark           string     `firestore:"remark,omitempty" db:"remark" json:"remark"`
	Status           string     `firestore:"status,omitempty" db:"status" json:"status"`
	NextFollowUpDate *time.Time `firestore:"nextfollowupdate,omitempty" db:"next_follow_up_date" json:"nextFollowUpDate,omitempty"`
	AddedBy          string     `firestore:"addedby,omitempty" db:"added_by" json:"addedBy"`
	AddedByName      string     `firestore:"addedbyname,omitempty" db:"added_by_name" json:"addedByName,omitempty"`
	FollowUpDate     time.Time  `firestore:"followupdate,omitempty" db:"follow_up_date" json:"followUpDate"`
	CreatedAt        time.Time  `firestore:"createdat,omitempty" db:"created_at" json:"createdAt"`
}

// FollowUpQuery selects follow-ups by author and follow-up date range.
type FollowUpQuery struct {
	AddedBy string
	From    time.Time // inclusive
	Before  time.Time // exclusive
	Offset  int
	Limit   int
}

func (q FollowUpQuery) Matches(f *FollowUp) bool {
	if f == nil {
		return false
	}
	if q.AddedBy != "" && f.AddedBy != q.AddedBy {
		return false
	}
	if !q.From.IsZero() && f.FollowUpDate.Before(q.From) {
		return false
	}
	if !q.Before.IsZero() && !f.FollowUpDate.Before(q.Before) {
		return false
	}
	return true
}
