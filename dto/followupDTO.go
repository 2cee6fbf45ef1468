package dto

import (
	"time"

	"salescrm/model"
	"salescrm/services"
)

type CreateFollowUpRequest struct {
	SalesEntryID     string     `json:"salesEntryId" binding:"required"`
	Remark           string     `json:"remark" binding:"required"`
	Status           string     `json:"status"`
	NextFollowUpDate *time.Time `json:"nextFollowUpDate"`
}

func (r CreateFollowUpRequest) ToModel() model.FollowUp {
	return model.FollowUp{
		SalesEntryID:     r.SalesEntryID,
		Remark:           r.Remark,
		Status:           r.Status,
		NextFollowUpDate: r.NextFollowUpDate,
	}
}

type UpdateFollowUpRequest struct {
	Remark           *string    `json:"remark"`
	Status           *string    `json:"status"`
	NextFollowUpDate *time.Time `json:"nextFollowUpDate"`
}

func (r UpdateFollowUpRequest) ToUpdate() services.FollowUpUpdate {
	return services.FollowUpUpdate{
		Remark:           r.Remark,
		Status:           r.Status,
		NextFollowUpDate: r.NextFollowUpDate,
	}
}

// MyFollowUpsQuery dates are whole days; EndDate includes its own day.
type MyFollowUpsQuery struct {
	Page      int       `form:"page"`
	Limit     int       `form:"limit"`
	StartDate time.Time `form:"startDate" time_format:"2006-01-02" time_utc:"1"`
	EndDate   time.Time `form:"endDate" time_format:"2006-01-02" time_utc:"1"`
}

func (q MyFollowUpsQuery) Range() (from, before time.Time) {
	from = q.StartDate
	if !q.EndDate.IsZero() {
		before = q.EndDate.AddDate(0, 0, 1)
	}
	return from, before
}
