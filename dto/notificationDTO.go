package dto

import (
	"time"

	"salescrm/model"
)

type NotificationListQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	IsRead *bool  `form:"isRead"`
	Type   string `form:"type"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

type NotificationListResponse struct {
	Data        []model.Notification `json:"data"`
	UnreadCount int                  `json:"unreadCount"`
	Pagination  Pagination           `json:"pagination"`
}

type CreateNotificationRequest struct {
	Type             string     `json:"type" binding:"required,oneof=followup reminder new_entry"`
	SalesEntryID     string     `json:"salesEntry"`
	CompanyName      string     `json:"companyName"`
	SalesPersonID    string     `json:"salesPerson"`
	SalesPersonName  string     `json:"salesPersonName"`
	Remark           string     `json:"remark"`
	NextFollowUpDate *time.Time `json:"nextFollowUpDate"`
	FollowUpDate     *time.Time `json:"followUpDate"`
	IsOverdue        bool       `json:"isOverdue"`
	ForUser          string     `json:"forUser"`
	ForRole          string     `json:"forRole" binding:"omitempty,oneof=admin manager salesperson all"`
	Title            string     `json:"title"`
	Message          string     `json:"message"`
}

func (r CreateNotificationRequest) ToModel() model.Notification {
	return model.Notification{
		Type:             r.Type,
		SalesEntryID:     r.SalesEntryID,
		CompanyName:      r.CompanyName,
		SalesPersonID:    r.SalesPersonID,
		SalesPersonName:  r.SalesPersonName,
		Remark:           r.Remark,
		NextFollowUpDate: r.NextFollowUpDate,
		FollowUpDate:     r.FollowUpDate,
		IsOverdue:        r.IsOverdue,
		ForUser:          r.ForUser,
		ForRole:          r.ForRole,
		Title:            r.Title,
		Message:          r.Message,
	}
}

type RemindersResponse struct {
	Reminders []model.Reminder      `json:"reminders"`
	Summary   model.ReminderSummary `json:"summary"`
}
