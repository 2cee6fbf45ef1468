package dto

import (
	"time"

	"salescrm/model"
	"salescrm/services"
)

type CreateSalesRequest struct {
	CompanyName      string     `json:"companyName" binding:"required"`
	ContactPerson    string     `json:"contactPerson" binding:"required"`
	ContactNumber    string     `json:"contactNumber" binding:"required"`
	ContactEmail     string     `json:"contactEmail" binding:"omitempty,email"`
	Requirement      string     `json:"requirement"`
	Remark           string     `json:"remark"`
	NextFollowUpDate *time.Time `json:"nextFollowUpDate"`
	QueryStatus      string     `json:"queryStatus" binding:"omitempty,oneof=new in_progress follow_up converted closed not_interested"`
	SalesPersonID    string     `json:"salesPerson"`
	SalesPersonName  string     `json:"salesPersonName"`
	Branch           string     `json:"branch"`
}

func (r CreateSalesRequest) ToModel() model.SalesEntry {
	return model.SalesEntry{
		CompanyName:      r.CompanyName,
		ContactPerson:    r.ContactPerson,
		ContactNumber:    r.ContactNumber,
		ContactEmail:     r.ContactEmail,
		Requirement:      r.Requirement,
		Remark:           r.Remark,
		NextFollowUpDate: r.NextFollowUpDate,
		QueryStatus:      r.QueryStatus,
		SalesPersonID:    r.SalesPersonID,
		SalesPersonName:  r.SalesPersonName,
		Branch:           r.Branch,
	}
}

type UpdateSalesRequest struct {
	CompanyName       *string    `json:"companyName"`
	ContactPerson     *string    `json:"contactPerson"`
	ContactNumber     *string    `json:"contactNumber"`
	ContactEmail      *string    `json:"contactEmail" binding:"omitempty,email"`
	Requirement       *string    `json:"requirement"`
	Remark            *string    `json:"remark"`
	QueryStatus       *string    `json:"queryStatus" binding:"omitempty,oneof=new in_progress follow_up converted closed not_interested"`
	Branch            *string    `json:"branch"`
	NextFollowUpDate  *time.Time `json:"nextFollowUpDate"`
	ClearNextFollowUp bool       `json:"clearNextFollowUp"`
}

func (r UpdateSalesRequest) ToUpdate() services.LeadUpdate {
	return services.LeadUpdate{
		CompanyName:       r.CompanyName,
		ContactPerson:     r.ContactPerson,
		ContactNumber:     r.ContactNumber,
		ContactEmail:      r.ContactEmail,
		Requirement:       r.Requirement,
		Remark:            r.Remark,
		QueryStatus:       r.QueryStatus,
		Branch:            r.Branch,
		NextFollowUpDate:  r.NextFollowUpDate,
		ClearNextFollowUp: r.ClearNextFollowUp,
	}
}

type SalesListQuery struct {
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
	QueryStatus string `form:"queryStatus"`
	SalesPerson string `form:"salesPerson"`
	Branch      string `form:"branch"`
}

func (q SalesListQuery) ToModel() model.LeadQuery {
	return model.LeadQuery{
		OwnerID:     q.SalesPerson,
		QueryStatus: q.QueryStatus,
		Branch:      q.Branch,
	}
}
