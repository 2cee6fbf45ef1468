package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"salescrm/model"
)

// SalesService owns lead and follow-up writes. Every change to a lead's
// follow-up date goes through here, which is what makes dismissed reminders
// resurface.
type SalesService struct {
	leads         LeadStore
	followUps     FollowUpStore
	notifications *NotificationService
}

func NewSalesService(leads LeadStore, followUps FollowUpStore, notifications *NotificationService) *SalesService {
	return &SalesService{leads: leads, followUps: followUps, notifications: notifications}
}

func (s *SalesService) CreateLead(ctx context.Context, user model.AuthUser, lead *model.SalesEntry, now time.Time) error {
	lead.ID = uuid.New().String()
	if lead.SalesPersonID == "" || user.Role == model.RoleSalesperson {
		lead.SalesPersonID = user.ID
		lead.SalesPersonName = user.Name
	}
	if lead.QueryStatus == "" {
		lead.QueryStatus = model.StatusNew
	}
	lead.NextFollowUpDate = normalizeDue(lead.NextFollowUpDate)
	lead.IsActive = true
	lead.CreatedAt = now
	lead.UpdatedAt = now
	if err := s.leads.CreateLead(ctx, lead); err != nil {
		return upstream("create lead", err)
	}

	s.notifications.notify(ctx, model.Notification{
		Type:             model.NotificationNewEntry,
		SalesEntryID:     lead.ID,
		CompanyName:      lead.CompanyName,
		SalesPersonID:    lead.SalesPersonID,
		SalesPersonName:  lead.SalesPersonName,
		NextFollowUpDate: lead.NextFollowUpDate,
		ForRole:          model.RoleAdmin,
	}, now)
	return nil
}

func (s *SalesService) GetLead(ctx context.Context, user model.AuthUser, id string) (*model.SalesEntry, error) {
	lead, err := s.leads.GetLead(ctx, id)
	if err != nil {
		return nil, upstream("get lead", err)
	}
	if lead == nil {
		return nil, ErrNotFound
	}
	if !CanAccessLead(user, lead) {
		return nil, ErrAccessDenied
	}
	return lead, nil
}

// LeadUpdate carries the optional fields of a lead update; nil means keep.
type LeadUpdate struct {
	CompanyName       *string
	ContactPerson     *string
	ContactNumber     *string
	ContactEmail      *string
	Requirement       *string
	Remark            *string
	QueryStatus       *string
	Branch            *string
	NextFollowUpDate  *time.Time
	ClearNextFollowUp bool
}

func (s *SalesService) UpdateLead(ctx context.Context, user model.AuthUser, id string, upd LeadUpdate, now time.Time) (*model.SalesEntry, error) {
	lead, err := s.GetLead(ctx, user, id)
	if err != nil {
		return nil, err
	}

	setString(&lead.CompanyName, upd.CompanyName)
	setString(&lead.ContactPerson, upd.ContactPerson)
	setString(&lead.ContactNumber, upd.ContactNumber)
	setString(&lead.ContactEmail, upd.ContactEmail)
	setString(&lead.Requirement, upd.Requirement)
	setString(&lead.Remark, upd.Remark)
	setString(&lead.Branch, upd.Branch)
	if upd.QueryStatus != nil {
		next := strings.TrimSpace(*upd.QueryStatus)
		if strings.EqualFold(next, model.StatusConverted) && !strings.EqualFold(lead.QueryStatus, model.StatusConverted) {
			lead.ConvertedDate = &now
		}
		lead.QueryStatus = next
	}
	if upd.ClearNextFollowUp {
		lead.NextFollowUpDate = nil
	} else if upd.NextFollowUpDate != nil {
		lead.NextFollowUpDate = normalizeDue(upd.NextFollowUpDate)
	}
	lead.UpdatedAt = now

	if err := s.leads.UpdateLead(ctx, lead); err != nil {
		return nil, upstream("update lead", err)
	}
	return lead, nil
}

type LeadPage struct {
	Items []model.SalesEntry
	Total int
	Page  int
	Limit int
}

// ListLeads pages through the active leads in the user's scope. A salesperson
// never sees another owner's leads whatever owner the query names.
func (s *SalesService) ListLeads(ctx context.Context, user model.AuthUser, q model.LeadQuery, page, limit int) (LeadPage, error) {
	if scoped := ScopeFilter(user).OwnerID; scoped != "" {
		q.OwnerID = scoped
	}
	page, limit, q.Offset = pageWindow(page, limit)
	q.Limit = limit
	items, total, err := s.leads.ListLeads(ctx, q)
	if err != nil {
		return LeadPage{}, upstream("list leads", err)
	}
	return LeadPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// DeleteLead soft-deletes a lead. Inactive leads drop out of reminders and
// overdue notifications.
func (s *SalesService) DeleteLead(ctx context.Context, user model.AuthUser, id string, now time.Time) error {
	if user.Role != model.RoleAdmin && user.Role != model.RoleManager {
		return ErrAccessDenied
	}
	lead, err := s.GetLead(ctx, user, id)
	if err != nil {
		return err
	}
	lead.IsActive = false
	lead.UpdatedAt = now
	if err := s.leads.UpdateLead(ctx, lead); err != nil {
		return upstream("delete lead", err)
	}
	return nil
}

// TodayFollowUps lists open leads in scope due between local midnight and the
// next one.
func (s *SalesService) TodayFollowUps(ctx context.Context, user model.AuthUser, now time.Time) ([]model.SalesEntry, error) {
	today, tomorrow := DayBounds(now)
	f := ScopeFilter(user)
	f.DueFrom = today
	f.DueBefore = tomorrow
	f.ExcludeStatuses = model.TerminalStatuses
	return s.openLeads(ctx, f)
}

// OverdueFollowUps lists open leads in scope due before local midnight.
func (s *SalesService) OverdueFollowUps(ctx context.Context, user model.AuthUser, now time.Time) ([]model.SalesEntry, error) {
	today, _ := DayBounds(now)
	f := ScopeFilter(user)
	f.DueBefore = today
	f.ExcludeStatuses = model.TerminalStatuses
	return s.openLeads(ctx, f)
}

func (s *SalesService) openLeads(ctx context.Context, f model.LeadFilter) ([]model.SalesEntry, error) {
	leads, err := s.leads.FindActiveLeadsWithDueDate(ctx, f)
	if err != nil {
		return nil, upstream("find leads", err)
	}
	return leads, nil
}

const followUpDefaultStatus = "Cold"

// AddFollowUp appends to the lead's follow-up history and moves the lead's
// remark, status and next follow-up date forward.
func (s *SalesService) AddFollowUp(ctx context.Context, user model.AuthUser, f *model.FollowUp, now time.Time) error {
	lead, err := s.GetLead(ctx, user, f.SalesEntryID)
	if err != nil {
		return err
	}

	f.ID = uuid.New().String()
	requested := strings.TrimSpace(f.Status)
	f.Status = requested
	if f.Status == "" {
		f.Status = followUpDefaultStatus
	}
	if f.AddedBy == "" {
		f.AddedBy = user.ID
		f.AddedByName = user.Name
	}
	f.FollowUpDate = now
	f.CreatedAt = now
	if err := s.followUps.CreateFollowUp(ctx, f); err != nil {
		return upstream("create follow-up", err)
	}

	lead.TotalFollowUps++
	lead.LastFollowUpDate = &now
	lead.Remark = f.Remark
	if requested != "" {
		lead.QueryStatus = requested
	}
	f.NextFollowUpDate = normalizeDue(f.NextFollowUpDate)
	if f.NextFollowUpDate != nil {
		due := *f.NextFollowUpDate
		lead.NextFollowUpDate = &due
	}
	lead.UpdatedAt = now
	if err := s.leads.UpdateLead(ctx, lead); err != nil {
		return upstream("update lead", err)
	}

	s.notifications.notify(ctx, model.Notification{
		Type:             model.NotificationFollowUp,
		SalesEntryID:     lead.ID,
		CompanyName:      lead.CompanyName,
		SalesPersonID:    f.AddedBy,
		SalesPersonName:  f.AddedByName,
		Remark:           f.Remark,
		NextFollowUpDate: f.NextFollowUpDate,
		FollowUpDate:     &now,
		ForRole:          model.RoleAdmin,
	}, now)
	return nil
}

func (s *SalesService) ListFollowUps(ctx context.Context, user model.AuthUser, salesEntryID string) ([]model.FollowUp, error) {
	if _, err := s.GetLead(ctx, user, salesEntryID); err != nil {
		return nil, err
	}
	items, err := s.followUps.ListBySalesEntry(ctx, salesEntryID)
	if err != nil {
		return nil, upstream("list follow-ups", err)
	}
	return items, nil
}

type FollowUpPage struct {
	Items []model.FollowUp
	Total int
	Page  int
	Limit int
}

// MyFollowUps pages through the follow-ups the user wrote, newest first.
func (s *SalesService) MyFollowUps(ctx context.Context, user model.AuthUser, from, before time.Time, page, limit int) (FollowUpPage, error) {
	page, limit, offset := pageWindow(page, limit)
	items, total, err := s.followUps.ListFollowUps(ctx, model.FollowUpQuery{
		AddedBy: user.ID,
		From:    from,
		Before:  before,
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		return FollowUpPage{}, upstream("list follow-ups", err)
	}
	return FollowUpPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// GetFollowUp returns a follow-up its author wrote or one on a lead the user
// can access.
func (s *SalesService) GetFollowUp(ctx context.Context, user model.AuthUser, id string) (*model.FollowUp, error) {
	f, err := s.followUps.GetFollowUp(ctx, id)
	if err != nil {
		return nil, upstream("get follow-up", err)
	}
	if f == nil {
		return nil, ErrNotFound
	}
	if f.AddedBy == user.ID {
		return f, nil
	}
	lead, err := s.leads.GetLead(ctx, f.SalesEntryID)
	if err != nil {
		return nil, upstream("get lead", err)
	}
	if !CanAccessLead(user, lead) {
		return nil, ErrAccessDenied
	}
	return f, nil
}

type FollowUpUpdate struct {
	Remark           *string
	Status           *string
	NextFollowUpDate *time.Time
}

// UpdateFollowUp lets the author or an admin edit a follow-up. A new next
// follow-up date is carried onto the lead together with the remark, which
// makes any dismissed reminder for the old date stop applying.
func (s *SalesService) UpdateFollowUp(ctx context.Context, user model.AuthUser, id string, upd FollowUpUpdate, now time.Time) (*model.FollowUp, error) {
	f, err := s.followUps.GetFollowUp(ctx, id)
	if err != nil {
		return nil, upstream("get follow-up", err)
	}
	if f == nil {
		return nil, ErrNotFound
	}
	if user.Role != model.RoleAdmin && f.AddedBy != user.ID {
		return nil, ErrAccessDenied
	}

	setString(&f.Remark, upd.Remark)
	setString(&f.Status, upd.Status)
	if upd.NextFollowUpDate != nil {
		f.NextFollowUpDate = normalizeDue(upd.NextFollowUpDate)
	}
	if err := s.followUps.UpdateFollowUp(ctx, f); err != nil {
		return nil, upstream("update follow-up", err)
	}

	if upd.NextFollowUpDate == nil {
		return f, nil
	}
	lead, err := s.leads.GetLead(ctx, f.SalesEntryID)
	if err != nil {
		return nil, upstream("get lead", err)
	}
	if lead == nil {
		return f, nil
	}
	due := *f.NextFollowUpDate
	lead.NextFollowUpDate = &due
	lead.Remark = f.Remark
	lead.UpdatedAt = now
	if err := s.leads.UpdateLead(ctx, lead); err != nil {
		return nil, upstream("update lead", err)
	}
	return f, nil
}

// DeleteFollowUp is admin only. The lead's follow-up count goes down with it.
func (s *SalesService) DeleteFollowUp(ctx context.Context, user model.AuthUser, id string, now time.Time) error {
	if user.Role != model.RoleAdmin {
		return ErrAccessDenied
	}
	f, err := s.followUps.GetFollowUp(ctx, id)
	if err != nil {
		return upstream("get follow-up", err)
	}
	if f == nil {
		return ErrNotFound
	}

	lead, err := s.leads.GetLead(ctx, f.SalesEntryID)
	if err != nil {
		return upstream("get lead", err)
	}
	if lead != nil && lead.TotalFollowUps > 0 {
		lead.TotalFollowUps--
		lead.UpdatedAt = now
		if err := s.leads.UpdateLead(ctx, lead); err != nil {
			return upstream("update lead", err)
		}
	}
	if err := s.followUps.DeleteFollowUp(ctx, id); err != nil {
		return upstream("delete follow-up", err)
	}
	return nil
}

// normalizeDue drops precision below a millisecond so the stored due date and
// its dismissal key agree across backends.
func normalizeDue(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.Truncate(time.Millisecond)
	return &v
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
