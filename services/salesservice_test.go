package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"salescrm/model"
	"salescrm/repository"
)

func newSalesService(store *repository.MemoryStore) *SalesService {
	return NewSalesService(store, store, newNotificationService(store))
}

func TestCreateLeadAssignsOwnerAndNotifiesAdmins(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newSalesService(store)

	due := time.Date(2025, time.March, 12, 9, 30, 0, 123456789, time.UTC)
	lead := model.SalesEntry{CompanyName: "Acme", SalesPersonID: bob.ID, NextFollowUpDate: &due}
	if err := svc.CreateLead(ctx, alice, &lead, testNow); err != nil {
		t.Fatal(err)
	}

	if lead.ID == "" || lead.SalesPersonID != alice.ID || lead.QueryStatus != model.StatusNew || !lead.IsActive {
		t.Fatalf("lead = %+v", lead)
	}
	if lead.NextFollowUpDate.Nanosecond() != 123000000 {
		t.Fatalf("due date not truncated to milliseconds: %v", lead.NextFollowUpDate)
	}

	page, err := newNotificationService(store).List(ctx, admin, 1, 10, nil, model.NotificationNewEntry)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Items[0].Message != "New entry added: Acme" {
		t.Fatalf("new entry notifications = %+v", page.Items)
	}

	managed := model.SalesEntry{CompanyName: "Globex", SalesPersonID: bob.ID, SalesPersonName: bob.Name}
	if err := svc.CreateLead(ctx, manager, &managed, testNow); err != nil {
		t.Fatal(err)
	}
	if managed.SalesPersonID != bob.ID {
		t.Fatalf("manager assignment lost: %q", managed.SalesPersonID)
	}
}

func TestUpdateLeadScopeAndConversion(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newSalesService(store)
	seedLead(t, store, "L", alice, at(9, 9), model.StatusFollowUp)

	status := model.StatusConverted
	if _, err := svc.UpdateLead(ctx, bob, "L", LeadUpdate{QueryStatus: &status}, testNow); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}
	if _, err := svc.UpdateLead(ctx, alice, "nope", LeadUpdate{}, testNow); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	lead, err := svc.UpdateLead(ctx, alice, "L", LeadUpdate{QueryStatus: &status, ClearNextFollowUp: true}, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if lead.ConvertedDate == nil || !lead.ConvertedDate.Equal(testNow) {
		t.Fatalf("converted date = %v", lead.ConvertedDate)
	}
	if lead.NextFollowUpDate != nil {
		t.Fatalf("next follow-up not cleared")
	}

	stored, err := svc.GetLead(ctx, manager, "L")
	if err != nil {
		t.Fatal(err)
	}
	if stored.QueryStatus != model.StatusConverted {
		t.Fatalf("stored status = %q", stored.QueryStatus)
	}
}

func TestAddFollowUpMovesLeadForward(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newSalesService(store)
	seedLead(t, store, "L", alice, at(9, 9), model.StatusNew)

	f := model.FollowUp{SalesEntryID: "L", Remark: "Sent pricing", NextFollowUpDate: at(14, 10)}
	if err := svc.AddFollowUp(ctx, alice, &f, testNow); err != nil {
		t.Fatal(err)
	}
	if f.ID == "" || f.Status != "Cold" || f.AddedBy != alice.ID {
		t.Fatalf("follow-up = %+v", f)
	}

	lead, err := svc.GetLead(ctx, alice, "L")
	if err != nil {
		t.Fatal(err)
	}
	if lead.TotalFollowUps != 1 || lead.Remark != "Sent pricing" || !lead.NextFollowUpDate.Equal(*at(14, 10)) {
		t.Fatalf("lead = %+v", lead)
	}
	if lead.QueryStatus != model.StatusNew {
		t.Fatalf("status changed without a requested status: %q", lead.QueryStatus)
	}

	f2 := model.FollowUp{SalesEntryID: "L", Remark: "Negotiating", Status: model.StatusInProgress}
	if err := svc.AddFollowUp(ctx, alice, &f2, testNow.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	lead, _ = svc.GetLead(ctx, alice, "L")
	if lead.QueryStatus != model.StatusInProgress || lead.TotalFollowUps != 2 {
		t.Fatalf("lead after second follow-up = %+v", lead)
	}

	items, err := svc.ListFollowUps(ctx, alice, "L")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 || items[0].ID != f2.ID {
		t.Fatalf("follow-ups = %+v", items)
	}

	if err := svc.AddFollowUp(ctx, bob, &model.FollowUp{SalesEntryID: "L", Remark: "x"}, testNow); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("err = %v, want ErrAccessDenied", err)
	}
	if _, err := svc.ListFollowUps(ctx, bob, "L"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("list err = %v, want ErrAccessDenied", err)
	}

	page, err := newNotificationService(store).List(ctx, admin, 1, 10, nil, model.NotificationFollowUp)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 2 {
		t.Fatalf("follow-up notifications = %d, want 2", page.Total)
	}
}

func TestDeleteLeadIsSoftAndRoleGated(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newSalesService(store)
	seedLead(t, store, "L", alice, at(9, 9), model.StatusFollowUp)

	if err := svc.DeleteLead(ctx, alice, "L", testNow); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("owner delete err = %v, want ErrAccessDenied", err)
	}
	if err := svc.DeleteLead(ctx, manager, "missing", testNow); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing err = %v, want ErrNotFound", err)
	}
	if err := svc.DeleteLead(ctx, manager, "L", testNow); err != nil {
		t.Fatal(err)
	}

	lead, err := store.GetLead(ctx, "L")
	if err != nil || lead == nil || lead.IsActive {
		t.Fatalf("lead after delete = %+v, %v", lead, err)
	}

	reminders, _, err := NewReminderService(store, store).GetReminders(ctx, alice, testNow)
	if err != nil || len(reminders) != 0 {
		t.Fatalf("deleted lead still reminds: %v, %v", reminderIDs(reminders), err)
	}
	created, err := NewOverdueNotifier(store, store).Run(ctx, testNow)
	if err != nil || created != 0 {
		t.Fatalf("deleted lead still notified: %d, %v", created, err)
	}
}

func TestListLeadsForcesSalespersonScope(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newSalesService(store)
	seedLead(t, store, "A1", alice, nil, model.StatusNew)
	seedLead(t, store, "A2", alice, at(9, 9), model.StatusConverted)
	seedLead(t, store, "B1", bob, nil, model.StatusNew)
	if err := svc.DeleteLead(ctx, admin, "A1", testNow); err != nil {
		t.Fatal(err)
	}

	page, err := svc.ListLeads(ctx, alice, model.LeadQuery{OwnerID: bob.ID}, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Items[0].ID != "A2" {
		t.Fatalf("alice page = %+v", page)
	}

	page, err = svc.ListLeads(ctx, manager, model.LeadQuery{}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 2 || len(page.Items) != 1 || page.Limit != 1 {
		t.Fatalf("manager page = %+v", page)
	}

	page, err = svc.ListLeads(ctx, admin, model.LeadQuery{QueryStatus: "CONVERTED"}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || page.Page != 1 || page.Limit != defaultPageSize {
		t.Fatalf("status page = %+v", page)
	}
}

func TestTodayAndOverdueFollowUps(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newSalesService(store)
	seedLead(t, store, "late", alice, at(8, 9), model.StatusFollowUp)
	seedLead(t, store, "late-closed", alice, at(8, 9), model.StatusClosed)
	seedLead(t, store, "today-early", alice, at(10, 0), model.StatusNew)
	seedLead(t, store, "today-late", alice, at(10, 23), model.StatusNew)
	seedLead(t, store, "tomorrow", alice, at(11, 0), model.StatusNew)
	seedLead(t, store, "bob-late", bob, at(7, 9), model.StatusNew)

	today, err := svc.TodayFollowUps(ctx, alice, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if got := leadIDs(today); !equalIDs(got, []string{"today-early", "today-late"}) {
		t.Fatalf("today = %v", got)
	}

	overdue, err := svc.OverdueFollowUps(ctx, alice, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if got := leadIDs(overdue); !equalIDs(got, []string{"late"}) {
		t.Fatalf("alice overdue = %v", got)
	}

	overdue, err = svc.OverdueFollowUps(ctx, admin, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if got := leadIDs(overdue); !equalIDs(got, []string{"bob-late", "late"}) {
		t.Fatalf("admin overdue = %v", got)
	}
}

func TestFollowUpEditAndDelete(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newSalesService(store)
	dismissals := NewDismissalService(store, store)
	seedLead(t, store, "L", alice, at(9, 9), model.StatusNew)

	f := model.FollowUp{SalesEntryID: "L", Remark: "Called"}
	if err := svc.AddFollowUp(ctx, alice, &f, testNow); err != nil {
		t.Fatal(err)
	}
	if err := dismissals.DismissOne(ctx, alice, "L", testNow); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetFollowUp(ctx, bob, f.ID); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("foreign get err = %v", err)
	}
	if got, err := svc.GetFollowUp(ctx, manager, f.ID); err != nil || got.Remark != "Called" {
		t.Fatalf("manager get = %+v, %v", got, err)
	}

	remark := "Rescheduled"
	if _, err := svc.UpdateFollowUp(ctx, bob, f.ID, FollowUpUpdate{Remark: &remark}, testNow); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("foreign update err = %v", err)
	}
	updated, err := svc.UpdateFollowUp(ctx, alice, f.ID, FollowUpUpdate{Remark: &remark, NextFollowUpDate: at(10, 15)}, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Remark != remark || !updated.NextFollowUpDate.Equal(*at(10, 15)) {
		t.Fatalf("follow-up = %+v", updated)
	}
	lead, _ := store.GetLead(ctx, "L")
	if lead.Remark != remark || !lead.NextFollowUpDate.Equal(*at(10, 15)) {
		t.Fatalf("lead not moved: %+v", lead)
	}
	reminders, _, err := NewReminderService(store, store).GetReminders(ctx, alice, testNow)
	if err != nil || !equalIDs(reminderIDs(reminders), []string{"L"}) {
		t.Fatalf("rescheduled reminder did not resurface: %v, %v", reminderIDs(reminders), err)
	}

	if err := svc.DeleteFollowUp(ctx, manager, f.ID, testNow); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("manager delete err = %v", err)
	}
	if err := svc.DeleteFollowUp(ctx, admin, f.ID, testNow); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteFollowUp(ctx, admin, f.ID, testNow); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete err = %v", err)
	}
	lead, _ = store.GetLead(ctx, "L")
	if lead.TotalFollowUps != 0 {
		t.Fatalf("totalFollowUps = %d", lead.TotalFollowUps)
	}
}

func TestMyFollowUpsByAuthorAndDate(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := newSalesService(store)
	seedLead(t, store, "L", alice, nil, model.StatusNew)

	for i, when := range []time.Time{*at(8, 9), *at(9, 9), testNow} {
		f := model.FollowUp{SalesEntryID: "L", Remark: "call"}
		if err := svc.AddFollowUp(ctx, alice, &f, when); err != nil {
			t.Fatalf("follow-up %d: %v", i, err)
		}
	}
	if err := svc.AddFollowUp(ctx, manager, &model.FollowUp{SalesEntryID: "L", Remark: "check"}, testNow); err != nil {
		t.Fatal(err)
	}

	page, err := svc.MyFollowUps(ctx, alice, time.Time{}, time.Time{}, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 3 || len(page.Items) != 2 || !page.Items[0].FollowUpDate.Equal(testNow) {
		t.Fatalf("page = %+v", page)
	}

	page, err = svc.MyFollowUps(ctx, alice, *at(9, 0), *at(10, 0), 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || !page.Items[0].FollowUpDate.Equal(*at(9, 9)) {
		t.Fatalf("ranged page = %+v", page)
	}
}

func leadIDs(leads []model.SalesEntry) []string {
	ids := make([]string, len(leads))
	for i, l := range leads {
		ids[i] = l.ID
	}
	return ids
}
