package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"salescrm/model"
)

func postgresIntegrationStore(t *testing.T) *PostgresStore {
	t.Helper()
	dsn := strings.TrimSpace(os.Getenv("CRM_TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("set CRM_TEST_POSTGRES_DSN to run Postgres integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := NewPostgresStore(db)
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func uniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestPostgresLeadQueries(t *testing.T) {
	store := postgresIntegrationStore(t)
	ctx := context.Background()
	owner := uniqueID("owner")
	due := time.Date(2025, time.March, 9, 10, 0, 0, 0, time.UTC)
	later := due.AddDate(0, 0, 1)

	leads := []model.SalesEntry{
		{ID: uniqueID("open"), CompanyName: "Open", SalesPersonID: owner, QueryStatus: "new", NextFollowUpDate: &later, IsActive: true, CreatedAt: due, UpdatedAt: due},
		{ID: uniqueID("closed"), CompanyName: "Closed", SalesPersonID: owner, QueryStatus: "Closed", NextFollowUpDate: &due, IsActive: true, CreatedAt: due, UpdatedAt: due},
		{ID: uniqueID("undated"), CompanyName: "Undated", SalesPersonID: owner, QueryStatus: "new", IsActive: true, CreatedAt: due, UpdatedAt: due},
	}
	for i := range leads {
		if err := store.CreateLead(ctx, &leads[i]); err != nil {
			t.Fatalf("create lead: %v", err)
		}
	}

	all, err := store.FindActiveLeadsWithDueDate(ctx, model.LeadFilter{OwnerID: owner})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].CompanyName != "Closed" {
		t.Fatalf("all = %+v", all)
	}

	open, err := store.FindActiveLeadsWithDueDate(ctx, model.LeadFilter{OwnerID: owner, ExcludeStatuses: model.TerminalStatuses})
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 1 || open[0].CompanyName != "Open" {
		t.Fatalf("open = %+v", open)
	}

	got, err := store.GetLead(ctx, leads[2].ID)
	if err != nil || got == nil || got.NextFollowUpDate != nil {
		t.Fatalf("GetLead(undated) = %+v, %v", got, err)
	}
	missing, err := store.GetLead(ctx, uniqueID("missing"))
	if missing != nil || err != nil {
		t.Fatalf("GetLead(missing) = %+v, %v", missing, err)
	}

	got.NextFollowUpDate = &due
	if err := store.UpdateLead(ctx, got); err != nil {
		t.Fatal(err)
	}
	if err := store.UpdateLead(ctx, &model.SalesEntry{ID: uniqueID("missing")}); err == nil {
		t.Fatal("UpdateLead on a missing lead succeeded")
	}
}

func TestPostgresDismissalUpsert(t *testing.T) {
	store := postgresIntegrationStore(t)
	ctx := context.Background()
	user := uniqueID("user")
	due := time.Date(2025, time.March, 9, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if err := store.UpsertDismissal(ctx, user, "lead-1", due, due.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
	}
	written, err := store.UpsertDismissals(ctx, []model.DismissedReminder{
		{UserID: user, SalesEntryID: "lead-1", DismissedForDate: due, DismissedAt: due},
		{UserID: user, SalesEntryID: "lead-2", DismissedForDate: due, DismissedAt: due},
	})
	if err != nil || written != 2 {
		t.Fatalf("UpsertDismissals = %d, %v", written, err)
	}

	records, err := store.FindDismissals(ctx, user)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	keys := map[string]bool{}
	for _, r := range records {
		keys[r.Key()] = true
	}
	if !keys[model.DismissalKey("lead-1", due)] {
		t.Fatalf("dismissal key not stable across the round trip: %v", keys)
	}
}

func TestPostgresNotifications(t *testing.T) {
	store := postgresIntegrationStore(t)
	ctx := context.Background()
	user := uniqueID("user")
	lead := uniqueID("lead")
	role := uniqueID("role")
	now := time.Now().UTC().Truncate(time.Millisecond)

	err := store.InsertMany(ctx, []model.Notification{
		{ID: uniqueID("n1"), Type: model.NotificationReminder, SalesEntryID: lead, IsOverdue: true, ForUser: user, ForRole: role, CreatedAt: now},
		{ID: uniqueID("n2"), Type: model.NotificationFollowUp, ForUser: user, ForRole: role, CreatedAt: now.Add(time.Second)},
	})
	if err != nil {
		t.Fatal(err)
	}

	exists, err := store.ExistsOverdueReminderSince(ctx, lead, now.Add(-time.Hour))
	if err != nil || !exists {
		t.Fatalf("ExistsOverdueReminderSince = %v, %v", exists, err)
	}
	exists, _ = store.ExistsOverdueReminderSince(ctx, lead, now.Add(time.Hour))
	if exists {
		t.Fatal("reminder found after its creation window")
	}

	unread := false
	audience := model.Audience{UserID: user, Role: role}
	items, total, err := store.List(ctx, model.NotificationQuery{Audience: audience, IsRead: &unread, Type: model.NotificationFollowUp, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if total < 1 || len(items) < 1 || items[0].Type != model.NotificationFollowUp {
		t.Fatalf("List = %+v total %d", items, total)
	}

	before, _ := store.CountUnread(ctx, audience)
	if err := store.MarkRead(ctx, items[0].ID, now); err != nil {
		t.Fatal(err)
	}
	after, _ := store.CountUnread(ctx, audience)
	if after != before-1 {
		t.Fatalf("unread %d -> %d after MarkRead", before, after)
	}
	n, err := store.Get(ctx, items[0].ID)
	if err != nil || n == nil || !n.IsRead || n.ReadAt == nil {
		t.Fatalf("Get = %+v, %v", n, err)
	}
	if err := store.MarkRead(ctx, uniqueID("missing"), now); err == nil {
		t.Fatal("MarkRead on a missing notification succeeded")
	}
}

func TestPostgresLeadListAndFollowUps(t *testing.T) {
	store := postgresIntegrationStore(t)
	ctx := context.Background()
	owner := uniqueID("lister")
	created := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)

	for i, status := range []string{"new", "Converted", "new"} {
		lead := model.SalesEntry{
			ID:            fmt.Sprintf("%s-%d", owner, i),
			CompanyName:   "Lead",
			SalesPersonID: owner,
			QueryStatus:   status,
			IsActive:      i != 2,
			CreatedAt:     created.Add(time.Duration(i) * time.Hour),
			UpdatedAt:     created,
		}
		if err := store.CreateLead(ctx, &lead); err != nil {
			t.Fatalf("create lead: %v", err)
		}
	}
	page, total, err := store.ListLeads(ctx, model.LeadQuery{OwnerID: owner, Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(page) != 1 || page[0].ID != owner+"-1" {
		t.Fatalf("ListLeads = %d %+v", total, page)
	}
	if _, total, _ := store.ListLeads(ctx, model.LeadQuery{OwnerID: owner, QueryStatus: "converted"}); total != 1 {
		t.Fatalf("status filter total = %d", total)
	}

	author := uniqueID("author")
	f := model.FollowUp{
		ID:           uniqueID("fu"),
		SalesEntryID: owner + "-0",
		Remark:       "called",
		Status:       "Cold",
		AddedBy:      author,
		FollowUpDate: created,
		CreatedAt:    created,
	}
	if err := store.CreateFollowUp(ctx, &f); err != nil {
		t.Fatal(err)
	}
	f.Remark = "called twice"
	if err := store.UpdateFollowUp(ctx, &f); err != nil {
		t.Fatal(err)
	}
	got, err := store.GetFollowUp(ctx, f.ID)
	if err != nil || got == nil || got.Remark != "called twice" {
		t.Fatalf("GetFollowUp = %+v, %v", got, err)
	}
	mine, total, err := store.ListFollowUps(ctx, model.FollowUpQuery{AddedBy: author, From: created, Before: created.Add(time.Hour)})
	if err != nil || total != 1 || len(mine) != 1 {
		t.Fatalf("ListFollowUps = %d %+v, %v", total, mine, err)
	}
	if err := store.DeleteFollowUp(ctx, f.ID); err != nil {
		t.Fatal(err)
	}
	if got, _ := store.GetFollowUp(ctx, f.ID); got != nil {
		t.Fatalf("follow-up survived delete: %+v", got)
	}
	if err := store.UpdateFollowUp(ctx, &f); err != errNoRows {
		t.Fatalf("update deleted follow-up err = %v", err)
	}
}

func TestPostgresUserUpdate(t *testing.T) {
	store := postgresIntegrationStore(t)
	ctx := context.Background()
	u := model.User{
		UserID:    uniqueID("user"),
		Name:      "Sam",
		Username:  uniqueID("sam"),
		Password:  "hash",
		Role:      model.RoleSalesperson,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.CreateUser(ctx, &u); err != nil {
		t.Fatal(err)
	}
	u.Role = model.RoleManager
	u.IsActive = false
	if err := store.UpdateUser(ctx, &u); err != nil {
		t.Fatal(err)
	}
	got, err := store.GetUserByID(ctx, u.UserID)
	if err != nil || got.Role != model.RoleManager || got.IsActive {
		t.Fatalf("user = %+v, %v", got, err)
	}

	all, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, x := range all {
		found = found || x.UserID == u.UserID
	}
	if !found {
		t.Fatal("ListUsers missed the new user")
	}
	if err := store.UpdateUser(ctx, &model.User{UserID: uniqueID("ghost")}); err != errNoRows {
		t.Fatalf("update missing user err = %v", err)
	}
}
