package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"salescrm/model"
)

const postgresOperationTimeout = 5 * time.Second

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL DEFAULT '',
		password TEXT NOT NULL,
		role TEXT NOT NULL,
		branch TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sales_entries (
		id TEXT PRIMARY KEY,
		company_name TEXT NOT NULL,
		contact_person TEXT NOT NULL DEFAULT '',
		contact_number TEXT NOT NULL DEFAULT '',
		contact_email TEXT NOT NULL DEFAULT '',
		requirement TEXT NOT NULL DEFAULT '',
		remark TEXT NOT NULL DEFAULT '',
		next_follow_up_date TIMESTAMPTZ,
		query_status TEXT NOT NULL DEFAULT 'new',
		sales_person_id TEXT NOT NULL,
		sales_person_name TEXT NOT NULL DEFAULT '',
		branch TEXT NOT NULL DEFAULT '',
		total_follow_ups INTEGER NOT NULL DEFAULT 0,
		last_follow_up_date TIMESTAMPTZ,
		converted_date TIMESTAMPTZ,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS sales_entries_due_idx ON sales_entries (is_active, next_follow_up_date)`,
	`CREATE INDEX IF NOT EXISTS sales_entries_owner_idx ON sales_entries (sales_person_id)`,
	`CREATE TABLE IF NOT EXISTS dismissed_reminders (
		user_id TEXT NOT NULL,
		sales_entry_id TEXT NOT NULL,
		dismissed_for_date TIMESTAMPTZ NOT NULL,
		dismissed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, sales_entry_id, dismissed_for_date)
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		sales_entry_id TEXT NOT NULL DEFAULT '',
		company_name TEXT NOT NULL DEFAULT '',
		sales_person_id TEXT NOT NULL DEFAULT '',
		sales_person_name TEXT NOT NULL DEFAULT '',
		remark TEXT NOT NULL DEFAULT '',
		next_follow_up_date TIMESTAMPTZ,
		follow_up_date TIMESTAMPTZ,
		is_overdue BOOLEAN NOT NULL DEFAULT FALSE,
		for_user TEXT NOT NULL DEFAULT '',
		for_role TEXT NOT NULL DEFAULT 'all',
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		read_at TIMESTAMPTZ,
		title TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS notifications_user_idx ON notifications (for_user, is_read, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS notifications_role_idx ON notifications (for_role, is_read, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS notifications_entry_idx ON notifications (sales_entry_id, type, created_at)`,
	`CREATE TABLE IF NOT EXISTS follow_ups (
		id TEXT PRIMARY KEY,
		sales_entry_id TEXT NOT NULL,
		remark TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Cold',
		next_follow_up_date TIMESTAMPTZ,
		added_by TEXT NOT NULL,
		added_by_name TEXT NOT NULL DEFAULT '',
		follow_up_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS follow_ups_entry_idx ON follow_ups (sales_entry_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS follow_ups_author_idx ON follow_ups (added_by, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS sales_entries_created_idx ON sales_entries (is_active, created_at DESC)`,
}

const (
	leadColumns = `id, company_name, contact_person, contact_number, contact_email, requirement, remark,
		next_follow_up_date, query_status, sales_person_id, sales_person_name, branch, total_follow_ups,
		last_follow_up_date, converted_date, is_active, created_at, updated_at`
	notificationColumns = `id, type, sales_entry_id, company_name, sales_person_id, sales_person_name, remark,
		next_follow_up_date, follow_up_date, is_overdue, for_user, for_role, is_read, read_at, title, message, created_at`
	followUpColumns = `id, sales_entry_id, remark, status, next_follow_up_date, added_by, added_by_name, follow_up_date, created_at`
	userColumns     = `user_id, name, username, email, password, role, branch, is_active, created_at`
)

const (
	leadInsert = `INSERT INTO sales_entries (` + leadColumns + `) VALUES
		(:id, :company_name, :contact_person, :contact_number, :contact_email, :requirement, :remark,
		:next_follow_up_date, :query_status, :sales_person_id, :sales_person_name, :branch, :total_follow_ups,
		:last_follow_up_date, :converted_date, :is_active, :created_at, :updated_at)`
	leadUpdate = `UPDATE sales_entries SET company_name=:company_name, contact_person=:contact_person,
		contact_number=:contact_number, contact_email=:contact_email, requirement=:requirement, remark=:remark,
		next_follow_up_date=:next_follow_up_date, query_status=:query_status, sales_person_id=:sales_person_id,
		sales_person_name=:sales_person_name, branch=:branch, total_follow_ups=:total_follow_ups,
		last_follow_up_date=:last_follow_up_date, converted_date=:converted_date, is_active=:is_active,
		updated_at=:updated_at WHERE id=:id`
	dismissalUpsert = `INSERT INTO dismissed_reminders (user_id, sales_entry_id, dismissed_for_date, dismissed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, sales_entry_id, dismissed_for_date)
		DO UPDATE SET dismissed_at = EXCLUDED.dismissed_at`
	notificationInsert = `INSERT INTO notifications (` + notificationColumns + `) VALUES
		(:id, :type, :sales_entry_id, :company_name, :sales_person_id, :sales_person_name, :remark,
		:next_follow_up_date, :follow_up_date, :is_overdue, :for_user, :for_role, :is_read, :read_at,
		:title, :message, :created_at)`
	followUpInsert = `INSERT INTO follow_ups (` + followUpColumns + `) VALUES
		(:id, :sales_entry_id, :remark, :status, :next_follow_up_date, :added_by, :added_by_name,
		:follow_up_date, :created_at)`
	userInsert = `INSERT INTO users (` + userColumns + `) VALUES
		(:user_id, :name, :username, :email, :password, :role, :branch, :is_active, :created_at)`
	userUpdate = `UPDATE users SET name=:name, email=:email, password=:password, role=:role, branch=:branch,
		is_active=:is_active WHERE user_id=:user_id`
	followUpUpdate = `UPDATE follow_ups SET remark=:remark, status=:status, next_follow_up_date=:next_follow_up_date
		WHERE id=:id`
)

// PostgresStore implements every store on one Postgres database.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the tables and indexes when they are missing.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	for _, stmt := range postgresSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) FindActiveLeadsWithDueDate(ctx context.Context, filter model.LeadFilter) ([]model.SalesEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	where := []string{"is_active", "next_follow_up_date IS NOT NULL"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.OwnerID != "" {
		where = append(where, "sales_person_id = "+arg(filter.OwnerID))
	}
	if !filter.DueFrom.IsZero() {
		where = append(where, "next_follow_up_date >= "+arg(filter.DueFrom))
	}
	if !filter.DueBefore.IsZero() {
		where = append(where, "next_follow_up_date < "+arg(filter.DueBefore))
	}
	if len(filter.ExcludeStatuses) > 0 {
		lowered := make([]string, len(filter.ExcludeStatuses))
		for i, st := range filter.ExcludeStatuses {
			lowered[i] = strings.ToLower(st)
		}
		where = append(where, "LOWER(TRIM(query_status)) <> ALL("+arg(pq.Array(lowered))+")")
	}

	query := `SELECT ` + leadColumns + ` FROM sales_entries WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY next_follow_up_date ASC`
	leads := []model.SalesEntry{}
	if err := s.db.SelectContext(ctx, &leads, query, args...); err != nil {
		return nil, err
	}
	return leads, nil
}

func (s *PostgresStore) GetLead(ctx context.Context, id string) (*model.SalesEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	var lead model.SalesEntry
	err := s.db.GetContext(ctx, &lead, `SELECT `+leadColumns+` FROM sales_entries WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (s *PostgresStore) CreateLead(ctx context.Context, lead *model.SalesEntry) error {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()
	_, err := s.db.NamedExecContext(ctx, leadInsert, lead)
	return err
}

func (s *PostgresStore) UpdateLead(ctx context.Context, lead *model.SalesEntry) error {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()
	res, err := s.db.NamedExecContext(ctx, leadUpdate, lead)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PostgresStore) ListLeads(ctx context.Context, q model.LeadQuery) ([]model.SalesEntry, int, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	where := []string{"is_active"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if q.OwnerID != "" {
		where = append(where, "sales_person_id = "+arg(q.OwnerID))
	}
	if q.QueryStatus != "" {
		where = append(where, "LOWER(TRIM(query_status)) = "+arg(strings.ToLower(strings.TrimSpace(q.QueryStatus))))
	}
	if q.Branch != "" {
		where = append(where, "branch = "+arg(q.Branch))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM sales_entries WHERE `+cond, args...); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + leadColumns + ` FROM sales_entries WHERE ` + cond + ` ORDER BY created_at DESC`
	if q.Limit > 0 {
		query += ` LIMIT ` + arg(q.Limit)
	}
	query += ` OFFSET ` + arg(q.Offset)

	leads := []model.SalesEntry{}
	if err := s.db.SelectContext(ctx, &leads, query, args...); err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

func (s *PostgresStore) UpsertDismissal(ctx context.Context, userID, leadID string, dueDate, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, dismissalUpsert, userID, leadID, dueDate, now)
	return err
}

// UpsertDismissals runs one statement per record outside any transaction so
// that records already written stay written if a later one fails.
func (s *PostgresStore) UpsertDismissals(ctx context.Context, records []model.DismissedReminder) (int, error) {
	written := 0
	for _, r := range records {
		if err := s.UpsertDismissal(ctx, r.UserID, r.SalesEntryID, r.DismissedForDate, r.DismissedAt); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func (s *PostgresStore) FindDismissals(ctx context.Context, userID string) ([]model.DismissedReminder, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	out := []model.DismissedReminder{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT user_id, sales_entry_id, dismissed_for_date, dismissed_at FROM dismissed_reminders WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) ExistsOverdueReminderSince(ctx context.Context, leadID string, since time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	var exists bool
	err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (
		SELECT 1 FROM notifications
		WHERE sales_entry_id = $1 AND type = $2 AND is_overdue AND created_at >= $3)`,
		leadID, model.NotificationReminder, since)
	return exists, err
}

func (s *PostgresStore) InsertMany(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range notifications {
		if _, err := tx.NamedExecContext(ctx, notificationInsert, &notifications[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) Create(ctx context.Context, n *model.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()
	_, err := s.db.NamedExecContext(ctx, notificationInsert, n)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*model.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	var n model.Notification
	err := s.db.GetContext(ctx, &n, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// audienceClause renders the visibility predicate starting at placeholder $1.
func audienceClause(a model.Audience) (string, []interface{}) {
	return `(for_user = $1 OR for_role = $2 OR for_role = 'all')`, []interface{}{a.UserID, a.Role}
}

func (s *PostgresStore) List(ctx context.Context, q model.NotificationQuery) ([]model.Notification, int, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	clause, args := audienceClause(q.Audience)
	where := []string{clause}
	if q.IsRead != nil {
		args = append(args, *q.IsRead)
		where = append(where, fmt.Sprintf("is_read = $%d", len(args)))
	}
	if q.Type != "" {
		args = append(args, q.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications WHERE `+cond, args...); err != nil {
		return nil, 0, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = total
	}
	pageArgs := append(append([]interface{}{}, args...), limit, q.Offset)
	query := fmt.Sprintf(`SELECT %s FROM notifications WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		notificationColumns, cond, len(args)+1, len(args)+2)
	items := []model.Notification{}
	if err := s.db.SelectContext(ctx, &items, query, pageArgs...); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *PostgresStore) CountUnread(ctx context.Context, audience model.Audience) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	clause, args := audienceClause(audience)
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM notifications WHERE NOT is_read AND `+clause, args...)
	return count, err
}

func (s *PostgresStore) MarkRead(ctx context.Context, id string, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()
	res, err := s.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE, read_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PostgresStore) MarkAllRead(ctx context.Context, audience model.Audience, at time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	clause, args := audienceClause(audience)
	args = append(args, at)
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE notifications SET is_read = TRUE, read_at = $%d WHERE NOT is_read AND %s`, len(args), clause),
		args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) DeleteRead(ctx context.Context, audience model.Audience) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	clause, args := audienceClause(audience)
	res, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE is_read AND `+clause, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *PostgresStore) CreateFollowUp(ctx context.Context, f *model.FollowUp) error {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()
	_, err := s.db.NamedExecContext(ctx, followUpInsert, f)
	return err
}

func (s *PostgresStore) ListBySalesEntry(ctx context.Context, salesEntryID string) ([]model.FollowUp, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	out := []model.FollowUp{}
	err := s.db.SelectContext(ctx, &out,
		`SELECT `+followUpColumns+` FROM follow_ups WHERE sales_entry_id = $1 ORDER BY created_at DESC`, salesEntryID)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) ListFollowUps(ctx context.Context, q model.FollowUpQuery) ([]model.FollowUp, int, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	where := []string{"TRUE"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if q.AddedBy != "" {
		where = append(where, "added_by = "+arg(q.AddedBy))
	}
	if !q.From.IsZero() {
		where = append(where, "follow_up_date >= "+arg(q.From))
	}
	if !q.Before.IsZero() {
		where = append(where, "follow_up_date < "+arg(q.Before))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM follow_ups WHERE `+cond, args...); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + followUpColumns + ` FROM follow_ups WHERE ` + cond + ` ORDER BY created_at DESC`
	if q.Limit > 0 {
		query += ` LIMIT ` + arg(q.Limit)
	}
	query += ` OFFSET ` + arg(q.Offset)

	out := []model.FollowUp{}
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *PostgresStore) GetFollowUp(ctx context.Context, id string) (*model.FollowUp, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	var f model.FollowUp
	err := s.db.GetContext(ctx, &f, `SELECT `+followUpColumns+` FROM follow_ups WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *PostgresStore) UpdateFollowUp(ctx context.Context, f *model.FollowUp) error {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()
	res, err := s.db.NamedExecContext(ctx, followUpUpdate, f)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PostgresStore) DeleteFollowUp(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, `DELETE FROM follow_ups WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
}

func (s *PostgresStore) getUser(ctx context.Context, query string, arg string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	var u model.User
	err := s.db.GetContext(ctx, &u, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *model.User) error {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()
	_, err := s.db.NamedExecContext(ctx, userInsert, u)
	return err
}

func (s *PostgresStore) UpdateUser(ctx context.Context, u *model.User) error {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()
	res, err := s.db.NamedExecContext(ctx, userUpdate, u)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, postgresOperationTimeout)
	defer cancel()

	out := []model.User{}
	if err := s.db.SelectContext(ctx, &out, `SELECT `+userColumns+` FROM users ORDER BY username`); err != nil {
		return nil, err
	}
	return out, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errNoRows
	}
	return nil
}
