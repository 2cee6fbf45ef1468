package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"salescrm/model"
)

const (
	collectionSalesEntries = "SalesEntries"
	collectionDismissals   = "DismissedReminders"
	collectionNotification = "Notifications"
	collectionFollowUps    = "FollowUps"
	collectionUsers        = "Users"
)

// FirestoreStore implements every store on Cloud Firestore. Conditions
// Firestore cannot express without composite indexes are finished in memory.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func (s *FirestoreStore) FindActiveLeadsWithDueDate(ctx context.Context, filter model.LeadFilter) ([]model.SalesEntry, error) {
	q := s.client.Collection(collectionSalesEntries).Where("isactive", "==", true)
	if filter.OwnerID != "" {
		q = q.Where("salespersonid", "==", filter.OwnerID)
	}
	if !filter.DueFrom.IsZero() {
		q = q.Where("nextfollowupdate", ">=", filter.DueFrom)
	}
	if !filter.DueBefore.IsZero() {
		q = q.Where("nextfollowupdate", "<", filter.DueBefore)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	leads := []model.SalesEntry{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var lead model.SalesEntry
		if err := doc.DataTo(&lead); err != nil {
			return nil, err
		}
		if filter.Matches(&lead) {
			leads = append(leads, lead)
		}
	}
	sortByDueDate(leads)
	return leads, nil
}

func (s *FirestoreStore) GetLead(ctx context.Context, id string) (*model.SalesEntry, error) {
	doc, err := s.client.Collection(collectionSalesEntries).Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var lead model.SalesEntry
	if err := doc.DataTo(&lead); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (s *FirestoreStore) CreateLead(ctx context.Context, lead *model.SalesEntry) error {
	_, err := s.client.Collection(collectionSalesEntries).Doc(lead.ID).Create(ctx, lead)
	return err
}

// UpdateLead replaces the whole document so cleared optional fields disappear.
func (s *FirestoreStore) UpdateLead(ctx context.Context, lead *model.SalesEntry) error {
	return s.replaceExisting(ctx, s.client.Collection(collectionSalesEntries).Doc(lead.ID), lead)
}

// replaceExisting overwrites ref inside a transaction that first checks the
// document is there.
func (s *FirestoreStore) replaceExisting(ctx context.Context, ref *firestore.DocumentRef, data interface{}) error {
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Set(ref, data)
	})
	if isNotFound(err) {
		return errNoRows
	}
	return err
}

func (s *FirestoreStore) ListLeads(ctx context.Context, q model.LeadQuery) ([]model.SalesEntry, int, error) {
	query := s.client.Collection(collectionSalesEntries).Where("isactive", "==", true)
	if q.OwnerID != "" {
		query = query.Where("salespersonid", "==", q.OwnerID)
	}
	if q.Branch != "" {
		query = query.Where("branch", "==", q.Branch)
	}
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, err
	}
	all := make([]model.SalesEntry, 0, len(docs))
	for _, doc := range docs {
		var lead model.SalesEntry
		if err := doc.DataTo(&lead); err != nil {
			return nil, 0, err
		}
		all = append(all, lead)
	}
	matched := filterLeads(all, q)
	return pageOf(matched, q.Offset, q.Limit), len(matched), nil
}

// dismissalDocID derives the document id from the identity triple so that a
// Set on it is an atomic upsert.
func dismissalDocID(userID, leadID string, dueDate time.Time) string {
	sum := sha256.Sum256([]byte(userID + "|" + model.DismissalKey(leadID, dueDate)))
	return hex.EncodeToString(sum[:])
}

func (s *FirestoreStore) UpsertDismissal(ctx context.Context, userID, leadID string, dueDate, now time.Time) error {
	record := model.DismissedReminder{
		UserID:           userID,
		SalesEntryID:     leadID,
		DismissedForDate: dueDate,
		DismissedAt:      now,
	}
	_, err := s.client.Collection(collectionDismissals).Doc(dismissalDocID(userID, leadID, dueDate)).Set(ctx, record)
	return err
}

func (s *FirestoreStore) UpsertDismissals(ctx context.Context, records []model.DismissedReminder) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	col := s.client.Collection(collectionDismissals)
	bw := s.client.BulkWriter(ctx)

	jobs := make([]*firestore.BulkWriterJob, 0, len(records))
	var firstErr error
	for _, r := range records {
		job, err := bw.Set(col.Doc(dismissalDocID(r.UserID, r.SalesEntryID, r.DismissedForDate)), r)
		if err != nil {
			firstErr = err
			break
		}
		jobs = append(jobs, job)
	}
	bw.End()

	written := 0
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		written++
	}
	return written, firstErr
}

func (s *FirestoreStore) FindDismissals(ctx context.Context, userID string) ([]model.DismissedReminder, error) {
	docs, err := s.client.Collection(collectionDismissals).Where("userid", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]model.DismissedReminder, 0, len(docs))
	for _, doc := range docs {
		var d model.DismissedReminder
		if err := doc.DataTo(&d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *FirestoreStore) ExistsOverdueReminderSince(ctx context.Context, leadID string, since time.Time) (bool, error) {
	iter := s.client.Collection(collectionNotification).
		Where("salesentryid", "==", leadID).
		Where("type", "==", model.NotificationReminder).
		Where("isoverdue", "==", true).
		Where("createdat", ">=", since).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertMany writes the notifications in one transaction.
func (s *FirestoreStore) InsertMany(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	col := s.client.Collection(collectionNotification)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for i := range notifications {
			if err := tx.Create(col.Doc(notifications[i].ID), &notifications[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *FirestoreStore) Create(ctx context.Context, n *model.Notification) error {
	_, err := s.client.Collection(collectionNotification).Doc(n.ID).Create(ctx, n)
	return err
}

func (s *FirestoreStore) Get(ctx context.Context, id string) (*model.Notification, error) {
	doc, err := s.client.Collection(collectionNotification).Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var n model.Notification
	if err := doc.DataTo(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

// audienceNotifications merges the notifications addressed to the user with
// those addressed to the user's role or to everyone.
func (s *FirestoreStore) audienceNotifications(ctx context.Context, audience model.Audience) ([]model.Notification, error) {
	col := s.client.Collection(collectionNotification)
	queries := []firestore.Query{
		col.Where("forrole", "in", []string{audience.Role, model.RoleAll}),
	}
	if audience.UserID != "" {
		queries = append(queries, col.Where("foruser", "==", audience.UserID))
	}

	byID := map[string]model.Notification{}
	for _, q := range queries {
		docs, err := q.Documents(ctx).GetAll()
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			var n model.Notification
			if err := doc.DataTo(&n); err != nil {
				return nil, err
			}
			if n.ID == "" {
				n.ID = doc.Ref.ID
			}
			byID[n.ID] = n
		}
	}

	out := make([]model.Notification, 0, len(byID))
	for _, n := range byID {
		out = append(out, n)
	}
	return out, nil
}

func (s *FirestoreStore) List(ctx context.Context, q model.NotificationQuery) ([]model.Notification, int, error) {
	all, err := s.audienceNotifications(ctx, q.Audience)
	if err != nil {
		return nil, 0, err
	}
	matched := filterNotifications(all, q)
	return pageOf(matched, q.Offset, q.Limit), len(matched), nil
}

func (s *FirestoreStore) CountUnread(ctx context.Context, audience model.Audience) (int, error) {
	all, err := s.audienceNotifications(ctx, audience)
	if err != nil {
		return 0, err
	}
	unread := false
	return len(filterNotifications(all, model.NotificationQuery{Audience: audience, IsRead: &unread})), nil
}

func (s *FirestoreStore) MarkRead(ctx context.Context, id string, at time.Time) error {
	_, err := s.client.Collection(collectionNotification).Doc(id).Update(ctx, []firestore.Update{
		{Path: "isread", Value: true},
		{Path: "readat", Value: at},
	})
	if isNotFound(err) {
		return errNoRows
	}
	return err
}

func (s *FirestoreStore) MarkAllRead(ctx context.Context, audience model.Audience, at time.Time) (int, error) {
	all, err := s.audienceNotifications(ctx, audience)
	if err != nil {
		return 0, err
	}
	col := s.client.Collection(collectionNotification)
	return s.bulkApply(ctx, all, func(n model.Notification) bool { return !n.IsRead },
		func(bw *firestore.BulkWriter, id string) (*firestore.BulkWriterJob, error) {
			return bw.Update(col.Doc(id), []firestore.Update{
				{Path: "isread", Value: true},
				{Path: "readat", Value: at},
			})
		})
}

func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.Collection(collectionNotification).Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) DeleteRead(ctx context.Context, audience model.Audience) (int, error) {
	all, err := s.audienceNotifications(ctx, audience)
	if err != nil {
		return 0, err
	}
	col := s.client.Collection(collectionNotification)
	return s.bulkApply(ctx, all, func(n model.Notification) bool { return n.IsRead },
		func(bw *firestore.BulkWriter, id string) (*firestore.BulkWriterJob, error) {
			return bw.Delete(col.Doc(id))
		})
}

// bulkApply enqueues op for every selected notification and returns how many
// writes succeeded along with the first failure.
func (s *FirestoreStore) bulkApply(
	ctx context.Context,
	items []model.Notification,
	selected func(model.Notification) bool,
	op func(*firestore.BulkWriter, string) (*firestore.BulkWriterJob, error),
) (int, error) {
	bw := s.client.BulkWriter(ctx)
	jobs := []*firestore.BulkWriterJob{}
	var firstErr error
	for _, n := range items {
		if !selected(n) {
			continue
		}
		job, err := op(bw, n.ID)
		if err != nil {
			firstErr = err
			break
		}
		jobs = append(jobs, job)
	}
	bw.End()

	done := 0
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		done++
	}
	return done, firstErr
}

func (s *FirestoreStore) CreateFollowUp(ctx context.Context, f *model.FollowUp) error {
	_, err := s.client.Collection(collectionFollowUps).Doc(f.ID).Create(ctx, f)
	return err
}

func (s *FirestoreStore) ListBySalesEntry(ctx context.Context, salesEntryID string) ([]model.FollowUp, error) {
	docs, err := s.client.Collection(collectionFollowUps).Where("salesentryid", "==", salesEntryID).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]model.FollowUp, 0, len(docs))
	for _, doc := range docs {
		var f model.FollowUp
		if err := doc.DataTo(&f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	sortFollowUps(out)
	return out, nil
}

func (s *FirestoreStore) ListFollowUps(ctx context.Context, q model.FollowUpQuery) ([]model.FollowUp, int, error) {
	query := s.client.Collection(collectionFollowUps).Query
	if q.AddedBy != "" {
		query = query.Where("addedby", "==", q.AddedBy)
	}
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, err
	}
	all := make([]model.FollowUp, 0, len(docs))
	for _, doc := range docs {
		var f model.FollowUp
		if err := doc.DataTo(&f); err != nil {
			return nil, 0, err
		}
		all = append(all, f)
	}
	matched := filterFollowUps(all, q)
	return pageOf(matched, q.Offset, q.Limit), len(matched), nil
}

func (s *FirestoreStore) GetFollowUp(ctx context.Context, id string) (*model.FollowUp, error) {
	doc, err := s.client.Collection(collectionFollowUps).Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var f model.FollowUp
	if err := doc.DataTo(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *FirestoreStore) UpdateFollowUp(ctx context.Context, f *model.FollowUp) error {
	return s.replaceExisting(ctx, s.client.Collection(collectionFollowUps).Doc(f.ID), f)
}

func (s *FirestoreStore) DeleteFollowUp(ctx context.Context, id string) error {
	_, err := s.client.Collection(collectionFollowUps).Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	iter := s.client.Collection(collectionUsers).Where("username", "==", username).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := doc.DataTo(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *FirestoreStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	doc, err := s.client.Collection(collectionUsers).Doc(id).Get(ctx)
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := doc.DataTo(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *FirestoreStore) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.client.Collection(collectionUsers).Doc(u.UserID).Set(ctx, u)
	return err
}

func (s *FirestoreStore) UpdateUser(ctx context.Context, u *model.User) error {
	return s.replaceExisting(ctx, s.client.Collection(collectionUsers).Doc(u.UserID), u)
}

func (s *FirestoreStore) ListUsers(ctx context.Context) ([]model.User, error) {
	docs, err := s.client.Collection(collectionUsers).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(docs))
	for _, doc := range docs {
		var u model.User
		if err := doc.DataTo(&u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	sortUsers(out)
	return out, nil
}
