package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"salescrm/model"
)

// MemoryStore keeps every collection in process memory. It backs local
// development and the unit tests; nothing survives a restart.
type MemoryStore struct {
	mu            sync.RWMutex
	leads         map[string]model.SalesEntry
	dismissals    map[string]model.DismissedReminder
	notifications map[string]model.Notification
	followUps     []model.FollowUp
	users         map[string]model.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		leads:         map[string]model.SalesEntry{},
		dismissals:    map[string]model.DismissedReminder{},
		notifications: map[string]model.Notification{},
		users:         map[string]model.User{},
	}
}

func (s *MemoryStore) FindActiveLeadsWithDueDate(_ context.Context, filter model.LeadFilter) ([]model.SalesEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.SalesEntry, 0)
	for _, lead := range s.leads {
		lead := lead
		if filter.Matches(&lead) {
			out = append(out, cloneLead(lead))
		}
	}
	sortByDueDate(out)
	return out, nil
}

func (s *MemoryStore) GetLead(_ context.Context, id string) (*model.SalesEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lead, ok := s.leads[id]
	if !ok {
		return nil, nil
	}
	out := cloneLead(lead)
	return &out, nil
}

func (s *MemoryStore) CreateLead(_ context.Context, lead *model.SalesEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[lead.ID] = cloneLead(*lead)
	return nil
}

func (s *MemoryStore) UpdateLead(_ context.Context, lead *model.SalesEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[lead.ID]; !ok {
		return errNoRows
	}
	s.leads[lead.ID] = cloneLead(*lead)
	return nil
}

func (s *MemoryStore) ListLeads(_ context.Context, q model.LeadQuery) ([]model.SalesEntry, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]model.SalesEntry, 0, len(s.leads))
	for _, lead := range s.leads {
		all = append(all, cloneLead(lead))
	}
	matched := filterLeads(all, q)
	return pageOf(matched, q.Offset, q.Limit), len(matched), nil
}

func (s *MemoryStore) UpsertDismissal(_ context.Context, userID, leadID string, dueDate, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putDismissalLocked(model.DismissedReminder{
		UserID:           userID,
		SalesEntryID:     leadID,
		DismissedForDate: dueDate,
		DismissedAt:      now,
	})
	return nil
}

func (s *MemoryStore) UpsertDismissals(_ context.Context, records []model.DismissedReminder) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.putDismissalLocked(r)
	}
	return len(records), nil
}

func (s *MemoryStore) putDismissalLocked(r model.DismissedReminder) {
	s.dismissals[r.UserID+"|"+r.Key()] = r
}

func (s *MemoryStore) FindDismissals(_ context.Context, userID string) ([]model.DismissedReminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.DismissedReminder, 0)
	for _, d := range s.dismissals {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *MemoryStore) ExistsOverdueReminderSince(_ context.Context, leadID string, since time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notifications {
		if n.SalesEntryID == leadID && n.Type == model.NotificationReminder && n.IsOverdue && !n.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) InsertMany(_ context.Context, notifications []model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range notifications {
		s.notifications[n.ID] = n
	}
	return nil
}

func (s *MemoryStore) Create(_ context.Context, n *model.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[n.ID] = *n
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*model.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notifications[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (s *MemoryStore) List(_ context.Context, q model.NotificationQuery) ([]model.Notification, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]model.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		all = append(all, n)
	}
	matched := filterNotifications(all, q)
	return pageOf(matched, q.Offset, q.Limit), len(matched), nil
}

func (s *MemoryStore) CountUnread(_ context.Context, audience model.Audience) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.notifications {
		n := n
		if !n.IsRead && audience.Includes(&n) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) MarkRead(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok {
		return errNoRows
	}
	n.IsRead = true
	n.ReadAt = &at
	s.notifications[id] = n
	return nil
}

func (s *MemoryStore) MarkAllRead(_ context.Context, audience model.Audience, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for id, n := range s.notifications {
		n := n
		if n.IsRead || !audience.Includes(&n) {
			continue
		}
		n.IsRead = true
		n.ReadAt = &at
		s.notifications[id] = n
		count++
	}
	return count, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notifications, id)
	return nil
}

func (s *MemoryStore) DeleteRead(_ context.Context, audience model.Audience) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for id, n := range s.notifications {
		n := n
		if n.IsRead && audience.Includes(&n) {
			delete(s.notifications, id)
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) CreateFollowUp(_ context.Context, f *model.FollowUp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.followUps = append(s.followUps, cloneFollowUp(*f))
	return nil
}

// newestFollowUpsLocked returns the follow-ups in reverse insertion order.
func (s *MemoryStore) newestFollowUpsLocked(keep func(*model.FollowUp) bool) []model.FollowUp {
	out := make([]model.FollowUp, 0)
	for i := len(s.followUps) - 1; i >= 0; i-- {
		if keep(&s.followUps[i]) {
			out = append(out, cloneFollowUp(s.followUps[i]))
		}
	}
	return out
}

func (s *MemoryStore) ListBySalesEntry(_ context.Context, salesEntryID string) ([]model.FollowUp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.newestFollowUpsLocked(func(f *model.FollowUp) bool { return f.SalesEntryID == salesEntryID }), nil
}

func (s *MemoryStore) ListFollowUps(_ context.Context, q model.FollowUpQuery) ([]model.FollowUp, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := filterFollowUps(s.newestFollowUpsLocked(q.Matches), q)
	return pageOf(matched, q.Offset, q.Limit), len(matched), nil
}

func (s *MemoryStore) GetFollowUp(_ context.Context, id string) (*model.FollowUp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.followUps {
		if s.followUps[i].ID == id {
			out := cloneFollowUp(s.followUps[i])
			return &out, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) UpdateFollowUp(_ context.Context, f *model.FollowUp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.followUps {
		if s.followUps[i].ID == f.ID {
			s.followUps[i] = cloneFollowUp(*f)
			return nil
		}
	}
	return errNoRows
}

func (s *MemoryStore) DeleteFollowUp(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.followUps {
		if s.followUps[i].ID == id {
			s.followUps = append(s.followUps[:i], s.followUps[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *MemoryStore) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.UserID] = *u
	return nil
}

func (s *MemoryStore) UpdateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.UserID]; !ok {
		return errNoRows
	}
	s.users[u.UserID] = *u
	return nil
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sortUsers(out)
	return out, nil
}

func cloneLead(l model.SalesEntry) model.SalesEntry {
	l.NextFollowUpDate = cloneTime(l.NextFollowUpDate)
	l.LastFollowUpDate = cloneTime(l.LastFollowUpDate)
	l.ConvertedDate = cloneTime(l.ConvertedDate)
	return l
}

func cloneFollowUp(f model.FollowUp) model.FollowUp {
	f.NextFollowUpDate = cloneTime(f.NextFollowUpDate)
	return f
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func sortByDueDate(leads []model.SalesEntry) {
	sort.SliceStable(leads, func(i, j int) bool {
		return leads[i].NextFollowUpDate.Before(*leads[j].NextFollowUpDate)
	})
}
