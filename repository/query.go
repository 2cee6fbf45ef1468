package repository

import (
	"sort"

	"salescrm/model"
)

// filterNotifications keeps the notifications visible to the query's audience
// that match its read state and type, newest first.
func filterNotifications(items []model.Notification, q model.NotificationQuery) []model.Notification {
	matched := make([]model.Notification, 0, len(items))
	for i := range items {
		n := items[i]
		if !q.Audience.Includes(&n) {
			continue
		}
		if q.IsRead != nil && n.IsRead != *q.IsRead {
			continue
		}
		if q.Type != "" && n.Type != q.Type {
			continue
		}
		matched = append(matched, n)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

func pageOf[T any](matched []T, offset, limit int) []T {
	if offset >= len(matched) {
		return []T{}
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return matched[offset:end]
}

// filterLeads keeps the leads matching q, newest first.
func filterLeads(items []model.SalesEntry, q model.LeadQuery) []model.SalesEntry {
	matched := make([]model.SalesEntry, 0, len(items))
	for i := range items {
		if q.Matches(&items[i]) {
			matched = append(matched, items[i])
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

// filterFollowUps keeps the follow-ups matching q, newest first.
func filterFollowUps(items []model.FollowUp, q model.FollowUpQuery) []model.FollowUp {
	matched := make([]model.FollowUp, 0, len(items))
	for i := range items {
		if q.Matches(&items[i]) {
			matched = append(matched, items[i])
		}
	}
	sortFollowUps(matched)
	return matched
}

func sortFollowUps(items []model.FollowUp) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func sortUsers(users []model.User) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Username < users[j].Username
	})
}
