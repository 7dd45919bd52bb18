package timeblock

import (
	"context"
	"encoding/json"
	"time"

	"meetblock/models"
	"meetblock/utils"

	"go.uber.org/zap"
)

const statsTTL = 5 * time.Minute

func statsKey(userID string) string {
	return "stats:" + userID
}

// The derivation functions below are pure: they take a snapshot of every
// block the user appears in (both roles, all statuses) plus an explicit now,
// and mutate nothing.

// TotalMeetings counts the user's accepted, uncanceled meetings whose start
// has passed, optionally restricted to starts at or after since.
func TotalMeetings(blocks []models.TimeBlock, userID string, since *time.Time, now time.Time) int {
	count := 0
	for _, b := range blocks {
		if b.Owner != userID && b.Requester != userID {
			continue
		}
		if !b.Accepted || b.Status == models.StatusCanceled || b.Start.After(now) {
			continue
		}
		if since != nil && b.Start.Before(*since) {
			continue
		}
		count++
	}
	return count
}

// Status sets under which a past meeting still counts as met for a given
// role: anything except the other party reporting this user absent, and
// except cancellation.
var (
	ownerMetStatuses     = []models.TimeBlockStatus{models.StatusMet, models.StatusOwnerMet, models.StatusNoResponse}
	requesterMetStatuses = []models.TimeBlockStatus{models.StatusMet, models.StatusRequesterMet, models.StatusNoResponse}
)

func statusIn(status models.TimeBlockStatus, set []models.TimeBlockStatus) bool {
	for _, s := range set {
		if status == s {
			return true
		}
	}
	return false
}

// TotalMet counts the user's past accepted meetings not negatively reported
// against them.
func TotalMet(blocks []models.TimeBlock, userID string, now time.Time) int {
	count := 0
	for _, b := range blocks {
		if !b.Accepted || b.Start.After(now) {
			continue
		}
		switch userID {
		case b.Owner:
			if statusIn(b.Status, ownerMetStatuses) {
				count++
			}
		case b.Requester:
			if statusIn(b.Status, requesterMetStatuses) {
				count++
			}
		}
	}
	return count
}

// ActiveMonths returns the number of calendar months, minimum 1, between the
// user's first-ever published block and now. Used to normalize per-month
// averages.
func ActiveMonths(blocks []models.TimeBlock, userID string, now time.Time) int {
	var first time.Time
	for _, b := range blocks {
		if b.Owner != userID {
			continue
		}
		if first.IsZero() || b.Start.Before(first) {
			first = b.Start
		}
	}
	if first.IsZero() {
		return 1
	}
	months := (now.Year()-first.Year())*12 - int(first.Month()) + int(now.Month())
	if months <= 0 {
		return 1
	}
	return months + 1
}

// UniqueContacts returns how many distinct counterparts the user has actually
// met with: accepted, past, uncanceled blocks in either role, excluding
// meetings where the counterpart's negative report marks this user absent.
func UniqueContacts(blocks []models.TimeBlock, userID string, now time.Time) int {
	contacts := make(map[string]struct{})
	for _, b := range blocks {
		if !b.Accepted || b.Start.After(now) || b.Status == models.StatusCanceled {
			continue
		}
		switch userID {
		case b.Owner:
			if b.Status != models.StatusRequesterMet && b.Requester != "" {
				contacts[b.Requester] = struct{}{}
			}
		case b.Requester:
			if b.Status != models.StatusOwnerMet {
				contacts[b.Owner] = struct{}{}
			}
		}
	}
	return len(contacts)
}

// ComputeStats derives the full statistics summary from a snapshot.
func ComputeStats(blocks []models.TimeBlock, userID string, now time.Time) models.Stats {
	meetings := TotalMeetings(blocks, userID, nil, now)
	met := TotalMet(blocks, userID, now)
	months := ActiveMonths(blocks, userID, now)

	stats := models.Stats{
		TotalMeetings:  meetings,
		TotalMet:       met,
		HoursAccepted:  float64(meetings) * models.SlotDuration.Hours(),
		ActiveMonths:   months,
		UniqueContacts: UniqueContacts(blocks, userID, now),
	}
	if meetings > 0 {
		stats.MeetingSuccessRate = float64(met) / float64(meetings)
	}
	stats.MeetingsPerMonth = float64(meetings) / float64(months)
	return stats
}

// Stats serves the user's statistics, caching the derived summary briefly.
// Every mutating transition invalidates the affected users' entries.
func (s *DefaultTimeBlockService) Stats(ctx context.Context, userID string) (*models.Stats, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, statsKey(userID)).Bytes(); err == nil {
			var cached models.Stats
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	blocks, err := s.Repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(blocks, userID, s.now())

	if s.Cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.Cache.Set(ctx, statsKey(userID), data, statsTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache stats",
					zap.String("userId", userID),
					zap.Error(err))
			}
		}
	}
	return &stats, nil
}

// invalidateStats drops the cached summaries for the given users.
func (s *DefaultTimeBlockService) invalidateStats(ctx context.Context, userIDs ...string) {
	if s.Cache == nil {
		return
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		if id != "" {
			keys = append(keys, statsKey(id))
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate stats cache", zap.Error(err))
	}
}
