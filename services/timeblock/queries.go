package timeblock

import (
	"context"
	"time"

	"meetblock/models"
)

// GetByID returns a single block, or NotFound.
func (s *DefaultTimeBlockService) GetByID(ctx context.Context, blockID string) (*models.TimeBlock, error) {
	return s.getBlock(ctx, blockID)
}

// ListByOwner returns the owner's uncanceled blocks, latest start first.
func (s *DefaultTimeBlockService) ListByOwner(ctx context.Context, ownerID string) ([]models.TimeBlock, error) {
	if err := s.resolveUser(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.Repo.FindByOwner(ctx, ownerID)
}

// ListByUser returns every block the user appears in, either role.
func (s *DefaultTimeBlockService) ListByUser(ctx context.Context, userID string) ([]models.TimeBlock, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.Repo.FindByUser(ctx, userID)
}

// ListUnclaimedByOwner returns the owner's open availabilities from today's
// midnight onward, earliest first.
func (s *DefaultTimeBlockService) ListUnclaimedByOwner(ctx context.Context, ownerID string) ([]models.TimeBlock, error) {
	if err := s.resolveUser(ctx, ownerID); err != nil {
		return nil, err
	}
	now := s.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.Repo.FindUnclaimedByOwner(ctx, ownerID, midnight)
}

// ListPendingRequests returns the user's unanswered future claim requests,
// sent or received.
func (s *DefaultTimeBlockService) ListPendingRequests(ctx context.Context, userID string, sent bool) ([]models.TimeBlock, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.Repo.FindRequests(ctx, userID, sent, s.now())
}

// ListUpcoming returns the user's future accepted meetings, canceled ones
// appended at the bottom.
func (s *DefaultTimeBlockService) ListUpcoming(ctx context.Context, userID string) ([]models.TimeBlock, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.Repo.FindUpcoming(ctx, userID, s.now())
}

// ListOccurred returns the user's past accepted, uncanceled meetings.
func (s *DefaultTimeBlockService) ListOccurred(ctx context.Context, userID string) ([]models.TimeBlock, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.Repo.FindOccurred(ctx, userID, s.now(), false)
}

// ListNeedingMetResponse returns past accepted meetings still awaiting a met
// response from either party.
func (s *DefaultTimeBlockService) ListNeedingMetResponse(ctx context.Context, userID string) ([]models.TimeBlock, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.Repo.FindOccurred(ctx, userID, s.now(), true)
}

// HasCalendarAccess reports whether the user has any uncanceled block on the
// visible calendar, which is what grants them access to request others'
// blocks.
func (s *DefaultTimeBlockService) HasCalendarAccess(ctx context.Context, userID string) (bool, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return false, err
	}
	blocks, err := s.Repo.FindByOwner(ctx, userID)
	if err != nil {
		return false, err
	}
	now := s.now()
	for _, b := range blocks {
		if OnCalendar(b.Start, now) {
			return true, nil
		}
	}
	return false, nil
}

// HasOpenAvailability reports whether the user's profile currently shows any
// open, unclaimed slot on the visible calendar.
func (s *DefaultTimeBlockService) HasOpenAvailability(ctx context.Context, userID string) (bool, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return false, err
	}
	blocks, err := s.Repo.FindByOwner(ctx, userID)
	if err != nil {
		return false, err
	}
	now := s.now()
	for _, b := range blocks {
		if OnCalendar(b.Start, now) && b.Requester == "" {
			return true, nil
		}
	}
	return false, nil
}
