package timeblock

import (
	"context"
	"time"

	timeblockRepo "meetblock/database/repository/timeblock"
	userRepo "meetblock/database/repository/user"
	"meetblock/models"

	"github.com/go-redis/redis/v8"
)

// TimeBlockService is the full surface the API layer calls: one operation per
// lifecycle transition plus the read queries.
type TimeBlockService interface {
	// Lifecycle transitions.
	Create(ctx context.Context, ownerID string, start time.Time) (*models.TimeBlock, error)
	RequestClaim(ctx context.Context, blockID, requesterID, message string) (*models.TimeBlock, error)
	UnsendClaim(ctx context.Context, blockID, responderID string) (*models.TimeBlock, error)
	Respond(ctx context.Context, blockID, responderID string, accept bool) (*models.TimeBlock, error)
	Cancel(ctx context.Context, blockID, responderID string) (*models.TimeBlock, error)
	MarkMet(ctx context.Context, blockID, responderID string, met bool) (*models.TimeBlock, error)
	Delete(ctx context.Context, blockID, responderID string) error

	// Read queries.
	GetByID(ctx context.Context, blockID string) (*models.TimeBlock, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.TimeBlock, error)
	ListByUser(ctx context.Context, userID string) ([]models.TimeBlock, error)
	ListUnclaimedByOwner(ctx context.Context, ownerID string) ([]models.TimeBlock, error)
	ListPendingRequests(ctx context.Context, userID string, sent bool) ([]models.TimeBlock, error)
	ListUpcoming(ctx context.Context, userID string) ([]models.TimeBlock, error)
	ListOccurred(ctx context.Context, userID string) ([]models.TimeBlock, error)
	ListNeedingMetResponse(ctx context.Context, userID string) ([]models.TimeBlock, error)
	Stats(ctx context.Context, userID string) (*models.Stats, error)
	HasCalendarAccess(ctx context.Context, userID string) (bool, error)
	HasOpenAvailability(ctx context.Context, userID string) (bool, error)
}

// ReminderScheduler schedules the deferred reminder tasks fired around a
// meeting's start. Implemented over asynq; nil disables scheduling.
type ReminderScheduler interface {
	ScheduleForBlock(ctx context.Context, block *models.TimeBlock) error
}

// AcceptHook runs after a claim has been accepted. Hooks are cleanup and
// fan-out steps: they may lag the transition but must not fail it.
type AcceptHook func(ctx context.Context, block *models.TimeBlock)

// DefaultTimeBlockService is the production implementation.
type DefaultTimeBlockService struct {
	Repo      timeblockRepo.TimeBlockRepository
	Users     userRepo.UserRepository
	Cache     *redis.Client
	Reminders ReminderScheduler

	// Clock returns the current instant; tests pin it. Nil means time.Now.
	Clock func() time.Time

	afterAccept []AcceptHook
}

// NewDefaultTimeBlockService wires the production service with its default
// post-accept hooks: cascade cleanup of duplicate holds, reminder scheduling,
// and stats cache invalidation.
func NewDefaultTimeBlockService(repo timeblockRepo.TimeBlockRepository, users userRepo.UserRepository, cache *redis.Client, reminders ReminderScheduler) *DefaultTimeBlockService {
	s := &DefaultTimeBlockService{
		Repo:      repo,
		Users:     users,
		Cache:     cache,
		Reminders: reminders,
	}
	s.RegisterAcceptHook(s.cascadeDuplicateHolds)
	s.RegisterAcceptHook(s.scheduleReminders)
	s.RegisterAcceptHook(func(ctx context.Context, block *models.TimeBlock) {
		s.invalidateStats(ctx, block.Owner, block.Requester)
	})
	return s
}

func (s *DefaultTimeBlockService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
