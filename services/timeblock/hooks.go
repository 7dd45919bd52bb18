package timeblock

import (
	"context"

	"meetblock/models"
	"meetblock/utils"

	"go.uber.org/zap"
)

// RegisterAcceptHook appends a post-accept hook. Hooks run synchronously in
// registration order after the accept transition has been persisted; a
// failing hook is logged and skipped so the accepted meeting stands.
func (s *DefaultTimeBlockService) RegisterAcceptHook(h AcceptHook) {
	s.afterAccept = append(s.afterAccept, h)
}

func (s *DefaultTimeBlockService) runAcceptHooks(ctx context.Context, block *models.TimeBlock) {
	for _, h := range s.afterAccept {
		h(ctx, block)
	}
}

// cascadeDuplicateHolds deletes the requester's other open availabilities at
// the accepted start time. Their calendar is now satisfied for that slot;
// stale duplicate holds must not linger on their profile.
func (s *DefaultTimeBlockService) cascadeDuplicateHolds(ctx context.Context, block *models.TimeBlock) {
	if block.Requester == "" {
		return
	}
	deleted, err := s.Repo.DeleteUnclaimedByOwnerAndStart(ctx, block.Requester, block.Start, block.ID)
	if err != nil {
		utils.GetLogger().Error("failed to clean up duplicate holds",
			zap.String("blockId", block.ID),
			zap.String("requester", block.Requester),
			zap.Error(err))
		return
	}
	if deleted > 0 {
		utils.GetLogger().Debug("removed duplicate holds",
			zap.String("requester", block.Requester),
			zap.Int64("count", deleted))
	}
}

// scheduleReminders enqueues the meeting reminder and mark-met nudge tasks.
func (s *DefaultTimeBlockService) scheduleReminders(ctx context.Context, block *models.TimeBlock) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleForBlock(ctx, block); err != nil {
		utils.GetLogger().Error("failed to schedule meeting reminders",
			zap.String("blockId", block.ID),
			zap.Error(err))
	}
}
