package timeblock

import (
	"context"
	"time"

	timeblockRepo "meetblock/database/repository/timeblock"
	"meetblock/models"
	"meetblock/utils"

	"go.uber.org/zap"
)

// resolveUser validates that a user id refers to a real account.
func (s *DefaultTimeBlockService) resolveUser(ctx context.Context, userID string) error {
	if userID == "" {
		return errValidation("missing user id")
	}
	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errNotFound("user does not exist")
	}
	return nil
}

// getBlock loads a block or reports NotFound.
func (s *DefaultTimeBlockService) getBlock(ctx context.Context, blockID string) (*models.TimeBlock, error) {
	block, err := s.Repo.GetByID(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, errNotFound("time block does not exist")
	}
	return block, nil
}

// mapCASErr translates a lost compare-and-swap into a caller-facing conflict.
func mapCASErr(err error) error {
	if err == timeblockRepo.ErrVersionMismatch {
		return errConflict("the time block was modified concurrently, please retry")
	}
	return err
}

// Create publishes a new unclaimed availability at start.
func (s *DefaultTimeBlockService) Create(ctx context.Context, ownerID string, start time.Time) (*models.TimeBlock, error) {
	if err := s.resolveUser(ctx, ownerID); err != nil {
		return nil, err
	}
	block, err := models.NewTimeBlock(ownerID, start)
	if err != nil {
		return nil, errValidation(err.Error())
	}

	calendar, err := s.Repo.FindByUser(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := CanCreate(ownerID, start, calendar, now); err != nil {
		return nil, err
	}

	if err := s.Repo.Insert(ctx, block); err != nil {
		return nil, err
	}
	s.invalidateStats(ctx, ownerID)
	utils.GetLogger().Debug("time block created",
		zap.String("blockId", block.ID),
		zap.String("owner", ownerID),
		zap.Time("start", start))
	return block, nil
}

// RequestClaim places a claim on an open block.
func (s *DefaultTimeBlockService) RequestClaim(ctx context.Context, blockID, requesterID, message string) (*models.TimeBlock, error) {
	if err := s.resolveUser(ctx, requesterID); err != nil {
		return nil, err
	}
	if len(message) > models.MaxMessageLength {
		return nil, errValidation("request message must be no more than 300 characters")
	}
	block, err := s.getBlock(ctx, blockID)
	if err != nil {
		return nil, err
	}

	calendar, err := s.Repo.FindByUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if err := CanClaim(block, requesterID, calendar, s.now()); err != nil {
		return nil, err
	}

	updated, err := s.Repo.SetClaim(ctx, blockID, requesterID, message, block.Version)
	if err != nil {
		return nil, mapCASErr(err)
	}
	return updated, nil
}

// UnsendClaim withdraws the caller's pending claim, reopening the block.
func (s *DefaultTimeBlockService) UnsendClaim(ctx context.Context, blockID, responderID string) (*models.TimeBlock, error) {
	block, err := s.getBlock(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if err := CanUnsend(block, responderID, s.now()); err != nil {
		return nil, err
	}

	updated, err := s.Repo.SetClaim(ctx, blockID, "", "", block.Version)
	if err != nil {
		return nil, mapCASErr(err)
	}
	return updated, nil
}

// Respond accepts or rejects the pending claim on the caller's block.
// Acceptance triggers the post-accept hooks; rejection returns the block to
// the unclaimed state.
func (s *DefaultTimeBlockService) Respond(ctx context.Context, blockID, responderID string, accept bool) (*models.TimeBlock, error) {
	block, err := s.getBlock(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if err := CanRespond(block, responderID); err != nil {
		return nil, err
	}

	if !accept {
		updated, err := s.Repo.SetClaim(ctx, blockID, "", "", block.Version)
		if err != nil {
			return nil, mapCASErr(err)
		}
		return updated, nil
	}

	updated, err := s.Repo.SetAccepted(ctx, blockID, block.Version)
	if err != nil {
		return nil, mapCASErr(err)
	}
	s.runAcceptHooks(ctx, updated)
	utils.GetLogger().Debug("claim accepted",
		zap.String("blockId", updated.ID),
		zap.String("owner", updated.Owner),
		zap.String("requester", updated.Requester))
	return updated, nil
}

// Cancel marks an accepted meeting as canceled. Canceled is one-way: any
// further transition fails with AlreadyTerminal.
func (s *DefaultTimeBlockService) Cancel(ctx context.Context, blockID, responderID string) (*models.TimeBlock, error) {
	block, err := s.getBlock(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if err := CanCancel(block, responderID); err != nil {
		return nil, err
	}

	updated, err := s.Repo.SetStatus(ctx, blockID, models.StatusCanceled, block.Version)
	if err != nil {
		return nil, mapCASErr(err)
	}
	s.invalidateStats(ctx, updated.Owner, updated.Requester)
	return updated, nil
}

// MarkMet records whether the meeting actually occurred. A true report from
// either party yields MET and is authoritative; a false report tags the
// reporting party's role (OWNER_MET or REQUESTER_MET).
func (s *DefaultTimeBlockService) MarkMet(ctx context.Context, blockID, responderID string, met bool) (*models.TimeBlock, error) {
	block, err := s.getBlock(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if err := CanMarkMet(block, responderID, s.now()); err != nil {
		return nil, err
	}

	var next models.TimeBlockStatus
	switch {
	case met:
		next = models.StatusMet
	case responderID == block.Owner:
		next = models.StatusOwnerMet
	default:
		next = models.StatusRequesterMet
	}
	if next == block.Status {
		return nil, errAlreadyTerminal("this meeting outcome is already recorded")
	}

	updated, err := s.Repo.SetStatus(ctx, blockID, next, block.Version)
	if err != nil {
		return nil, mapCASErr(err)
	}
	s.invalidateStats(ctx, updated.Owner, updated.Requester)
	return updated, nil
}

// Delete removes an unclaimed block from the owner's calendar.
func (s *DefaultTimeBlockService) Delete(ctx context.Context, blockID, responderID string) error {
	block, err := s.getBlock(ctx, blockID)
	if err != nil {
		return err
	}
	if err := CanDelete(block, responderID); err != nil {
		return err
	}

	if err := s.Repo.DeleteByID(ctx, blockID); err != nil {
		return err
	}
	s.invalidateStats(ctx, block.Owner)
	return nil
}
