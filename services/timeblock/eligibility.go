package timeblock

import (
	"fmt"
	"time"

	"meetblock/models"
)

// Eligibility checks. Each is a pure function over a block snapshot (plus,
// for the collision checks, the acting user's full calendar) and an explicit
// now. They validate only; mutation happens in the lifecycle methods after a
// check passes.

// CanCreate decides whether owner may publish a new block at start.
// A user's calendar is the union of blocks they own and blocks they claimed
// and had accepted, so the collision scan covers both roles.
func CanCreate(ownerID string, start time.Time, calendar []models.TimeBlock, now time.Time) error {
	if !InWindow(start, now) {
		return errOutOfWindow("time blocks may only be created within the next four calendar weeks")
	}
	for _, b := range calendar {
		if b.OccupiesCalendar(ownerID) && b.Start.Equal(start) {
			return errConflict("you already have a time block at this start time")
		}
	}
	return nil
}

// CanClaim decides whether requester may claim the block.
func CanClaim(block *models.TimeBlock, requesterID string, calendar []models.TimeBlock, now time.Time) error {
	if block.State() != models.StateUnclaimed {
		return errConflict("this time block is no longer open")
	}
	if block.Start.Before(now) {
		return errExpired("this meeting time has already passed")
	}
	if requesterID == block.Owner {
		return errForbidden("you cannot request your own time block")
	}
	// Only accepted meetings double-book a requester. Their own open holds at
	// this time stay claimable; acceptance cascades them away.
	for _, b := range calendar {
		if b.IsMeetingFor(requesterID) && b.Start.Equal(block.Start) {
			return errConflict("you already have a meeting scheduled for this time")
		}
	}
	return nil
}

// CanUnsend decides whether the caller may withdraw their pending claim.
func CanUnsend(block *models.TimeBlock, responderID string, now time.Time) error {
	if block.State() != models.StatePending {
		return errConflict("this time block has no pending request")
	}
	if responderID != block.Requester {
		return errForbidden("you are not the requester of this time block")
	}
	if block.Start.Before(now) {
		return errExpired("this meeting time has already passed")
	}
	return nil
}

// CanRespond decides whether responder may accept or reject the pending claim.
func CanRespond(block *models.TimeBlock, responderID string) error {
	if responderID != block.Owner {
		return errForbidden("you are not the owner of this time block")
	}
	if block.State() != models.StatePending {
		return errConflict("this time block has no pending request")
	}
	return nil
}

// CanCancel decides whether responder may cancel the accepted meeting.
func CanCancel(block *models.TimeBlock, responderID string) error {
	if !block.IsParticipant(responderID) {
		return errForbidden("you are not the owner or requester of this time block")
	}
	if block.Terminal() {
		return errAlreadyTerminal(fmt.Sprintf("this meeting is already %s", block.Status))
	}
	if block.State() != models.StateAccepted {
		return errConflict("this is not an accepted meeting")
	}
	return nil
}

// CanMarkMet decides whether responder may record the meeting outcome.
func CanMarkMet(block *models.TimeBlock, responderID string, now time.Time) error {
	if !block.IsParticipant(responderID) {
		return errForbidden("you are not the owner or requester of this time block")
	}
	if block.Terminal() {
		return errAlreadyTerminal(fmt.Sprintf("this meeting is already %s", block.Status))
	}
	if !block.Accepted {
		return errNotYet("this is not an accepted meeting")
	}
	if !block.Start.Before(now) {
		return errNotYet("this meeting time has not passed yet")
	}
	return nil
}

// CanDelete decides whether responder may delete the block outright.
func CanDelete(block *models.TimeBlock, responderID string) error {
	if responderID != block.Owner {
		return errForbidden("you are not the owner of this time block")
	}
	if block.State() != models.StateUnclaimed {
		return errConflict("only unclaimed time blocks can be deleted")
	}
	return nil
}
