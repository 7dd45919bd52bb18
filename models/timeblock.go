package models

import (
	"errors"
	"time"
)

// SlotDuration is the fixed length of every time block. Starts must fall on
// this grid.
const SlotDuration = 30 * time.Minute

// MaxMessageLength bounds the free-text note attached to a claim request.
const MaxMessageLength = 300

// TimeBlockStatus is the outcome tag of a time block.
//
// OWNER_MET and REQUESTER_MET record the role of the party who reported the
// meeting as not met: OWNER_MET means the owner attested they showed up and
// the requester did not, and symmetrically for REQUESTER_MET.
type TimeBlockStatus string

const (
	StatusNoResponse   TimeBlockStatus = "NO_RESPONSE"
	StatusMet          TimeBlockStatus = "MET"
	StatusOwnerMet     TimeBlockStatus = "OWNER_MET"
	StatusRequesterMet TimeBlockStatus = "REQUESTER_MET"
	StatusCanceled     TimeBlockStatus = "CANCELED"
)

// TimeBlockState is the lifecycle state derived from a block's fields.
type TimeBlockState string

const (
	StateUnclaimed TimeBlockState = "UNCLAIMED"
	StatePending   TimeBlockState = "PENDING"
	StateAccepted  TimeBlockState = "ACCEPTED"
	StateResolved  TimeBlockState = "RESOLVED"
)

// TimeBlock represents a fixed-duration calendar slot published by an owner.
type TimeBlock struct {
	ID        string          `bson:"id" json:"id"`
	Owner     string          `bson:"owner" json:"owner"`
	Requester string          `bson:"requester,omitempty" json:"requester,omitempty"`
	Start     time.Time       `bson:"start" json:"start"`
	Accepted  bool            `bson:"accepted" json:"accepted"`
	Message   string          `bson:"message,omitempty" json:"message,omitempty"`
	Status    TimeBlockStatus `bson:"status" json:"status"`
	Version   int             `bson:"version" json:"version"`
	CreatedAt time.Time       `bson:"createdAt" json:"createdAt"`
}

var (
	ErrMissingOwner     = errors.New("time block requires an owner")
	ErrUnclaimedAccept  = errors.New("time block without a requester cannot be accepted")
	ErrUnalignedStart   = errors.New("time block start must fall on the slot grid")
	ErrMessageTooLong   = errors.New("request message exceeds the maximum length")
	ErrMessageUnclaimed = errors.New("time block without a requester cannot carry a message")
)

// NewTimeBlock constructs an unclaimed, unaccepted time block.
func NewTimeBlock(owner string, start time.Time) (*TimeBlock, error) {
	tb := &TimeBlock{
		Owner:  owner,
		Start:  start,
		Status: StatusNoResponse,
	}
	if err := tb.Validate(); err != nil {
		return nil, err
	}
	return tb, nil
}

// Validate checks the structural invariants of a time block.
func (tb *TimeBlock) Validate() error {
	if tb.Owner == "" {
		return ErrMissingOwner
	}
	if tb.Requester == "" && tb.Accepted {
		return ErrUnclaimedAccept
	}
	if tb.Requester == "" && tb.Message != "" {
		return ErrMessageUnclaimed
	}
	if !tb.Start.Truncate(SlotDuration).Equal(tb.Start) {
		return ErrUnalignedStart
	}
	if len(tb.Message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

// State derives the lifecycle state from the block's fields.
func (tb *TimeBlock) State() TimeBlockState {
	switch {
	case tb.Status != StatusNoResponse:
		return StateResolved
	case tb.Accepted:
		return StateAccepted
	case tb.Requester != "":
		return StatePending
	default:
		return StateUnclaimed
	}
}

// Terminal reports whether the block can no longer be mutated.
// OWNER_MET and REQUESTER_MET are semi-terminal: a later "met" report from
// the other party may still upgrade them to MET.
func (tb *TimeBlock) Terminal() bool {
	return tb.Status == StatusCanceled || tb.Status == StatusMet
}

// IsParticipant reports whether the user is the owner or current requester.
func (tb *TimeBlock) IsParticipant(userID string) bool {
	return userID != "" && (tb.Owner == userID || tb.Requester == userID)
}

// Counterpart returns the other participant's id, or "" when the user is not
// a participant or the block is unclaimed.
func (tb *TimeBlock) Counterpart(userID string) string {
	switch userID {
	case tb.Owner:
		return tb.Requester
	case tb.Requester:
		return tb.Owner
	}
	return ""
}

// OccupiesCalendar reports whether the block holds the user's calendar at its
// start time: the user owns it, or claimed it and had the claim accepted.
// Canceled blocks hold nothing.
func (tb *TimeBlock) OccupiesCalendar(userID string) bool {
	if tb.Status == StatusCanceled {
		return false
	}
	return tb.Owner == userID || (tb.Requester == userID && tb.Accepted)
}

// IsMeetingFor reports whether the block is an actual meeting on the user's
// calendar: accepted, not canceled, with the user in either role. Unlike
// OccupiesCalendar it ignores the user's own open holds.
func (tb *TimeBlock) IsMeetingFor(userID string) bool {
	return tb.Accepted && tb.Status != StatusCanceled && tb.IsParticipant(userID)
}
