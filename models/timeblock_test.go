package models

import (
	"strings"
	"testing"
	"time"
)

var alignedStart = time.Date(2023, 11, 10, 14, 30, 0, 0, time.UTC)

func TestNewTimeBlock(t *testing.T) {
	tb, err := NewTimeBlock("owner-1", alignedStart)
	if err != nil {
		t.Fatalf("NewTimeBlock returned error: %v", err)
	}
	if tb.Status != StatusNoResponse {
		t.Errorf("expected status %s, got %s", StatusNoResponse, tb.Status)
	}
	if tb.Accepted {
		t.Error("new block must not be accepted")
	}
	if tb.State() != StateUnclaimed {
		t.Errorf("expected state %s, got %s", StateUnclaimed, tb.State())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		block   TimeBlock
		wantErr error
	}{
		{
			name:    "missing owner",
			block:   TimeBlock{Start: alignedStart, Status: StatusNoResponse},
			wantErr: ErrMissingOwner,
		},
		{
			name:    "unclaimed but accepted",
			block:   TimeBlock{Owner: "o", Start: alignedStart, Accepted: true},
			wantErr: ErrUnclaimedAccept,
		},
		{
			name:    "unclaimed with message",
			block:   TimeBlock{Owner: "o", Start: alignedStart, Message: "hi"},
			wantErr: ErrMessageUnclaimed,
		},
		{
			name:    "unaligned start",
			block:   TimeBlock{Owner: "o", Start: alignedStart.Add(7 * time.Minute)},
			wantErr: ErrUnalignedStart,
		},
		{
			name: "message too long",
			block: TimeBlock{
				Owner: "o", Requester: "r", Start: alignedStart,
				Message: strings.Repeat("x", MaxMessageLength+1),
			},
			wantErr: ErrMessageTooLong,
		},
		{
			name:    "valid unclaimed",
			block:   TimeBlock{Owner: "o", Start: alignedStart},
			wantErr: nil,
		},
		{
			name:    "valid claimed with message",
			block:   TimeBlock{Owner: "o", Requester: "r", Start: alignedStart, Message: "hello"},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.block.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestState(t *testing.T) {
	tests := []struct {
		name  string
		block TimeBlock
		want  TimeBlockState
	}{
		{"unclaimed", TimeBlock{Owner: "o", Status: StatusNoResponse}, StateUnclaimed},
		{"pending", TimeBlock{Owner: "o", Requester: "r", Status: StatusNoResponse}, StatePending},
		{"accepted", TimeBlock{Owner: "o", Requester: "r", Accepted: true, Status: StatusNoResponse}, StateAccepted},
		{"canceled", TimeBlock{Owner: "o", Requester: "r", Accepted: true, Status: StatusCanceled}, StateResolved},
		{"met", TimeBlock{Owner: "o", Requester: "r", Accepted: true, Status: StatusMet}, StateResolved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.block.State(); got != tt.want {
				t.Errorf("State() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTerminal(t *testing.T) {
	if !(&TimeBlock{Status: StatusCanceled}).Terminal() {
		t.Error("canceled block must be terminal")
	}
	if !(&TimeBlock{Status: StatusMet}).Terminal() {
		t.Error("met block must be terminal")
	}
	// A one-sided report can still be upgraded by the other party.
	if (&TimeBlock{Status: StatusOwnerMet}).Terminal() {
		t.Error("owner-met block must not be terminal")
	}
	if (&TimeBlock{Status: StatusNoResponse}).Terminal() {
		t.Error("unresolved block must not be terminal")
	}
}

func TestOccupiesCalendar(t *testing.T) {
	block := TimeBlock{Owner: "o", Requester: "r", Accepted: true, Status: StatusNoResponse}
	if !block.OccupiesCalendar("o") {
		t.Error("owner's calendar must be occupied")
	}
	if !block.OccupiesCalendar("r") {
		t.Error("accepted requester's calendar must be occupied")
	}

	pending := TimeBlock{Owner: "o", Requester: "r", Status: StatusNoResponse}
	if pending.OccupiesCalendar("r") {
		t.Error("pending claim must not occupy the requester's calendar")
	}

	canceled := TimeBlock{Owner: "o", Requester: "r", Accepted: true, Status: StatusCanceled}
	if canceled.OccupiesCalendar("o") {
		t.Error("canceled block must not occupy any calendar")
	}
}

func TestIsMeetingFor(t *testing.T) {
	meeting := TimeBlock{Owner: "o", Requester: "r", Accepted: true, Status: StatusNoResponse}
	if !meeting.IsMeetingFor("o") || !meeting.IsMeetingFor("r") {
		t.Error("accepted meeting must book both participants")
	}
	if meeting.IsMeetingFor("stranger") {
		t.Error("accepted meeting must not book a non-participant")
	}

	// An open hold occupies the owner's calendar but is not a meeting.
	hold := TimeBlock{Owner: "o", Status: StatusNoResponse}
	if hold.IsMeetingFor("o") {
		t.Error("unclaimed hold must not count as a meeting")
	}
	if !hold.OccupiesCalendar("o") {
		t.Error("unclaimed hold must still occupy the owner's calendar")
	}

	pending := TimeBlock{Owner: "o", Requester: "r", Status: StatusNoResponse}
	if pending.IsMeetingFor("r") {
		t.Error("pending claim must not count as a meeting")
	}

	canceled := TimeBlock{Owner: "o", Requester: "r", Accepted: true, Status: StatusCanceled}
	if canceled.IsMeetingFor("o") {
		t.Error("canceled meeting must not book anyone")
	}
}

func TestCounterpart(t *testing.T) {
	block := TimeBlock{Owner: "o", Requester: "r"}
	if got := block.Counterpart("o"); got != "r" {
		t.Errorf("Counterpart(owner) = %q, want %q", got, "r")
	}
	if got := block.Counterpart("r"); got != "o" {
		t.Errorf("Counterpart(requester) = %q, want %q", got, "o")
	}
	if got := block.Counterpart("stranger"); got != "" {
		t.Errorf("Counterpart(stranger) = %q, want empty", got)
	}
}
