package timeblock

import (
	"context"
	"testing"
	"time"

	timeblockRepo "meetblock/database/repository/timeblock"
	"meetblock/models"
)

func mustCreate(t *testing.T, s *DefaultTimeBlockService, owner string, start time.Time) *models.TimeBlock {
	t.Helper()
	block, err := s.Create(context.Background(), owner, start)
	if err != nil {
		t.Fatalf("Create(%s, %v) failed: %v", owner, start, err)
	}
	return block
}

func mustClaim(t *testing.T, s *DefaultTimeBlockService, blockID, requester, message string) *models.TimeBlock {
	t.Helper()
	block, err := s.RequestClaim(context.Background(), blockID, requester, message)
	if err != nil {
		t.Fatalf("RequestClaim(%s, %s) failed: %v", blockID, requester, err)
	}
	return block
}

func mustAccept(t *testing.T, s *DefaultTimeBlockService, blockID, owner string) *models.TimeBlock {
	t.Helper()
	block, err := s.Respond(context.Background(), blockID, owner, true)
	if err != nil {
		t.Fatalf("Respond(%s, %s, accept) failed: %v", blockID, owner, err)
	}
	return block
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if got := CodeOf(err); got != code {
		t.Fatalf("expected %s error, got %q (%v)", code, got, err)
	}
}

func TestCreateClaimAcceptFlow(t *testing.T) {
	s, _, sched, _ := newTestService("alice", "bob")
	ctx := context.Background()
	start := testNow.Add(48 * time.Hour)

	block := mustCreate(t, s, "alice", start)
	if block.State() != models.StateUnclaimed {
		t.Fatalf("new block state = %v, want unclaimed", block.State())
	}
	if block.Version != 0 {
		t.Fatalf("new block version = %d, want 0", block.Version)
	}

	block = mustClaim(t, s, block.ID, "bob", "coffee?")
	if block.State() != models.StatePending {
		t.Fatalf("claimed block state = %v, want pending", block.State())
	}
	if block.Message != "coffee?" {
		t.Fatalf("claimed block message = %q", block.Message)
	}

	block = mustAccept(t, s, block.ID, "alice")
	if block.State() != models.StateAccepted {
		t.Fatalf("accepted block state = %v, want accepted", block.State())
	}
	if block.Version != 2 {
		t.Fatalf("block version = %d after two updates, want 2", block.Version)
	}
	if len(sched.scheduled) != 1 || sched.scheduled[0] != block.ID {
		t.Fatalf("reminder scheduling calls = %v, want [%s]", sched.scheduled, block.ID)
	}

	for _, user := range []string{"alice", "bob"} {
		upcoming, err := s.ListUpcoming(ctx, user)
		if err != nil {
			t.Fatalf("ListUpcoming(%s) failed: %v", user, err)
		}
		if len(upcoming) != 1 || upcoming[0].ID != block.ID {
			t.Fatalf("ListUpcoming(%s) = %v, want the accepted meeting", user, upcoming)
		}
	}
}

func TestMarkMetBeforeAndAfterStart(t *testing.T) {
	s, _, _, now := newTestService("alice", "bob")
	ctx := context.Background()
	start := testNow.Add(24 * time.Hour)

	block := mustCreate(t, s, "alice", start)
	mustClaim(t, s, block.ID, "bob", "")
	mustAccept(t, s, block.ID, "alice")

	_, err := s.MarkMet(ctx, block.ID, "alice", false)
	wantCode(t, err, CodeNotYet)

	*now = start.Add(time.Hour)
	updated, err := s.MarkMet(ctx, block.ID, "alice", false)
	if err != nil {
		t.Fatalf("MarkMet after start failed: %v", err)
	}
	if updated.Status != models.StatusOwnerMet {
		t.Fatalf("owner's negative report yields %v, want %v", updated.Status, models.StatusOwnerMet)
	}
}

func TestAcceptDoesNotTouchOtherStarts(t *testing.T) {
	s, _, _, _ := newTestService("alice", "bob", "carol")
	ctx := context.Background()
	t1 := testNow.Add(24 * time.Hour)
	t2 := testNow.Add(26 * time.Hour)

	b1 := mustCreate(t, s, "alice", t1)
	b2 := mustCreate(t, s, "carol", t2)
	mustClaim(t, s, b1.ID, "bob", "")
	mustClaim(t, s, b2.ID, "bob", "")

	mustAccept(t, s, b1.ID, "alice")

	got, err := s.GetByID(ctx, b2.ID)
	if err != nil {
		t.Fatalf("GetByID(%s) failed: %v", b2.ID, err)
	}
	if got.State() != models.StatePending {
		t.Fatalf("unrelated request state = %v after accept at other time, want pending", got.State())
	}
}

func TestCreateOutsideWindow(t *testing.T) {
	s, _, _, _ := newTestService("alice")

	_, err := s.Create(context.Background(), "alice", testNow.Add(5*7*24*time.Hour))
	wantCode(t, err, CodeOutOfWindow)
}

func TestCreateConflictAtSameStart(t *testing.T) {
	s, _, _, _ := newTestService("alice")
	start := testNow.Add(24 * time.Hour)

	mustCreate(t, s, "alice", start)
	_, err := s.Create(context.Background(), "alice", start)
	wantCode(t, err, CodeConflict)
}

func TestCreateRejectsUnalignedStart(t *testing.T) {
	s, _, _, _ := newTestService("alice")

	_, err := s.Create(context.Background(), "alice", testNow.Add(24*time.Hour+10*time.Minute))
	wantCode(t, err, CodeValidation)
}

func TestCreateUnknownUser(t *testing.T) {
	s, _, _, _ := newTestService("alice")

	_, err := s.Create(context.Background(), "mallory", testNow.Add(24*time.Hour))
	wantCode(t, err, CodeNotFound)
}

func TestClaimOwnBlockForbidden(t *testing.T) {
	s, _, _, _ := newTestService("alice")
	block := mustCreate(t, s, "alice", testNow.Add(24*time.Hour))

	_, err := s.RequestClaim(context.Background(), block.ID, "alice", "")
	wantCode(t, err, CodeForbidden)
}

func TestClaimDoubleBookedConflict(t *testing.T) {
	s, _, _, _ := newTestService("alice", "bob", "carol")
	start := testNow.Add(24 * time.Hour)

	// Bob already has an accepted meeting with Carol at this time.
	other := mustCreate(t, s, "carol", start)
	mustClaim(t, s, other.ID, "bob", "")
	mustAccept(t, s, other.ID, "carol")

	block := mustCreate(t, s, "alice", start)
	_, err := s.RequestClaim(context.Background(), block.ID, "bob", "")
	wantCode(t, err, CodeConflict)
}

func TestClaimPastBlockExpired(t *testing.T) {
	s, _, _, now := newTestService("alice", "bob")
	start := testNow.Add(24 * time.Hour)
	block := mustCreate(t, s, "alice", start)

	*now = start.Add(time.Minute)
	_, err := s.RequestClaim(context.Background(), block.ID, "bob", "")
	wantCode(t, err, CodeExpired)
}

func TestClaimMessageTooLong(t *testing.T) {
	s, _, _, _ := newTestService("alice", "bob")
	block := mustCreate(t, s, "alice", testNow.Add(24*time.Hour))

	long := make([]byte, models.MaxMessageLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err := s.RequestClaim(context.Background(), block.ID, "bob", string(long))
	wantCode(t, err, CodeValidation)
}

func TestRejectReopensBlock(t *testing.T) {
	s, _, _, _ := newTestService("alice", "bob")
	ctx := context.Background()
	block := mustCreate(t, s, "alice", testNow.Add(24*time.Hour))
	mustClaim(t, s, block.ID, "bob", "hi")

	updated, err := s.Respond(ctx, block.ID, "alice", false)
	if err != nil {
		t.Fatalf("Respond(reject) failed: %v", err)
	}
	if updated.State() != models.StateUnclaimed {
		t.Fatalf("rejected block state = %v, want unclaimed", updated.State())
	}
	if updated.Requester != "" || updated.Message != "" {
		t.Fatalf("rejected block retains requester %q message %q", updated.Requester, updated.Message)
	}

	// The reopened block is claimable again.
	mustClaim(t, s, block.ID, "bob", "second try")
}

func TestRespondByNonOwnerForbidden(t *testing.T) {
	s, _, _, _ := newTestService("alice", "bob")
	block := mustCreate(t, s, "alice", testNow.Add(24*time.Hour))
	mustClaim(t, s, block.ID, "bob", "")

	_, err := s.Respond(context.Background(), block.ID, "bob", true)
	wantCode(t, err, CodeForbidden)
}

func TestUnsendClaim(t *testing.T) {
	s, _, _, _ := newTestService("alice", "bob")
	ctx := context.Background()
	block := mustCreate(t, s, "alice", testNow.Add(24*time.Hour))
	mustClaim(t, s, block.ID, "bob", "hi")

	// Only the requester may withdraw.
	_, err := s.UnsendClaim(ctx, block.ID, "alice")
	wantCode(t, err, CodeForbidden)

	updated, err := s.UnsendClaim(ctx, block.ID, "bob")
	if err != nil {
		t.Fatalf("UnsendClaim failed: %v", err)
	}
	if updated.State() != models.StateUnclaimed {
		t.Fatalf("withdrawn block state = %v, want unclaimed", updated.State())
	}
}

func TestAcceptCascadesDuplicateHolds(t *testing.T) {
	s, _, _, _ := newTestService("alice", "bob")
	ctx := context.Background()
	start := testNow.Add(24 * time.Hour)

	// Bob holds his own open availability at the same start.
	hold := mustCreate(t, s, "bob", start)
	block := mustCreate(t, s, "alice", start)
	mustClaim(t, s, block.ID, "bob", "")
	mustAccept(t, s, block.ID, "alice")

	got, err := s.Repo.GetByID(ctx, hold.ID)
	if err != nil {
		t.Fatalf("GetByID(%s) failed: %v", hold.ID, err)
	}
	if got != nil {
		t.Fatalf("requester's duplicate hold survived acceptance: %+v", got)
	}

	// The accepted meeting itself is kept.
	if kept, _ := s.Repo.GetByID(ctx, block.ID); kept == nil {
		t.Fatal("accepted meeting was deleted by cascade")
	}
}

func TestCancelIsOneWay(t *testing.T) {
	s, _, _, _ := newTestService("alice", "bob")
	ctx := context.Background()
	block := mustCreate(t, s, "alice", testNow.Add(24*time.Hour))
	mustClaim(t, s, block.ID, "bob", "")
	mustAccept(t, s, block.ID, "alice")

	updated, err := s.Cancel(ctx, block.ID, "bob")
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if updated.Status != models.StatusCanceled {
		t.Fatalf("canceled block status = %v", updated.Status)
	}

	_, err = s.Cancel(ctx, block.ID, "alice")
	wantCode(t, err, CodeAlreadyTerminal)

	_, err = s.MarkMet(ctx, block.ID, "alice", true)
	wantCode(t, err, CodeAlreadyTerminal)
}

func TestCancelRequiresAccepted(t *testing.T) {
	s, _, _, _ := newTestService("alice", "bob")
	ctx := context.Background()
	block := mustCreate(t, s, "alice", testNow.Add(24*time.Hour))

	_, err := s.Cancel(ctx, block.ID, "alice")
	wantCode(t, err, CodeConflict)

	mustClaim(t, s, block.ID, "bob", "")
	_, err = s.Cancel(ctx, block.ID, "alice")
	wantCode(t, err, CodeConflict)
}

func TestMarkMetTrueWins(t *testing.T) {
	s, _, _, now := newTestService("alice", "bob")
	ctx := context.Background()
	start := testNow.Add(24 * time.Hour)
	block := mustCreate(t, s, "alice", start)
	mustClaim(t, s, block.ID, "bob", "")
	mustAccept(t, s, block.ID, "alice")
	*now = start.Add(time.Hour)

	// Owner reports absent, then the requester's positive report upgrades.
	if _, err := s.MarkMet(ctx, block.ID, "alice", false); err != nil {
		t.Fatalf("owner MarkMet(false) failed: %v", err)
	}
	updated, err := s.MarkMet(ctx, block.ID, "bob", true)
	if err != nil {
		t.Fatalf("requester MarkMet(true) failed: %v", err)
	}
	if updated.Status != models.StatusMet {
		t.Fatalf("status after positive report = %v, want %v", updated.Status, models.StatusMet)
	}

	// MET is terminal: no further reports.
	_, err = s.MarkMet(ctx, block.ID, "alice", false)
	wantCode(t, err, CodeAlreadyTerminal)
}

func TestMarkMetDuplicateNegative(t *testing.T) {
	s, _, _, now := newTestService("alice", "bob")
	ctx := context.Background()
	start := testNow.Add(24 * time.Hour)
	block := mustCreate(t, s, "alice", start)
	mustClaim(t, s, block.ID, "bob", "")
	mustAccept(t, s, block.ID, "alice")
	*now = start.Add(time.Hour)

	if _, err := s.MarkMet(ctx, block.ID, "alice", false); err != nil {
		t.Fatalf("first negative report failed: %v", err)
	}
	_, err := s.MarkMet(ctx, block.ID, "alice", false)
	wantCode(t, err, CodeAlreadyTerminal)
}

func TestMarkMetUnacceptedNotYet(t *testing.T) {
	s, _, _, now := newTestService("alice", "bob")
	start := testNow.Add(24 * time.Hour)
	block := mustCreate(t, s, "alice", start)
	mustClaim(t, s, block.ID, "bob", "")
	*now = start.Add(time.Hour)

	_, err := s.MarkMet(context.Background(), block.ID, "bob", true)
	wantCode(t, err, CodeNotYet)
}

func TestDeleteOnlyUnclaimed(t *testing.T) {
	s, _, _, _ := newTestService("alice", "bob")
	ctx := context.Background()
	block := mustCreate(t, s, "alice", testNow.Add(24*time.Hour))

	if err := s.Delete(ctx, block.ID, "bob"); CodeOf(err) != CodeForbidden {
		t.Fatalf("non-owner delete error = %v, want forbidden", err)
	}

	if err := s.Delete(ctx, block.ID, "alice"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	_, err := s.GetByID(ctx, block.ID)
	wantCode(t, err, CodeNotFound)

	claimed := mustCreate(t, s, "alice", testNow.Add(25*time.Hour))
	mustClaim(t, s, claimed.ID, "bob", "")
	if err := s.Delete(ctx, claimed.ID, "alice"); CodeOf(err) != CodeConflict {
		t.Fatalf("delete of claimed block error = %v, want conflict", err)
	}
}

func TestFailedTransitionLeavesBlockUnchanged(t *testing.T) {
	s, _, _, _ := newTestService("alice", "bob")
	ctx := context.Background()
	block := mustCreate(t, s, "alice", testNow.Add(24*time.Hour))
	mustClaim(t, s, block.ID, "bob", "hi")

	before, _ := s.GetByID(ctx, block.ID)
	if _, err := s.Respond(ctx, block.ID, "bob", true); err == nil {
		t.Fatal("expected forbidden respond to fail")
	}
	after, _ := s.GetByID(ctx, block.ID)
	if *after != *before {
		t.Fatalf("block changed across failed transition: before %+v after %+v", before, after)
	}
}

func TestConcurrentUpdateConflict(t *testing.T) {
	s, repo, _, _ := newTestService("alice", "bob")
	ctx := context.Background()
	block := mustCreate(t, s, "alice", testNow.Add(24*time.Hour))
	mustClaim(t, s, block.ID, "bob", "")

	// A stale version loses the compare-and-swap.
	_, err := repo.SetAccepted(ctx, block.ID, 0)
	if err != timeblockRepo.ErrVersionMismatch {
		t.Fatalf("stale update error = %v, want ErrVersionMismatch", err)
	}
	wantCode(t, mapCASErr(err), CodeConflict)

	// The winning version still applies.
	if _, err := repo.SetAccepted(ctx, block.ID, 1); err != nil {
		t.Fatalf("current-version update failed: %v", err)
	}
}
