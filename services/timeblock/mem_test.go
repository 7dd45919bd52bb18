package timeblock

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	timeblockRepo "meetblock/database/repository/timeblock"
	"meetblock/models"
)

// memRepo is an in-memory TimeBlockRepository mirroring the Mongo
// implementation's semantics, including the version compare-and-swap.
type memRepo struct {
	mu     sync.Mutex
	blocks map[string]*models.TimeBlock
	seq    int
}

func newMemRepo() *memRepo {
	return &memRepo{blocks: make(map[string]*models.TimeBlock)}
}

func copyBlock(b *models.TimeBlock) *models.TimeBlock {
	c := *b
	return &c
}

func (r *memRepo) Insert(_ context.Context, block *models.TimeBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if block.ID == "" {
		r.seq++
		block.ID = fmt.Sprintf("tb-%d", r.seq)
	}
	if block.Status == "" {
		block.Status = models.StatusNoResponse
	}
	r.blocks[block.ID] = copyBlock(block)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*models.TimeBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blocks[id]
	if !ok {
		return nil, nil
	}
	return copyBlock(b), nil
}

func (r *memRepo) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blocks, id)
	return nil
}

func (r *memRepo) DeleteUnclaimedByOwnerAndStart(_ context.Context, ownerID string, start time.Time, keepID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for id, b := range r.blocks {
		if id == keepID {
			continue
		}
		if b.Owner == ownerID && b.Requester == "" && b.Start.Equal(start) {
			delete(r.blocks, id)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memRepo) cas(id string, version int, mutate func(*models.TimeBlock)) (*models.TimeBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blocks[id]
	if !ok || b.Version != version {
		return nil, timeblockRepo.ErrVersionMismatch
	}
	mutate(b)
	b.Version++
	return copyBlock(b), nil
}

func (r *memRepo) SetClaim(_ context.Context, id, requesterID, message string, version int) (*models.TimeBlock, error) {
	return r.cas(id, version, func(b *models.TimeBlock) {
		b.Requester = requesterID
		b.Message = message
		b.Accepted = false
	})
}

func (r *memRepo) SetAccepted(_ context.Context, id string, version int) (*models.TimeBlock, error) {
	return r.cas(id, version, func(b *models.TimeBlock) {
		b.Accepted = true
	})
}

func (r *memRepo) SetStatus(_ context.Context, id string, status models.TimeBlockStatus, version int) (*models.TimeBlock, error) {
	return r.cas(id, version, func(b *models.TimeBlock) {
		b.Status = status
	})
}

func (r *memRepo) collect(match func(*models.TimeBlock) bool, ascending bool) []models.TimeBlock {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TimeBlock
	for _, b := range r.blocks {
		if match(b) {
			out = append(out, *copyBlock(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if ascending {
			return out[i].Start.Before(out[j].Start)
		}
		return out[j].Start.Before(out[i].Start)
	})
	return out
}

func (r *memRepo) FindByOwner(_ context.Context, ownerID string) ([]models.TimeBlock, error) {
	return r.collect(func(b *models.TimeBlock) bool {
		return b.Owner == ownerID && b.Status != models.StatusCanceled
	}, false), nil
}

func (r *memRepo) FindByUser(_ context.Context, userID string) ([]models.TimeBlock, error) {
	return r.collect(func(b *models.TimeBlock) bool {
		return b.Owner == userID || b.Requester == userID
	}, false), nil
}

func (r *memRepo) FindUnclaimedByOwner(_ context.Context, ownerID string, from time.Time) ([]models.TimeBlock, error) {
	return r.collect(func(b *models.TimeBlock) bool {
		return b.Owner == ownerID && b.Requester == "" && !b.Start.Before(from)
	}, true), nil
}

func (r *memRepo) FindRequests(_ context.Context, userID string, sent bool, now time.Time) ([]models.TimeBlock, error) {
	return r.collect(func(b *models.TimeBlock) bool {
		if b.Accepted || b.Start.Before(now) {
			return false
		}
		if sent {
			return b.Requester == userID
		}
		return b.Owner == userID && b.Requester != ""
	}, true), nil
}

func (r *memRepo) FindUpcoming(_ context.Context, userID string, now time.Time) ([]models.TimeBlock, error) {
	participant := func(b *models.TimeBlock) bool {
		return b.Owner == userID || b.Requester == userID
	}
	active := r.collect(func(b *models.TimeBlock) bool {
		return participant(b) && b.Accepted && !b.Start.Before(now) && b.Status == models.StatusNoResponse
	}, true)
	canceled := r.collect(func(b *models.TimeBlock) bool {
		return participant(b) && b.Accepted && !b.Start.Before(now) && b.Status == models.StatusCanceled
	}, true)
	return append(active, canceled...), nil
}

func (r *memRepo) FindOccurred(_ context.Context, userID string, now time.Time, unmarkedOnly bool) ([]models.TimeBlock, error) {
	return r.collect(func(b *models.TimeBlock) bool {
		if b.Owner != userID && b.Requester != userID {
			return false
		}
		if !b.Accepted || b.Start.After(now) {
			return false
		}
		if unmarkedOnly {
			return b.Status == models.StatusNoResponse
		}
		return b.Status != models.StatusCanceled
	}, false), nil
}

func (r *memRepo) EnsureIndexes() error { return nil }

// memUsers is an in-memory user repository.
type memUsers struct {
	users map[string]*models.User
}

func newMemUsers(ids ...string) *memUsers {
	m := &memUsers{users: make(map[string]*models.User)}
	for _, id := range ids {
		m.users[id] = &models.User{ID: id, Username: id}
	}
	return m
}

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = user.Username
	}
	m.users[user.ID] = user
	return nil
}

// recordingScheduler captures reminder scheduling calls.
type recordingScheduler struct {
	scheduled []string
}

func (r *recordingScheduler) ScheduleForBlock(_ context.Context, block *models.TimeBlock) error {
	r.scheduled = append(r.scheduled, block.ID)
	return nil
}

// testNow is a Wednesday well inside a four-week window.
var testNow = time.Date(2023, 11, 8, 12, 0, 0, 0, time.UTC)

// newTestService builds a service over in-memory fakes with a pinned clock.
// The returned pointer lets tests advance time.
func newTestService(userIDs ...string) (*DefaultTimeBlockService, *memRepo, *recordingScheduler, *time.Time) {
	repo := newMemRepo()
	sched := &recordingScheduler{}
	now := testNow
	s := NewDefaultTimeBlockService(repo, newMemUsers(userIDs...), nil, sched)
	s.Clock = func() time.Time { return now }
	return s, repo, sched, &now
}
