package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	healthInterval = 60 * time.Second
	healthTimeout  = 5 * time.Second
)

// HealthStatus is the latest snapshot of the service's external dependencies.
// Redis entries are keyed by role, so a cache outage is distinguishable from
// a stuck reminder queue.
type HealthStatus struct {
	Mongo     bool            `json:"mongo"`
	Redis     map[string]bool `json:"redis"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// Healthy reports whether every monitored dependency responded.
func (h HealthStatus) Healthy() bool {
	if !h.Mongo {
		return false
	}
	for _, ok := range h.Redis {
		if !ok {
			return false
		}
	}
	return true
}

type healthCheck func(ctx context.Context) error

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// checkHealth runs every dependency check and assembles a snapshot.
func checkHealth(ctx context.Context, mongoCheck healthCheck, redisChecks map[string]healthCheck) HealthStatus {
	status := HealthStatus{
		Redis:     make(map[string]bool, len(redisChecks)),
		CheckedAt: time.Now(),
	}
	status.Mongo = mongoCheck(ctx) == nil
	for role, check := range redisChecks {
		status.Redis[role] = check(ctx) == nil
	}
	return status
}

// StartHealthMonitor sweeps the given dependencies once immediately and then
// every minute, updating the in-memory snapshot served at /health. Redis
// clients are passed keyed by role (cache, queue).
func StartHealthMonitor(redisClients map[string]*redis.Client, mongoClient *mongo.Client) {
	mongoCheck := func(ctx context.Context) error {
		return mongoClient.Ping(ctx, nil)
	}
	redisChecks := make(map[string]healthCheck, len(redisClients))
	for role, client := range redisClients {
		redisChecks[role] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
	}

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()
		status := checkHealth(ctx, mongoCheck, redisChecks)

		healthMu.Lock()
		currentHealth = status
		healthMu.Unlock()
	}

	go func() {
		sweep()
		ticker := time.NewTicker(healthInterval)
		defer ticker.Stop()
		for range ticker.C {
			sweep()
		}
	}()
}
