package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"meetblock/config"
	"meetblock/models"

	"github.com/hibiken/asynq"
)

const (
	TypeMeetingReminder = "meeting:reminder"
	TypeMetCheck        = "meeting:metcheck"
)

// NewReminderTask builds an asynq task carrying a reminder payload, scheduled
// for fireAt.
func NewReminderTask(taskType string, payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(taskType, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues reminder tasks on the Redis-backed queue.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

// NewAsynqReminderScheduler builds a scheduler from the app config.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	return &AsynqReminderScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		}),
	}
}

// ScheduleForBlock enqueues, for both participants of a freshly accepted
// meeting, a reminder shortly before the start and a mark-met nudge after the
// start has passed. The worker re-checks the block at fire time, so stale
// tasks for since-canceled meetings are dropped there rather than revoked
// here.
func (s *AsynqReminderScheduler) ScheduleForBlock(ctx context.Context, block *models.TimeBlock) error {
	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	if lead <= 0 {
		lead = 30 * time.Minute
	}

	schedule := []struct {
		taskType string
		fireAt   time.Time
	}{
		{TypeMeetingReminder, block.Start.Add(-lead)},
		{TypeMetCheck, block.Start.Add(models.SlotDuration)},
	}

	participants := []struct{ userID, counterpart string }{
		{block.Owner, block.Requester},
		{block.Requester, block.Owner},
	}

	for _, sched := range schedule {
		for _, p := range participants {
			payload := models.ReminderPayload{
				BlockID:     block.ID,
				UserID:      p.userID,
				Counterpart: p.counterpart,
				Start:       block.Start,
			}
			task, opts, err := NewReminderTask(sched.taskType, payload, sched.fireAt)
			if err != nil {
				return fmt.Errorf("failed to build %s task: %w", sched.taskType, err)
			}
			if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
				return fmt.Errorf("failed to enqueue %s task: %w", sched.taskType, err)
			}
		}
	}
	return nil
}

// Close releases the underlying asynq client.
func (s *AsynqReminderScheduler) Close() error {
	return s.client.Close()
}
