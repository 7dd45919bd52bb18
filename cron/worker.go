package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"meetblock/config"
	notificationRepo "meetblock/database/repository/notification"
	timeblockRepo "meetblock/database/repository/timeblock"
	"meetblock/models"
	"meetblock/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(blocks timeblockRepo.TimeBlockRepository, notifications notificationRepo.NotificationRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeMeetingReminder, handleReminderTask(blocks, notifications))
	mux.HandleFunc(tasks.TypeMetCheck, handleMetCheckTask(blocks, notifications))

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// loadActiveBlock returns the block for a payload if it is still an accepted,
// unresolved meeting; stale tasks for since-canceled or resolved meetings
// return nil.
func loadActiveBlock(ctx context.Context, blocks timeblockRepo.TimeBlockRepository, blockID string) (*models.TimeBlock, error) {
	block, err := blocks.GetByID(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if block == nil || !block.Accepted || block.Status != models.StatusNoResponse {
		return nil, nil
	}
	return block, nil
}

func handleReminderTask(blocks timeblockRepo.TimeBlockRepository, notifications notificationRepo.NotificationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] Invalid payload: %v", err)
			return err
		}

		block, err := loadActiveBlock(ctx, blocks, p.BlockID)
		if err != nil {
			return err
		}
		if block == nil {
			log.Printf("[ReminderHandler] Block %s no longer active, dropping reminder", p.BlockID)
			return nil
		}

		return notifications.Insert(ctx, &models.Notification{
			UserID: p.UserID,
			Title:  "Upcoming meeting",
			Body:   fmt.Sprintf("Your meeting starts at %s.", p.Start.Format(time.RFC1123)),
			Data: map[string]string{
				"blockId":     p.BlockID,
				"counterpart": p.Counterpart,
			},
		})
	}
}

func handleMetCheckTask(blocks timeblockRepo.TimeBlockRepository, notifications notificationRepo.NotificationRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[MetCheckHandler] Invalid payload: %v", err)
			return err
		}

		block, err := loadActiveBlock(ctx, blocks, p.BlockID)
		if err != nil {
			return err
		}
		if block == nil {
			log.Printf("[MetCheckHandler] Block %s already resolved, dropping nudge", p.BlockID)
			return nil
		}

		return notifications.Insert(ctx, &models.Notification{
			UserID: p.UserID,
			Title:  "Did your meeting happen?",
			Body:   "Mark whether your recent meeting actually took place.",
			Data: map[string]string{
				"blockId":     p.BlockID,
				"counterpart": p.Counterpart,
			},
		})
	}
}
