package models

import "time"

// Notification is an in-app notification record written by the reminder
// worker and by lifecycle events.
type Notification struct {
	ID        string            `bson:"id" json:"id"`
	UserID    string            `bson:"userId" json:"userId"`
	Title     string            `bson:"title" json:"title"`
	Body      string            `bson:"body" json:"body"`
	Data      map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	Read      bool              `bson:"read" json:"read"`
	CreatedAt time.Time         `bson:"createdAt" json:"createdAt"`
}

// ReminderPayload is the asynq task payload for scheduled meeting reminders
// and mark-met nudges.
type ReminderPayload struct {
	BlockID     string    `json:"blockId"`
	UserID      string    `json:"userId"`
	Counterpart string    `json:"counterpart"`
	Start       time.Time `json:"start"`
}
