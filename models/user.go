package models

import "time"

// User carries only what the scheduling core needs to resolve owner and
// requester references. Credentials, sessions, and profile metadata live in
// the account system and never flow into this service.
type User struct {
	ID        string    `bson:"id" json:"id"`
	Username  string    `bson:"username" json:"username"`
	Email     string    `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
