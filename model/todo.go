package model

import "time"

// Todo is a single-owner task. The owner comes from the authenticated
// identity on every request, never from the client body.
type Todo struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	Text       string    `bson:"text" json:"text" binding:"required"`
	Completed  bool      `bson:"completed" json:"completed"`
	CompleteBy time.Time `bson:"complete_by,omitempty" json:"complete_by,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}
