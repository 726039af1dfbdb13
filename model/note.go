package model

import (
	"time"
)

// Note is shared between exactly two users. Participants keeps the order it
// was created with so both sides can be addressed for realtime pushes.
type Note struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Participants []string  `bson:"participants" json:"participants"`
	Text         string    `bson:"text" json:"text" binding:"required"`
	CreatedBy    string    `bson:"created_by" json:"created_by"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// CreatedByUser reports whether userID is the creator of the note. Only the
// creator may edit or delete it.
func (n *Note) CreatedByUser(userID string) bool {
	return n.CreatedBy == userID
}
