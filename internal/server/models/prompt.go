package models

import "time"

// Prompt is a message a user chose to keep. IsSaved is the bookmark flag
// flipped by toggle-save.
type Prompt struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	IsSaved   bool      `json:"is_saved"`
	CreatedAt time.Time `json:"created_at"`
}
