// Package models holds the client-side view of API payloads.
package models

import "time"

// Prompt mirrors the server's prompt record.
type Prompt struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Content   string    `json:"content"`
	IsSaved   bool      `json:"is_saved"`
	CreatedAt time.Time `json:"created_at"`
}
