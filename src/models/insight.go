package models

import "time"

// Insight is an LLM-generated financial tip. Generation happens in an
// external batch job; the server only stores and serves the records.
type Insight struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	GeneratedAt time.Time `json:"generated_at"`
	IsRead      bool      `json:"is_read"`
}
