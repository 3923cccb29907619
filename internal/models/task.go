package models

// Task is a single entry in a user's private list.
type Task struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"-"`
	Task      string `json:"task"`
	CreatedAt string `json:"created_at"` // UTC, "2006-01-02 15:04:05"
}
