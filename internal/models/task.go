package models

import "time"

// Task is a daily work log entry owned by UserEmail.
type Task struct {
	ID        string    `json:"_id"`
	UserEmail string    `json:"user_email"`
	Task      string    `json:"task"`
	Hour      float64   `json:"hour"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskChanges holds the mutable task fields.
type TaskChanges struct {
	Task string
	Hour float64
	Date string
}
