package model

import "time"

// Task is a single to-do item. ImageURL references an uploaded attachment
// under the public /uploads path and is nil when the task has none.
//
// Fields:
//  ID          – unique identifier, assigned once, never reused.
//  Title       – non-empty title text.
//  Description – free text, may be empty.
//  IsCompleted – completion flag, toggled by the client.
//  CreatedAt   – UTC creation time, immutable after insert.
//  ImageURL    – optional attachment reference (e.g. /uploads/<uuid>.png).
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	ImageURL    *string   `json:"imageUrl"`
}
