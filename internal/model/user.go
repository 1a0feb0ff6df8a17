package model

import "time"

// User represents a registered account. Emails are stored trimmed and
// lowercased so uniqueness is case-insensitive. The password hash never
// leaves the server; API responses use a separate DTO in the handler layer.
//
// Fields:
//  ID           – unique identifier.
//  Email        – normalized unique email address.
//  PasswordHash – bcrypt hash of the password.
//  Name         – display name, defaults to the email local part.
//  AvatarURL    – optional uploaded avatar reference.
//  CreatedAt    – UTC creation time, immutable after insert.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	AvatarURL    *string   `json:"avatarUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}
