package models

import "time"

// UserDB represents a user record in the database.
// Users are owned by an external collaborator service; this service
// only reads them by primary key and seeds one sample row at startup.
type UserDB struct {
	UserID    int64     `json:"user_id" db:"user_id"`       // Primary key
	Username  string    `json:"username" db:"username"`     // Unique username
	Email     string    `json:"email" db:"email"`           // User email
	Password  string    `json:"password" db:"password"`     // Stored verbatim, never serialized by any endpoint
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
}
