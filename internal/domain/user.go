package domain

import "time"

// User is a read-only account record. Tasks reference users as owner and
// assignee, comments reference them as author.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
