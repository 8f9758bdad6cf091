package domain

import "context"

// User represents a record in the externally owned identity store. The engine
// only ever reads users; it never creates or mutates them.
// swagger:model User
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserRepository defines read-only access to the user store.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
}
