package model

import "time"

// Credential is a user's stored Todoist API token.
type Credential struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResolvedToken is the outcome of credential resolution: the token to use
// for Todoist calls and the identity it was resolved for.
type ResolvedToken struct {
	Token  string
	UserID string
}
