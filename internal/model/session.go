package model

import "time"

// Session is a server-side login session, keyed by an opaque token delivered
// to the client as a cookie.
type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SessionTTL is the absolute lifetime of a login session.
const SessionTTL = 24 * time.Hour
