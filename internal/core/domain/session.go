package domain

import "time"

// Session is the server-side record behind a session token. It has no expiry:
// a session lives until it is explicitly invalidated.
type Session struct {
	ID        string    `json:"id"`
	AccountID int64     `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
}
