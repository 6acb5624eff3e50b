package models

import "time"

// User represents a registered account. The password hash is the opaque
// output of the hasher and must never reach a client.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	CreatedAt    time.Time `json:"createdAt"`
}
