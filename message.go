package lab

import "time"

// Message is a single chat message. SessionID names the bucket that owns
// the message: a resolved Session.ID, or TempSessionKey while the backend
// has not yet assigned a session.
type Message struct {
	ID        MessageID
	SessionID string
	Role      Role
	Content   string
	CreatedAt time.Time
}
