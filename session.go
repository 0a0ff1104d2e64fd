package lab

import "time"

// TempSessionKey is the reserved bucket key for messages sent before the
// backend has assigned a session ID. A message's SessionID is either a
// resolved Session.ID or this marker, never empty after a completed send.
const TempSessionKey = "temp-session"

// Session represents a server-assigned conversation identity grouping
// messages. The client never invents a durable session ID; sessions are
// created implicitly by the first message of a conversation or explicitly
// via ChatService.CreateSession.
type Session struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
