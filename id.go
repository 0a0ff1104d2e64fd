package lab

import "github.com/google/uuid"

// MessageID is a tagged message identifier: provisional IDs are generated
// client-side so optimistic UI entries have stable identity before the
// server round-trip returns an authoritative ID. Reconciliation replaces
// the tag in the existing slot, not the slot itself.
type MessageID struct {
	value       string
	provisional bool
}

// NewProvisionalID returns a fresh client-generated provisional ID.
func NewProvisionalID() MessageID {
	return MessageID{value: "temp-" + uuid.NewString(), provisional: true}
}

// ConfirmedID wraps a server-assigned identifier.
func ConfirmedID(id string) MessageID {
	return MessageID{value: id}
}

// String returns the raw identifier value.
func (id MessageID) String() string { return id.value }

// Provisional reports whether the ID is client-generated.
func (id MessageID) Provisional() bool { return id.provisional }

// IsZero reports whether the ID is unset.
func (id MessageID) IsZero() bool { return id.value == "" }
