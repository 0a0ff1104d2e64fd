// Package chat maintains client-side chat state: the session list,
// per-session message buckets, the streaming send path, and the
// reconciliation that binds an implicitly created backend session to
// messages sent before its ID was known.
package chat

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
	"github.com/rs/zerolog"
)

// Store holds the chat state for one logged-in user. All methods are safe
// for concurrent use. Observers return snapshots; mutating a returned
// slice does not affect the store.
type Store struct {
	svc    lab.ChatService
	logger zerolog.Logger
	now    func() time.Time

	mu        sync.Mutex
	sessions  []lab.Session
	buckets   map[string][]lab.Message
	currentID string
	newChat   bool
	sending   bool
	streaming bool
	acc       strings.Builder
	lastErr   error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock sets the time source used to stamp locally created messages
// and sessions. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New returns a Store backed by the given chat service. The store starts
// in new-chat mode with no sessions loaded.
func New(svc lab.ChatService, opts ...Option) *Store {
	s := &Store{
		svc:     svc,
		logger:  zerolog.Nop(),
		now:     time.Now,
		buckets: make(map[string][]lab.Message),
		newChat: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sessions returns the known sessions, newest first.
func (s *Store) Sessions() []lab.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]lab.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

// CurrentSessionID returns the active session's ID, or "" in new-chat mode.
func (s *Store) CurrentSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// CurrentSession returns the active session, if one is selected.
func (s *Store) CurrentSession() (lab.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		if sess.ID == s.currentID {
			return sess, true
		}
	}
	return lab.Session{}, false
}

// NewChat reports whether the store is in new-chat mode: the next send
// will ask the backend to create a session.
func (s *Store) NewChat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newChat
}

// Messages returns the cached messages of one session.
func (s *Store) Messages(sessionID string) []lab.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.buckets[sessionID])
}

// CurrentMessages returns the messages of the active conversation. In
// new-chat mode that is the provisional bucket.
func (s *Store) CurrentMessages() []lab.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.buckets[s.bucketKeyLocked()])
}

// Sending reports whether a send is in progress.
func (s *Store) Sending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}

// Streaming reports whether response content is currently accumulating.
func (s *Store) Streaming() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streaming
}

// StreamingContent returns the response text accumulated so far by an
// in-progress send.
func (s *Store) StreamingContent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acc.String()
}

// Err returns the most recent failure recorded by a store operation, or
// nil. It is cleared when a new send starts.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearError discards the recorded failure.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

// RefreshSessions reloads the session list from the backend. The active
// session is kept if it still exists, otherwise the store drops back to
// new-chat mode.
func (s *Store) RefreshSessions(ctx context.Context) error {
	sessions, err := s.svc.ListSessions(ctx)
	if err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = sortSessions(sessions)
	if s.currentID != "" && !s.hasSessionLocked(s.currentID) {
		s.logger.Debug().Str("session", s.currentID).Msg("active session gone after refresh")
		s.currentID = ""
		s.newChat = true
	}
	return nil
}

// LoadMessages fetches one session's messages and replaces its bucket.
// Loading is idempotent; a reload overwrites the cached copy.
func (s *Store) LoadMessages(ctx context.Context, sessionID string) error {
	msgs, err := s.svc.ListMessages(ctx, sessionID)
	if err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets[sessionID] = msgs
	return nil
}

// SessionOption configures SetCurrentSession.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	keepMessages bool
}

// KeepMessages skips the message fetch when the session's bucket is
// already populated.
func KeepMessages() SessionOption {
	return func(c *sessionConfig) {
		c.keepMessages = true
	}
}

// SetCurrentSession makes sessionID the active conversation and loads its
// messages unless KeepMessages is set and a cached copy exists.
func (s *Store) SetCurrentSession(ctx context.Context, sessionID string, opts ...SessionOption) error {
	var cfg sessionConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	s.mu.Lock()
	s.currentID = sessionID
	s.newChat = false
	_, cached := s.buckets[sessionID]
	s.mu.Unlock()

	if cfg.keepMessages && cached {
		return nil
	}
	return s.LoadMessages(ctx, sessionID)
}

// StartNewChat switches to new-chat mode. The provisional bucket is
// cleared; the next send creates a session implicitly.
func (s *Store) StartNewChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = ""
	s.newChat = true
	delete(s.buckets, lab.TempSessionKey)
}

// CreateSession explicitly creates a named session and makes it active.
func (s *Store) CreateSession(ctx context.Context, name string) (lab.Session, error) {
	sess, err := s.svc.CreateSession(ctx, name)
	if err != nil {
		s.setErr(err)
		return lab.Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = sortSessions(append(s.sessions, sess))
	s.buckets[sess.ID] = nil
	s.currentID = sess.ID
	s.newChat = false
	return sess, nil
}

// RenameSession updates a session's display name locally.
func (s *Store) RenameSession(sessionID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sessions {
		if s.sessions[i].ID == sessionID {
			s.sessions[i].Name = name
			return
		}
	}
}

// DeleteSession removes a session on the backend and drops its cached
// state. Deleting the active session drops back to new-chat mode.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.svc.DeleteSession(ctx, sessionID); err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sessions {
		if s.sessions[i].ID == sessionID {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			break
		}
	}
	delete(s.buckets, sessionID)
	if s.currentID == sessionID {
		s.currentID = ""
		s.newChat = true
	}
	return nil
}

// DeleteMessage removes one message from the bucket that owns it. The
// backend is only consulted for server-confirmed IDs; provisional
// messages exist client-side only.
func (s *Store) DeleteMessage(ctx context.Context, id lab.MessageID, sessionID string) error {
	if !id.Provisional() {
		if err := s.svc.DeleteMessage(ctx, id.String()); err != nil {
			s.setErr(err)
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.buckets[sessionID]
	for i := range msgs {
		if msgs[i].ID == id {
			s.buckets[sessionID] = append(msgs[:i], msgs[i+1:]...)
			return nil
		}
	}
	return nil
}

// EditMessage updates one message's content in place.
func (s *Store) EditMessage(ctx context.Context, id lab.MessageID, sessionID, content string) error {
	if !id.Provisional() {
		if err := s.svc.EditMessage(ctx, id.String(), content); err != nil {
			s.setErr(err)
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.buckets[sessionID]
	for i := range msgs {
		if msgs[i].ID == id {
			msgs[i].Content = content
			return nil
		}
	}
	return nil
}

// bucketKeyLocked returns the key of the active conversation's bucket.
// Callers must hold s.mu.
func (s *Store) bucketKeyLocked() string {
	if s.currentID != "" {
		return s.currentID
	}
	return lab.TempSessionKey
}

func (s *Store) hasSessionLocked(id string) bool {
	for _, sess := range s.sessions {
		if sess.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	s.logger.Error().Err(err).Msg("chat store operation failed")
}

func snapshot(msgs []lab.Message) []lab.Message {
	out := make([]lab.Message, len(msgs))
	copy(out, msgs)
	return out
}

func sortSessions(sessions []lab.Session) []lab.Session {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions
}
