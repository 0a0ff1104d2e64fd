// Package auth tracks the logged-in user.
package auth

import (
	"context"
	"sync"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
	"github.com/rs/zerolog"
)

// Store holds the login state. All methods are safe for concurrent use.
type Store struct {
	svc    lab.UserService
	logger zerolog.Logger

	mu       sync.Mutex
	user     lab.User
	loggedIn bool
	lastErr  error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New returns a Store backed by the given user service.
func New(svc lab.UserService, opts ...Option) *Store {
	s := &Store{svc: svc, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login authenticates and records the user.
func (s *Store) Login(ctx context.Context, creds lab.Credentials) (lab.User, error) {
	user, err := s.svc.Login(ctx, creds)
	if err != nil {
		s.setErr(err)
		return lab.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.loggedIn = true
	s.lastErr = nil
	s.logger.Debug().Str("account", user.Account).Msg("logged in")
	return user, nil
}

// Register creates an account and logs it in.
func (s *Store) Register(ctx context.Context, creds lab.Credentials) (lab.User, error) {
	if _, err := s.svc.Register(ctx, creds); err != nil {
		s.setErr(err)
		return lab.User{}, err
	}
	return s.Login(ctx, creds)
}

// Logout ends the backend session and clears the recorded user. The local
// state is cleared even when the backend call fails.
func (s *Store) Logout(ctx context.Context) error {
	err := s.svc.Logout(ctx)

	s.mu.Lock()
	s.user = lab.User{}
	s.loggedIn = false
	s.mu.Unlock()

	if err != nil {
		s.setErr(err)
	}
	return err
}

// Refresh re-fetches the logged-in user from the backend, picking up a
// session restored from an earlier run. ErrNotLoggedIn clears the state.
func (s *Store) Refresh(ctx context.Context) error {
	user, err := s.svc.LoginUser(ctx)
	if err != nil {
		s.mu.Lock()
		s.user = lab.User{}
		s.loggedIn = false
		s.mu.Unlock()
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.loggedIn = true
	return nil
}

// CurrentUser returns the logged-in user.
func (s *Store) CurrentUser() (lab.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.loggedIn
}

// LoggedIn reports whether a user is logged in.
func (s *Store) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// IsAdmin reports whether the logged-in user carries the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn && s.user.IsAdmin()
}

// Err returns the most recent failure, or nil.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	s.logger.Error().Err(err).Msg("auth operation failed")
}
