package chat

import (
	"context"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
)

// reconcile resolves the session identity of a conversation started with
// First set. The backend creates the session implicitly and never returns
// its ID on the streaming path, so the store refreshes the session list
// and diffs it against the IDs known before the send.
//
// Exactly one unknown session is the expected case. More than one means a
// concurrent writer raced us; the newest unknown session wins and the
// ambiguity is recorded as ErrAmbiguousReconciliation. No unknown session
// at all means the backend failed to create one: the provisional bucket
// is left intact and ErrNoSessionAssigned is returned.
func (s *Store) reconcile(ctx context.Context) error {
	s.mu.Lock()
	prior := make(map[string]struct{}, len(s.sessions))
	for _, sess := range s.sessions {
		prior[sess.ID] = struct{}{}
	}
	s.mu.Unlock()

	sessions, err := s.svc.ListSessions(ctx)
	if err != nil {
		s.setErr(err)
		return err
	}

	var fresh []lab.Session
	for _, sess := range sessions {
		if _, known := prior[sess.ID]; !known {
			fresh = append(fresh, sess)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = sortSessions(sessions)

	if len(fresh) == 0 {
		s.lastErr = lab.ErrNoSessionAssigned
		s.logger.Warn().Msg("no new session after first send")
		return lab.ErrNoSessionAssigned
	}

	winner := fresh[0]
	for _, sess := range fresh[1:] {
		if sess.CreatedAt.After(winner.CreatedAt) {
			winner = sess
		}
	}
	if len(fresh) > 1 {
		s.lastErr = lab.ErrAmbiguousReconciliation
		s.logger.Warn().
			Int("candidates", len(fresh)).
			Str("winner", winner.ID).
			Msg("multiple new sessions after first send")
	}

	moved := s.buckets[lab.TempSessionKey]
	for i := range moved {
		moved[i].SessionID = winner.ID
	}
	s.buckets[winner.ID] = moved
	delete(s.buckets, lab.TempSessionKey)

	s.currentID = winner.ID
	s.newChat = false
	s.logger.Debug().Str("session", winner.ID).Msg("provisional bucket reconciled")
	return nil
}
