package chat

import (
	"context"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
)

// SendAndWait posts a user message over the non-streaming path and blocks
// until the full response arrives. The backend returns the authoritative
// session ID inline, so no reconciliation pass is needed: the provisional
// user message is replaced in place by the server's persisted record and
// the assistant message is appended once, complete.
//
// On failure the provisional user message stays visible, like Send.
func (s *Store) SendAndWait(ctx context.Context, text string, opts ...SendOption) error {
	var cfg sendConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	req, bucket, err := s.beginSend(text, cfg)
	if err != nil {
		return err
	}
	defer s.endSend()

	// beginSend armed the streaming accumulator for the streaming path;
	// this path delivers the response in one piece.
	s.mu.Lock()
	s.streaming = false
	s.mu.Unlock()

	res, err := s.svc.SendMessage(ctx, req)
	if err != nil {
		s.setErr(err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	target := bucket
	if res.SessionID != "" {
		target = res.SessionID
	}

	msgs := s.buckets[bucket]
	if target != bucket {
		delete(s.buckets, bucket)
		for i := range msgs {
			msgs[i].SessionID = target
		}
	}

	if res.UserMessage != nil {
		confirmed := *res.UserMessage
		confirmed.SessionID = target
		for i := len(msgs) - 1; i >= 0; i-- {
			if msgs[i].Role == lab.RoleUser && msgs[i].ID.Provisional() {
				msgs[i] = confirmed
				break
			}
		}
	}
	if res.AIMessage != nil {
		reply := *res.AIMessage
		reply.SessionID = target
		msgs = append(msgs, reply)
	}
	s.buckets[target] = msgs

	if res.SessionID != "" {
		if !s.hasSessionLocked(target) {
			s.sessions = sortSessions(append(s.sessions, lab.Session{
				ID:        target,
				Name:      sessionName(text),
				CreatedAt: s.now(),
			}))
		}
		s.currentID = target
		s.newChat = false
	}

	s.logger.Debug().Str("session", target).Msg("blocking send complete")
	return nil
}

// sessionName derives a placeholder name for a session the backend
// created implicitly, until a refresh brings the real one.
func sessionName(text string) string {
	const max = 30
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
