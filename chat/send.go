package chat

import (
	"context"
	"io"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
)

// SendOption configures a send.
type SendOption func(*sendConfig)

type sendConfig struct {
	newChat bool
}

// AsNewChat forces the send to start a fresh conversation even when a
// session is active.
func AsNewChat() SendOption {
	return func(c *sendConfig) {
		c.newChat = true
	}
}

// Send posts a user message and consumes the streamed response to
// completion. The user message appears immediately under a provisional
// ID; the assistant message materializes when the stream finishes. A
// first-in-conversation send is followed by session reconciliation, which
// moves the provisional bucket under the backend-assigned session ID.
//
// Only one send may run at a time; concurrent calls fail fast with
// ErrSendInFlight. A stream failure discards the partial response text
// but leaves the user message visible.
func (s *Store) Send(ctx context.Context, text string, opts ...SendOption) error {
	var cfg sendConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	req, bucket, err := s.beginSend(text, cfg)
	if err != nil {
		return err
	}
	defer s.endSend()

	stream, err := s.svc.StreamChat(ctx, req)
	if err != nil {
		s.failStream(err)
		return err
	}
	defer stream.Close()

	for {
		evt, err := stream.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.failStream(err)
			return err
		}
		switch e := evt.(type) {
		case lab.EventContent:
			s.appendStreamContent(e.Text)
		case lab.EventDone:
			// Terminal. The next Next call returns io.EOF.
		}
	}

	s.finishStream(bucket)

	if req.First {
		return s.reconcile(ctx)
	}
	return nil
}

// beginSend takes the single-flight slot, appends the provisional user
// message and arms the stream accumulator.
func (s *Store) beginSend(text string, cfg sendConfig) (lab.StreamRequest, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sending {
		return lab.StreamRequest{}, "", lab.ErrSendInFlight
	}
	s.sending = true
	s.lastErr = nil

	if cfg.newChat {
		s.currentID = ""
		s.newChat = true
	}
	first := s.newChat || s.currentID == ""
	bucket := s.bucketKeyLocked()

	req := lab.StreamRequest{Message: text, First: first}
	if !first {
		req.SessionID = bucket
	}

	s.buckets[bucket] = append(s.buckets[bucket], lab.Message{
		ID:        lab.NewProvisionalID(),
		SessionID: bucket,
		Role:      lab.RoleUser,
		Content:   text,
		CreatedAt: s.now(),
	})

	s.streaming = true
	s.acc.Reset()

	s.logger.Debug().
		Str("bucket", bucket).
		Bool("first", first).
		Msg("send started")
	return req, bucket, nil
}

func (s *Store) endSend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sending = false
}

func (s *Store) appendStreamContent(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.acc.WriteString(text)
}

// failStream records the failure and discards accumulated response text.
// The provisional user message stays visible so the user can retry or
// delete it.
func (s *Store) failStream(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	s.streaming = false
	s.acc.Reset()
	s.logger.Error().Err(err).Msg("stream failed")
}

// finishStream materializes the accumulated response as an assistant
// message in the owning bucket.
func (s *Store) finishStream(bucket string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.streaming = false
	content := s.acc.String()
	s.acc.Reset()
	if content == "" {
		return
	}
	s.buckets[bucket] = append(s.buckets[bucket], lab.Message{
		ID:        lab.NewProvisionalID(),
		SessionID: bucket,
		Role:      lab.RoleAssistant,
		Content:   content,
		CreatedAt: s.now(),
	})
}
