package mock_test

import (
	"context"
	"errors"
	"io"
	"testing"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
	"github.com/Rvioleck/3D-Lab-Data-Factory/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatService_StreamChat(t *testing.T) {
	t.Parallel()
	t.Run("delegates to StreamChatFn", func(t *testing.T) {
		t.Parallel()
		var s mock.Stream
		svc := mock.ChatService{
			StreamChatFn: func(ctx context.Context, req lab.StreamRequest) (lab.Stream, error) {
				assert.Equal(t, "hello", req.Message)
				return &s, nil
			},
		}
		got, err := svc.StreamChat(context.Background(), lab.StreamRequest{Message: "hello"})
		require.NoError(t, err)
		assert.Equal(t, &s, got)
	})

	t.Run("returns error", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("api error")
		svc := mock.ChatService{
			StreamChatFn: func(ctx context.Context, req lab.StreamRequest) (lab.Stream, error) {
				return nil, wantErr
			},
		}
		_, err := svc.StreamChat(context.Background(), lab.StreamRequest{})
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("panics when StreamChatFn not set", func(t *testing.T) {
		t.Parallel()
		svc := mock.ChatService{}
		assert.Panics(t, func() {
			_, _ = svc.StreamChat(context.Background(), lab.StreamRequest{})
		})
	})
}

func TestStream_Next(t *testing.T) {
	t.Parallel()
	t.Run("delegates to NextFn", func(t *testing.T) {
		t.Parallel()
		want := lab.EventContent{Text: "hello"}
		s := mock.Stream{
			NextFn: func() (lab.Event, error) {
				return want, nil
			},
		}
		got, err := s.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("panics when NextFn not set", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{}
		assert.Panics(t, func() {
			_, _ = s.Next()
		})
	})
}

func TestStream_State(t *testing.T) {
	t.Parallel()
	t.Run("delegates to StateFn", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{
			StateFn: func() lab.StreamState {
				return lab.StreamStateComplete
			},
		}
		assert.Equal(t, lab.StreamStateComplete, s.State())
	})

	t.Run("returns StreamStateNew when StateFn not set", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{}
		assert.Equal(t, lab.StreamStateNew, s.State())
	})
}

func TestStream_Close(t *testing.T) {
	t.Parallel()
	t.Run("delegates to CloseFn", func(t *testing.T) {
		t.Parallel()
		called := false
		s := mock.Stream{
			CloseFn: func() error {
				called = true
				return nil
			},
		}
		require.NoError(t, s.Close())
		assert.True(t, called)
	})

	t.Run("returns nil when CloseFn not set", func(t *testing.T) {
		t.Parallel()
		s := mock.Stream{}
		assert.NoError(t, s.Close())
	})
}

func TestScript(t *testing.T) {
	t.Parallel()
	t.Run("plays events then EOF", func(t *testing.T) {
		t.Parallel()
		s := mock.Script(lab.EventContent{Text: "a"}, lab.EventContent{Text: "b"}, lab.EventDone{})

		assert.Equal(t, lab.StreamStateNew, s.State())

		evt, err := s.Next()
		require.NoError(t, err)
		assert.Equal(t, lab.EventContent{Text: "a"}, evt)
		assert.Equal(t, lab.StreamStateStreaming, s.State())

		evt, err = s.Next()
		require.NoError(t, err)
		assert.Equal(t, lab.EventContent{Text: "b"}, evt)

		evt, err = s.Next()
		require.NoError(t, err)
		assert.Equal(t, lab.EventDone{}, evt)

		_, err = s.Next()
		assert.Equal(t, io.EOF, err)
		assert.Equal(t, lab.StreamStateComplete, s.State())

		_, err = s.Next()
		assert.Equal(t, io.EOF, err)
	})

	t.Run("ScriptErr fails after events", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("timeout")
		s := mock.ScriptErr(wantErr, lab.EventContent{Text: "partial"})

		_, err := s.Next()
		require.NoError(t, err)

		_, err = s.Next()
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, lab.StreamStateError, s.State())
	})
}
