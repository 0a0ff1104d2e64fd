package api_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
	"github.com/Rvioleck/3D-Lab-Data-Factory/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkedHandler writes each chunk followed by a flush, so chunk
// boundaries reach the client as separate reads.
func chunkedHandler(chunks ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		flusher, _ := w.(http.Flusher)
		for _, chunk := range chunks {
			fmt.Fprint(w, chunk)
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

func openStream(t *testing.T, handler http.HandlerFunc) lab.Stream {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.New(srv.URL)
	stream, err := client.StreamChat(context.Background(), lab.StreamRequest{Message: "hi", First: true})
	require.NoError(t, err)
	t.Cleanup(func() { stream.Close() })
	return stream
}

func collectEvents(t *testing.T, s lab.Stream) []lab.Event {
	t.Helper()
	var events []lab.Event
	for {
		evt, err := s.Next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, evt)
	}
}

func TestStream_SplitFrameReassembly(t *testing.T) {
	t.Parallel()
	s := openStream(t, chunkedHandler("data: hel", "lo\n\n"))

	events := collectEvents(t, s)

	require.Len(t, events, 2)
	assert.Equal(t, lab.EventContent{Text: "hello"}, events[0])
	assert.Equal(t, lab.EventDone{}, events[1])
}

func TestStream_DoneTokenTermination(t *testing.T) {
	t.Parallel()
	s := openStream(t, chunkedHandler("data: hi\n\ndata: [DONE]\n\n"))

	evt, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, lab.EventContent{Text: "hi"}, evt)

	evt, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, lab.EventDone{}, evt)
	assert.Equal(t, lab.StreamStateComplete, s.State())

	// Nothing after Done.
	_, err = s.Next()
	assert.Equal(t, io.EOF, err)
	_, err = s.Next()
	assert.Equal(t, io.EOF, err)
}

func TestStream_UnprefixedLineIsRawPayload(t *testing.T) {
	t.Parallel()
	s := openStream(t, chunkedHandler("hello world\n", "data: tail\n"))

	events := collectEvents(t, s)

	require.Len(t, events, 3)
	assert.Equal(t, lab.EventContent{Text: "hello world"}, events[0])
	assert.Equal(t, lab.EventContent{Text: "tail"}, events[1])
	assert.Equal(t, lab.EventDone{}, events[2])
}

func TestStream_TrailingPartialLineFlushed(t *testing.T) {
	t.Parallel()
	// No trailing newline: the partial buffer is still surfaced at EOF.
	s := openStream(t, chunkedHandler("data: partial"))

	events := collectEvents(t, s)

	require.Len(t, events, 2)
	assert.Equal(t, lab.EventContent{Text: "partial"}, events[0])
	assert.Equal(t, lab.EventDone{}, events[1])
}

func TestStream_JSONContentUnwrapped(t *testing.T) {
	t.Parallel()
	s := openStream(t, chunkedHandler(`data: {"content":"Hi there"}`+"\n\n"))

	events := collectEvents(t, s)

	require.Len(t, events, 2)
	assert.Equal(t, lab.EventContent{Text: "Hi there"}, events[0])
}

func TestStream_MalformedJSONPassesThrough(t *testing.T) {
	t.Parallel()
	s := openStream(t, chunkedHandler("data: {oops\n", `data: {"other":"x"}`+"\n"))

	events := collectEvents(t, s)

	require.Len(t, events, 3)
	assert.Equal(t, lab.EventContent{Text: "{oops"}, events[0])
	assert.Equal(t, lab.EventContent{Text: `{"other":"x"}`}, events[1])
}

func TestStream_PrefixStripsSingleSpaceOnly(t *testing.T) {
	t.Parallel()
	s := openStream(t, chunkedHandler("data:  indented\n", "data:bare\n"))

	events := collectEvents(t, s)

	require.Len(t, events, 3)
	assert.Equal(t, lab.EventContent{Text: " indented"}, events[0])
	assert.Equal(t, lab.EventContent{Text: "bare"}, events[1])
}

func TestStream_CloseMidStream(t *testing.T) {
	t.Parallel()
	s := openStream(t, chunkedHandler("data: a\ndata: b\ndata: [DONE]\n"))

	_, err := s.Next()
	require.NoError(t, err)

	require.NoError(t, s.Close())
	assert.Equal(t, lab.StreamStateClosed, s.State())

	_, err = s.Next()
	assert.ErrorIs(t, err, lab.ErrStreamClosed)
}

func TestStreamChat_NonOKStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"code":50000,"message":"model unavailable"}`)
	}))
	t.Cleanup(srv.Close)

	client := api.New(srv.URL)
	_, err := client.StreamChat(context.Background(), lab.StreamRequest{Message: "hi", First: true})

	var apiErr *lab.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "model unavailable", apiErr.Message)
}

func TestStreamChat_RequestWire(t *testing.T) {
	t.Parallel()
	var gotBody string
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		gotPath = r.URL.Path
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	t.Cleanup(srv.Close)

	client := api.New(srv.URL)
	s, err := client.StreamChat(context.Background(), lab.StreamRequest{Message: "hello", SessionID: "s7"})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, "/chat/stream", gotPath)
	assert.JSONEq(t, `{"message":"hello","sessionId":"s7","first":false}`, gotBody)
}
