package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
)

// ListSessions returns the authoritative session list.
func (c *Client) ListSessions(ctx context.Context) ([]lab.Session, error) {
	var dtos []sessionDTO
	if err := c.do(ctx, http.MethodGet, "/chat/session/list", nil, &dtos); err != nil {
		return nil, err
	}
	sessions := make([]lab.Session, len(dtos))
	for i, d := range dtos {
		sessions[i] = d.toSession()
	}
	return sessions, nil
}

// ListMessages returns the messages of one session.
func (c *Client) ListMessages(ctx context.Context, sessionID string) ([]lab.Message, error) {
	var dtos []messageDTO
	if err := c.do(ctx, http.MethodGet, "/chat/message/"+url.PathEscape(sessionID), nil, &dtos); err != nil {
		return nil, err
	}
	msgs := make([]lab.Message, len(dtos))
	for i, d := range dtos {
		msgs[i] = d.toMessage()
	}
	return msgs, nil
}

// CreateSession explicitly creates a named session.
func (c *Client) CreateSession(ctx context.Context, name string) (lab.Session, error) {
	var dto sessionDTO
	path := "/chat/session?sessionName=" + url.QueryEscape(name)
	if err := c.do(ctx, http.MethodPost, path, nil, &dto); err != nil {
		return lab.Session{}, err
	}
	return dto.toSession(), nil
}

// DeleteSession removes a session and its messages.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, "/chat/session/"+url.PathEscape(sessionID), nil, nil)
}

// DeleteMessage removes one message.
func (c *Client) DeleteMessage(ctx context.Context, messageID string) error {
	return c.do(ctx, http.MethodDelete, "/chat/message/"+url.PathEscape(messageID), nil, nil)
}

// EditMessage replaces one message's content.
func (c *Client) EditMessage(ctx context.Context, messageID, content string) error {
	body := struct {
		Content string `json:"content"`
	}{Content: content}
	return c.do(ctx, http.MethodPut, "/chat/message/"+url.PathEscape(messageID), body, nil)
}

// SendMessage is the non-streaming send. The response carries the
// authoritative session ID and, when available, the persisted user and
// assistant messages.
func (c *Client) SendMessage(ctx context.Context, req lab.StreamRequest) (lab.SendResult, error) {
	var dto sendResultDTO
	body := sendRequestDTO{Message: req.Message, SessionID: req.SessionID, First: req.First}
	if err := c.do(ctx, http.MethodPost, "/chat/message", body, &dto); err != nil {
		return lab.SendResult{}, err
	}
	return dto.toResult(), nil
}

// StreamChat opens a streaming send and returns a [lab.Stream] over the
// decoded response. The caller owns the stream and must Close it.
func (c *Client) StreamChat(ctx context.Context, req lab.StreamRequest) (lab.Stream, error) {
	return c.openStream(ctx, http.MethodPost, "/chat/stream",
		sendRequestDTO{Message: req.Message, SessionID: req.SessionID, First: req.First})
}

// openStream issues a streaming request and wraps the response body. A
// non-2xx status is surfaced as an error before any stream exists; the
// body is fully released on that path.
func (c *Client) openStream(ctx context.Context, method, path string, body any) (lab.Stream, error) {
	req, err := c.newStreamRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		if err := decodeEnvelope(resp, nil); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("api: HTTP %d", resp.StatusCode)
	}

	c.logger.Debug().Str("path", path).Msg("stream opened")
	return newStream(ctx, resp.Body), nil
}
