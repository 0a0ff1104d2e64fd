// Package mock provides test doubles for lab interfaces using function fields.
package mock

import (
	"context"

	lab "github.com/Rvioleck/3D-Lab-Data-Factory"
)

// Interface compliance check.
var _ lab.ChatService = (*ChatService)(nil)

// ChatService is a test double for lab.ChatService.
// Set the function fields for the methods you need; unset methods panic
// to catch missing setup.
type ChatService struct {
	ListSessionsFn  func(ctx context.Context) ([]lab.Session, error)
	ListMessagesFn  func(ctx context.Context, sessionID string) ([]lab.Message, error)
	CreateSessionFn func(ctx context.Context, name string) (lab.Session, error)
	DeleteSessionFn func(ctx context.Context, sessionID string) error
	DeleteMessageFn func(ctx context.Context, messageID string) error
	EditMessageFn   func(ctx context.Context, messageID, content string) error
	SendMessageFn   func(ctx context.Context, req lab.StreamRequest) (lab.SendResult, error)
	StreamChatFn    func(ctx context.Context, req lab.StreamRequest) (lab.Stream, error)
}

// ListSessions delegates to ListSessionsFn.
func (s *ChatService) ListSessions(ctx context.Context) ([]lab.Session, error) {
	return s.ListSessionsFn(ctx)
}

// ListMessages delegates to ListMessagesFn.
func (s *ChatService) ListMessages(ctx context.Context, sessionID string) ([]lab.Message, error) {
	return s.ListMessagesFn(ctx, sessionID)
}

// CreateSession delegates to CreateSessionFn.
func (s *ChatService) CreateSession(ctx context.Context, name string) (lab.Session, error) {
	return s.CreateSessionFn(ctx, name)
}

// DeleteSession delegates to DeleteSessionFn.
func (s *ChatService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.DeleteSessionFn(ctx, sessionID)
}

// DeleteMessage delegates to DeleteMessageFn.
func (s *ChatService) DeleteMessage(ctx context.Context, messageID string) error {
	return s.DeleteMessageFn(ctx, messageID)
}

// EditMessage delegates to EditMessageFn.
func (s *ChatService) EditMessage(ctx context.Context, messageID, content string) error {
	return s.EditMessageFn(ctx, messageID, content)
}

// SendMessage delegates to SendMessageFn.
func (s *ChatService) SendMessage(ctx context.Context, req lab.StreamRequest) (lab.SendResult, error) {
	return s.SendMessageFn(ctx, req)
}

// StreamChat delegates to StreamChatFn.
func (s *ChatService) StreamChat(ctx context.Context, req lab.StreamRequest) (lab.Stream, error) {
	return s.StreamChatFn(ctx, req)
}
