package services

import (
	"context"

	"parley-chat/internal/domain/message"
	"parley-chat/internal/repository"
	parley_errors "parley-chat/pkg/errors"
)

const defaultPageSize = 50

type MessageService struct {
	messageRepo repository.MessageRepository
	chatRepo    repository.ChatRepository
}

func NewMessageService(messageRepo repository.MessageRepository, chatRepo repository.ChatRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		chatRepo:    chatRepo,
	}
}

// HistoryQuery selects one of three retrieval modes: AfterID (polling
// delta, unbounded), BeforeID (backward pagination), or neither (latest
// page). AfterID wins when both cursors are set.
type HistoryQuery struct {
	Limit    int
	AfterID  *uint
	BeforeID *uint
}

// Send inserts a message authored by the caller. The caller must be a
// participant of an existing chat.
func (s *MessageService) Send(ctx context.Context, callerID, chatID uint, content string) (message.Message, error) {
	if content == "" {
		return message.Message{}, parley_errors.ErrInvalidInput
	}

	if err := s.authorizeChat(ctx, callerID, chatID); err != nil {
		return message.Message{}, err
	}

	authorID := callerID
	m := &message.Message{
		Content:  content,
		AuthorID: &authorID,
		ChatID:   chatID,
	}

	if err := s.messageRepo.Create(ctx, m); err != nil {
		return message.Message{}, err
	}

	return *m, nil
}

// History returns chat messages in ascending timestamp order for the mode
// selected by q.
func (s *MessageService) History(ctx context.Context, callerID, chatID uint, q HistoryQuery) ([]message.Message, error) {
	if err := s.authorizeChat(ctx, callerID, chatID); err != nil {
		return nil, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	switch {
	case q.AfterID != nil:
		return s.messageRepo.ListAfter(ctx, chatID, *q.AfterID)
	case q.BeforeID != nil:
		return s.messageRepo.ListBefore(ctx, chatID, *q.BeforeID, limit)
	default:
		return s.messageRepo.ListLatest(ctx, chatID, limit)
	}
}

// Edit replaces the content of a message the caller authored. The
// timestamp is left untouched.
func (s *MessageService) Edit(ctx context.Context, callerID, messageID uint, content string) (message.Message, error) {
	if content == "" {
		return message.Message{}, parley_errors.ErrInvalidInput
	}

	m, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return message.Message{}, err
	}

	if m.AuthorID == nil || *m.AuthorID != callerID {
		return message.Message{}, parley_errors.ErrForbidden
	}

	m.Content = content
	if err := s.messageRepo.Update(ctx, m); err != nil {
		return message.Message{}, err
	}

	return m, nil
}

// Delete removes a message the caller authored.
func (s *MessageService) Delete(ctx context.Context, callerID, messageID uint) error {
	m, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if m.AuthorID == nil || *m.AuthorID != callerID {
		return parley_errors.ErrForbidden
	}

	return s.messageRepo.Delete(ctx, m.ID)
}

func (s *MessageService) authorizeChat(ctx context.Context, callerID, chatID uint) error {
	if _, err := s.chatRepo.GetByID(ctx, chatID); err != nil {
		return err
	}

	ok, err := s.chatRepo.IsParticipant(ctx, chatID, callerID)
	if err != nil {
		return err
	}
	if !ok {
		return parley_errors.ErrForbidden
	}
	return nil
}
