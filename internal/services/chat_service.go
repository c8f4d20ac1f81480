package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"parley-chat/internal/domain/chat"
	"parley-chat/internal/repository"
	parley_errors "parley-chat/pkg/errors"
)

type ChatService struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	messageRepo repository.MessageRepository
}

func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository, messageRepo repository.MessageRepository) *ChatService {
	return &ChatService{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		messageRepo: messageRepo,
	}
}

type ChatSummary struct {
	ID              uint
	PartnerID       *uint
	PartnerUsername string
	LastMessage     *LastMessage
}

type LastMessage struct {
	Content   string
	Timestamp time.Time
}

type CreateChatResult struct {
	ChatID        uint
	AlreadyExists bool
}

// ListChats returns every chat the caller participates in, with the other
// participant resolved as the partner. A chat whose partner is gone (the
// account was deleted) shows a nil id and "Unknown".
func (s *ChatService) ListChats(ctx context.Context, callerID uint) ([]ChatSummary, error) {
	chats, err := s.chatRepo.GetUserChats(ctx, callerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ChatSummary, 0, len(chats))
	for _, c := range chats {
		summary := ChatSummary{
			ID:              c.ID,
			PartnerUsername: "Unknown",
		}

		for _, p := range c.Participants {
			if p.UserID != callerID {
				partnerID := p.UserID
				summary.PartnerID = &partnerID
				summary.PartnerUsername = p.User.Username
				break
			}
		}

		last, err := s.messageRepo.GetLastChatMessage(ctx, c.ID)
		if err == nil {
			summary.LastMessage = &LastMessage{
				Content:   last.Content,
				Timestamp: last.CreatedAt,
			}
		} else if !errors.Is(err, parley_errors.ErrNotFound) {
			return nil, err
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// CreateChat creates a 1:1 chat between the caller and the recipient, or
// returns the existing chat for the pair. The pair-key unique index makes
// the duplicate check hold under concurrent creation: a lost race turns
// into a re-fetch of the winner's chat.
func (s *ChatService) CreateChat(ctx context.Context, callerID, recipientID uint) (CreateChatResult, error) {
	if recipientID == 0 {
		return CreateChatResult{}, parley_errors.ErrInvalidInput
	}
	if recipientID == callerID {
		return CreateChatResult{}, parley_errors.ErrInvalidInput
	}

	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return CreateChatResult{}, err
	}

	existing, err := s.chatRepo.GetDirectChat(ctx, callerID, recipientID)
	if err == nil {
		return CreateChatResult{ChatID: existing.ID, AlreadyExists: true}, nil
	}
	if !errors.Is(err, parley_errors.ErrNotFound) {
		return CreateChatResult{}, err
	}

	now := time.Now()
	newChat := &chat.Chat{
		PairKey: sql.NullString{String: chat.DirectPairKey(callerID, recipientID), Valid: true},
		Participants: []chat.Participant{
			{UserID: callerID, JoinedAt: now},
			{UserID: recipientID, JoinedAt: now},
		},
	}

	if err := s.chatRepo.Create(ctx, newChat); err != nil {
		if errors.Is(err, parley_errors.ErrAlreadyExists) {
			winner, fetchErr := s.chatRepo.GetDirectChat(ctx, callerID, recipientID)
			if fetchErr != nil {
				return CreateChatResult{}, fetchErr
			}
			return CreateChatResult{ChatID: winner.ID, AlreadyExists: true}, nil
		}
		return CreateChatResult{}, err
	}

	return CreateChatResult{ChatID: newChat.ID}, nil
}
