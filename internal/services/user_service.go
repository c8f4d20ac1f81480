package services

import (
	"context"
	"errors"

	"parley-chat/internal/repository"
	parley_errors "parley-chat/pkg/errors"
)

const searchResultCap = 20

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type ProfileUpdate struct {
	Username *string
	Email    *string
}

// Search matches usernames case-insensitively by substring, excluding the
// caller. An empty query is not an error, just an empty result.
func (s *UserService) Search(ctx context.Context, callerID uint, query string) ([]UserInfo, error) {
	if query == "" {
		return []UserInfo{}, nil
	}

	users, err := s.userRepo.Search(ctx, query, callerID, searchResultCap)
	if err != nil {
		return nil, err
	}

	results := make([]UserInfo, 0, len(users))
	for _, u := range users {
		results = append(results, toUserInfo(u))
	}
	return results, nil
}

func (s *UserService) GetProfile(ctx context.Context, callerID uint) (UserInfo, error) {
	u, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return UserInfo{}, err
	}
	return toUserInfo(u), nil
}

// UpdateProfile changes only the fields supplied. A username or email
// already taken by another account surfaces as a conflict.
func (s *UserService) UpdateProfile(ctx context.Context, callerID uint, in ProfileUpdate) (UserInfo, error) {
	if in.Username == nil && in.Email == nil {
		return UserInfo{}, parley_errors.ErrInvalidInput
	}
	if in.Username != nil && *in.Username == "" {
		return UserInfo{}, parley_errors.ErrInvalidInput
	}
	if in.Email != nil && *in.Email == "" {
		return UserInfo{}, parley_errors.ErrInvalidInput
	}

	u, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return UserInfo{}, err
	}

	if in.Username != nil {
		if err := s.ensureUsernameFree(ctx, *in.Username, callerID); err != nil {
			return UserInfo{}, err
		}
		u.Username = *in.Username
	}
	if in.Email != nil {
		if err := s.ensureEmailFree(ctx, *in.Email, callerID); err != nil {
			return UserInfo{}, err
		}
		u.Email = *in.Email
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return UserInfo{}, err
	}

	return toUserInfo(u), nil
}

// DeleteProfile removes the caller's account. Authored messages survive
// with a nulled author reference; participant rows go with the user.
func (s *UserService) DeleteProfile(ctx context.Context, callerID uint) error {
	return s.userRepo.Delete(ctx, callerID)
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string, selfID uint) error {
	other, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		if other.ID != selfID {
			return parley_errors.ErrAlreadyExists
		}
		return nil
	}
	if errors.Is(err, parley_errors.ErrNotFound) {
		return nil
	}
	return err
}

func (s *UserService) ensureEmailFree(ctx context.Context, email string, selfID uint) error {
	other, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if other.ID != selfID {
			return parley_errors.ErrAlreadyExists
		}
		return nil
	}
	if errors.Is(err, parley_errors.ErrNotFound) {
		return nil
	}
	return err
}
