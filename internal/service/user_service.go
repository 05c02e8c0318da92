package service

import (
	"context"
	"fmt"

	"emsapi/internal/auth"
	"emsapi/internal/cache"
	apperrors "emsapi/internal/errors"
	"emsapi/internal/model"
	"emsapi/internal/repository"
)

// UserService exposes the current user's profile.
type UserService interface {
	CurrentUser(ctx context.Context, id auth.Identity) (*model.Profile, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// CurrentUser returns the profile of the authenticated caller.
func (s *userService) CurrentUser(ctx context.Context, id auth.Identity) (*model.Profile, error) {
	if id.UserID == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	var cached model.Profile
	if s.cache.GetJSON(ctx, userCacheKey(id.UserID), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Internal("find user", err)
	}

	profile := user.Profile()
	s.cache.SetJSON(ctx, userCacheKey(id.UserID), profile)
	return &profile, nil
}
