package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
	"github.com/dmitrijs2005/clubhub/internal/client/formdata"
	"github.com/dmitrijs2005/clubhub/internal/client/validate"
)

type ProfileService interface {
	Me(ctx context.Context) (api.User, error)
	UpdateNickname(ctx context.Context, nickname string) (api.User, error)
	UpdateImage(ctx context.Context, image formdata.File) (api.User, error)
	DeleteImage(ctx context.Context) error
	ChangePassword(ctx context.Context, password, confirm string) error
	// DeleteAccount removes the account and the local token.
	DeleteAccount(ctx context.Context) error
}

type profileService struct {
	api    API
	tokens Tokens
}

func NewProfileService(a API, t Tokens) ProfileService {
	return &profileService{api: a, tokens: t}
}

func (s *profileService) Me(ctx context.Context) (api.User, error) {
	return s.api.Me(ctx)
}

func (s *profileService) UpdateNickname(ctx context.Context, nickname string) (api.User, error) {
	if err := validate.Nickname(nickname); err != nil {
		return api.User{}, err
	}
	u, err := s.api.UpdateProfile(ctx, api.ProfileInput{Nickname: nickname})
	if err != nil {
		return api.User{}, fmt.Errorf("update profile error: %w", err)
	}
	return u, nil
}

func (s *profileService) UpdateImage(ctx context.Context, image formdata.File) (api.User, error) {
	u, err := s.api.UpdateProfile(ctx, api.ProfileInput{ProfileImage: &image})
	if err != nil {
		return api.User{}, fmt.Errorf("update profile error: %w", err)
	}
	return u, nil
}

func (s *profileService) DeleteImage(ctx context.Context) error {
	return s.api.DeleteProfileImage(ctx)
}

func (s *profileService) ChangePassword(ctx context.Context, password, confirm string) error {
	if err := errors.Join(
		validate.Password(password, false),
		validate.PasswordConfirm(password, confirm),
	); err != nil {
		return err
	}
	if err := s.api.UpdatePassword(ctx, password); err != nil {
		return fmt.Errorf("change password error: %w", err)
	}
	return nil
}

func (s *profileService) DeleteAccount(ctx context.Context) error {
	if err := s.api.DeleteAccount(ctx); err != nil {
		return fmt.Errorf("delete account error: %w", err)
	}
	if err := s.tokens.RemoveToken(ctx); err != nil {
		return fmt.Errorf("remove token error: %w", err)
	}
	return nil
}
