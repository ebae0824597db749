package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/clubhub/internal/client/api"
	"github.com/dmitrijs2005/clubhub/internal/client/formdata"
	"github.com/dmitrijs2005/clubhub/internal/client/tokens"
	"github.com/dmitrijs2005/clubhub/internal/client/validate"
	"github.com/dmitrijs2005/clubhub/internal/logging"
)

// AuthService defines the session operations of the client.
//
//   - Login: validate, authenticate and persist the access token.
//   - Signup: validate and create an account.
//   - Logout: best-effort server logout; the local token is always removed.
//   - WhoAmI: the claims of the stored token.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, req SignupRequest) (string, error)
	Logout(ctx context.Context) error
	IsLoggedIn(ctx context.Context) bool
	WhoAmI(ctx context.Context) (tokens.Claims, error)
}

type SignupRequest struct {
	Email           string
	Password        string
	PasswordConfirm string
	Nickname        string
	ProfileImage    *formdata.File
}

type authService struct {
	api    API
	tokens Tokens
	log    logging.Logger
}

func NewAuthService(a API, t Tokens, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Nop()
	}
	return &authService{api: a, tokens: t, log: log}
}

func (s *authService) Login(ctx context.Context, email, password string) error {
	if err := errors.Join(validate.Email(email, true), validate.Password(password, true)); err != nil {
		return err
	}

	pair, err := s.api.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	if err := s.tokens.StoreToken(ctx, pair.AccessToken); err != nil {
		return fmt.Errorf("store token error: %w", err)
	}
	s.log.Info(ctx, "logged in", "email", email)
	return nil
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (string, error) {
	if err := errors.Join(
		validate.Email(req.Email, false),
		validate.Password(req.Password, false),
		validate.PasswordConfirm(req.Password, req.PasswordConfirm),
		validate.Nickname(req.Nickname),
	); err != nil {
		return "", err
	}

	msg, err := s.api.Signup(ctx, api.SignupInput{
		Email:        req.Email,
		Password:     req.Password,
		Nickname:     req.Nickname,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return "", fmt.Errorf("signup error: %w", err)
	}
	return msg, nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn(ctx, "server logout failed", "err", err)
	}
	if err := s.tokens.RemoveToken(ctx); err != nil {
		return fmt.Errorf("remove token error: %w", err)
	}
	return nil
}

func (s *authService) IsLoggedIn(ctx context.Context) bool {
	return s.tokens.IsLoggedIn(ctx)
}

func (s *authService) WhoAmI(ctx context.Context) (tokens.Claims, error) {
	token, ok := s.tokens.AccessToken(ctx)
	if !ok {
		return tokens.Claims{}, ErrNotLoggedIn
	}
	return tokens.ParseClaims(token)
}
