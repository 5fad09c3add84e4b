package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"moola/internal/domain"
)

// ErrUsernameTaken is returned by SignUp when the username already exists.
var ErrUsernameTaken = errors.New("username already taken")

// Session is the part of the session manager the service drives.
type Session interface {
	Login(ctx context.Context, pair domain.TokenPair) error
	Logout(ctx context.Context) error
}

// Service runs the sign-in, sign-up and sign-out flows.
type Service struct {
	api     domain.APIClient
	session Session
	logger  *slog.Logger
}

// New constructs an auth Service.
func New(api domain.APIClient, session Session, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{api: api, session: session, logger: logger}
}

// SignIn validates the form, exchanges the credentials for tokens and hands them
// to the session, which stores them and announces LOGIN_SUCCESS.
func (s *Service) SignIn(ctx context.Context, creds domain.Credentials) error {
	if err := ValidateCredentials(creds); err != nil {
		return err
	}
	pair, err := s.api.Login(ctx, creds)
	if err != nil {
		return err
	}
	if err := s.session.Login(ctx, pair); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	s.logger.Info("signed in", "username", creds.Username)
	return nil
}

// UsernameAvailable asks the server whether username is free.
func (s *Service) UsernameAvailable(ctx context.Context, username domain.Username) (bool, error) {
	exists, err := s.api.UsernameExists(ctx, username)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// SignUp validates every step, checks the username and registers the account.
// It does not sign in.
func (s *Service) SignUp(ctx context.Context, reg domain.Registration) error {
	for step := StepAccount; step <= StepIdentity; step++ {
		if err := ValidateStep(step, reg); err != nil {
			return err
		}
	}
	free, err := s.UsernameAvailable(ctx, domain.Username(reg.Username))
	if err != nil {
		return err
	}
	if !free {
		return ErrUsernameTaken
	}
	if err := s.api.Register(ctx, reg); err != nil {
		return err
	}
	s.logger.Info("registered", "username", reg.Username)
	return nil
}

// SignOut clears the session.
func (s *Service) SignOut(ctx context.Context) error {
	return s.session.Logout(ctx)
}
