package services

import (
	"context"
	"errors"

	"github.com/eduroese/To-Do-App/internal/auth"
	"github.com/eduroese/To-Do-App/internal/models"
	"github.com/eduroese/To-Do-App/internal/store"
)

var errAlreadyRegistered = &Error{Kind: KindConflict, Message: "User already registered"}

// Register creates a user with a bcrypt hash of password. The returned user
// carries the hash, which models.User never serializes.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, badRequest("Username and password are required")
	}

	st, err := s.store(ctx)
	if err != nil {
		return nil, err
	}

	_, err = st.FindUserByUsername(ctx, username)
	if err == nil {
		return nil, errAlreadyRegistered
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, internal("Failed to check existing user", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, badRequest("Password must be at most %d bytes", auth.MaxPasswordBytes)
		}
		return nil, internal("Failed to register user", err)
	}

	user := &models.User{
		Username: username,
		Password: hash,
	}

	// The lookup above and this insert are not atomic; the unique index on
	// username catches the racing duplicate.
	if err := st.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, errAlreadyRegistered
		}
		return nil, internal("Failed to register user", err)
	}

	return user, nil
}

// Login verifies the credentials and returns the matching user. No session is
// created; clients keep the username themselves.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, badRequest("Username and password are required")
	}

	st, err := s.store(ctx)
	if err != nil {
		return nil, err
	}

	user, err := st.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("User not found")
		}
		return nil, internal("Failed to fetch user", err)
	}

	if err := s.hasher.Compare(user.Password, password); err != nil {
		if errors.Is(err, auth.ErrMismatch) {
			return nil, &Error{Kind: KindUnauthorized, Message: "Invalid credentials"}
		}
		return nil, internal("Failed to verify credentials", err)
	}

	return user, nil
}
