// Package services implements the record operations behind the task API:
// tasks, categories, registration, login and the per-user listing.
//
// Each operation performs a single store call (registration performs a lookup
// and an insert) and reports failures as *Error values whose Kind decides the
// HTTP status.
package services

import (
	"context"

	"github.com/eduroese/To-Do-App/internal/auth"
	"github.com/eduroese/To-Do-App/internal/models"
	"github.com/eduroese/To-Do-App/internal/store"
)

// StoreProvider hands out a live store connection.
type StoreProvider interface {
	Store(ctx context.Context) (store.Store, error)
}

type Service struct {
	stores StoreProvider
	hasher auth.Hasher
}

func New(stores StoreProvider, hasher auth.Hasher) *Service {
	return &Service{stores: stores, hasher: hasher}
}

func (s *Service) store(ctx context.Context) (store.Store, error) {
	st, err := s.stores.Store(ctx)
	if err != nil {
		return nil, internal("Failed to connect to the database", err)
	}
	return st, nil
}

// Listing is everything a user owns.
type Listing struct {
	Tasks      []models.Task     `json:"tasks"`
	Categories []models.Category `json:"categories"`
}

// List returns all tasks and categories whose owner is user.
func (s *Service) List(ctx context.Context, user string) (*Listing, error) {
	if user == "" {
		return nil, badRequest("The 'user' parameter is required")
	}

	st, err := s.store(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := st.TasksByUser(ctx, user)
	if err != nil {
		return nil, internal("Failed to fetch data", err)
	}

	categories, err := st.CategoriesByUser(ctx, user)
	if err != nil {
		return nil, internal("Failed to fetch data", err)
	}

	return &Listing{Tasks: tasks, Categories: categories}, nil
}
