package services

import (
	"context"
	"errors"

	"github.com/eduroese/To-Do-App/internal/models"
	"github.com/eduroese/To-Do-App/internal/store"
)

type NewCategory struct {
	Name  string
	Color string
	User  string
}

// CreateCategory stores the category as given. Names are not required to be unique.
func (s *Service) CreateCategory(ctx context.Context, in NewCategory) (*models.Category, error) {
	if in.Name == "" || in.Color == "" || in.User == "" {
		return nil, badRequest("Name, color and user are required")
	}

	st, err := s.store(ctx)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:  in.Name,
		Color: in.Color,
		User:  in.User,
	}

	if err := st.CreateCategory(ctx, category); err != nil {
		return nil, internal("Failed to create category", err)
	}

	return category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	if id == "" {
		return nil, badRequest("ID not provided")
	}
	if patch.Empty() {
		return nil, badRequest("No valid fields to update")
	}

	st, err := s.store(ctx)
	if err != nil {
		return nil, err
	}

	category, err := st.UpdateCategory(ctx, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Category not found")
		}
		return nil, internal("Failed to update category", err)
	}

	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) (*models.Category, error) {
	if id == "" {
		return nil, badRequest("ID not provided")
	}

	st, err := s.store(ctx)
	if err != nil {
		return nil, err
	}

	category, err := st.DeleteCategory(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Category not found")
		}
		return nil, internal("Failed to delete category", err)
	}

	return category, nil
}
