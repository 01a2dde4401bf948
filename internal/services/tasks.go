package services

import (
	"context"
	"errors"

	"github.com/eduroese/To-Do-App/internal/models"
	"github.com/eduroese/To-Do-App/internal/store"
)

type NewTask struct {
	Title     string
	User      string
	Completed int
	Category  string
}

func (s *Service) CreateTask(ctx context.Context, in NewTask) (*models.Task, error) {
	if in.Title == "" || in.User == "" {
		return nil, badRequest("Title and user are required")
	}
	if !models.ValidCompleted(in.Completed) {
		return nil, badRequest("Completed must be 0 or 1")
	}

	st, err := s.store(ctx)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:     in.Title,
		User:      in.User,
		Completed: in.Completed,
		Category:  in.Category,
	}

	if err := st.CreateTask(ctx, task); err != nil {
		return nil, internal("Failed to create task", err)
	}

	return task, nil
}

func (s *Service) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	if id == "" {
		return nil, badRequest("ID not provided")
	}
	if patch.Empty() {
		return nil, badRequest("No valid fields to update")
	}
	if patch.Completed != nil && !models.ValidCompleted(*patch.Completed) {
		return nil, badRequest("Completed must be 0 or 1")
	}

	st, err := s.store(ctx)
	if err != nil {
		return nil, err
	}

	task, err := st.UpdateTask(ctx, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Task not found")
		}
		return nil, internal("Failed to update task", err)
	}

	return task, nil
}

func (s *Service) DeleteTask(ctx context.Context, id string) (*models.Task, error) {
	if id == "" {
		return nil, badRequest("ID not provided")
	}

	st, err := s.store(ctx)
	if err != nil {
		return nil, err
	}

	task, err := st.DeleteTask(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Task not found")
		}
		return nil, internal("Failed to delete task", err)
	}

	return task, nil
}
