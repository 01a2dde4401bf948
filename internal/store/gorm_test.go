package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/eduroese/To-Do-App/internal/models"
	"github.com/eduroese/To-Do-App/internal/store"
	"github.com/eduroese/To-Do-App/internal/store/storetest"
	"github.com/google/go-cmp/cmp"
)

func TestGormTaskLifecycle(t *testing.T) {
	s := storetest.NewGorm(t)
	ctx := context.Background()

	task := &models.Task{Title: "Buy milk", User: "alice", Completed: 0, Category: ""}
	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if task.ID == "" {
		t.Fatal("expected an id to be assigned")
	}

	tasks, err := s.TasksByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	if diff := cmp.Diff([]models.Task{*task}, tasks); diff != "" {
		t.Errorf("tasks mismatch (-want +got):\n%s", diff)
	}

	one, home := 1, "home"
	updated, err := s.UpdateTask(ctx, task.ID, models.TaskPatch{Completed: &one, Category: &home})
	if err != nil {
		t.Fatalf("failed to update task: %v", err)
	}
	want := models.Task{ID: task.ID, Title: "Buy milk", User: "alice", Completed: 1, Category: "home"}
	if diff := cmp.Diff(want, *updated); diff != "" {
		t.Errorf("updated task mismatch (-want +got):\n%s", diff)
	}

	deleted, err := s.DeleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to delete task: %v", err)
	}
	if deleted.ID != task.ID {
		t.Errorf("deleted id = %q, want %q", deleted.ID, task.ID)
	}

	if _, err := s.DeleteTask(ctx, task.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestGormUpdateLeavesOtherFields(t *testing.T) {
	s := storetest.NewGorm(t)
	ctx := context.Background()

	task := &models.Task{Title: "Write report", User: "bob", Completed: 0, Category: "work"}
	if err := s.CreateTask(ctx, task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	one := 1
	updated, err := s.UpdateTask(ctx, task.ID, models.TaskPatch{Completed: &one})
	if err != nil {
		t.Fatalf("failed to update task: %v", err)
	}

	if updated.Category != "work" || updated.Title != "Write report" || updated.User != "bob" {
		t.Errorf("update touched unrelated fields: %+v", updated)
	}
}

func TestGormMissingRecords(t *testing.T) {
	s := storetest.NewGorm(t)
	ctx := context.Background()
	name := "x"

	if _, err := s.UpdateTask(ctx, "missing", models.TaskPatch{Category: &name}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateTask: expected ErrNotFound, got %v", err)
	}
	if _, err := s.UpdateCategory(ctx, "missing", models.CategoryPatch{Name: &name}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("UpdateCategory: expected ErrNotFound, got %v", err)
	}
	if _, err := s.DeleteCategory(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("DeleteCategory: expected ErrNotFound, got %v", err)
	}
	if _, err := s.FindUserByUsername(ctx, "nobody"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("FindUserByUsername: expected ErrNotFound, got %v", err)
	}
}

func TestGormCategoriesFilteredByOwner(t *testing.T) {
	s := storetest.NewGorm(t)
	ctx := context.Background()

	for _, c := range []models.Category{
		{Name: "Work", Color: "#ff0000", User: "alice"},
		{Name: "Work", Color: "#00ff00", User: "alice"},
		{Name: "Home", Color: "#0000ff", User: "bob"},
	} {
		c := c
		if err := s.CreateCategory(ctx, &c); err != nil {
			t.Fatalf("failed to create category: %v", err)
		}
	}

	alice, err := s.CategoriesByUser(ctx, "alice")
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}
	if len(alice) != 2 {
		t.Errorf("alice has %d categories, want 2 (duplicate names allowed)", len(alice))
	}

	carol, err := s.CategoriesByUser(ctx, "carol")
	if err != nil {
		t.Fatalf("failed to list categories: %v", err)
	}
	if carol == nil || len(carol) != 0 {
		t.Errorf("expected an empty, non-nil slice for an unknown user, got %#v", carol)
	}

	color := "#123456"
	updated, err := s.UpdateCategory(ctx, alice[0].ID, models.CategoryPatch{Color: &color})
	if err != nil {
		t.Fatalf("failed to update category: %v", err)
	}
	if updated.Color != color || updated.Name != "Work" {
		t.Errorf("unexpected updated category: %+v", updated)
	}
}

func TestGormUsers(t *testing.T) {
	s := storetest.NewGorm(t)
	ctx := context.Background()

	user := &models.User{Username: "alice", Password: "$2a$04$hash"}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	found, err := s.FindUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("failed to find user: %v", err)
	}
	if diff := cmp.Diff(*user, *found); diff != "" {
		t.Errorf("user mismatch (-want +got):\n%s", diff)
	}

	if err := s.CreateUser(ctx, &models.User{Username: "alice", Password: "other"}); !errors.Is(err, store.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestGormMigrateIsIdempotent(t *testing.T) {
	s := storetest.NewGorm(t)

	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
}
