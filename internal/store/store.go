// Package store persists tasks, categories and users.
//
// Two backends implement Store: MongoStore, the document database the
// application is designed around, and GormStore, a relational fallback for
// PostgreSQL, MySQL and SQLite.
package store

import (
	"context"
	"errors"

	"github.com/eduroese/To-Do-App/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type Store interface {
	CreateTask(ctx context.Context, task *models.Task) error
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) (*models.Task, error)
	TasksByUser(ctx context.Context, user string) ([]models.Task, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) (*models.Category, error)
	CategoriesByUser(ctx context.Context, user string) ([]models.Category, error)

	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error

	// Migrate creates the tables or indexes the backend relies on.
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
