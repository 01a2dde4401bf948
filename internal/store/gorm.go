package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/eduroese/To-Do-App/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Migrate(ctx context.Context) error {
	tables := []interface{}{
		&models.User{},
		&models.Task{},
		&models.Category{},
	}

	db := s.db.WithContext(ctx)
	migrator := db.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := db.AutoMigrate(table); err != nil {
				return fmt.Errorf("migrate %T: %w", table, err)
			}
		}
	}

	return nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) CreateTask(ctx context.Context, task *models.Task) error {
	task.ID = uuid.NewString()

	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (s *GormStore) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	var task models.Task
	db := s.db.WithContext(ctx)

	if err := db.First(&task, "id = ?", id).Error; err != nil {
		return nil, translateGorm("find task", err)
	}

	patch.Apply(&task)

	if err := db.Save(&task).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	return &task, nil
}

func (s *GormStore) DeleteTask(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	db := s.db.WithContext(ctx)

	if err := db.First(&task, "id = ?", id).Error; err != nil {
		return nil, translateGorm("find task", err)
	}

	if err := db.Delete(&task).Error; err != nil {
		return nil, fmt.Errorf("delete task: %w", err)
	}

	return &task, nil
}

func (s *GormStore) TasksByUser(ctx context.Context, user string) ([]models.Task, error) {
	tasks := []models.Task{}

	if err := s.db.WithContext(ctx).Where(&models.Task{User: user}).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

func (s *GormStore) CreateCategory(ctx context.Context, category *models.Category) error {
	category.ID = uuid.NewString()

	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (s *GormStore) UpdateCategory(ctx context.Context, id string, patch models.CategoryPatch) (*models.Category, error) {
	var category models.Category
	db := s.db.WithContext(ctx)

	if err := db.First(&category, "id = ?", id).Error; err != nil {
		return nil, translateGorm("find category", err)
	}

	patch.Apply(&category)

	if err := db.Save(&category).Error; err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}

	return &category, nil
}

func (s *GormStore) DeleteCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	db := s.db.WithContext(ctx)

	if err := db.First(&category, "id = ?", id).Error; err != nil {
		return nil, translateGorm("find category", err)
	}

	if err := db.Delete(&category).Error; err != nil {
		return nil, fmt.Errorf("delete category: %w", err)
	}

	return &category, nil
}

func (s *GormStore) CategoriesByUser(ctx context.Context, user string) ([]models.Category, error) {
	categories := []models.Category{}

	if err := s.db.WithContext(ctx).Where(&models.Category{User: user}).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

func (s *GormStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateGorm("find user", err)
	}

	return &user, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = uuid.NewString()

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func translateGorm(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUniqueViolation recognizes unique-constraint failures from every supported
// driver. gorm only translates them when TranslateError is enabled and the
// dialector supports it, so the driver messages are matched as well.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "unique constraint") || // sqlite, postgres
		strings.Contains(msg, "duplicate key") || // postgres
		strings.Contains(msg, "duplicate entry") // mysql
}
