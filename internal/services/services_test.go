package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/eduroese/To-Do-App/internal/auth"
	"github.com/eduroese/To-Do-App/internal/models"
	"github.com/eduroese/To-Do-App/internal/services"
	"github.com/eduroese/To-Do-App/internal/store/storetest"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) *services.Service {
	t.Helper()
	return services.New(storetest.Provider{S: storetest.NewGorm(t)}, auth.NewHasher(bcrypt.MinCost))
}

func wantKind(t *testing.T, err error, kind services.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a %s error, got nil", kind)
	}
	if got := services.KindOf(err); got != kind {
		t.Fatalf("kind = %s, want %s (err: %v)", got, kind, err)
	}
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCreateTaskValidatesCompleted(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	for _, completed := range []int{-1, 2, 7} {
		_, err := svc.CreateTask(ctx, services.NewTask{Title: "Buy milk", User: "alice", Completed: completed})
		wantKind(t, err, services.KindBadRequest)
	}

	for _, completed := range []int{0, 1} {
		task, err := svc.CreateTask(ctx, services.NewTask{Title: "Buy milk", User: "alice", Completed: completed})
		if err != nil {
			t.Fatalf("failed to create task: %v", err)
		}
		if task.Completed != completed {
			t.Errorf("completed = %d, want %d", task.Completed, completed)
		}
	}
}

func TestCreateTaskRequiresTitleAndUser(t *testing.T) {
	svc := newService(t)

	_, err := svc.CreateTask(context.Background(), services.NewTask{User: "alice"})
	wantKind(t, err, services.KindBadRequest)

	_, err = svc.CreateTask(context.Background(), services.NewTask{Title: "Buy milk"})
	wantKind(t, err, services.KindBadRequest)
}

func TestCreatedTaskAppearsOnceInListing(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, services.NewTask{Title: "Buy milk", User: "alice", Category: "home"})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	if _, err := svc.CreateTask(ctx, services.NewTask{Title: "Walk dog", User: "bob"}); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	listing, err := svc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}

	if diff := cmp.Diff([]models.Task{*created}, listing.Tasks); diff != "" {
		t.Errorf("listing mismatch (-want +got):\n%s", diff)
	}
	if len(listing.Categories) != 0 {
		t.Errorf("expected no categories, got %v", listing.Categories)
	}
}

func TestListRequiresUser(t *testing.T) {
	_, err := newService(t).List(context.Background(), "")
	wantKind(t, err, services.KindBadRequest)
}

func TestUpdateTaskIsIdempotent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, services.NewTask{Title: "Buy milk", User: "alice"})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	patch := models.TaskPatch{Completed: intPtr(1), Category: strPtr("")}

	first, err := svc.UpdateTask(ctx, task.ID, patch)
	if err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	second, err := svc.UpdateTask(ctx, task.ID, patch)
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated update changed state (-first +second):\n%s", diff)
	}
	if second.Completed != 1 {
		t.Errorf("completed = %d, want 1", second.Completed)
	}
}

func TestUpdateTaskErrors(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.UpdateTask(ctx, "", models.TaskPatch{Completed: intPtr(1)})
	wantKind(t, err, services.KindBadRequest)

	_, err = svc.UpdateTask(ctx, "some-id", models.TaskPatch{})
	wantKind(t, err, services.KindBadRequest)

	_, err = svc.UpdateTask(ctx, "some-id", models.TaskPatch{Completed: intPtr(3)})
	wantKind(t, err, services.KindBadRequest)

	_, err = svc.UpdateTask(ctx, "missing", models.TaskPatch{Completed: intPtr(1)})
	wantKind(t, err, services.KindNotFound)
}

func TestDeleteMissingIsNotFound(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.DeleteTask(ctx, "missing")
	wantKind(t, err, services.KindNotFound)

	_, err = svc.DeleteCategory(ctx, "missing")
	wantKind(t, err, services.KindNotFound)

	_, err = svc.DeleteTask(ctx, "")
	wantKind(t, err, services.KindBadRequest)
}

func TestCategoryLifecycle(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, services.NewCategory{Name: "Work", Color: "#ff0000", User: "alice"})
	if err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	// Duplicate names are allowed.
	if _, err := svc.CreateCategory(ctx, services.NewCategory{Name: "Work", Color: "#00ff00", User: "alice"}); err != nil {
		t.Fatalf("failed to create duplicate category: %v", err)
	}

	updated, err := svc.UpdateCategory(ctx, category.ID, models.CategoryPatch{Name: strPtr("Office"), Color: strPtr("#0000ff")})
	if err != nil {
		t.Fatalf("failed to update category: %v", err)
	}
	want := models.Category{ID: category.ID, Name: "Office", Color: "#0000ff", User: "alice"}
	if diff := cmp.Diff(want, *updated); diff != "" {
		t.Errorf("category mismatch (-want +got):\n%s", diff)
	}

	if _, err := svc.DeleteCategory(ctx, category.ID); err != nil {
		t.Fatalf("failed to delete category: %v", err)
	}

	listing, err := svc.List(ctx, "alice")
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	if len(listing.Categories) != 1 {
		t.Errorf("expected 1 category left, got %d", len(listing.Categories))
	}

	_, err = svc.CreateCategory(ctx, services.NewCategory{Name: "Work", User: "alice"})
	wantKind(t, err, services.KindBadRequest)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if user.Password == "pw1" || user.Password == "" {
		t.Errorf("expected a bcrypt hash to be stored, got %q", user.Password)
	}

	_, err = svc.Register(ctx, "alice", "pw2")
	wantKind(t, err, services.KindConflict)

	logged, err := svc.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	if logged.Username != "alice" {
		t.Errorf("username = %q, want alice", logged.Username)
	}

	_, err = svc.Login(ctx, "alice", "wrong")
	wantKind(t, err, services.KindUnauthorized)

	_, err = svc.Login(ctx, "bob", "pw1")
	wantKind(t, err, services.KindNotFound)

	_, err = svc.Register(ctx, "", "pw")
	wantKind(t, err, services.KindBadRequest)
}

func TestRegisterOverlongPasswordIsBadRequest(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", strings.Repeat("x", auth.MaxPasswordBytes+8))
	wantKind(t, err, services.KindBadRequest)

	// Nothing was stored, so the name is still free.
	if _, err := svc.Register(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}
}

func TestStoreUnavailableIsInternal(t *testing.T) {
	svc := services.New(storetest.Provider{Err: errors.New("connection refused")}, auth.NewHasher(bcrypt.MinCost))

	_, err := svc.List(context.Background(), "alice")
	wantKind(t, err, services.KindInternal)

	if msg := services.Message(err); msg != "Failed to connect to the database" {
		t.Errorf("message = %q", msg)
	}
}

func TestKindStatus(t *testing.T) {
	tests := map[services.Kind]int{
		services.KindBadRequest:   400,
		services.KindConflict:     400,
		services.KindUnauthorized: 401,
		services.KindNotFound:     404,
		services.KindInternal:     500,
	}

	for kind, want := range tests {
		if got := kind.Status(); got != want {
			t.Errorf("%s.Status() = %d, want %d", kind, got, want)
		}
	}

	if got := services.KindOf(errors.New("plain")); got != services.KindInternal {
		t.Errorf("KindOf(plain error) = %s, want internal", got)
	}
}
