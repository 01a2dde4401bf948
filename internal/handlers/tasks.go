package handlers

import (
	"fmt"
	"net/http"

	"github.com/eduroese/To-Do-App/internal/models"
	"github.com/eduroese/To-Do-App/internal/services"
	"github.com/gin-gonic/gin"
)

// List returns every task and category owned by the "user" query parameter.
func (h *Handler) List(ctx *gin.Context) {
	user := ctx.Query("user")

	listing, err := h.svc.List(ctx.Request.Context(), user)
	if err != nil {
		h.fail(ctx, err, "user", user)
		return
	}

	ctx.JSON(http.StatusOK, listing)
}

// Create dispatches a POST on its "type": Task, Category, Register or Login.
func (h *Handler) Create(ctx *gin.Context) {
	t, ok := h.requestType(ctx, TypeTask, TypeRegister, TypeLogin, TypeCategory)
	if !ok {
		return
	}

	switch t {
	case TypeTask:
		h.createTask(ctx)
	case TypeCategory:
		h.createCategory(ctx)
	case TypeRegister:
		h.register(ctx)
	case TypeLogin:
		h.login(ctx)
	}
}

// Update dispatches a PUT on its "type": Task or Category.
func (h *Handler) Update(ctx *gin.Context) {
	t, ok := h.requestType(ctx, TypeTask, TypeCategory)
	if !ok {
		return
	}

	id := ctx.Param("id")

	switch t {
	case TypeTask:
		var req UpdateTaskRequest
		if !h.bind(ctx, t, &req) {
			return
		}

		task, err := h.svc.UpdateTask(ctx.Request.Context(), id, models.TaskPatch{
			Completed: req.Completed,
			Category:  req.Category,
		})
		if err != nil {
			h.fail(ctx, err, "type", t, "id", id)
			return
		}

		h.refresh(task.User)
		ctx.JSON(http.StatusOK, task)

	case TypeCategory:
		var req UpdateCategoryRequest
		if !h.bind(ctx, t, &req) {
			return
		}

		category, err := h.svc.UpdateCategory(ctx.Request.Context(), id, models.CategoryPatch{
			Name:  req.Name,
			Color: req.Color,
		})
		if err != nil {
			h.fail(ctx, err, "type", t, "id", id)
			return
		}

		h.refresh(category.User)
		ctx.JSON(http.StatusOK, category)
	}
}

// Delete dispatches a DELETE on its "type": Task or Category.
func (h *Handler) Delete(ctx *gin.Context) {
	t, ok := h.requestType(ctx, TypeTask, TypeCategory)
	if !ok {
		return
	}

	id := ctx.Param("id")

	var (
		owner string
		err   error
	)

	switch t {
	case TypeTask:
		var task *models.Task
		if task, err = h.svc.DeleteTask(ctx.Request.Context(), id); err == nil {
			owner = task.User
		}
	case TypeCategory:
		var category *models.Category
		if category, err = h.svc.DeleteCategory(ctx.Request.Context(), id); err == nil {
			owner = category.User
		}
	}

	if err != nil {
		h.fail(ctx, err, "type", t, "id", id)
		return
	}

	h.refresh(owner)
	ctx.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s deleted successfully", t)})
}

func (h *Handler) createTask(ctx *gin.Context) {
	var req CreateTaskRequest
	if !h.bind(ctx, TypeTask, &req) {
		return
	}

	in := services.NewTask{
		Title:     req.Title,
		User:      req.User,
		Completed: *req.Completed,
	}
	if req.Category != nil {
		in.Category = *req.Category
	}

	task, err := h.svc.CreateTask(ctx.Request.Context(), in)
	if err != nil {
		h.fail(ctx, err, "type", TypeTask, "user", req.User)
		return
	}

	h.refresh(task.User)
	ctx.JSON(http.StatusCreated, task)
}

func (h *Handler) createCategory(ctx *gin.Context) {
	var req CreateCategoryRequest
	if !h.bind(ctx, TypeCategory, &req) {
		return
	}

	category, err := h.svc.CreateCategory(ctx.Request.Context(), services.NewCategory{
		Name:  req.Name,
		Color: req.Color,
		User:  req.User,
	})
	if err != nil {
		h.fail(ctx, err, "type", TypeCategory, "user", req.User)
		return
	}

	h.refresh(category.User)
	ctx.JSON(http.StatusCreated, category)
}

func (h *Handler) register(ctx *gin.Context) {
	var req CredentialsRequest
	if !h.bind(ctx, TypeRegister, &req) {
		return
	}

	user, err := h.svc.Register(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(ctx, err, "type", TypeRegister, "username", req.Username)
		return
	}

	// models.User never serializes its password hash.
	ctx.JSON(http.StatusCreated, user)
}

func (h *Handler) login(ctx *gin.Context) {
	var req CredentialsRequest
	if !h.bind(ctx, TypeLogin, &req) {
		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.fail(ctx, err, "type", TypeLogin, "username", req.Username)
		return
	}

	ctx.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		User:    user.Username,
	})
}
