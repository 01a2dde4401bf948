package handlers

import "fmt"

// RequestType is the discriminator carried in the "type" field of every
// mutating request body.
type RequestType string

const (
	TypeTask     RequestType = "Task"
	TypeCategory RequestType = "Category"
	TypeRegister RequestType = "Register"
	TypeLogin    RequestType = "Login"
)

// ParseRequestType accepts exactly the types listed in allowed.
func ParseRequestType(s string, allowed ...RequestType) (RequestType, error) {
	for _, t := range allowed {
		if s == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid request type %q", s)
}

type envelope struct {
	Type string `json:"type"`
}

type CreateTaskRequest struct {
	Title     string  `json:"title" binding:"required"`
	User      string  `json:"user" binding:"required"`
	Completed *int    `json:"completed" binding:"required,oneof=0 1"`
	Category  *string `json:"category"`
}

type UpdateTaskRequest struct {
	Completed *int    `json:"completed" binding:"omitempty,oneof=0 1"`
	Category  *string `json:"category"`
}

type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color" binding:"required"`
	User  string `json:"user" binding:"required"`
}

type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type CredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Message string `json:"message"`
	User    string `json:"user"`
}
