package models

type Task struct {
	ID        string `json:"_id" gorm:"primaryKey;size:36"`
	Title     string `json:"title" gorm:"not null"`
	User      string `json:"user" gorm:"column:owner;not null;index"`
	Completed int    `json:"completed" gorm:"not null"` // 0 or 1
	Category  string `json:"category"`                  // Category.Name, matched by value
}

// TaskPatch holds the fields a Task update may rewrite. Nil fields are left untouched.
type TaskPatch struct {
	Completed *int
	Category  *string
}

func (p TaskPatch) Empty() bool {
	return p.Completed == nil && p.Category == nil
}

// Apply copies the non-nil fields of the patch onto task.
func (p TaskPatch) Apply(task *Task) {
	if p.Completed != nil {
		task.Completed = *p.Completed
	}
	if p.Category != nil {
		task.Category = *p.Category
	}
}

// ValidCompleted reports whether v is an allowed value for Task.Completed.
func ValidCompleted(v int) bool {
	return v == 0 || v == 1
}
