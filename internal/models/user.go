package models

type User struct {
	ID       string `json:"_id" gorm:"primaryKey;size:36"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"column:password;not null"` // bcrypt hash, never serialized
}
