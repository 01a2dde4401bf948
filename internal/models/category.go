package models

type Category struct {
	ID    string `json:"_id" gorm:"primaryKey;size:36"`
	Name  string `json:"name" gorm:"not null"`
	Color string `json:"color" gorm:"not null"` // hex, e.g. "#ff8800"
	User  string `json:"user" gorm:"column:owner;not null;index"`
}

type CategoryPatch struct {
	Name  *string
	Color *string
}

func (p CategoryPatch) Empty() bool {
	return p.Name == nil && p.Color == nil
}

func (p CategoryPatch) Apply(category *Category) {
	if p.Name != nil {
		category.Name = *p.Name
	}
	if p.Color != nil {
		category.Color = *p.Color
	}
}
