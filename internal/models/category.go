package models

// Category groups products. Deleting a category leaves its products in place
// with a nil CategoryID.
type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" form:"name" gorm:"type:varchar(255);not null" validate:"required,max=255"`
}
