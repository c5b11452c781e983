package models

// Customer places orders. Email is unique across customers.
type Customer struct {
	ID    uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name  string `json:"name" form:"name" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	Email string `json:"email" form:"email" gorm:"type:varchar(255);uniqueIndex;not null" validate:"required,max=255"`
}
