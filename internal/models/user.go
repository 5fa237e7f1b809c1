package models

import "gorm.io/gorm"

// User represents a customer of the platform.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `json:"password,omitempty" gorm:"type:varchar(255)" validate:"required,min=6"`
	Phone      string `json:"phone" validate:"omitempty,min=10,max=15"`
	Address    string `json:"address"`
	gorm.Model `json:"-"`
}
