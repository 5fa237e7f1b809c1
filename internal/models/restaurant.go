package models

import "gorm.io/gorm"

// Restaurant represents a restaurant listed on the platform.
type Restaurant struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string     `json:"name" validate:"required,min=2,max=100"`
	Description string     `json:"description" validate:"omitempty,max=1000"`
	Address     string     `json:"address" validate:"required"`
	City        string     `json:"city"`
	CuisineType string     `json:"cuisine_type"`
	Rating      float64    `json:"rating" validate:"gte=0,lte=5"`
	IsOpen      bool       `json:"is_open"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	MenuItems   []MenuItem `json:"menu_items,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	gorm.Model  `json:"-"`
}

// MenuItem represents a dish offered by a restaurant.
type MenuItem struct {
	ID           string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	RestaurantID string  `json:"restaurant_id" gorm:"index;type:varchar(36)" validate:"required"`
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Description  string  `json:"description" validate:"omitempty,max=1000"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Category     string  `json:"category"`
	IsVeg        bool    `json:"is_veg"`
	Available    bool    `json:"available"`
	gorm.Model   `json:"-"`
}
