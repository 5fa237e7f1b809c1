package models

import "gorm.io/gorm"

// Review is a user's rating of a restaurant.
type Review struct {
	ID           string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserEmail    string  `json:"user_email" gorm:"index" validate:"required,email"`
	RestaurantID string  `json:"restaurant_id" gorm:"index;type:varchar(36)" validate:"required"`
	Rating       int     `json:"rating" validate:"required,gte=1,lte=5"`
	Comment      string  `json:"comment" validate:"omitempty,max=1000"`
	gorm.Model   `json:"-"`
}

// Favorite marks a restaurant as favorited by a user.
type Favorite struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserEmail    string `json:"user_email" gorm:"index;uniqueIndex:idx_fav_user_restaurant"`
	RestaurantID string `json:"restaurant_id" gorm:"type:varchar(36);uniqueIndex:idx_fav_user_restaurant"`
	gorm.Model   `json:"-"`
}

// Wallet holds a user's platform balance.
type Wallet struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserEmail  string  `json:"user_email" gorm:"uniqueIndex"`
	Balance    float64 `json:"balance"`
	gorm.Model `json:"-"`
}

// Wallet transaction kinds.
const (
	WalletCredit = "CREDIT"
	WalletDebit  = "DEBIT"
)

// WalletTransaction records a single balance mutation.
type WalletTransaction struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	WalletID    string  `json:"wallet_id" gorm:"index;type:varchar(36)"`
	Kind        string  `json:"kind" gorm:"type:varchar(10)"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	gorm.Model  `json:"-"`
}
