// internal/models/resident.go
package models

import (
	"gorm.io/gorm"
)

type Resident struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"uniqueIndex"` // Foreign key to User
	HomeAddress string `json:"home_address" gorm:"not null"`
	// Email, Password and Name live on the User model.
}
