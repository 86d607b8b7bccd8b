package models

import "gorm.io/gorm"

// Account types. UserType is fixed at signup and decides which
// specialization row (Resident or Driver) belongs to the account.
const (
	UserTypeResident = "resident"
	UserTypeDriver   = "driver"
)

type User struct {
	gorm.Model
	Username string `json:"username" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"` // bcrypt hash, never serialized
	Email    string `json:"email" gorm:"unique;not null"`
	Name     string `json:"name"`
	UserType string `json:"user_type" gorm:"index"` // "resident" or "driver"

	// Actor-specific relations
	Resident *Resident `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"resident,omitempty"`
	Driver   *Driver   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"driver,omitempty"`
}
