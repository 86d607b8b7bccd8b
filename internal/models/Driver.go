// internal/models/driver.go
package models

import (
	"time"

	"gorm.io/gorm"
)

type Driver struct {
	gorm.Model
	UserID            uint       `json:"user_id" gorm:"uniqueIndex"` // Foreign key to User
	VehicleType       string     `json:"vehicle_type" gorm:"not null"`
	LicensePlate      string     `json:"license_plate" gorm:"not null"`
	CurrentStatus     string     `json:"current_status" gorm:"default:available"`
	CurrentLocation   *string    `json:"current_location"`    // last reported location, free text or GeoJSON point
	LocationUpdatedAt *time.Time `json:"location_updated_at"` // nil until the first report
	// DO NOT include Email, Password, or Name here. They are in the User model.
}
