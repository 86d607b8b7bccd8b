package models

import (
	"time"

	"gorm.io/gorm"
)

// LocationHistory keeps every location report a driver has made, so the trail
// survives the overwrite of Driver.CurrentLocation. Latitude/Longitude are
// filled when the report carried a GeoJSON point, otherwise left nil.
type LocationHistory struct {
	gorm.Model
	DriverID         uint      `json:"driver_id" gorm:"index"` // user ID of the driver
	Location         string    `json:"location"`
	Latitude         *float64  `json:"latitude"`
	Longitude        *float64  `json:"longitude"`
	DistanceFromLast float64   `json:"distance_from_last"` // meters from the previous fix, 0 when unknown
	RecordedAt       time.Time `json:"recorded_at"`
}
