package models

import (
	"time"

	"gorm.io/gorm"
)

// Schedule represents a driver's planned run down a street within a
// start/end window. DriverID is the user ID of a driver account.
type Schedule struct {
	gorm.Model

	DriverID           uint      `json:"driver_id" gorm:"index;not null"`
	Street             string    `json:"street" gorm:"not null"`
	ScheduledStartTime time.Time `json:"scheduled_start_time"`
	ScheduledEndTime   time.Time `json:"scheduled_end_time"`

	// Associations
	StopRequests []StopRequest `gorm:"foreignKey:ScheduleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"stop_requests,omitempty"`
}
