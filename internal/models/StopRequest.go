package models

import (
	"time"

	"gorm.io/gorm"
)

// Stop request lifecycle. "requested" is the only initial status; the other
// three are set by drivers working through their stop list.
const (
	StopRequestRequested = "requested"
	StopRequestConfirmed = "confirmed"
	StopRequestRejected  = "rejected"
	StopRequestCompleted = "completed"
)

// ValidStopRequestStatus reports whether s is one of the known status values.
func ValidStopRequestStatus(s string) bool {
	switch s {
	case StopRequestRequested, StopRequestConfirmed, StopRequestRejected, StopRequestCompleted:
		return true
	}
	return false
}

// StopRequest is a resident's ask to be served during a specific schedule.
// One request per (resident, schedule) pair; the composite unique index
// closes the race between two concurrent requests for the same pair.
type StopRequest struct {
	gorm.Model

	ResidentID  uint      `json:"resident_id" gorm:"not null;uniqueIndex:idx_resident_schedule"`
	ScheduleID  uint      `json:"schedule_id" gorm:"not null;uniqueIndex:idx_resident_schedule"`
	RequestTime time.Time `json:"request_time"` // set at creation, never mutated
	Status      string    `json:"status" gorm:"default:requested"`
}
