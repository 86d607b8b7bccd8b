package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"breadvan/internal/models"
)

// MinLeadTime is the minimum interval between a stop request and the start
// of the schedule it targets. Exactly one hour of lead is accepted; anything
// strictly under it (including schedules already in the past) is rejected.
const MinLeadTime = time.Hour

// StopRequestService owns resident stop requests and their status lifecycle.
//
// StrictTransitions is off by default, matching the permissive historical
// behavior where any status may overwrite any other. Switching it on limits
// updates to requested->confirmed, requested->rejected and confirmed->completed.
type StopRequestService struct {
	db  *gorm.DB
	now func() time.Time

	StrictTransitions bool
}

func NewStopRequestService(db *gorm.DB) *StopRequestService {
	return &StopRequestService{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CreateStopRequest validates and records a request. Checks run in order:
// schedule exists, resident exists, lead time holds, no duplicate pair.
// The unique index on (resident_id, schedule_id) backstops the duplicate
// check when two requests race; the loser's commit comes back as a conflict.
func (s *StopRequestService) CreateStopRequest(residentID, scheduleID uint) (*models.StopRequest, error) {
	request := models.StopRequest{
		ResidentID: residentID,
		ScheduleID: scheduleID,
		Status:     models.StopRequestRequested,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var schedule models.Schedule
		if err := tx.First(&schedule, scheduleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("schedule %d: %w", scheduleID, ErrNotFound)
			}
			return storeError(err, "could not fetch schedule")
		}

		var resident models.User
		if err := tx.First(&resident, residentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("resident %d: %w", residentID, ErrNotFound)
			}
			return storeError(err, "could not fetch resident")
		}
		if resident.UserType != models.UserTypeResident {
			return fmt.Errorf("resident %d: %w", residentID, ErrNotFound)
		}

		now := s.now()
		if schedule.ScheduledStartTime.Sub(now) < MinLeadTime {
			return fmt.Errorf("stop requests must be made at least 1 hour before departure: %w", ErrValidation)
		}

		var count int64
		err := tx.Model(&models.StopRequest{}).
			Where("resident_id = ? AND schedule_id = ?", residentID, scheduleID).
			Count(&count).Error
		if err != nil {
			return storeError(err, "could not check for existing stop request")
		}
		if count > 0 {
			return fmt.Errorf("stop request already exists for this schedule: %w", ErrConflict)
		}

		request.RequestTime = now
		if err := tx.Create(&request).Error; err != nil {
			return storeError(err, "could not create stop request")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"request_id":  request.ID,
		"resident_id": residentID,
		"schedule_id": scheduleID,
	}).Info("stop request created")
	return &request, nil
}

func (s *StopRequestService) RequestsByResident(residentID uint) ([]models.StopRequest, error) {
	var requests []models.StopRequest
	if err := s.db.Where("resident_id = ?", residentID).Find(&requests).Error; err != nil {
		return nil, storeError(err, "could not query stop requests by resident")
	}
	return requests, nil
}

func (s *StopRequestService) RequestsBySchedule(scheduleID uint) ([]models.StopRequest, error) {
	var requests []models.StopRequest
	if err := s.db.Where("schedule_id = ?", scheduleID).Find(&requests).Error; err != nil {
		return nil, storeError(err, "could not query stop requests by schedule")
	}
	return requests, nil
}

// UpdateStatus overwrites the status of an existing request. Without strict
// transitions any known status value is accepted, whatever the current one.
func (s *StopRequestService) UpdateStatus(requestID uint, status string) (*models.StopRequest, error) {
	if !models.ValidStopRequestStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, ErrValidation)
	}

	var request models.StopRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("stop request %d: %w", requestID, ErrNotFound)
			}
			return storeError(err, "could not fetch stop request")
		}
		if s.StrictTransitions && !legalTransition(request.Status, status) {
			return fmt.Errorf("cannot move stop request from %q to %q: %w", request.Status, status, ErrValidation)
		}
		request.Status = status
		if err := tx.Save(&request).Error; err != nil {
			return storeError(err, "could not update stop request")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func legalTransition(from, to string) bool {
	switch from {
	case models.StopRequestRequested:
		return to == models.StopRequestConfirmed || to == models.StopRequestRejected
	case models.StopRequestConfirmed:
		return to == models.StopRequestCompleted
	}
	return false
}
