package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"breadvan/internal/models"
)

// ScheduleService owns a driver's planned street runs.
type ScheduleService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewScheduleService(db *gorm.DB) *ScheduleService {
	return &ScheduleService{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CreateSchedule records a run for an existing driver. There is deliberately
// no start<end check; callers get back exactly what they stored.
func (s *ScheduleService) CreateSchedule(driverID uint, street string, start, end time.Time) (*models.Schedule, error) {
	schedule := models.Schedule{
		DriverID:           driverID,
		Street:             street,
		ScheduledStartTime: start,
		ScheduledEndTime:   end,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var driver models.User
		if err := tx.First(&driver, driverID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("driver %d: %w", driverID, ErrNotFound)
			}
			return storeError(err, "could not fetch driver")
		}
		if driver.UserType != models.UserTypeDriver {
			return fmt.Errorf("driver %d: %w", driverID, ErrNotFound)
		}
		if err := tx.Create(&schedule).Error; err != nil {
			return storeError(err, "could not create schedule")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"schedule_id": schedule.ID,
		"driver_id":   driverID,
		"street":      street,
	}).Info("schedule created")
	return &schedule, nil
}

// SchedulesForStreet matches the street column by case-insensitive substring.
func (s *ScheduleService) SchedulesForStreet(name string) ([]models.Schedule, error) {
	var schedules []models.Schedule
	pattern := "%" + strings.ToLower(name) + "%"
	if err := s.db.Where("LOWER(street) LIKE ?", pattern).Find(&schedules).Error; err != nil {
		return nil, storeError(err, "could not query schedules by street")
	}
	return schedules, nil
}

func (s *ScheduleService) SchedulesForDriver(driverID uint) ([]models.Schedule, error) {
	var schedules []models.Schedule
	if err := s.db.Where("driver_id = ?", driverID).Find(&schedules).Error; err != nil {
		return nil, storeError(err, "could not query schedules by driver")
	}
	return schedules, nil
}

// UpcomingSchedules returns runs starting at or after now, soonest first.
func (s *ScheduleService) UpcomingSchedules() ([]models.Schedule, error) {
	var schedules []models.Schedule
	err := s.db.Where("scheduled_start_time >= ?", s.now()).
		Order("scheduled_start_time ASC").
		Find(&schedules).Error
	if err != nil {
		return nil, storeError(err, "could not query upcoming schedules")
	}
	return schedules, nil
}

func (s *ScheduleService) ScheduleByID(id uint) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := s.db.First(&schedule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("schedule %d: %w", id, ErrNotFound)
		}
		return nil, storeError(err, "could not fetch schedule")
	}
	return &schedule, nil
}
