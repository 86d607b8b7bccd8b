package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"gorm.io/gorm"

	"breadvan/internal/models"
)

// LocationService tracks each driver's last-known position. Every update
// overwrites the driver row and appends to the location history trail.
type LocationService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// LocationSnapshot is the read model handed to callers asking where a driver
// is. LocationUpdatedAt carries RFC3339 or "never" for drivers that have not
// reported yet; Latitude/Longitude are present only for GeoJSON reports.
type LocationSnapshot struct {
	DriverID          uint     `json:"driver_id"`
	DriverName        string   `json:"driver_name"`
	CurrentLocation   string   `json:"current_location"`
	LocationUpdatedAt string   `json:"location_updated_at"`
	VehicleType       string   `json:"vehicle_type"`
	LicensePlate      string   `json:"license_plate"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
}

// UpdateDriverLocation overwrites a driver's current location and stamps
// location_updated_at. The raw string is kept verbatim; when it parses as a
// GeoJSON point the coordinates also land in the history row, along with the
// distance from the previous fix when both carry coordinates.
func (s *LocationService) UpdateDriverLocation(driverID uint, location string) (*models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND user_type = ?", driverID, models.UserTypeDriver).
			Preload("Driver").
			First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("driver %d: %w", driverID, ErrNotFound)
			}
			return storeError(err, "could not fetch driver")
		}
		if user.Driver == nil {
			return fmt.Errorf("driver %d: %w", driverID, ErrNotFound)
		}

		now := s.now()
		user.Driver.CurrentLocation = &location
		user.Driver.LocationUpdatedAt = &now
		if err := tx.Save(user.Driver).Error; err != nil {
			return storeError(err, "could not update driver location")
		}

		lat, lng := parsePoint(location)
		record := models.LocationHistory{
			DriverID:   driverID,
			Location:   location,
			Latitude:   lat,
			Longitude:  lng,
			RecordedAt: now,
		}
		if lat != nil && lng != nil {
			var prev models.LocationHistory
			err := tx.Where("driver_id = ? AND latitude IS NOT NULL", driverID).
				Order("recorded_at DESC").
				First(&prev).Error
			if err == nil && prev.Latitude != nil && prev.Longitude != nil {
				record.DistanceFromLast = haversine(*prev.Latitude, *prev.Longitude, *lat, *lng)
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return storeError(err, "could not fetch previous location fix")
			}
		}
		if err := tx.Create(&record).Error; err != nil {
			return storeError(err, "could not record location history")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"driver_id": driverID,
		"location":  location,
	}).Debug("driver location updated")
	return &user, nil
}

// DriverLocation returns the last-known position snapshot for one driver.
func (s *LocationService) DriverLocation(driverID uint) (*LocationSnapshot, error) {
	var user models.User
	err := s.db.Where("id = ? AND user_type = ?", driverID, models.UserTypeDriver).
		Preload("Driver").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("driver %d: %w", driverID, ErrNotFound)
		}
		return nil, storeError(err, "could not fetch driver")
	}
	if user.Driver == nil {
		return nil, fmt.Errorf("driver %d: %w", driverID, ErrNotFound)
	}
	snapshot := buildSnapshot(&user)
	return &snapshot, nil
}

// DriversWithLocation lists snapshots for every driver that has reported at
// least once.
func (s *LocationService) DriversWithLocation() ([]LocationSnapshot, error) {
	var users []models.User
	err := s.db.Where("user_type = ?", models.UserTypeDriver).
		Joins("JOIN drivers ON drivers.user_id = users.id").
		Where("drivers.current_location IS NOT NULL").
		Preload("Driver").
		Find(&users).Error
	if err != nil {
		return nil, storeError(err, "could not list driver locations")
	}
	snapshots := make([]LocationSnapshot, 0, len(users))
	for i := range users {
		if users[i].Driver == nil {
			continue
		}
		snapshots = append(snapshots, buildSnapshot(&users[i]))
	}
	return snapshots, nil
}

// HistoryForDriver returns a driver's location trail, newest first.
func (s *LocationService) HistoryForDriver(driverID uint) ([]models.LocationHistory, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("id = ? AND user_type = ?", driverID, models.UserTypeDriver).
		Count(&count).Error
	if err != nil {
		return nil, storeError(err, "could not check driver")
	}
	if count == 0 {
		return nil, fmt.Errorf("driver %d: %w", driverID, ErrNotFound)
	}

	var history []models.LocationHistory
	err = s.db.Where("driver_id = ?", driverID).
		Order("recorded_at DESC").
		Find(&history).Error
	if err != nil {
		return nil, storeError(err, "could not fetch location history")
	}
	return history, nil
}

func buildSnapshot(user *models.User) LocationSnapshot {
	snapshot := LocationSnapshot{
		DriverID:          user.ID,
		DriverName:        user.Name,
		LocationUpdatedAt: "never",
		VehicleType:       user.Driver.VehicleType,
		LicensePlate:      user.Driver.LicensePlate,
	}
	if user.Driver.CurrentLocation != nil {
		snapshot.CurrentLocation = *user.Driver.CurrentLocation
		snapshot.Latitude, snapshot.Longitude = parsePoint(*user.Driver.CurrentLocation)
	}
	if user.Driver.LocationUpdatedAt != nil {
		snapshot.LocationUpdatedAt = user.Driver.LocationUpdatedAt.UTC().Format(time.RFC3339)
	}
	return snapshot
}

// parsePoint extracts coordinates from a location string carrying a GeoJSON
// point. Free-text locations ("Corner of Main and 5th") return nil, nil.
// GeoJSON coordinate order is [longitude, latitude].
func parsePoint(raw string) (lat, lng *float64) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(trimmed), &g); err != nil {
		return nil, nil
	}
	point, ok := g.(*geom.Point)
	if !ok {
		return nil, nil
	}
	coords := point.Coords()
	if len(coords) < 2 {
		return nil, nil
	}
	latV, lngV := coords[1], coords[0]
	return &latV, &lngV
}

// haversine returns the great-circle distance in meters between two fixes.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371000 // Earth's radius in meters.
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
