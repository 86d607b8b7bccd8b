package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"breadvan/internal/models"
)

// UserService owns account creation, lookup and authentication. Every
// mutating call runs inside its own transaction against the injected handle,
// so tests can point it at a throwaway database.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ResidentInput carries the fields required to register a resident account.
type ResidentInput struct {
	Username    string
	Password    string
	Email       string
	Name        string
	HomeAddress string
}

// DriverInput carries the fields required to register a driver account.
type DriverInput struct {
	Username     string
	Password     string
	Email        string
	Name         string
	VehicleType  string
	LicensePlate string
}

// CreateResident registers a resident account with its home address.
func (s *UserService) CreateResident(in ResidentInput) (*models.User, error) {
	if err := requireFields(map[string]string{
		"username":     in.Username,
		"password":     in.Password,
		"email":        in.Email,
		"name":         in.Name,
		"home_address": in.HomeAddress,
	}); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", ErrPersistence)
	}

	user := models.User{
		Username: in.Username,
		Password: hashed,
		Email:    in.Email,
		Name:     in.Name,
		UserType: models.UserTypeResident,
	}
	resident := models.Resident{HomeAddress: in.HomeAddress}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkIdentityFree(tx, in.Username, in.Email); err != nil {
			return err
		}
		if err := tx.Create(&user).Error; err != nil {
			return storeError(err, "could not create user")
		}
		resident.UserID = user.ID
		if err := tx.Create(&resident).Error; err != nil {
			return storeError(err, "could not create resident record")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.Resident = &resident
	logrus.WithField("user_id", user.ID).Info("resident account created")
	return &user, nil
}

// CreateDriver registers a driver account. CurrentStatus starts "available"
// and the location fields stay unset until the first report.
func (s *UserService) CreateDriver(in DriverInput) (*models.User, error) {
	if err := requireFields(map[string]string{
		"username":      in.Username,
		"password":      in.Password,
		"email":         in.Email,
		"name":          in.Name,
		"vehicle_type":  in.VehicleType,
		"license_plate": in.LicensePlate,
	}); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", ErrPersistence)
	}

	user := models.User{
		Username: in.Username,
		Password: hashed,
		Email:    in.Email,
		Name:     in.Name,
		UserType: models.UserTypeDriver,
	}
	driver := models.Driver{
		VehicleType:   in.VehicleType,
		LicensePlate:  in.LicensePlate,
		CurrentStatus: "available",
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := checkIdentityFree(tx, in.Username, in.Email); err != nil {
			return err
		}
		if err := tx.Create(&user).Error; err != nil {
			return storeError(err, "could not create user")
		}
		driver.UserID = user.ID
		if err := tx.Create(&driver).Error; err != nil {
			return storeError(err, "could not create driver record")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.Driver = &driver
	logrus.WithField("user_id", user.ID).Info("driver account created")
	return &user, nil
}

// GetUserByID returns the account with its specialization row preloaded.
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Resident").Preload("Driver").First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, storeError(err, "could not fetch user")
	}
	return &user, nil
}

func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).
		Preload("Resident").
		Preload("Driver").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, storeError(err, "could not fetch user")
	}
	return &user, nil
}

func (s *UserService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Preload("Resident").Preload("Driver").Find(&users).Error; err != nil {
		return nil, storeError(err, "could not list users")
	}
	return users, nil
}

func (s *UserService) ListResidents() ([]models.User, error) {
	var users []models.User
	err := s.db.Where("user_type = ?", models.UserTypeResident).
		Preload("Resident").
		Find(&users).Error
	if err != nil {
		return nil, storeError(err, "could not list residents")
	}
	return users, nil
}

func (s *UserService) ListDrivers() ([]models.User, error) {
	var users []models.User
	err := s.db.Where("user_type = ?", models.UserTypeDriver).
		Preload("Driver").
		Find(&users).Error
	if err != nil {
		return nil, storeError(err, "could not list drivers")
	}
	return users, nil
}

// Authenticate verifies username/password. The same ErrAuthentication comes
// back for an unknown username and a wrong password, so callers cannot tell
// the two apart.
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrAuthentication
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrAuthentication
	}
	return user, nil
}

// DeleteUser removes an account together with everything hanging off it:
// a driver takes its schedules and their stop requests along, a resident
// takes its stop requests. One transaction, so a failure leaves all rows.
func (s *UserService) DeleteUser(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", id, ErrNotFound)
			}
			return storeError(err, "could not fetch user for deletion")
		}

		switch user.UserType {
		case models.UserTypeDriver:
			var scheduleIDs []uint
			if err := tx.Model(&models.Schedule{}).
				Where("driver_id = ?", user.ID).
				Pluck("id", &scheduleIDs).Error; err != nil {
				return storeError(err, "could not collect driver schedules")
			}
			if len(scheduleIDs) > 0 {
				if err := tx.Where("schedule_id IN ?", scheduleIDs).
					Delete(&models.StopRequest{}).Error; err != nil {
					return storeError(err, "could not delete stop requests for schedules")
				}
			}
			if err := tx.Where("driver_id = ?", user.ID).Delete(&models.Schedule{}).Error; err != nil {
				return storeError(err, "could not delete driver schedules")
			}
			if err := tx.Where("driver_id = ?", user.ID).Delete(&models.LocationHistory{}).Error; err != nil {
				return storeError(err, "could not delete location history")
			}
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.Driver{}).Error; err != nil {
				return storeError(err, "could not delete driver record")
			}
		case models.UserTypeResident:
			if err := tx.Where("resident_id = ?", user.ID).Delete(&models.StopRequest{}).Error; err != nil {
				return storeError(err, "could not delete resident stop requests")
			}
			if err := tx.Where("user_id = ?", user.ID).Delete(&models.Resident{}).Error; err != nil {
				return storeError(err, "could not delete resident record")
			}
		}

		if err := tx.Delete(&user).Error; err != nil {
			return storeError(err, "could not delete user")
		}
		return nil
	})
}

// --- helpers ---

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// requireFields fails with the validation kind naming the missing fields.
func requireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required fields %v: %w", missing, ErrValidation)
}

// checkIdentityFree rejects usernames and emails that are already taken.
// The unique columns on the users table backstop this under concurrency.
func checkIdentityFree(tx *gorm.DB, username, email string) error {
	var count int64
	if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return storeError(err, "could not check username")
	}
	if count > 0 {
		return fmt.Errorf("username %q already in use: %w", username, ErrConflict)
	}
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return storeError(err, "could not check email")
	}
	if count > 0 {
		return fmt.Errorf("email %q already in use: %w", email, ErrConflict)
	}
	return nil
}

// storeError classifies a raw database error: unique violations become the
// conflict kind, everything else the persistence kind.
func storeError(err error, context string) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", context, ErrConflict)
	}
	return fmt.Errorf("%s: %v: %w", context, err, ErrPersistence)
}
