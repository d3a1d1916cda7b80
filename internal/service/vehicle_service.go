package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"motorlog/internal/auth"
	"motorlog/internal/cache"
	"motorlog/internal/errors"
	"motorlog/internal/model"
	"motorlog/internal/repository"
)

const vehicleListCacheTTL = 5 * time.Minute

// VehicleService exposes vehicle CRUD operations scoped to the authenticated
// identity. Registration numbers are uppercased before every comparison and
// write.
type VehicleService interface {
	Create(ctx context.Context, identity auth.Identity, name, registration string, vehicleType model.VehicleType, odometer decimal.Decimal) (*model.Vehicle, error)
	List(ctx context.Context, identity auth.Identity) ([]model.Vehicle, error)
	Get(ctx context.Context, identity auth.Identity, registration string) (*model.Vehicle, error)
	Update(ctx context.Context, identity auth.Identity, registration, name string, vehicleType model.VehicleType, odometer decimal.Decimal) (*model.Vehicle, error)
	Delete(ctx context.Context, identity auth.Identity, registration string) error
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	cache       *cache.Client
}

// NewVehicleService builds a VehicleService with repository and cache.
func NewVehicleService(vehicleRepo repository.VehicleRepository, cache *cache.Client) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo, cache: cache}
}

func (s *vehicleService) listCacheKey(identity auth.Identity) string {
	return fmt.Sprintf("vehicles:%s", identity.UserID)
}

// Create persists a new vehicle owned by the identity. The registration
// number must be unique across all users.
func (s *vehicleService) Create(ctx context.Context, identity auth.Identity, name, registration string, vehicleType model.VehicleType, odometer decimal.Decimal) (*model.Vehicle, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(registration) == "" {
		return nil, errors.NewValidationError("name and registration number are required")
	}
	if !vehicleType.IsValid() {
		return nil, errors.NewValidationError("vehicle type must be Car, Bike or Other")
	}
	if odometer.IsNegative() {
		return nil, errors.NewValidationError("initial odometer must be non-negative")
	}

	registration = strings.ToUpper(registration)

	// Pre-check only; the unique index is the real enforcement point.
	existing, err := s.vehicleRepo.FindByRegistration(ctx, registration)
	if err == nil && existing != nil {
		return nil, errors.ErrVehicleExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check registration: %w", err)
	}

	vehicle := &model.Vehicle{
		UserID:             identity.UserID,
		Name:               name,
		RegistrationNumber: registration,
		VehicleType:        vehicleType,
		InitialOdometer:    odometer,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrVehicleExists
		}
		return nil, fmt.Errorf("create vehicle: %w", err)
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(identity))
	return vehicle, nil
}

// List returns all vehicles owned by the identity in store-native order.
func (s *vehicleService) List(ctx context.Context, identity auth.Identity) ([]model.Vehicle, error) {
	var cached []model.Vehicle
	if s.cache.GetJSON(ctx, s.listCacheKey(identity), &cached) {
		return cached, nil
	}

	vehicles, err := s.vehicleRepo.ListByUser(ctx, identity.UserID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}

	s.cache.SetJSON(ctx, s.listCacheKey(identity), vehicles, vehicleListCacheTTL)
	return vehicles, nil
}

// Get returns the vehicle matching (registration, owner).
func (s *vehicleService) Get(ctx context.Context, identity auth.Identity, registration string) (*model.Vehicle, error) {
	registration = strings.ToUpper(registration)

	vehicle, err := s.vehicleRepo.FindByRegistrationAndUser(ctx, registration, identity.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return vehicle, nil
}

// Update mutates name, type and odometer of the vehicle matching
// (registration, owner). The registration number itself is immutable.
func (s *vehicleService) Update(ctx context.Context, identity auth.Identity, registration, name string, vehicleType model.VehicleType, odometer decimal.Decimal) (*model.Vehicle, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.NewValidationError("name is required")
	}
	if !vehicleType.IsValid() {
		return nil, errors.NewValidationError("vehicle type must be Car, Bike or Other")
	}
	if odometer.IsNegative() {
		return nil, errors.NewValidationError("initial odometer must be non-negative")
	}

	registration = strings.ToUpper(registration)

	vehicle, err := s.vehicleRepo.FindByRegistrationAndUser(ctx, registration, identity.UserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}

	vehicle.Name = name
	vehicle.VehicleType = vehicleType
	vehicle.InitialOdometer = odometer
	vehicle.UpdatedAt = time.Now()

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(identity))
	return vehicle, nil
}

// Delete removes the vehicle matching (registration, owner).
func (s *vehicleService) Delete(ctx context.Context, identity auth.Identity, registration string) error {
	registration = strings.ToUpper(registration)

	affected, err := s.vehicleRepo.DeleteByRegistrationAndUser(ctx, registration, identity.UserID)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if affected == 0 {
		return errors.ErrVehicleNotFound
	}

	_ = s.cache.Delete(ctx, s.listCacheKey(identity))
	return nil
}
