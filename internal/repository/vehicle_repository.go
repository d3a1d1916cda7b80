package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"motorlog/internal/model"
)

// VehicleRepository defines vehicle persistence operations. Every lookup that
// can mutate or expose a record filters jointly on (registration_number,
// user_id) so one user can never address another user's vehicle.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	Update(ctx context.Context, vehicle *model.Vehicle) error
	FindByRegistration(ctx context.Context, registration string) (*model.Vehicle, error)
	FindByRegistrationAndUser(ctx context.Context, registration string, userID uuid.UUID) (*model.Vehicle, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Vehicle, error)
	DeleteByRegistrationAndUser(ctx context.Context, registration string, userID uuid.UUID) (int64, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository.
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

// Create creates a new vehicle.
func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

// Update updates an existing vehicle.
func (r *vehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Save(vehicle).Error
}

// FindByRegistration finds a vehicle by registration number regardless of
// owner. Used only for the global uniqueness pre-check on create.
func (r *vehicleRepository) FindByRegistration(ctx context.Context, registration string) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).Where("registration_number = ?", registration).First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// FindByRegistrationAndUser finds a vehicle scoped to its owner.
func (r *vehicleRepository) FindByRegistrationAndUser(ctx context.Context, registration string, userID uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).
		Where("registration_number = ? AND user_id = ?", registration, userID).
		First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// ListByUser lists all vehicles belonging to a user in store-native order.
func (r *vehicleRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// DeleteByRegistrationAndUser deletes a vehicle scoped to its owner and
// returns the number of rows removed.
func (r *vehicleRepository) DeleteByRegistrationAndUser(ctx context.Context, registration string, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("registration_number = ? AND user_id = ?", registration, userID).
		Delete(&model.Vehicle{})
	return res.RowsAffected, res.Error
}
