package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VehicleType is the closed set of supported vehicle categories.
type VehicleType string

const (
	VehicleTypeCar   VehicleType = "Car"
	VehicleTypeBike  VehicleType = "Bike"
	VehicleTypeOther VehicleType = "Other"
)

// IsValid reports whether t is one of the supported categories.
func (t VehicleType) IsValid() bool {
	switch t {
	case VehicleTypeCar, VehicleTypeBike, VehicleTypeOther:
		return true
	}
	return false
}

// Vehicle represents a vehicle owned by exactly one user. Registration numbers
// are unique system-wide and stored uppercase.
type Vehicle struct {
	ID                 uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID             uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	Name               string          `json:"name" gorm:"size:255;not null"`
	RegistrationNumber string          `json:"registration_number" gorm:"uniqueIndex;size:32;not null"`
	VehicleType        VehicleType     `json:"vehicle_type" gorm:"size:16;not null"`
	InitialOdometer    decimal.Decimal `json:"initial_odometer" gorm:"type:decimal(12,2);not null"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// BeforeSave normalizes the registration number on every write.
func (v *Vehicle) BeforeSave(tx *gorm.DB) error {
	v.RegistrationNumber = strings.ToUpper(v.RegistrationNumber)
	return nil
}
