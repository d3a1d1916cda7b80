package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"motorlog/internal/config"
	"motorlog/internal/db"
	"motorlog/internal/model"
	"motorlog/internal/repository"
)

const defaultSeedFile = "seed/vehicles.json"

// SeedData is the structure of the seed file: one demo user and their fleet.
type SeedData struct {
	User struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"user"`
	Vehicles []SeedVehicle `json:"vehicles"`
}

// SeedVehicle represents one vehicle entry in the seed file.
type SeedVehicle struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber"`
	VehicleType        string `json:"vehicleType"`
	InitialOdometer    string `json:"initialOdometer"`
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Vehicle{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	seedFile := os.Getenv("SEED_FILE")
	if seedFile == "" {
		seedFile = defaultSeedFile
	}

	data, err := loadSeedFile(seedFile)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}
	log.Printf("Loaded %d vehicles from %s", len(data.Vehicles), seedFile)

	userRepo := repository.NewUserRepository(gormDB)
	vehicleRepo := repository.NewVehicleRepository(gormDB)
	ctx := context.Background()

	user, err := seedUser(ctx, userRepo, data)
	if err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}
	log.Printf("Seed user ready: %s", user.Email)

	seeded, skipped, err := seedVehicles(ctx, vehicleRepo, user, data.Vehicles)
	if err != nil {
		log.Fatalf("Failed to seed vehicles: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New vehicles created: %d", seeded)
	log.Printf("  - Skipped (already present or invalid): %d", skipped)
}

// loadSeedFile reads and parses the seed JSON file.
func loadSeedFile(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	if data.User.Email == "" || data.User.Password == "" {
		return nil, fmt.Errorf("seed file must define a user with email and password")
	}
	return &data, nil
}

// seedUser creates the demo user if it does not exist yet.
func seedUser(ctx context.Context, repo repository.UserRepository, data *SeedData) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, data.User.Email)
	if err == nil {
		return existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user %s: %w", data.User.Email, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(data.User.Password), 10)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         data.User.Name,
		Email:        data.User.Email,
		PasswordHash: string(hashed),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// seedVehicles creates the seed vehicles, skipping registrations already taken.
func seedVehicles(ctx context.Context, repo repository.VehicleRepository, owner *model.User, vehicles []SeedVehicle) (seeded int, skipped int, err error) {
	for _, item := range vehicles {
		vehicleType := model.VehicleType(item.VehicleType)
		if !vehicleType.IsValid() {
			log.Printf("Skipping vehicle %s with invalid type: %s", item.RegistrationNumber, item.VehicleType)
			skipped++
			continue
		}

		odometer, err := decimal.NewFromString(item.InitialOdometer)
		if err != nil {
			log.Printf("Skipping vehicle %s with invalid odometer: %s", item.RegistrationNumber, item.InitialOdometer)
			skipped++
			continue
		}

		registration := strings.ToUpper(item.RegistrationNumber)
		existing, err := repo.FindByRegistration(ctx, registration)
		if err != nil && err != gorm.ErrRecordNotFound {
			return seeded, skipped, fmt.Errorf("check vehicle %s: %w", registration, err)
		}
		if existing != nil {
			skipped++
			continue
		}

		vehicle := &model.Vehicle{
			UserID:             owner.ID,
			Name:               item.Name,
			RegistrationNumber: registration,
			VehicleType:        vehicleType,
			InitialOdometer:    odometer,
		}
		if err := repo.Create(ctx, vehicle); err != nil {
			return seeded, skipped, fmt.Errorf("create vehicle %s: %w", item.RegistrationNumber, err)
		}
		seeded++
	}

	return seeded, skipped, nil
}
