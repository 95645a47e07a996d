package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vipmotors/internal/config"
	"vipmotors/internal/db"
	"vipmotors/internal/model"
	"vipmotors/internal/repository"
	"vipmotors/internal/service"
)

const defaultSeedFile = "seed/cars.json"

// SeedCarData represents one catalog entry from the seed file.
type SeedCarData struct {
	Name           string `json:"name"`
	Brand          string `json:"brand"`
	Model          string `json:"model"`
	Year           int    `json:"year"`
	Price          string `json:"price"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Featured       bool   `json:"featured"`
	Availability   bool   `json:"availability"`
	Specifications struct {
		Engine       string `json:"engine"`
		Horsepower   int    `json:"horsepower"`
		TopSpeed     string `json:"topSpeed"`
		Acceleration string `json:"acceleration"`
		Transmission string `json:"transmission"`
		Drivetrain   string `json:"drivetrain"`
	} `json:"specifications"`
	Images []struct {
		URL string `json:"url"`
		Alt string `json:"alt"`
	} `json:"images"`
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
	if err := gormDB.AutoMigrate(&model.User{}, &model.Car{}, &model.CarImage{}, &model.CartItem{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	// Provision the admin account when credentials are configured
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			log.Fatal("ADMIN_PASSWORD is required when ADMIN_EMAIL is set")
		}
		userRepo := repository.NewUserRepository(gormDB)
		if err := seedAdmin(ctx, userRepo, email, password); err != nil {
			log.Fatalf("Failed to seed admin: %v", err)
		}
	}

	// Read seed catalog
	seedFile := os.Getenv("SEED_FILE")
	if seedFile == "" {
		seedFile = defaultSeedFile
	}
	log.Printf("Loading cars from: %s", seedFile)
	seedCars, err := loadSeedFile(seedFile)
	if err != nil {
		log.Fatalf("Failed to load seed file: %v", err)
	}
	log.Printf("Loaded %d cars from seed file", len(seedCars))

	// Convert to model.Car
	cars := make([]model.Car, 0, len(seedCars))
	skipped := 0
	for _, item := range seedCars {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			log.Printf("Skipping car %q with invalid price: %s", item.Name, item.Price)
			skipped++
			continue
		}

		car := model.Car{
			Name:        item.Name,
			Brand:       item.Brand,
			Model:       item.Model,
			Year:        item.Year,
			Price:       price,
			Description: item.Description,
			Category:    model.Category(item.Category),
			Specifications: model.Specifications{
				Engine:       item.Specifications.Engine,
				Horsepower:   item.Specifications.Horsepower,
				TopSpeed:     item.Specifications.TopSpeed,
				Acceleration: item.Specifications.Acceleration,
				Transmission: item.Specifications.Transmission,
				Drivetrain:   item.Specifications.Drivetrain,
			},
			Availability: item.Availability,
			Featured:     item.Featured,
		}
		for _, img := range item.Images {
			car.Images = append(car.Images, model.CarImage{URL: img.URL, Alt: img.Alt})
		}

		if !car.Category.Valid() {
			log.Printf("Skipping car %q with invalid category: %s", item.Name, item.Category)
			skipped++
			continue
		}
		cars = append(cars, car)
	}

	if skipped > 0 {
		log.Printf("Skipped %d invalid cars", skipped)
	}

	// Seed cars into database
	carRepo := repository.NewCarRepository(gormDB)

	log.Println("Seeding cars into database...")
	seeded, updated, err := seedCatalog(ctx, carRepo, cars)
	if err != nil {
		log.Fatalf("Failed to seed cars: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New cars created: %d", seeded)
	log.Printf("  - Existing cars updated: %d", updated)
	log.Printf("  - Total cars processed: %d", seeded+updated)
}

// loadSeedFile reads and parses the catalog seed file.
func loadSeedFile(path string) ([]SeedCarData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var cars []SeedCarData
	if err := json.Unmarshal(data, &cars); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return cars, nil
}

// seedAdmin creates the admin account if it does not exist yet.
func seedAdmin(ctx context.Context, repo repository.UserRepository, email, password string) error {
	email = service.NormalizeEmail(email)
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check admin account: %w", err)
	}
	if existing != nil {
		log.Printf("Admin account %s already exists", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &model.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}
	log.Printf("Admin account %s created", email)
	return nil
}

// seedCatalog upserts cars keyed by (brand, model, year).
func seedCatalog(ctx context.Context, repo repository.CarRepository, cars []model.Car) (seeded int, updated int, err error) {
	for _, car := range cars {
		existing, err := repo.FindByBrandModelYear(ctx, car.Brand, car.Model, car.Year)
		if err != nil && err != gorm.ErrRecordNotFound {
			return seeded, updated, fmt.Errorf("error checking car %q: %w", car.Name, err)
		}

		if existing != nil {
			// Update existing car
			existing.Name = car.Name
			existing.Price = car.Price
			existing.Description = car.Description
			existing.Category = car.Category
			existing.Specifications = car.Specifications
			existing.Availability = car.Availability
			existing.Featured = car.Featured
			if err := repo.Save(ctx, existing); err != nil {
				return seeded, updated, fmt.Errorf("error updating car %q: %w", car.Name, err)
			}
			updated++
		} else {
			// Create new car
			if err := repo.Create(ctx, &car); err != nil {
				return seeded, updated, fmt.Errorf("error creating car %q: %w", car.Name, err)
			}
			seeded++
		}
	}

	return seeded, updated, nil
}
