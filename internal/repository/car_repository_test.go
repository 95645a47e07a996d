package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vipmotors/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Car{}, &model.CarImage{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedCar(t *testing.T, db *gorm.DB, name string, category model.Category, available, featured bool, createdAt time.Time) *model.Car {
	t.Helper()
	car := &model.Car{
		Name:  name,
		Brand: "Bugatti",
		Model: name,
		Year:  2023,
		Price: decimal.NewFromInt(1500000),
		Specifications: model.Specifications{
			Engine:       "8.0L Quad-Turbo W16",
			Horsepower:   1479,
			TopSpeed:     "261 mph",
			Acceleration: "0-60 mph in 2.3s",
			Transmission: "7-Speed DSG",
			Drivetrain:   "AWD",
		},
		Category:  category,
		Featured:  featured,
		CreatedAt: createdAt,
	}
	if err := db.Create(car).Error; err != nil {
		t.Fatalf("seed car %s: %v", name, err)
	}
	// The availability column carries a true default, so a false value has
	// to be written explicitly after the insert.
	if !available {
		if err := db.Model(car).UpdateColumn("availability", false).Error; err != nil {
			t.Fatalf("mark %s unavailable: %v", name, err)
		}
	}
	return car
}

// An unavailable car must never surface in a public listing, whatever the
// filter combination, even when it matches the category and is featured.
func TestCarRepository_ListAvailableExcludesUnavailable(t *testing.T) {
	db := openTestDB(t)
	repo := NewCarRepository(db)
	ctx := context.Background()
	now := time.Now()

	seedCar(t, db, "Chiron", model.CategoryHypercar, true, true, now.Add(-2*time.Hour))
	seedCar(t, db, "720S", model.CategorySupercar, true, false, now.Add(-1*time.Hour))
	hidden := seedCar(t, db, "Valkyrie", model.CategorySupercar, false, true, now)

	filters := []CarFilter{
		{},
		{Category: string(model.CategorySupercar)},
		{Featured: true},
		{Category: string(model.CategorySupercar), Featured: true},
		{Category: string(model.CategorySupercar), Featured: true, Limit: 10},
	}

	for _, filter := range filters {
		cars, err := repo.ListAvailable(ctx, filter)
		assert.NoError(t, err)
		for _, car := range cars {
			assert.NotEqual(t, hidden.ID, car.ID, "unavailable car leaked through filter %+v", filter)
			assert.True(t, car.Availability)
		}
	}

	cars, err := repo.ListAvailable(ctx, CarFilter{})
	assert.NoError(t, err)
	assert.Len(t, cars, 2)
}

func TestCarRepository_ListAvailableOrderAndLimit(t *testing.T) {
	db := openTestDB(t)
	repo := NewCarRepository(db)
	ctx := context.Background()
	now := time.Now()

	seedCar(t, db, "Oldest", model.CategoryHypercar, true, false, now.Add(-3*time.Hour))
	seedCar(t, db, "Middle", model.CategoryHypercar, true, false, now.Add(-2*time.Hour))
	seedCar(t, db, "Newest", model.CategoryHypercar, true, false, now.Add(-1*time.Hour))

	cars, err := repo.ListAvailable(ctx, CarFilter{Limit: 2})
	assert.NoError(t, err)
	assert.Len(t, cars, 2)
	assert.Equal(t, "Newest", cars[0].Name)
	assert.Equal(t, "Middle", cars[1].Name)
}

func TestCarRepository_ReplaceImages(t *testing.T) {
	db := openTestDB(t)
	repo := NewCarRepository(db)
	ctx := context.Background()

	car := seedCar(t, db, "Chiron", model.CategoryHypercar, true, false, time.Now())
	assert.NoError(t, repo.ReplaceImages(ctx, car.ID, []model.CarImage{
		{URL: "https://cdn.vipmotors.test/old.jpg"},
	}))

	assert.NoError(t, repo.ReplaceImages(ctx, car.ID, []model.CarImage{
		{URL: "https://cdn.vipmotors.test/new.jpg"},
	}))

	found, err := repo.FindByID(ctx, car.ID)
	assert.NoError(t, err)
	assert.Len(t, found.Images, 1)
	assert.Equal(t, "https://cdn.vipmotors.test/new.jpg", found.Images[0].URL)

	// An empty list clears the gallery outright.
	assert.NoError(t, repo.ReplaceImages(ctx, car.ID, nil))
	found, err = repo.FindByID(ctx, car.ID)
	assert.NoError(t, err)
	assert.Empty(t, found.Images)
}

// A soft-deleted car must disappear from lookups so cart entries that still
// reference it resolve to nothing instead of resurrecting the record.
func TestCarRepository_DeleteHidesCar(t *testing.T) {
	db := openTestDB(t)
	repo := NewCarRepository(db)
	ctx := context.Background()

	kept := seedCar(t, db, "Chiron", model.CategoryHypercar, true, false, time.Now())
	gone := seedCar(t, db, "720S", model.CategorySupercar, true, false, time.Now())

	affected, err := repo.Delete(ctx, gone.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Zero(t, affected)

	cars, err := repo.FindByIDs(ctx, []uuid.UUID{kept.ID, gone.ID})
	assert.NoError(t, err)
	assert.Len(t, cars, 1)
	assert.Equal(t, kept.ID, cars[0].ID)
}
