package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vipmotors/internal/model"
)

// CarFilter narrows a catalog listing. The availability predicate is not
// part of the filter: public listings always exclude unavailable cars.
type CarFilter struct {
	Category string
	Featured bool
	Limit    int
}

// CarRepository defines catalog persistence operations.
type CarRepository interface {
	Create(ctx context.Context, car *model.Car) error
	Save(ctx context.Context, car *model.Car) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Car, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Car, error)
	ListAvailable(ctx context.Context, filter CarFilter) ([]model.Car, error)
	ReplaceImages(ctx context.Context, carID uuid.UUID, images []model.CarImage) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindByBrandModelYear(ctx context.Context, brand, carModel string, year int) (*model.Car, error)
}

type carRepository struct {
	db *gorm.DB
}

// NewCarRepository builds a GORM-backed repository.
func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

// Save persists the car's own columns. Images are managed separately
// through ReplaceImages so stale rows never linger.
func (r *carRepository) Save(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(car).Error
}

// ReplaceImages swaps the stored image list of carID for images. The old
// rows are removed so a partial update cannot accumulate displaced images.
func (r *carRepository) ReplaceImages(ctx context.Context, carID uuid.UUID, images []model.CarImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("car_id = ?", carID).Delete(&model.CarImage{}).Error; err != nil {
			return err
		}
		if len(images) == 0 {
			return nil
		}
		for i := range images {
			images[i].CarID = carID
		}
		return tx.Create(&images).Error
	})
}

func (r *carRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	var car model.Car
	if err := r.db.WithContext(ctx).Preload("Images").Where("id = ?", id).First(&car).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// FindByIDs returns the cars that still exist among ids. Soft-deleted cars
// are excluded, which is what makes dangling cart references resolve to nil.
func (r *carRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Car, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var cars []model.Car
	if err := r.db.WithContext(ctx).Preload("Images").Where("id IN ?", ids).Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

// ListAvailable lists available cars, most recently created first.
func (r *carRepository) ListAvailable(ctx context.Context, filter CarFilter) ([]model.Car, error) {
	q := r.db.WithContext(ctx).Preload("Images").Where("availability = ?", true)

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Featured {
		q = q.Where("featured = ?", true)
	}

	q = q.Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var cars []model.Car
	if err := q.Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

// Delete soft-deletes a car and returns the number of rows affected.
func (r *carRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Car{})
	return res.RowsAffected, res.Error
}

func (r *carRepository) FindByBrandModelYear(ctx context.Context, brand, carModel string, year int) (*model.Car, error) {
	var car model.Car
	err := r.db.WithContext(ctx).
		Where("brand = ? AND model = ? AND year = ?", brand, carModel, year).
		First(&car).Error
	if err != nil {
		return nil, err
	}
	return &car, nil
}
