package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"vipmotors/internal/cache"
	apperrors "vipmotors/internal/errors"
	"vipmotors/internal/model"
	"vipmotors/internal/repository"
)

const carCacheTTL = 5 * time.Minute

// CarUpdate carries the fields of a partial catalog update. Nil fields are
// left untouched by the merge.
type CarUpdate struct {
	Name           *string
	Brand          *string
	Model          *string
	Year           *int
	Price          *decimal.Decimal
	Specifications *model.Specifications
	Description    *string
	Category       *model.Category
	Availability   *bool
	Featured       *bool
	Images         []model.CarImage
}

// CatalogService exposes the car catalog. Writes are admin-gated at the
// routing layer; reads are public.
type CatalogService interface {
	List(ctx context.Context, filter repository.CarFilter) ([]model.Car, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Car, error)
	Create(ctx context.Context, car *model.Car) (*model.Car, error)
	Update(ctx context.Context, id uuid.UUID, update CarUpdate) (*model.Car, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	carRepo repository.CarRepository
	cache   *cache.Client
}

// NewCatalogService builds a CatalogService with repository and cache.
func NewCatalogService(carRepo repository.CarRepository, cache *cache.Client) CatalogService {
	return &catalogService{carRepo: carRepo, cache: cache}
}

func (s *catalogService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("car:%s", id)
}

// List returns available cars only; no filter combination can surface an
// unavailable car. Category is an exact match, so an unknown category
// simply yields an empty listing.
func (s *catalogService) List(ctx context.Context, filter repository.CarFilter) ([]model.Car, error) {
	return s.carRepo.ListAvailable(ctx, filter)
}

func (s *catalogService) GetByID(ctx context.Context, id uuid.UUID) (*model.Car, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Car
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCarNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(car); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, carCacheTTL)
	}
	return car, nil
}

func (s *catalogService) Create(ctx context.Context, car *model.Car) (*model.Car, error) {
	if car.Category == "" {
		car.Category = model.CategoryHypercar
	}
	if err := validateCar(car); err != nil {
		return nil, err
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}
	return car, nil
}

// Update merges the supplied fields into the stored car and re-runs the
// same validation as Create.
func (s *catalogService) Update(ctx context.Context, id uuid.UUID, update CarUpdate) (*model.Car, error) {
	car, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCarNotFound
		}
		return nil, err
	}

	if update.Name != nil {
		car.Name = *update.Name
	}
	if update.Brand != nil {
		car.Brand = *update.Brand
	}
	if update.Model != nil {
		car.Model = *update.Model
	}
	if update.Year != nil {
		car.Year = *update.Year
	}
	if update.Price != nil {
		car.Price = *update.Price
	}
	if update.Specifications != nil {
		car.Specifications = *update.Specifications
	}
	if update.Description != nil {
		car.Description = *update.Description
	}
	if update.Category != nil {
		car.Category = *update.Category
	}
	if update.Availability != nil {
		car.Availability = *update.Availability
	}
	if update.Featured != nil {
		car.Featured = *update.Featured
	}
	if err := validateCar(car); err != nil {
		return nil, err
	}

	if update.Images != nil {
		if err := s.carRepo.ReplaceImages(ctx, car.ID, update.Images); err != nil {
			return nil, fmt.Errorf("replace images: %w", err)
		}
		car.Images = update.Images
	}

	if err := s.carRepo.Save(ctx, car); err != nil {
		return nil, fmt.Errorf("update car: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return car, nil
}

// Delete removes a car from the catalog. Cart entries referencing it are
// left in place and resolve to null on read.
func (s *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.carRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete car: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCarNotFound
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// validateCar enforces the range and enum rules shared by create and update.
// Required-field and length checks run in the handler via validator tags.
func validateCar(car *model.Car) error {
	if car.Year < model.MinYear || car.Year > model.MaxYear() {
		return apperrors.ErrInvalidYear
	}
	if car.Price.IsNegative() {
		return apperrors.ErrInvalidPrice
	}
	if !car.Category.Valid() {
		return apperrors.ErrInvalidCategory
	}
	return nil
}
