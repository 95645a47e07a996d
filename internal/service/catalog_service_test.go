package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "vipmotors/internal/errors"
	"vipmotors/internal/model"
	"vipmotors/internal/repository"
)

func validTestCar() *model.Car {
	return &model.Car{
		Name:  "Bugatti Chiron",
		Brand: "Bugatti",
		Model: "Chiron",
		Year:  2023,
		Price: decimal.NewFromInt(3000000),
		Specifications: model.Specifications{
			Engine:       "8.0L Quad-Turbo W16",
			Horsepower:   1479,
			TopSpeed:     "261 mph",
			Acceleration: "0-60 mph in 2.3s",
			Transmission: "7-Speed DSG",
			Drivetrain:   "AWD",
		},
		Category:     model.CategoryHypercar,
		Availability: true,
	}
}

func TestCatalogService_Create(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*model.Car)
		setupMock     func(*MockCarRepository)
		expectedError error
	}{
		{
			name:   "valid car",
			mutate: func(c *model.Car) {},
			setupMock: func(m *MockCarRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Car")).Return(nil)
			},
		},
		{
			name:      "year below range",
			mutate:    func(c *model.Car) { c.Year = 1899 },
			setupMock:     func(m *MockCarRepository) {},
			expectedError: apperrors.ErrInvalidYear,
		},
		{
			name:          "year too far in the future",
			mutate:        func(c *model.Car) { c.Year = time.Now().Year() + 3 },
			setupMock:     func(m *MockCarRepository) {},
			expectedError: apperrors.ErrInvalidYear,
		},
		{
			name:          "negative price",
			mutate:        func(c *model.Car) { c.Price = decimal.NewFromInt(-1) },
			setupMock:     func(m *MockCarRepository) {},
			expectedError: apperrors.ErrInvalidPrice,
		},
		{
			name:          "unknown category",
			mutate:        func(c *model.Car) { c.Category = "minivan" },
			setupMock:     func(m *MockCarRepository) {},
			expectedError: apperrors.ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carRepo := new(MockCarRepository)
			tt.setupMock(carRepo)

			service := NewCatalogService(carRepo, nil)
			car := validTestCar()
			tt.mutate(car)

			created, err := service.Create(context.Background(), car)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, created)
			}

			carRepo.AssertExpectations(t)
		})
	}
}

func TestCatalogService_CreateDefaultsCategory(t *testing.T) {
	carRepo := new(MockCarRepository)
	carRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Car) bool {
		return c.Category == model.CategoryHypercar
	})).Return(nil)

	service := NewCatalogService(carRepo, nil)
	car := validTestCar()
	car.Category = ""

	_, err := service.Create(context.Background(), car)
	assert.NoError(t, err)
	carRepo.AssertExpectations(t)
}

func TestCatalogService_Update(t *testing.T) {
	id := uuid.New()

	t.Run("partial merge keeps unspecified fields", func(t *testing.T) {
		existing := validTestCar()
		existing.ID = id

		carRepo := new(MockCarRepository)
		carRepo.On("FindByID", mock.Anything, id).Return(existing, nil)
		carRepo.On("Save", mock.Anything, mock.MatchedBy(func(c *model.Car) bool {
			return c.Name == "Chiron Super Sport" && c.Brand == "Bugatti" && c.Featured
		})).Return(nil)

		service := NewCatalogService(carRepo, nil)
		newName := "Chiron Super Sport"
		featured := true
		car, err := service.Update(context.Background(), id, CarUpdate{Name: &newName, Featured: &featured})

		assert.NoError(t, err)
		assert.Equal(t, "Chiron Super Sport", car.Name)
		assert.Equal(t, "Bugatti", car.Brand)
		assert.Equal(t, 2023, car.Year)
		carRepo.AssertExpectations(t)
	})

	t.Run("images are replaced, not accumulated", func(t *testing.T) {
		existing := validTestCar()
		existing.ID = id
		existing.Images = []model.CarImage{{CarID: id, URL: "https://cdn.vipmotors.test/old.jpg"}}

		newImages := []model.CarImage{{URL: "https://cdn.vipmotors.test/new.jpg"}}

		carRepo := new(MockCarRepository)
		carRepo.On("FindByID", mock.Anything, id).Return(existing, nil)
		carRepo.On("ReplaceImages", mock.Anything, id, newImages).Return(nil)
		carRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Car")).Return(nil)

		service := NewCatalogService(carRepo, nil)
		car, err := service.Update(context.Background(), id, CarUpdate{Images: newImages})

		assert.NoError(t, err)
		assert.Len(t, car.Images, 1)
		assert.Equal(t, "https://cdn.vipmotors.test/new.jpg", car.Images[0].URL)
		carRepo.AssertExpectations(t)
	})

	t.Run("validation re-runs on update", func(t *testing.T) {
		existing := validTestCar()
		existing.ID = id

		carRepo := new(MockCarRepository)
		carRepo.On("FindByID", mock.Anything, id).Return(existing, nil)

		service := NewCatalogService(carRepo, nil)
		badYear := 1850
		_, err := service.Update(context.Background(), id, CarUpdate{Year: &badYear})

		assert.ErrorIs(t, err, apperrors.ErrInvalidYear)
		carRepo.AssertExpectations(t)
	})

	t.Run("missing car", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		carRepo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		service := NewCatalogService(carRepo, nil)
		_, err := service.Update(context.Background(), id, CarUpdate{})

		assert.ErrorIs(t, err, apperrors.ErrCarNotFound)
	})
}

func TestCatalogService_Delete(t *testing.T) {
	id := uuid.New()

	t.Run("existing car", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		carRepo.On("Delete", mock.Anything, id).Return(int64(1), nil)

		service := NewCatalogService(carRepo, nil)
		assert.NoError(t, service.Delete(context.Background(), id))
		carRepo.AssertExpectations(t)
	})

	t.Run("missing car signals not found", func(t *testing.T) {
		carRepo := new(MockCarRepository)
		carRepo.On("Delete", mock.Anything, id).Return(int64(0), nil)

		service := NewCatalogService(carRepo, nil)
		err := service.Delete(context.Background(), id)
		assert.ErrorIs(t, err, apperrors.ErrCarNotFound)
	})
}

func TestCatalogService_List(t *testing.T) {
	t.Run("filter is passed through", func(t *testing.T) {
		filter := repository.CarFilter{Category: "supercar", Featured: true, Limit: 5}

		carRepo := new(MockCarRepository)
		carRepo.On("ListAvailable", mock.Anything, filter).Return([]model.Car{}, nil)

		service := NewCatalogService(carRepo, nil)
		_, err := service.List(context.Background(), filter)

		assert.NoError(t, err)
		carRepo.AssertExpectations(t)
	})

	t.Run("unknown category yields an empty listing", func(t *testing.T) {
		filter := repository.CarFilter{Category: "minivan"}

		carRepo := new(MockCarRepository)
		carRepo.On("ListAvailable", mock.Anything, filter).Return([]model.Car{}, nil)

		service := NewCatalogService(carRepo, nil)
		cars, err := service.List(context.Background(), filter)

		assert.NoError(t, err)
		assert.Empty(t, cars)
		carRepo.AssertExpectations(t)
	})
}
