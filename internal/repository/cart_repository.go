package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vipmotors/internal/model"
)

// CartRepository defines cart persistence operations. One row per
// (user, car) pair; ordering follows insertion time.
type CartRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error)
	FindItem(ctx context.Context, userID, carID uuid.UUID) (*model.CartItem, error)
	CreateItem(ctx context.Context, item *model.CartItem) error
	UpdateItem(ctx context.Context, item *model.CartItem) error
	DeleteItem(ctx context.Context, userID, carID uuid.UUID) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository builds a GORM-backed repository.
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) FindItem(ctx context.Context, userID, carID uuid.UUID) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND car_id = ?", userID, carID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) CreateItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepository) UpdateItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// DeleteItem removes the entry for (userID, carID) and reports rows affected.
// Zero rows is not an error: removing an absent car is a no-op.
func (r *cartRepository) DeleteItem(ctx context.Context, userID, carID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND car_id = ?", userID, carID).
		Delete(&model.CartItem{})
	return res.RowsAffected, res.Error
}
