package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is one entry of a user's cart. CarID is a weak reference:
// no foreign key constraint, so a deleted car leaves a dangling entry
// that resolves to a null car on read.
type CartItem struct {
	ID       uuid.UUID `json:"-" gorm:"type:char(36);primaryKey"`
	UserID   uuid.UUID `json:"-" gorm:"type:char(36);not null;uniqueIndex:idx_cart_user_car"`
	CarID    uuid.UUID `json:"carId" gorm:"type:char(36);not null;uniqueIndex:idx_cart_user_car"`
	Quantity int       `json:"quantity" gorm:"not null"` // always >= 1
	AddedAt  time.Time `json:"addedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// CartEntry is a cart item with its car reference resolved for display.
// Car is nil when the referenced car has been deleted.
type CartEntry struct {
	Car      *Car      `json:"car"`
	CarID    uuid.UUID `json:"carId"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
}
