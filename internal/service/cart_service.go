package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "vipmotors/internal/errors"
	"vipmotors/internal/model"
	"vipmotors/internal/repository"
)

// CartService manages per-user carts. Entries hold weak car references:
// existence is checked on add, but a later car deletion leaves the entry
// behind, resolving to a null car on read.
type CartService interface {
	AddToCart(ctx context.Context, userID, carID uuid.UUID, quantity int) ([]model.CartEntry, error)
	GetCart(ctx context.Context, userID uuid.UUID) ([]model.CartEntry, error)
	RemoveFromCart(ctx context.Context, userID, carID uuid.UUID) ([]model.CartEntry, error)
}

type cartService struct {
	cartRepo repository.CartRepository
	carRepo  repository.CarRepository
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, carRepo repository.CarRepository) CartService {
	return &cartService{
		cartRepo: cartRepo,
		carRepo:  carRepo,
	}
}

// AddToCart adds quantity of a car to the user's cart. An existing entry is
// incremented rather than duplicated. Returns the resolved cart.
func (s *cartService) AddToCart(ctx context.Context, userID, carID uuid.UUID, quantity int) ([]model.CartEntry, error) {
	if quantity < 1 {
		return nil, apperrors.ErrInvalidQuantity
	}

	if _, err := s.carRepo.FindByID(ctx, carID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrCarNotFound
		}
		return nil, fmt.Errorf("resolve car: %w", err)
	}

	item, err := s.cartRepo.FindItem(ctx, userID, carID)
	switch {
	case err == nil:
		item.Quantity += quantity
		if err := s.cartRepo.UpdateItem(ctx, item); err != nil {
			return nil, fmt.Errorf("update cart item: %w", err)
		}
	case err == gorm.ErrRecordNotFound:
		item = &model.CartItem{
			UserID:   userID,
			CarID:    carID,
			Quantity: quantity,
			AddedAt:  time.Now(),
		}
		if err := s.cartRepo.CreateItem(ctx, item); err != nil {
			return nil, fmt.Errorf("create cart item: %w", err)
		}
	default:
		return nil, fmt.Errorf("find cart item: %w", err)
	}

	return s.GetCart(ctx, userID)
}

// GetCart returns the user's cart with car references resolved. Entries
// whose car has been deleted are kept with a nil car.
func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) ([]model.CartEntry, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.CarID)
	}

	cars, err := s.carRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve cars: %w", err)
	}
	byID := make(map[uuid.UUID]*model.Car, len(cars))
	for i := range cars {
		byID[cars[i].ID] = &cars[i]
	}

	entries := make([]model.CartEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, model.CartEntry{
			Car:      byID[item.CarID], // nil for dangling references
			CarID:    item.CarID,
			Quantity: item.Quantity,
			AddedAt:  item.AddedAt,
		})
	}
	return entries, nil
}

// RemoveFromCart drops the entry for carID. Removing a car that was never
// in the cart succeeds without changing anything.
func (s *cartService) RemoveFromCart(ctx context.Context, userID, carID uuid.UUID) ([]model.CartEntry, error) {
	if _, err := s.cartRepo.DeleteItem(ctx, userID, carID); err != nil {
		return nil, fmt.Errorf("delete cart item: %w", err)
	}
	return s.GetCart(ctx, userID)
}
