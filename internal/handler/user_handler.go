package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"vipmotors/internal/auth"
	"vipmotors/internal/service"
)

// UserHandler handles profile and cart endpoints for the authenticated user.
type UserHandler struct {
	userService service.UserService
	cartService service.CartService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, cartService service.CartService) *UserHandler {
	return &UserHandler{
		userService: userService,
		cartService: cartService,
	}
}

// UpdateProfileRequest represents a profile update request.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// AddToCartRequest represents an add-to-cart request.
type AddToCartRequest struct {
	CarID    string `json:"carId" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"omitempty,min=1"`
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}

	user, err := h.userService.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the authenticated user's name and email
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), claims.UserID, req.Name, req.Email)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "profile updated successfully",
		"user":    user,
	})
}

// AddToCart godoc
// @Summary Add a car to the cart
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body AddToCartRequest true "Car and quantity"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/cart [post]
func (h *UserHandler) AddToCart(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}

	var req AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	carID, err := uuid.Parse(req.CarID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid car id")
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	cart, err := h.cartService.AddToCart(c.Request().Context(), claims.UserID, carID, quantity)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "car added to cart",
		"cart":    cart,
	})
}

// GetCart godoc
// @Summary Get the cart with car references resolved
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.CartEntry
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/cart [get]
func (h *UserHandler) GetCart(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}

	cart, err := h.cartService.GetCart(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cart)
}

// RemoveFromCart godoc
// @Summary Remove a car from the cart
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param carId path string true "Car ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/cart/{carId} [delete]
func (h *UserHandler) RemoveFromCart(c echo.Context) error {
	claims, err := auth.ClaimsFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
	}

	carID, err := uuid.Parse(c.Param("carId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid car id")
	}

	cart, err := h.cartService.RemoveFromCart(c.Request().Context(), claims.UserID, carID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "car removed from cart",
		"cart":    cart,
	})
}
