package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"vipmotors/internal/model"
	"vipmotors/internal/repository"
	"vipmotors/internal/service"
)

// CarHandler handles catalog endpoints.
type CarHandler struct {
	catalogService service.CatalogService
}

// NewCarHandler creates a new car handler.
func NewCarHandler(catalogService service.CatalogService) *CarHandler {
	return &CarHandler{catalogService: catalogService}
}

// SpecificationsRequest mirrors the car specification sub-record.
type SpecificationsRequest struct {
	Engine       string `json:"engine" validate:"required"`
	Horsepower   int    `json:"horsepower" validate:"required,gt=0"`
	TopSpeed     string `json:"topSpeed" validate:"required"`
	Acceleration string `json:"acceleration" validate:"required"`
	Transmission string `json:"transmission" validate:"required"`
	Drivetrain   string `json:"drivetrain" validate:"required"`
}

// ImageRequest is a single catalog image.
type ImageRequest struct {
	URL string `json:"url" validate:"required,url"`
	Alt string `json:"alt"`
}

// CreateCarRequest represents an admin catalog creation request.
type CreateCarRequest struct {
	Name           string                 `json:"name" validate:"required,max=100"`
	Brand          string                 `json:"brand" validate:"required"`
	Model          string                 `json:"model" validate:"required"`
	Year           int                    `json:"year" validate:"required"`
	Price          decimal.Decimal        `json:"price"`
	Specifications *SpecificationsRequest `json:"specifications" validate:"required"`
	Description    string                 `json:"description" validate:"max=1000"`
	Category       string                 `json:"category" validate:"omitempty,oneof=hypercar supercar luxury sports"`
	Availability   *bool                  `json:"availability"`
	Featured       *bool                  `json:"featured"`
	Images         []ImageRequest         `json:"images" validate:"dive"`
}

// UpdateCarRequest represents a partial catalog update; absent fields are
// left unchanged.
type UpdateCarRequest struct {
	Name           *string                `json:"name" validate:"omitempty,max=100"`
	Brand          *string                `json:"brand"`
	Model          *string                `json:"model"`
	Year           *int                   `json:"year"`
	Price          *decimal.Decimal       `json:"price"`
	Specifications *SpecificationsRequest `json:"specifications" validate:"omitempty"`
	Description    *string                `json:"description" validate:"omitempty,max=1000"`
	Category       *string                `json:"category" validate:"omitempty,oneof=hypercar supercar luxury sports"`
	Availability   *bool                  `json:"availability"`
	Featured       *bool                  `json:"featured"`
	Images         []ImageRequest         `json:"images" validate:"omitempty,dive"`
}

// List godoc
// @Summary List available cars
// @Tags cars
// @Produce json
// @Param category query string false "Category filter"
// @Param featured query string false "Set to true to list featured cars only"
// @Param limit query int false "Maximum number of results"
// @Success 200 {array} model.Car
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /cars [get]
func (h *CarHandler) List(c echo.Context) error {
	filter := repository.CarFilter{
		Category: c.QueryParam("category"),
		Featured: c.QueryParam("featured") == "true",
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		filter.Limit = limit
	}

	cars, err := h.catalogService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cars)
}

// Get godoc
// @Summary Get a car by id
// @Tags cars
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} model.Car
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id} [get]
func (h *CarHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid car id")
	}

	car, err := h.catalogService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, car)
}

// Create godoc
// @Summary Add a car to the catalog
// @Tags cars
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateCarRequest true "Car data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /cars [post]
func (h *CarHandler) Create(c echo.Context) error {
	var req CreateCarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	car := &model.Car{
		Name:        req.Name,
		Brand:       req.Brand,
		Model:       req.Model,
		Year:        req.Year,
		Price:       req.Price,
		Description: req.Description,
		Category:    model.Category(req.Category),
		Specifications: model.Specifications{
			Engine:       req.Specifications.Engine,
			Horsepower:   req.Specifications.Horsepower,
			TopSpeed:     req.Specifications.TopSpeed,
			Acceleration: req.Specifications.Acceleration,
			Transmission: req.Specifications.Transmission,
			Drivetrain:   req.Specifications.Drivetrain,
		},
		Availability: true,
		Images:       toImages(req.Images),
	}
	if req.Availability != nil {
		car.Availability = *req.Availability
	}
	if req.Featured != nil {
		car.Featured = *req.Featured
	}

	created, err := h.catalogService.Create(c.Request().Context(), car)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "car added successfully",
		"car":     created,
	})
}

// Update godoc
// @Summary Update a car
// @Tags cars
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Car ID"
// @Param request body UpdateCarRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id} [put]
func (h *CarHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid car id")
	}

	var req UpdateCarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := service.CarUpdate{
		Name:         req.Name,
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Price:        req.Price,
		Description:  req.Description,
		Availability: req.Availability,
		Featured:     req.Featured,
	}
	if req.Category != nil {
		category := model.Category(*req.Category)
		update.Category = &category
	}
	if req.Specifications != nil {
		update.Specifications = &model.Specifications{
			Engine:       req.Specifications.Engine,
			Horsepower:   req.Specifications.Horsepower,
			TopSpeed:     req.Specifications.TopSpeed,
			Acceleration: req.Specifications.Acceleration,
			Transmission: req.Specifications.Transmission,
			Drivetrain:   req.Specifications.Drivetrain,
		}
	}
	if req.Images != nil {
		update.Images = toImages(req.Images)
	}

	car, err := h.catalogService.Update(c.Request().Context(), id, update)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "car updated successfully",
		"car":     car,
	})
}

// Delete godoc
// @Summary Delete a car
// @Tags cars
// @Security BearerAuth
// @Produce json
// @Param id path string true "Car ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cars/{id} [delete]
func (h *CarHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid car id")
	}

	if err := h.catalogService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "car deleted successfully",
	})
}

func toImages(reqs []ImageRequest) []model.CarImage {
	images := make([]model.CarImage, 0, len(reqs))
	for _, img := range reqs {
		images = append(images, model.CarImage{URL: img.URL, Alt: img.Alt})
	}
	return images
}
