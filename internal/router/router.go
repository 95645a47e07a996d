package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"vipmotors/internal/auth"
	"vipmotors/internal/config"
	"vipmotors/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	carHandler *handler.CarHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "VIP Motors API is running!"})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded car images
	e.Static("/uploads", cfg.UploadsDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/cars", carHandler.List)
	api.GET("/cars/:id", carHandler.Get)

	// Catalog writes require the admin role
	admin := api.Group("/cars", auth.RequireAuthenticated(cfg.JWTSecret), auth.RequireAdmin)
	admin.POST("", carHandler.Create)
	admin.PUT("/:id", carHandler.Update)
	admin.DELETE("/:id", carHandler.Delete)

	// Profile and cart require authentication
	users := api.Group("/users", auth.RequireAuthenticated(cfg.JWTSecret))
	users.GET("/profile", userHandler.GetProfile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.POST("/cart", userHandler.AddToCart)
	users.GET("/cart", userHandler.GetCart)
	users.DELETE("/cart/:carId", userHandler.RemoveFromCart)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
