package config

import (
	"Dish-Discovery/internal/api/handlers"
	"Dish-Discovery/internal/api/routes"
	"Dish-Discovery/internal/middleware"
	"Dish-Discovery/internal/utils"
	"Dish-Discovery/internal/utils/mailing"
	"Dish-Discovery/internal/utils/storage"
	"Dish-Discovery/pkg/dish"
	"Dish-Discovery/pkg/geocode"
	"Dish-Discovery/pkg/jwt"
	"Dish-Discovery/pkg/lookup"
	"Dish-Discovery/pkg/restaurant"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
	"os"
	"strconv"
	"time"
)

const (
	defaultSuggestDebounce = 250 * time.Millisecond
	defaultGeocodeInterval = "@every 1m"
)

// NewApp wires the HTTP application. The returned worker is nil when
// geocoding is not configured; the caller owns stopping it.
func NewApp(db *gorm.DB) (*fiber.App, *geocode.Worker, error) {
	if err := utils.InitValidator(); err != nil {
		return nil, nil, err
	}
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         8 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, nil, err
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))
	log.SetOutput(file)

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	if s3 == nil {
		log.Warn("AWS S3 is not configured, dish image uploads are disabled")
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	// Repository
	dishRepository := dish.NewDishRepository(db)
	restaurantRepository := restaurant.NewRestaurantRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	authorizationService := restaurant.NewAuthorizationService(dishRepository, restaurantRepository)
	restaurantService := restaurant.NewRestaurantService(restaurantRepository, dishRepository, mailer, nil)
	dishService := dish.NewDishService(
		dishRepository,
		authorizationService,
		s3,
		lookup.NewCoordinator(suggestDebounce()),
		nil,
	)

	// Handler
	userHandler := handlers.NewUserHandler(dishService)
	dishHandler := handlers.NewDishHandler(dishService, validator)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService, validator)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		DishHandler:       dishHandler,
		RestaurantHandler: restaurantHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()

	worker, err := newGeocodeWorker(restaurantRepository)
	if err != nil {
		return nil, nil, err
	}
	return app, worker, nil
}

func newGeocodeWorker(restaurantRepository restaurant.RestaurantRepository) (*geocode.Worker, error) {
	apiKey := utils.GetConfig("GOOGLE_MAPS_API_KEY")
	if apiKey == "" {
		log.Warn("GOOGLE_MAPS_API_KEY not set, geocoding worker disabled")
		return nil, nil
	}

	spec := utils.GetConfig("GEOCODE_INTERVAL")
	if spec == "" {
		spec = defaultGeocodeInterval
	}
	worker := geocode.NewWorker(restaurantRepository, geocode.NewGoogleGeocoder(apiKey, 5))
	if err := worker.Start(spec); err != nil {
		return nil, err
	}
	return worker, nil
}

func suggestDebounce() time.Duration {
	ms, err := strconv.Atoi(utils.GetConfig("SUGGEST_DEBOUNCE_MS"))
	if err != nil || ms < 0 {
		return defaultSuggestDebounce
	}
	return time.Duration(ms) * time.Millisecond
}
