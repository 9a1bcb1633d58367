package config

import (
	"Household-Food-Tracker/internal/api/handlers"
	"Household-Food-Tracker/internal/api/routes"
	"Household-Food-Tracker/internal/middleware"
	"Household-Food-Tracker/internal/utils"
	"Household-Food-Tracker/internal/utils/storage"
	"Household-Food-Tracker/pkg/food"
	"Household-Food-Tracker/pkg/household"
	"Household-Food-Tracker/pkg/jwt"
	"Household-Food-Tracker/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	householdRepository := household.NewHouseholdRepository(db)
	foodRepository := food.NewFoodRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	householdService := household.NewHouseholdService(householdRepository, userRepository, jwtService)
	ingredientService := food.NewIngredientService(foodRepository)
	dishService := food.NewDishService(foodRepository, userRepository, s3)
	mealService := food.NewMealService(foodRepository, userRepository)
	reportService := food.NewReportService(foodRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	householdHandler := handlers.NewHouseholdHandler(householdService, validator)
	ingredientHandler := handlers.NewIngredientHandler(ingredientService, validator)
	dishHandler := handlers.NewDishHandler(dishService, validator)
	mealHandler := handlers.NewMealHandler(mealService, validator)
	reportHandler := handlers.NewReportHandler(reportService)

	// routes
	routesConfig := routes.Config{
		App:               app,
		UserHandler:       userHandler,
		HouseholdHandler:  householdHandler,
		IngredientHandler: ingredientHandler,
		DishHandler:       dishHandler,
		MealHandler:       mealHandler,
		ReportHandler:     reportHandler,
		Middleware:        middlewares,
		JWTService:        jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
