package routes

import (
	"Household-Food-Tracker/internal/api/handlers"
	"Household-Food-Tracker/internal/middleware"
	"Household-Food-Tracker/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	HouseholdHandler  handlers.HouseholdHandler
	IngredientHandler handlers.IngredientHandler
	DishHandler       handlers.DishHandler
	MealHandler       handlers.MealHandler
	ReportHandler     handlers.ReportHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Household()
	c.Ingredients()
	c.Dishes()
	c.Meals()
	c.Reports()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Household() {
	household := c.App.Group("/api/v1/households")
	{
		household.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.HouseholdHandler.CreateHousehold)
		household.Get("", c.Middleware.AuthMiddleware(c.JWTService), c.HouseholdHandler.GetHousehold)
		household.Post("/invite", c.Middleware.AuthMiddleware(c.JWTService), c.HouseholdHandler.InviteMember)
		household.Get("/join", c.HouseholdHandler.JoinHousehold)
	}
}

func (c *Config) Ingredients() {
	ingredients := c.App.Group("/api/v1/ingredients", c.Middleware.AuthMiddleware(c.JWTService))

	ingredients.Post("", c.IngredientHandler.AddIngredient)
	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Get("/:id", c.IngredientHandler.GetIngredientDetails)
	ingredients.Put("/:id", c.IngredientHandler.UpdateIngredient)
	ingredients.Delete("/:id", c.IngredientHandler.DeleteIngredient)
}

func (c *Config) Dishes() {
	dishes := c.App.Group("/api/v1/dishes", c.Middleware.AuthMiddleware(c.JWTService))

	dishes.Post("", c.DishHandler.AddDish)
	dishes.Get("", c.DishHandler.GetDishes)
	dishes.Get("/:id", c.DishHandler.GetDishDetails)
	dishes.Put("/:id", c.DishHandler.UpdateDish)
	dishes.Delete("/:id", c.DishHandler.DeleteDish)

	dishes.Post("/:id/multiply", c.DishHandler.MultiplyDish)
	dishes.Post("/:id/duplicate", c.DishHandler.DuplicateDish)
	dishes.Get("/:id/remaining", c.DishHandler.GetRemainingQuantity)
	dishes.Post("/image", c.DishHandler.UploadDishImage)
}

func (c *Config) Meals() {
	meals := c.App.Group("/api/v1/meals", c.Middleware.AuthMiddleware(c.JWTService))

	meals.Post("", c.MealHandler.AddMeal)
	meals.Get("", c.MealHandler.GetMeals)
	meals.Get("/:id", c.MealHandler.GetMealDetails)
	meals.Put("/:id", c.MealHandler.UpdateMeal)
	meals.Delete("/:id", c.MealHandler.DeleteMeal)
	meals.Post("/:id/duplicate", c.MealHandler.DuplicateMeal)
}

func (c *Config) Reports() {
	reports := c.App.Group("/api/v1/reports", c.Middleware.AuthMiddleware(c.JWTService))

	reports.Get("/day", c.ReportHandler.GetDayReport)
	reports.Get("/week", c.ReportHandler.GetWeekReport)
	reports.Get("/month", c.ReportHandler.GetMonthReport)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
