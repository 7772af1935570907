package routes

import (
	"FoodLoop-Backend/internal/api/handlers"
	"FoodLoop-Backend/internal/middleware"
	"FoodLoop-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	ReportHandler       handlers.ReportHandler
	CollectionHandler   handlers.CollectionHandler
	RewardHandler       handlers.RewardHandler
	NotificationHandler handlers.NotificationHandler
	VerificationHandler handlers.VerificationHandler
	LocationHandler     handlers.LocationHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Reports()
	c.Collections()
	c.Rewards()
	c.Notifications()
	c.Verification()
	c.Location()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/init", c.UserHandler.InitDemoUser)
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Reports() {
	reports := c.App.Group("/api/v1/reports", c.Middleware.AuthMiddleware(c.JWTService))
	{
		reports.Post("", c.ReportHandler.CreateReport)
		reports.Get("/me", c.ReportHandler.GetMyReports)
		reports.Get("", c.ReportHandler.GetRecentReports)
	}
}

func (c *Config) Collections() {
	collections := c.App.Group("/api/v1/collections", c.Middleware.AuthMiddleware(c.JWTService))
	{
		collections.Get("/tasks", c.CollectionHandler.GetTasks)
		collections.Post("/tasks/:id/claim", c.CollectionHandler.ClaimTask)
		collections.Post("/tasks/:id/complete", c.CollectionHandler.CompleteTask)
		collections.Get("/me", c.CollectionHandler.GetCollectedWaste)
	}
}

func (c *Config) Rewards() {
	rewards := c.App.Group("/api/v1/rewards", c.Middleware.AuthMiddleware(c.JWTService))
	{
		rewards.Get("", c.RewardHandler.GetAvailableRewards)
		rewards.Post("/redeem", c.RewardHandler.Redeem)
		rewards.Get("/balance", c.RewardHandler.GetBalance)
		rewards.Get("/transactions", c.RewardHandler.GetTransactions)
		rewards.Get("/leaderboard", c.RewardHandler.GetLeaderboard)
	}
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))
	{
		notifications.Get("", c.NotificationHandler.GetUnread)
		notifications.Patch("/:id/read", c.NotificationHandler.MarkAsRead)
	}
}

func (c *Config) Verification() {
	c.App.Post("/api/v1/verify-food", c.Middleware.AuthMiddleware(c.JWTService), c.VerificationHandler.VerifyFood)
}

func (c *Config) Location() {
	c.App.Get("/api/v1/location", c.Middleware.AuthMiddleware(c.JWTService), c.LocationHandler.ResolveAddress)
}
