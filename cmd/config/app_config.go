package config

import (
	"os"
	"time"

	"FoodLoop-Backend/internal/api/handlers"
	"FoodLoop-Backend/internal/api/routes"
	"FoodLoop-Backend/internal/middleware"
	"FoodLoop-Backend/internal/utils"
	"FoodLoop-Backend/internal/utils/storage"
	"FoodLoop-Backend/pkg/collection"
	"FoodLoop-Backend/pkg/jwt"
	"FoodLoop-Backend/pkg/ledger"
	"FoodLoop-Backend/pkg/location"
	"FoodLoop-Backend/pkg/notification"
	"FoodLoop-Backend/pkg/report"
	"FoodLoop-Backend/pkg/reward"
	"FoodLoop-Backend/pkg/user"
	"FoodLoop-Backend/pkg/verification"

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
		TimeZone:   "Asia/Kolkata",
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
	ledgerRepository := ledger.NewLedgerRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)
	reportRepository := report.NewReportRepository(db)
	collectionRepository := collection.NewCollectionRepository(db)
	rewardRepository := reward.NewRewardRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	ledgerService := ledger.NewLedgerService(db, ledgerRepository)
	notificationService := notification.NewNotificationService(notificationRepository)
	verificationService := verification.NewVerificationService()
	locationService := location.NewLocationService()
	userService := user.NewUserService(userRepository, ledgerService, jwtService)
	reportService := report.NewReportService(db, reportRepository, ledgerService, notificationService, verificationService, s3)
	collectionService := collection.NewCollectionService(db, collectionRepository, ledgerService, notificationService)
	rewardService := reward.NewRewardService(rewardRepository, ledgerService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	reportHandler := handlers.NewReportHandler(reportService, validator)
	collectionHandler := handlers.NewCollectionHandler(collectionService)
	rewardHandler := handlers.NewRewardHandler(rewardService, ledgerService, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	verificationHandler := handlers.NewVerificationHandler(verificationService, validator)
	locationHandler := handlers.NewLocationHandler(locationService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		ReportHandler:       reportHandler,
		CollectionHandler:   collectionHandler,
		RewardHandler:       rewardHandler,
		NotificationHandler: notificationHandler,
		VerificationHandler: verificationHandler,
		LocationHandler:     locationHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
