package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"reservation-system/internal/controllers"
	"reservation-system/internal/repositories"
	"reservation-system/internal/services"
	"reservation-system/pkg/config"
	"reservation-system/pkg/filestorage"
	"reservation-system/pkg/middleware"
	"reservation-system/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.BasePath)
	if err != nil {
		logger.Fatal("failed to create file storage", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	userRepo := repositories.NewUserRepository(dbConn, logger)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	reservationRepo := repositories.NewReservationRepository(dbConn, logger)
	reportRepo := repositories.NewReportRepository(dbConn)

	availabilityService := services.NewAvailabilityService(equipmentRepo, reservationRepo, cacheRepo, logger, cfg.Availability.CacheTTL)
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, cfg, logger)
	equipmentService := services.NewEquipmentService(txManager, equipmentRepo, logger)
	reservationService := services.NewReservationService(txManager, reservationRepo, equipmentRepo, availabilityService, fileStorage, logger)
	staffService := services.NewStaffService(userRepo, cfg, logger)
	reportService := services.NewReportService(reportRepo, logger)

	authController := controllers.NewAuthController(authService, logger)
	availabilityController := controllers.NewAvailabilityController(availabilityService, logger)
	equipmentController := controllers.NewEquipmentController(equipmentService, logger)
	reservationController := controllers.NewReservationController(reservationService, cfg.Upload.MaxFileSize, logger)
	staffController := controllers.NewStaffController(staffService, logger)
	reportController := controllers.NewReportController(reportService, logger)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authController)
	runAvailabilityRouter(api, availabilityController)
	runEquipmentRouter(api, secureGroup, equipmentController, authMW)
	runReservationRouter(secureGroup, reservationController)
	runStaffRouter(secureGroup, staffController, authMW)
	runReportRouter(secureGroup, reportController, authMW)
}
