package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hr-system/internal/authz"
	"hr-system/internal/controllers"
	"hr-system/internal/listeners"
	"hr-system/internal/repositories"
	"hr-system/internal/services"
	"hr-system/pkg/config"
	"hr-system/pkg/eventbus"
	"hr-system/pkg/filestorage"
	"hr-system/pkg/middleware"
	"hr-system/pkg/service"
	"hr-system/pkg/websocket"
)

type Loggers struct {
	Main  *zap.Logger
	Auth  *zap.Logger
	User  *zap.Logger
	Asset *zap.Logger
}

// Controllers собирает все контроллеры, чтобы маршруты можно было поднять без базы.
type Controllers struct {
	Auth          *controllers.AuthController
	Role          *controllers.RoleController
	Department    *controllers.DepartmentController
	Title         *controllers.TitleController
	User          *controllers.UserController
	Phone         *controllers.PhoneController
	Asset         *controllers.AssetController
	AssetTracking *controllers.AssetTrackingController
	Attachment    *controllers.AttachmentController
	Export        *controllers.ExportController
	AssetImport   *controllers.AssetImportController
	WebSocket     *controllers.WebSocketController
}

func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	hub *websocket.Hub,
	bus *eventbus.Bus,
	loggers *Loggers,
	cfg *config.Config,
) error {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	gatekeeper := authz.NewGatekeeper(nil)
	authMW := middleware.NewAuthMiddleware(jwtSvc, gatekeeper, loggers.Auth)
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Storage.UploadDir)
	if err != nil {
		return err
	}
	txManager := repositories.NewTxManager(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- 1. РЕПОЗИТОРИИ ---
	roleRepo := repositories.NewRoleRepository(dbConn, loggers.Main)
	departmentRepo := repositories.NewDepartmentRepository(dbConn, loggers.Main)
	titleRepo := repositories.NewTitleRepository(dbConn, loggers.Main)
	userRepo := repositories.NewUserRepository(dbConn, loggers.User)
	phoneRepo := repositories.NewPhoneRepository(dbConn, loggers.User)
	assetRepo := repositories.NewAssetRepository(dbConn, loggers.Asset)
	trackingRepo := repositories.NewAssetTrackingRepository(dbConn, loggers.Asset)
	attachmentRepo := repositories.NewAttachmentRepository(dbConn, loggers.Main)

	// --- 2. СЕРВИСЫ ---
	roleService := services.NewRoleService(roleRepo, txManager, loggers.Main)
	departmentService := services.NewDepartmentService(departmentRepo, txManager, loggers.Main)
	titleService := services.NewTitleService(titleRepo, txManager, loggers.Main)
	userService := services.NewUserService(userRepo, roleRepo, titleRepo, departmentRepo, phoneRepo, txManager, loggers.User)
	phoneService := services.NewPhoneService(phoneRepo, userRepo, txManager, loggers.User)
	attachmentService := services.NewAttachmentService(attachmentRepo, fileStorage, loggers.Main)
	assetService := services.NewAssetService(assetRepo, attachmentService, loggers.Asset)
	trackingService := services.NewAssetTrackingService(trackingRepo, txManager, bus, loggers.Asset)
	exportService := services.NewExportService(assetRepo, trackingRepo, loggers.Asset)
	importService := services.NewAssetImportService(assetRepo, txManager, loggers.Asset)
	authService := services.NewAuthService(userRepo, roleRepo, userService, cacheRepo, jwtSvc, gatekeeper, cfg.Auth, loggers.Auth)

	// --- 3. СОБЫТИЯ ---
	wsNotificationService := services.NewWebSocketNotificationService(hub, loggers.Main)
	listeners.NewNotificationListener(wsNotificationService, loggers.Main).Register(bus)

	// --- 4. КОНТРОЛЛЕРЫ И РОУТЕРЫ ---
	ctrls := Controllers{
		Auth:          controllers.NewAuthController(authService, loggers.Auth),
		Role:          controllers.NewRoleController(roleService, loggers.Main),
		Department:    controllers.NewDepartmentController(departmentService, loggers.Main),
		Title:         controllers.NewTitleController(titleService, loggers.Main),
		User:          controllers.NewUserController(userService, loggers.User),
		Phone:         controllers.NewPhoneController(phoneService, loggers.User),
		Asset:         controllers.NewAssetController(assetService, authMW, loggers.Asset),
		AssetTracking: controllers.NewAssetTrackingController(trackingService, loggers.Asset),
		Attachment:    controllers.NewAttachmentController(attachmentService, loggers.Main),
		Export:        controllers.NewExportController(exportService, loggers.Asset),
		AssetImport:   controllers.NewAssetImportController(importService, loggers.Asset),
		WebSocket:     controllers.NewWebSocketController(hub, jwtSvc, loggers.Main),
	}
	Register(e, ctrls, authMW)

	loggers.Main.Info("INIT_ROUTER: Создание маршрутов завершено")
	return nil
}

// Register вешает маршруты всех ресурсов на /api.
func Register(e *echo.Echo, ctrls Controllers, authMW *middleware.AuthMiddleware) {
	api := e.Group("/api")
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, ctrls.Auth)
	runWebSocketRouter(api, ctrls.WebSocket)

	runRoleRouter(secureGroup, ctrls.Role, authMW)
	runDepartmentRouter(secureGroup, ctrls.Department, authMW)
	runTitleRouter(secureGroup, ctrls.Title, authMW)
	runUserRouter(secureGroup, ctrls.User, ctrls.Attachment, authMW)
	runPhoneRouter(secureGroup, ctrls.Phone, authMW)
	runAssetRouter(secureGroup, ctrls.Asset, ctrls.Attachment, ctrls.Export, ctrls.AssetImport, authMW)
	runAssetTrackingRouter(secureGroup, ctrls.AssetTracking, ctrls.Export, authMW)
	runAttachmentRouter(secureGroup, ctrls.Attachment, authMW)
}
