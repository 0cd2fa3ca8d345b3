package app

import (
	"github.com/louatizine/erp/internal/archive"
	"github.com/louatizine/erp/internal/config"
	"github.com/louatizine/erp/internal/invoice"
	"github.com/louatizine/erp/internal/jobs"
	"github.com/louatizine/erp/internal/leave"
	"github.com/louatizine/erp/internal/license"
	"github.com/louatizine/erp/internal/middleware"
	"github.com/louatizine/erp/internal/notification"
	"github.com/louatizine/erp/internal/todo"
	"github.com/louatizine/erp/internal/user"
	"github.com/louatizine/erp/internal/vehicle"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// Modules exposes the wired services and jobs the binaries need beyond
// the HTTP routes.
type Modules struct {
	Users         user.Service
	Licenses      license.Service
	Vehicles      vehicle.Service
	Todos         todo.Service
	Notifications notification.Service

	VehicleJob *jobs.VehicleExpiryJob
	LicenseJob *jobs.LicenseExpiryJob
	TodoJob    *jobs.TodoReminderJob
}

func registerModules(
	router *gin.Engine,
	db *mongo.Database,
	rdb *redis.Client,
	dispatcher *notification.Dispatcher,
	cfg *config.Config,
) *Modules {
	// --- Repositories ---
	userRepo := user.NewRepository(db)
	leaveRepo := leave.NewRepository(db)
	licenseRepo := license.NewRepository(db)
	vehicleRepo := vehicle.NewRepository(db)
	todoRepo := todo.NewRepository(db)
	invoiceRepo := invoice.NewRepository(db)
	archiveRepo := archive.NewRepository(db)
	notificationRepo := notification.NewRepository(db)

	// --- Services ---
	notificationService := notification.NewService(notificationRepo)
	userService := user.NewService(userRepo)
	leaveService := leave.NewService(leaveRepo, userRepo, dispatcher, notificationService, leave.Settings{
		AccrualRatePerMonth:        cfg.AccrualRatePerMonth,
		ConsumptionLeaveTypeFilter: cfg.ConsumptionLeaveTypeFilter,
	})
	licenseService := license.NewService(licenseRepo, cfg.AlertThresholdDays)
	vehicleService := vehicle.NewService(vehicleRepo)
	todoService := todo.NewService(todoRepo)
	invoiceService := invoice.NewService(invoiceRepo, dispatcher, notificationService)
	archiveService := archive.NewService(archiveRepo)

	// --- Scheduled jobs (also triggerable on demand) ---
	vehicleJob := jobs.NewVehicleExpiryJob(vehicleService, dispatcher, notificationService, cfg.AdminEmail, cfg.ScanWindowDays)
	licenseJob := jobs.NewLicenseExpiryJob(licenseService, userRepo, dispatcher, notificationService, cfg.ScanWindowDays)
	todoJob := jobs.NewTodoReminderJob(todoService, userRepo, dispatcher, notificationService)

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	leaveHandler := leave.NewHandler(leaveService)
	licenseHandler := license.NewHandler(licenseService)
	vehicleHandler := vehicle.NewHandler(vehicleService, vehicleJob.Notify, cfg.ScanWindowDays)
	todoHandler := todo.NewHandler(todoService)
	invoiceHandler := invoice.NewHandler(invoiceService)
	archiveHandler := archive.NewHandler(archiveService)
	notificationHandler := notification.NewHandler(notificationService)

	// --- Routes ---
	api := router.Group("/api")
	{
		user.RegisterRoutes(api, userHandler)
		license.RegisterRoutes(api, licenseHandler)
		vehicle.RegisterRoutes(api, vehicleHandler)
		todo.RegisterRoutes(api, todoHandler)
		invoice.RegisterRoutes(api, invoiceHandler)
		archive.RegisterRoutes(api, archiveHandler)
		notification.RegisterRoutes(api, notificationHandler)

		// retried leave transitions must replay, not double-apply
		leaveGroup := api.Group("", middleware.Idempotency(rdb))
		leave.RegisterRoutes(leaveGroup, leaveHandler)
	}

	return &Modules{
		Users:         userService,
		Licenses:      licenseService,
		Vehicles:      vehicleService,
		Todos:         todoService,
		Notifications: notificationService,
		VehicleJob:    vehicleJob,
		LicenseJob:    licenseJob,
		TodoJob:       todoJob,
	}
}
