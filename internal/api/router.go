package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/well2nest/hospital-system/docs"
	"github.com/well2nest/hospital-system/internal/api/handler"
	"github.com/well2nest/hospital-system/internal/api/middleware"
	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
	"github.com/well2nest/hospital-system/internal/core/service"
	mongodb "github.com/well2nest/hospital-system/internal/infrastructure/db/mongo"
	redisdb "github.com/well2nest/hospital-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The auth service is constructed by the caller so the persisted session can
// be restored before the server starts accepting requests.
func NewRouter(db *mongo.Database, rdb *redis.Client, auth ports.AuthService, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("well2nest"))

	// --- Dependencies ---
	gateway := mongodb.NewGateway(db, log.With().Str("component", "gateway").Logger())
	tokens := redisdb.NewTokenStore(rdb)

	svcLog := func(name string) zerolog.Logger {
		return log.With().Str("component", name).Logger()
	}
	appointments := service.NewAppointmentService(gateway, svcLog("appointments"))
	dashboards := service.NewDashboardService(gateway, svcLog("dashboard"))
	prescriptions := service.NewPrescriptionService(gateway, svcLog("prescriptions"))
	billing := service.NewBillingService(gateway, svcLog("billing"))
	inventory := service.NewInventoryService(gateway, svcLog("inventory"))
	schedules := service.NewScheduleService(gateway, svcLog("schedules"))
	directory := service.NewDirectoryService(gateway, svcLog("directory"))
	settings := service.NewSettingsService(gateway, svcLog("settings"))

	authHandler := handler.NewAuthHandler(auth, tokens)
	appointmentHandler := handler.NewAppointmentHandler(appointments)
	dashboardHandler := handler.NewDashboardHandler(dashboards)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptions)
	billingHandler := handler.NewBillingHandler(billing)
	inventoryHandler := handler.NewInventoryHandler(inventory)
	scheduleHandler := handler.NewScheduleHandler(schedules)
	directoryHandler := handler.NewDirectoryHandler(directory)
	settingsHandler := handler.NewSettingsHandler(settings)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Authenticated routes ---
	authed := e.Group("", middleware.Auth(tokens))

	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/session", authHandler.Session)

	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor, domain.RolePatient, domain.RolePharmacist)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	authed.GET("/dashboard", dashboardHandler.Stats, anyRole)

	clinical := middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor, domain.RolePatient)
	authed.GET("/appointments", appointmentHandler.List, clinical)
	authed.POST("/appointments", appointmentHandler.Create, clinical)
	authed.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus, clinical)

	authed.GET("/prescriptions", prescriptionHandler.List, anyRole)
	authed.POST("/prescriptions", prescriptionHandler.Create, middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor))
	authed.PUT("/prescriptions/:id/fill", prescriptionHandler.Fill, middleware.RBAC(domain.RolePharmacist))

	billingAccess := middleware.RBAC(domain.RoleAdmin, domain.RolePatient)
	authed.GET("/invoices", billingHandler.Invoices, billingAccess)
	authed.POST("/invoices", billingHandler.CreateInvoice, adminOnly)
	authed.GET("/transactions", billingHandler.Transactions, billingAccess)
	authed.POST("/payments", billingHandler.RecordPayment, billingAccess)

	pharmacy := middleware.RBAC(domain.RoleAdmin, domain.RolePharmacist)
	authed.GET("/inventory", inventoryHandler.List, pharmacy)
	authed.POST("/inventory", inventoryHandler.Save, pharmacy)
	authed.DELETE("/inventory/:id", inventoryHandler.Delete, adminOnly)

	authed.GET("/schedules", scheduleHandler.List, clinical)
	authed.POST("/schedules", scheduleHandler.Create, middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor))

	authed.GET("/doctors", directoryHandler.Doctors, anyRole)
	authed.GET("/patients", directoryHandler.Patients, middleware.RBAC(domain.RoleAdmin, domain.RoleDoctor, domain.RolePharmacist))
	authed.GET("/departments", directoryHandler.Departments, anyRole)
	authed.POST("/departments", directoryHandler.CreateDepartment, adminOnly)

	authed.GET("/settings", settingsHandler.Settings, adminOnly)
	authed.PUT("/settings/:key", settingsHandler.UpdateSetting, adminOnly)
	authed.GET("/admin-users", settingsHandler.AdminUsers, adminOnly)
	authed.PUT("/admin-users/:id/active", settingsHandler.SetAdminActive, adminOnly)

	return e
}
