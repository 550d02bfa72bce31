package routes

import (
	"github.com/Dharshan209/StudyTracker/backend/config"
	"github.com/Dharshan209/StudyTracker/backend/controllers"
	"github.com/Dharshan209/StudyTracker/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Catalog routes
	catalogController := controllers.NewCatalogController(db, cfg)
	app.Get("/api/catalog/plans", authMiddleware, catalogController.GetTemplates)
	app.Get("/api/catalog/plans/:id", authMiddleware, catalogController.GetTemplate)
	app.Post("/api/admin/catalog/plans", authMiddleware, adminMiddleware, catalogController.CreateTemplate)
	app.Get("/api/catalog/problems", authMiddleware, catalogController.GetProblems)
	app.Post("/api/admin/catalog/problems", authMiddleware, adminMiddleware, catalogController.CreateProblem)

	// Resource routes
	resourcesController := controllers.NewResourcesController(db, cfg)
	app.Get("/api/resources/:title", authMiddleware, resourcesController.GetResource)
	app.Post("/api/admin/resources", authMiddleware, adminMiddleware, resourcesController.CreateResource)

	// Plan routes
	plansController := controllers.NewPlansController(db, cfg)
	plans := app.Group("/api/plans", authMiddleware)
	plans.Get("/", plansController.GetPlans)
	plans.Post("/import", plansController.ImportPlan)
	plans.Post("/:id/problems", plansController.AddProblem)

	// Schedule routes
	scheduleController := controllers.NewScheduleController(db, cfg)
	app.Get("/api/schedule", authMiddleware, scheduleController.GetSchedule)
	app.Post("/api/schedule/toggle", authMiddleware, scheduleController.ToggleCompletion)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	progress := app.Group("/api/progress", authMiddleware)
	progress.Get("/", progressController.GetProgress)
	progress.Get("/plans", progressController.GetPlanProgress)
	progress.Get("/calendar", progressController.GetCalendar)
	progress.Get("/export", progressController.ExportProgress)

	// Activity routes
	activityController := controllers.NewActivityController(db, cfg)
	app.Get("/api/activity/recent", authMiddleware, activityController.GetRecent)

	// Time tracking routes
	timeController := controllers.NewTimeTrackingController(db, cfg)
	app.Get("/api/time/today", authMiddleware, timeController.GetToday)
	app.Post("/api/time/session", authMiddleware, timeController.AddSession)

	// Payment routes
	paymentController := controllers.NewPaymentController(db, cfg)
	app.Post("/api/payment/subscribe", authMiddleware, paymentController.Subscribe)
}
