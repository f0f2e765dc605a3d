// Package server fiber uygulamasını ve route'ları kurar.
package server

import (
	"log"
	"strings"

	"foodshare-backend/internal/audit"
	"foodshare-backend/internal/auth"
	"foodshare-backend/internal/config"
	"foodshare-backend/internal/dashboard"
	"foodshare-backend/internal/donation"
	"foodshare-backend/internal/forecast"
	"foodshare-backend/internal/kitchen"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func ErrorHandler(c *fiber.Ctx, err error) error {
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
		})
	}
	log.Println("Unexpected error:", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Beklenmeyen sunucu hatası",
	})
}

type Options struct {
	Predictor   *forecast.Predictor
	TrainingCSV *kitchen.TrainingCSV
	// RequestLog fiber logger middleware'ini açar (testlerde kapalı)
	RequestLog bool
}

func New(cfg *config.Config, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	if opts.RequestLog {
		app.Use(logger.New())
	}

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(corsOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowCredentials: !strings.Contains(cfg.CORSOrigins, "*"),
	}))

	// Herkese açık
	app.Get("/", donation.HomeHandler())
	app.Get("/register", auth.RegisterFormHandler())
	app.Post("/register", auth.RegisterHandler(cfg))
	app.Post("/login", auth.LoginHandler(cfg))
	app.Get("/logout", auth.LogoutHandler())
	app.Post("/logout", auth.LogoutHandler())

	app.Get("/request-food/:restaurant", donation.RequestFoodPageHandler())
	app.Post("/request-food/:restaurant", donation.CreateRequestHandler())
	app.Get("/request-status/:id", donation.RequestStatusHandler())

	// Giriş gerektiren
	protected := app.Group("", auth.JWTMiddleware(cfg))

	protected.Get("/me", auth.MeHandler())

	protected.Get("/dashboard", dashboard.DashboardHandler())
	protected.Get("/dashboard/waste-chart", dashboard.WasteChartHandler())
	protected.Get("/dashboard/waste-report.xlsx", dashboard.WasteReportHandler())

	// Günlük defter
	protected.Get("/add-food", kitchen.TodayHandler())
	protected.Post("/add-food", kitchen.AddFoodHandler())
	protected.Get("/close_day", kitchen.TodayHandler())
	protected.Post("/close_day", kitchen.CloseDayHandler(opts.TrainingCSV))

	// Tahmin
	protected.Get("/predict", forecast.PredictPageHandler())
	protected.Post("/predict", forecast.PredictHandler(opts.Predictor))
	protected.Post("/predict/reload", forecast.ReloadModelsHandler(opts.Predictor, cfg.ModelReloadToken))

	// Talepler (sadece ilgili restoran)
	protected.Post("/request/accept/:id", donation.AcceptRequestHandler())
	protected.Post("/request/reject/:id", donation.RejectRequestHandler())
	protected.Post("/delete-request/:id", donation.DeleteRequestHandler())
	protected.Post("/delete-all-requests", donation.DeleteAllRequestsHandler())

	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	return app
}
