package main

import (
	"log"
	"strings"

	"bondyard-backend/internal/admin"
	"bondyard-backend/internal/auth"
	"bondyard-backend/internal/config"
	"bondyard-backend/internal/dashboard"
	"bondyard-backend/internal/database"
	"bondyard-backend/internal/inventory"
	"bondyard-backend/internal/models"
	"bondyard-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	store, err := storage.New(cfg)
	if err != nil {
		log.Fatalf("[FATAL] storage backend could not be set up: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	app.Use(logger.New())

	// CORS origins arrive as one comma separated string
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Admin routes
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Post("/users", admin.CreateUserHandler())
	adminRoutes.Get("/users", admin.ListUsersHandler())
	adminRoutes.Delete("/users/:id", admin.DeleteUserHandler())

	// Vehicles
	// The export and import routes sit before /vehicles/:id so the
	// literal segments are not swallowed by the id parameter.
	protected.Get("/vehicles", inventory.ListVehiclesHandler())
	protected.Get("/vehicles/export", inventory.ExportVehiclesHandler())
	protected.Post("/vehicles/import", inventory.ImportVehiclesHandler())
	protected.Post("/vehicles", inventory.CreateVehicleHandler())
	protected.Get("/vehicles/:id", inventory.GetVehicleHandler())
	protected.Put("/vehicles/:id", inventory.UpdateVehicleHandler())
	protected.Delete("/vehicles/:id", inventory.DeleteVehicleHandler(store))

	// Stock movements
	protected.Get("/vehicles/:id/movements", inventory.ListMovementsHandler())
	protected.Post("/vehicles/:id/movements", inventory.CreateMovementHandler())
	protected.Delete("/vehicles/:id/movements/:movementID", inventory.DeleteMovementHandler())

	// Attachments
	protected.Get("/vehicles/:id/attachments", inventory.ListAttachmentsHandler())
	protected.Post("/vehicles/:id/attachments", inventory.UploadAttachmentsHandler(store))
	protected.Delete("/vehicles/:id/attachments/:attachmentID", inventory.DeleteAttachmentHandler(store))

	// Status values for client dropdowns
	protected.Get("/statuses", inventory.ListStatusesHandler())

	// Dashboard
	protected.Get("/dashboard/summary", dashboard.YardSummaryHandler())
	protected.Get("/dashboard/movement-chart", dashboard.MovementChartHandler())

	// Locally stored attachments are served straight from disk; with the
	// S3 backend the attachment URLs point at the bucket instead.
	if cfg.StorageBackend == config.StorageLocal {
		app.Static("/uploads", cfg.UploadDir)
	}
	app.Static("/", cfg.PublicDir)

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
