package routes

import (
	"os"

	"github.com/agenciahub/debriefing-api/internal/application/usecases"
	"github.com/agenciahub/debriefing-api/internal/domain/repositories"
	"github.com/agenciahub/debriefing-api/internal/importer"
	"github.com/agenciahub/debriefing-api/internal/infrastructure/cache"
	"github.com/agenciahub/debriefing-api/internal/infrastructure/metrics"
	"github.com/agenciahub/debriefing-api/internal/interfaces/http/handlers"
	"github.com/agenciahub/debriefing-api/internal/interfaces/http/middleware"
	"github.com/agenciahub/debriefing-api/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"gorm.io/gorm"
)

// SetupRoutes monta as dependências da pipeline e registra as rotas
func SetupRoutes(app *fiber.App, db *gorm.DB, aliases importer.StageAliases) {
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// ETag para cache eficiente das listagens
	app.Use(etag.New())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	app.Get("/metrics", metrics.Handler())

	// Repositories
	reportRepo := repositories.NewReportRepository(db)
	stageRepo := repositories.NewStageMappingRepository(db)

	// Use Cases
	sessions := cache.New()
	importUseCase := usecases.NewImportUseCase(sessions, reportRepo, stageRepo, aliases, utils.BrasilClock{})
	debriefingUseCase := usecases.NewDebriefingUseCase(reportRepo)
	stageUseCase := usecases.NewStageMappingUseCase(stageRepo)

	// Handlers
	importHandler := handlers.NewImportHandler(importUseCase)
	debriefingHandler := handlers.NewDebriefingHandler(debriefingUseCase)
	stageHandler := handlers.NewStageMappingHandler(stageUseCase)

	authMiddleware := middleware.NewAuthMiddleware(os.Getenv("SUPABASE_JWT_SECRET"))
	groups := middleware.SetupRouteGroups(app, authMiddleware)

	// Assistente de importação
	groups.Debriefing.Post("/import", importHandler.CreateSession)
	groups.Debriefing.Post("/import/:session_id/files/:type", importHandler.UploadFile)
	groups.Debriefing.Put("/import/:session_id/files/:type/mapping", importHandler.UpdateMapping)
	groups.Debriefing.Get("/import/:session_id/stages", importHandler.PreviewStages)
	groups.Debriefing.Put("/import/:session_id/stages", importHandler.UpdateStages)
	groups.Debriefing.Post("/import/:session_id/confirm", importHandler.Confirm)

	// Relatórios consolidados
	groups.Debriefing.Get("/", debriefingHandler.GetReports)
	groups.Debriefing.Get("/:id", debriefingHandler.GetReport)
	groups.Debriefing.Delete("/:id", debriefingHandler.DeleteReport)

	// Classificações de etapa por cliente
	groups.Client.Get("/:client_id/stage-mappings", stageHandler.GetByClient)
}
