package main

import (
	"os"
	"time"

	"github.com/agenciahub/debriefing-api/internal/importer"
	"github.com/agenciahub/debriefing-api/internal/infrastructure/database"
	"github.com/agenciahub/debriefing-api/internal/infrastructure/logger"
	"github.com/agenciahub/debriefing-api/internal/interfaces/http/middleware"
	"github.com/agenciahub/debriefing-api/internal/interfaces/http/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Warn("⚠️ Arquivo .env não encontrado, usando variáveis do sistema")
	}

	logger.Setup()

	// Initialize database
	db, err := database.SetupDatabase()
	if err != nil {
		logrus.Fatalf("❌ Erro ao configurar banco de dados: %v", err)
	}

	// Apelidos de etapa de funil, com override por arquivo YAML
	aliases := importer.DefaultStageAliases()
	if path := os.Getenv("STAGE_ALIASES_PATH"); path != "" {
		aliases, err = importer.LoadStageAliases(path)
		if err != nil {
			logrus.Fatalf("❌ Erro ao carregar apelidos de etapa de '%s': %v", path, err)
		}
		logrus.Infof("🏷️ Apelidos de etapa carregados de %s", path)
	}

	app := fiber.New(fiber.Config{
		// Uploads de CSV podem ser grandes
		BodyLimit:    20 * 1024 * 1024, // 20MB
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	// Setup middleware
	middleware.SetupMiddlewares(app)

	// Setup routes
	routes.SetupRoutes(app, db, aliases)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logrus.Infof("🚀 Servidor rodando na porta %s", port)
	logrus.Fatal(app.Listen(":" + port))
}
