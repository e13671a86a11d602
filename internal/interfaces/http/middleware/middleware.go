package middleware

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// SetupMiddlewares registra os middlewares globais da aplicação
func SetupMiddlewares(app *fiber.App) {
	allowOrigins := os.Getenv("CORS_ORIGINS")
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	app.Use(PerformanceLogger())
}

// RouteGroups define os grupos de rotas da API
type RouteGroups struct {
	Public     fiber.Router
	Debriefing fiber.Router
	Client     fiber.Router
}

// SetupRouteGroups configura os grupos de rotas com seus respectivos middlewares
func SetupRouteGroups(app *fiber.App, authMiddleware fiber.Handler) RouteGroups {
	// Grupo público (health, métricas)
	public := app.Group("/")

	// Grupo dos debriefings (com autenticação)
	debriefing := app.Group("/debriefings")
	debriefing.Use(authMiddleware)

	// Grupo por cliente (com autenticação)
	client := app.Group("/clients")
	client.Use(authMiddleware)

	return RouteGroups{
		Public:     public,
		Debriefing: debriefing,
		Client:     client,
	}
}
