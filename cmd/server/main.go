package main

import (
	"os"
	"strings"

	"github.com/benbeisheim/minimax-chess/internal/bot"
	"github.com/benbeisheim/minimax-chess/internal/config"
	"github.com/benbeisheim/minimax-chess/internal/controller"
	"github.com/benbeisheim/minimax-chess/internal/middleware"
	"github.com/benbeisheim/minimax-chess/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	// handlers keep ids and params past the request, so values must not alias fasthttp buffers
	app := fiber.New(fiber.Config{Immutable: true})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	chessBot := bot.NewMinimaxBot(cfg.SearchDepth)
	log.Infof("engine: %s, search timeout %s", chessBot.Name(), cfg.SearchTimeout)
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager, chessBot, cfg.SearchTimeout)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         strings.Split(cfg.AllowOrigins, ","),
	}))

	api := app.Group("/api", middleware.EnsurePlayerID())
	controller.RegisterRoutes(api, gameController)

	log.Infof("listening on %s", cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}
