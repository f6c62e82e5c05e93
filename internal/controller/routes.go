package controller

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the game REST routes under router (normally /api).
func RegisterRoutes(router fiber.Router, gc *GameController) {
	gameRoutes := router.Group("/game")
	gameRoutes.Post("/create", gc.CreateGame)
	gameRoutes.Post("/join/:gameId", gc.JoinGame)
	gameRoutes.Get("/:gameId", gc.GetGameState)
	gameRoutes.Get("/:gameId/hints", gc.GetHints)
	gameRoutes.Post("/:gameId/move", gc.MakeMove)
}
