package controller

import (
	"errors"

	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/benbeisheim/minimax-chess/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Mode  string `json:"mode"`
	Color string `json:"color"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}
	mode, err := service.ParseGameMode(req.Mode)
	if err != nil {
		return badRequest(c, err.Error())
	}
	color := model.White
	if req.Color != "" {
		parsed, ok := model.ParseColor(req.Color)
		if !ok {
			return badRequest(c, "color must be white or black")
		}
		color = parsed
	}

	gameID, err := gc.gameService.CreateGame(playerID, mode, color)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"color":   color,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

// GetHints answers ?row=&col= with the legal moves and captures of that piece.
func (gc *GameController) GetHints(c *fiber.Ctx) error {
	sq := model.Square{Row: c.QueryInt("row", -1), Col: c.QueryInt("col", -1)}
	moves, captures, err := gc.gameService.Hints(c.Params("gameId"), sq)
	if err != nil {
		return errorResponse(c, err)
	}
	if moves == nil {
		moves = []model.Square{}
	}
	if captures == nil {
		captures = []model.Square{}
	}
	return c.JSON(fiber.Map{
		"square":   sq,
		"moves":    moves,
		"captures": captures,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var move model.SimpleMove
	if err := c.BodyParser(&move); err != nil {
		return badRequest(c, "invalid move body")
	}
	if err := gc.gameService.HandleMove(gameID, playerID, move); err != nil {
		return errorResponse(c, err)
	}
	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

func errorResponse(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotInGame):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrStaleMove),
		errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrOutOfBounds):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}
