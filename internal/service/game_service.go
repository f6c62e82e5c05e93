package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbeisheim/minimax-chess/internal/bot"
	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/benbeisheim/minimax-chess/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type GameMode string

const (
	// ModeAI seats the engine opposite the creating player.
	ModeAI GameMode = "ai"
	// ModeLocal leaves both seats to humans.
	ModeLocal GameMode = "local"
)

func ParseGameMode(s string) (GameMode, error) {
	switch GameMode(s) {
	case ModeAI, "":
		return ModeAI, nil
	case ModeLocal:
		return ModeLocal, nil
	}
	return "", fmt.Errorf("unknown game mode %q", s)
}

type GameService struct {
	gameManager   *GameManager
	bot           bot.ChessBot
	searchTimeout time.Duration
}

func NewGameService(gameManager *GameManager, chessBot bot.ChessBot, searchTimeout time.Duration) *GameService {
	return &GameService{
		gameManager:   gameManager,
		bot:           chessBot,
		searchTimeout: searchTimeout,
	}
}

// CreateGame opens a new game with the creator seated on color. In ModeAI the
// engine takes the other color and, if that is White, moves straight away.
func (gs *GameService) CreateGame(playerID string, mode GameMode, color model.Color) (string, error) {
	gameID := uuid.New().String()

	game, err := gs.gameManager.CreateGame(gameID)
	if err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	if err := gs.seat(game, playerID, mode, color); err != nil {
		gs.gameManager.RemoveGame(gameID)
		return "", err
	}
	log.Infof("game %s created by %s (mode %s, %s)", gameID, playerID, mode, color)
	return gameID, nil
}

// seat fills the seats of a fresh game and lets the engine open if it plays White.
func (gs *GameService) seat(game *model.Game, playerID string, mode GameMode, color model.Color) error {
	if err := game.SeatPlayer(playerID, color); err != nil {
		return err
	}
	if mode != ModeAI {
		return nil
	}
	if err := game.SeatBot(color.Other(), gs.bot.Name()); err != nil {
		return err
	}
	return gs.playBot(game)
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

// Hints returns the legal destinations of the piece on sq for move-hint rendering.
func (gs *GameService) Hints(gameID string, sq model.Square) (moves, captures []model.Square, err error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, nil, err
	}
	return game.Hints(sq)
}

// HandleMove plays the player's move and, when the engine holds the other
// seat, its reply.
func (gs *GameService) HandleMove(gameID string, playerID string, move model.SimpleMove) error {
	if _, err := gs.gameManager.MakeMove(gameID, playerID, move); err != nil {
		return err
	}
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return gs.playBot(game)
}

// playBot searches a private clone outside the game lock and applies the
// result only if nobody moved in the meantime.
func (gs *GameService) playBot(game *model.Game) error {
	if !game.BotToMove() {
		return nil
	}
	board, side, plyCount := game.SearchPosition()

	ctx, cancel := context.WithTimeout(context.Background(), gs.searchTimeout)
	defer cancel()
	move, err := gs.bot.BestMove(ctx, board, side)
	if errors.Is(err, bot.ErrNoMoves) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("engine move: %w", err)
	}

	if _, err := game.ApplyBotMove(model.SimpleMove{From: move.From, To: move.To}, plyCount); err != nil {
		return fmt.Errorf("engine move %s: %w", move, err)
	}
	return nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *ws.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn *ws.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
