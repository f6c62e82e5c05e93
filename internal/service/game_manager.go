package service

import (
	"errors"
	"sync"

	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/benbeisheim/minimax-chess/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// GameManager is the registry of live games. It only guards the map; each
// game serializes its own moves.
type GameManager struct {
	games map[string]*model.Game
	mu    sync.RWMutex
}

func NewGameManager() *GameManager {
	return &GameManager{
		games: make(map[string]*model.Game),
	}
}

func (gm *GameManager) CreateGame(gameID string) (*model.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, ErrGameExists
	}
	game := model.NewGame(gameID)
	gm.games[gameID] = game
	log.Debugf("game %s created", gameID)
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) RemoveGame(gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	delete(gm.games, gameID)
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.White, err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID string, playerID string, move model.SimpleMove) (model.Outcome, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Outcome{}, err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *ws.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn *ws.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
