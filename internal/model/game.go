package model

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/benbeisheim/minimax-chess/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

const (
	ResultCheckmate = "checkmate"
	ResultStalemate = "stalemate"
)

// The connections for a specific game
type GameConnections struct {
	connections map[string]*ws.Conn // playerID -> connection
	mu          sync.RWMutex
}

// Game owns one live board plus everything the UI shows around it. All
// access goes through its mutex; the search engine only ever sees clones.
type Game struct {
	ID          string
	mu          sync.Mutex
	board       *Board
	state       GameState
	connections *GameConnections
}

type GameState struct {
	Sound          string         `json:"sound"`
	Board          *BoardState    `json:"boardState"`
	ToMove         Color          `json:"toMove"`
	MoveHistory    []MovePair     `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	Resolve        *string        `json:"resolve"`
	Winner         *Color         `json:"winner"`
	Players        Players        `json:"players"`
	LastMove       *SimpleMove    `json:"lastMove"`
	PlyCount       int            `json:"plyCount"`
}

// CapturedPieces are keyed by the color that made the capture.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame(id string) *Game {
	board := NewBoard()
	return &Game{
		ID:          id,
		board:       board,
		state:       newGameState(board),
		connections: NewGameConnections(),
	}
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*ws.Conn),
	}
}

func newGameState(board *Board) GameState {
	return GameState{
		Board:       board.Snapshot(),
		ToMove:      White,
		MoveHistory: make([]MovePair, 0),
		CapturedPieces: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
		Players: Players{
			White: ClientPlayer{Color: White},
			Black: ClientPlayer{Color: Black},
		},
	}
}

// AddPlayer seats the player on the first free human seat, White first. A
// player already seated gets their color back.
func (g *Game) AddPlayer(playerID string) (Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.seatOf(playerID); ok {
		return c, nil
	}
	for _, c := range []Color{White, Black} {
		seat := g.state.Players.seat(c)
		if seat.empty() {
			seat.ID = playerID
			log.Debugf("game %s: player %s seated as %s", g.ID, playerID, c)
			return c, nil
		}
	}
	return White, ErrGameFull
}

// SeatPlayer puts the player on a specific color.
func (g *Game) SeatPlayer(playerID string, c Color) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	seat := g.state.Players.seat(c)
	if !seat.empty() && seat.ID != playerID {
		return fmt.Errorf("%w: %s seat taken", ErrGameFull, c)
	}
	seat.ID = playerID
	return nil
}

// SeatBot hands a color to the automated opponent.
func (g *Game) SeatBot(c Color, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	seat := g.state.Players.seat(c)
	if !seat.empty() {
		return fmt.Errorf("%w: %s seat taken", ErrGameFull, c)
	}
	seat.ID = name
	seat.Bot = true
	return nil
}

func (g *Game) seatOf(playerID string) (Color, bool) {
	if playerID == "" {
		return White, false
	}
	for _, c := range []Color{White, Black} {
		seat := g.state.Players.seat(c)
		if !seat.Bot && seat.ID == playerID {
			return c, true
		}
	}
	return White, false
}

// GetState returns a copy that later moves do not write through.
func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	state := g.state
	state.MoveHistory = append([]MovePair(nil), g.state.MoveHistory...)
	state.CapturedPieces.White = append([]Piece(nil), g.state.CapturedPieces.White...)
	state.CapturedPieces.Black = append([]Piece(nil), g.state.CapturedPieces.Black...)
	return state
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.seatOf(playerID)
	return ok
}

func (g *Game) canSpectate() bool {
	return g.state.Players.White.empty() || g.state.Players.Black.empty()
}

// Hints lists the legal quiet destinations and captures of the piece on sq.
func (g *Game) Hints(sq Square) (moves, captures []Square, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !sq.InBounds() {
		return nil, nil, fmt.Errorf("%w: %s", ErrOutOfBounds, sq)
	}
	piece := g.board.PieceAt(sq)
	if piece == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoPiece, sq)
	}
	return g.board.LegalMoves(piece), g.board.LegalCaptures(piece), nil
}

// MakeMove plays a human move for the player holding the side to move.
func (g *Game) MakeMove(playerID string, move SimpleMove) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c, ok := g.seatOf(playerID)
	if !ok {
		return Outcome{}, ErrNotInGame
	}
	if c != g.state.ToMove {
		return Outcome{}, ErrNotYourTurn
	}
	return g.applyLocked(move)
}

// BotToMove reports whether the side to move is seated by the engine and the
// game is still running.
func (g *Game) BotToMove() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.Resolve == nil && g.state.Players.seat(g.state.ToMove).Bot
}

// SearchPosition hands out a private clone of the live board together with the
// side to move and the ply counter to pass back to ApplyBotMove.
func (g *Game) SearchPosition() (*Board, Color, int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board.Clone(), g.state.ToMove, g.state.PlyCount
}

// ApplyBotMove plays an engine move found on a SearchPosition clone, provided
// the live position has not moved on since.
func (g *Game) ApplyBotMove(move SimpleMove, plyCount int) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if plyCount != g.state.PlyCount {
		return Outcome{}, ErrStaleMove
	}
	if !g.state.Players.seat(g.state.ToMove).Bot {
		return Outcome{}, ErrNotYourTurn
	}
	return g.applyLocked(move)
}

func (g *Game) applyLocked(move SimpleMove) (Outcome, error) {
	if g.state.Resolve != nil {
		return Outcome{}, ErrGameOver
	}
	if !move.From.InBounds() || !move.To.InBounds() {
		return Outcome{}, fmt.Errorf("%w: %s to %s", ErrOutOfBounds, move.From, move.To)
	}
	piece := g.board.PieceAt(move.From)
	if piece == nil {
		return Outcome{}, fmt.Errorf("%w: %s", ErrNoPiece, move.From)
	}
	if piece.Color != g.state.ToMove {
		return Outcome{}, ErrNotYourTurn
	}

	outcome, err := g.board.ApplyMove(piece, move.To)
	if err != nil {
		return Outcome{}, err
	}
	g.record(outcome)
	log.Debugf("game %s: %s %s %s", g.ID, outcome.Ply.Color, outcome.Ply.Piece, move.From.String()+"-"+move.To.String())

	go g.broadcastState()
	return outcome, nil
}

func (g *Game) record(outcome Outcome) {
	ply := outcome.Ply
	mover := ply.Color

	switch {
	case ply.CastleRookMove != nil:
		g.state.Sound = "castle"
	case outcome.Captured != nil:
		g.state.Sound = "capture"
	default:
		g.state.Sound = "move"
	}

	if outcome.Captured != nil {
		captured := *outcome.Captured
		if mover == White {
			g.state.CapturedPieces.White = append(g.state.CapturedPieces.White, captured)
		} else {
			g.state.CapturedPieces.Black = append(g.state.CapturedPieces.Black, captured)
		}
	}

	if mover == White || len(g.state.MoveHistory) == 0 {
		g.state.MoveHistory = append(g.state.MoveHistory, MovePair{})
	}
	last := &g.state.MoveHistory[len(g.state.MoveHistory)-1]
	if mover == White {
		last.WhitePly = &ply
	} else {
		last.BlackPly = &ply
	}

	g.state.ToMove = mover.Other()
	g.state.IsCheck = outcome.IsCheck
	if outcome.IsCheck {
		g.state.Sound = "check"
	}
	switch {
	case outcome.IsMate:
		result := ResultCheckmate
		g.state.Resolve = &result
		g.state.Winner = &mover
		log.Infof("game %s: %s wins by checkmate", g.ID, mover)
	case outcome.IsStalemate:
		result := ResultStalemate
		g.state.Resolve = &result
		log.Infof("game %s: stalemate", g.ID)
	}

	g.state.LastMove = &SimpleMove{From: ply.From, To: ply.To}
	g.state.PlyCount++
	g.state.Board = g.board.Snapshot()
}

func (g *Game) RegisterConnection(playerID string, conn *ws.Conn) error {
	g.mu.Lock()
	_, seated := g.seatOf(playerID)
	isAuthorized := seated || g.canSpectate()
	g.mu.Unlock()

	if !isAuthorized {
		return ErrNotInGame
	}

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// keep the healthy connection, reject the duplicate
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	log.Debugf("game %s: registered connection %p for player %s", g.ID, conn, playerID)

	go g.broadcastState()
	return nil
}

// UnregisterConnection drops the player's connection only if it is still conn.
func (g *Game) UnregisterConnection(playerID string, conn *ws.Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		log.Debugf("game %s: unregistering connection %p for player %s", g.ID, conn, playerID)
		delete(g.connections.connections, playerID)
	}
}

func (g *Game) broadcastState() {
	state := g.GetState()
	payload, err := json.Marshal(state)
	if err != nil {
		log.Errorf("game %s: marshal state: %v", g.ID, err)
		return
	}

	g.connections.mu.RLock()
	active := make(map[string]*ws.Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		active[playerID] = conn
	}
	g.connections.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		}); err != nil {
			log.Warnf("game %s: send state to %s: %v", g.ID, playerID, err)
			g.connections.mu.Lock()
			if g.connections.connections[playerID] == conn {
				delete(g.connections.connections, playerID)
			}
			g.connections.mu.Unlock()
		}
	}
}
