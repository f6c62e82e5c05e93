package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/benbeisheim/minimax-chess/internal/service"
	"github.com/benbeisheim/minimax-chess/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)
	// all writes go through conn; only this loop reads from c
	conn := ws.NewConn(c)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		log.Warnf("game %s: register connection for %s: %v", gameID, playerID, err)
		conn.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("game %s: read from %s: %v", gameID, playerID, err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(conn, fmt.Sprintf("malformed message: %v", err))
			continue
		}
		reply, err := wsc.handleMessage(gameID, playerID, msg)
		if err != nil {
			log.Debugf("game %s: message from %s: %v", gameID, playerID, err)
			wsc.sendError(conn, err.Error())
			continue
		}
		if reply != nil {
			if err := conn.WriteJSON(reply); err != nil {
				log.Debugf("game %s: reply to %s: %v", gameID, playerID, err)
			}
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID, conn)
}

// handleMessage acts on one client frame. Moves are answered by the state
// broadcast; hint requests get a direct reply.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (*ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.SimpleMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return nil, err
		}
		return nil, wsc.gameService.HandleMove(gameID, playerID, move)
	case ws.MessageTypeHints:
		var req ws.HintsRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return nil, err
		}
		sq := model.Square{Row: req.Square.Row, Col: req.Square.Col}
		moves, captures, err := wsc.gameService.Hints(gameID, sq)
		if err != nil {
			return nil, err
		}
		reply, err := ws.NewMessage(ws.MessageTypeHintList, ws.HintList{
			Square:   req.Square,
			Moves:    wireSquares(moves),
			Captures: wireSquares(captures),
		})
		return &reply, err
	default:
		return nil, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func wireSquares(squares []model.Square) []ws.Square {
	out := make([]ws.Square, len(squares))
	for i, sq := range squares {
		out[i] = ws.Square{Row: sq.Row, Col: sq.Col}
	}
	return out
}

func (wsc *WebSocketController) sendError(c *ws.Conn, errorMsg string) {
	msg, _ := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err := c.WriteJSON(msg); err != nil {
		log.Debugf("send error message: %v", err)
	}
}
