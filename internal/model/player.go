package model

// ClientPlayer is a seat as the UI sees it. A bot seat carries the engine's
// name instead of a player id.
type ClientPlayer struct {
	ID    string `json:"name"`
	Color Color  `json:"color"`
	Bot   bool   `json:"bot"`
}

func (p ClientPlayer) empty() bool {
	return p.ID == "" && !p.Bot
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func (p *Players) seat(c Color) *ClientPlayer {
	if c == White {
		return &p.White
	}
	return &p.Black
}
