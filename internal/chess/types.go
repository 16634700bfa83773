package chess

type GameStatus string

const (
	StatusActive   GameStatus = "active"
	StatusDraw     GameStatus = "draw"
	StatusWhiteWon GameStatus = "white_won"
	StatusBlackWon GameStatus = "black_won"
)

// ReasonTime is the end reason of a game lost on time.
const ReasonTime = "time"

// MoveResult is the JSON view of an accepted move.
type MoveResult struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Kind      string `json:"kind"`
	Promotion string `json:"promotion,omitempty"`
	FEN       string `json:"fen"`
	Check     bool   `json:"check"`
	Checkmate bool   `json:"checkmate"`
	Draw      bool   `json:"draw"`
	GameOver  bool   `json:"gameOver"`
	Result    string `json:"result"`
	Reason    string `json:"reason,omitempty"`
}

// LegalMove is the JSON view of a move offered to a driver.
type LegalMove struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Kind      string `json:"kind"`
	Promotion string `json:"promotion,omitempty"`
}

// MaterialCount represents the material count for both sides
type MaterialCount struct {
	White int `json:"white"`
	Black int `json:"black"`
}

func newLegalMove(m Move) LegalMove {
	lm := LegalMove{
		From: m.From.String(),
		To:   m.To.String(),
		Kind: m.Kind.String(),
	}
	if m.Kind == Promotion {
		lm.Promotion = m.PromoteTo.String()
	}
	return lm
}
