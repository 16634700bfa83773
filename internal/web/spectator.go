package web

import (
	"net/http"
	"time"

	"github.com/lokesh185/rusty-chess/internal/chess"
	"github.com/rs/zerolog/log"
)

// GameView is the full state of one game as served to clients and watchers.
type GameView struct {
	ID             string              `json:"id"`
	FEN            string              `json:"fen"`
	StartFEN       string              `json:"startFen"`
	Turn           string              `json:"turn"`
	Status         chess.GameStatus    `json:"status"`
	Reason         string              `json:"reason,omitempty"`
	Check          bool                `json:"check"`
	Moves          []string            `json:"moves"`
	TimeControl    string              `json:"timeControl"`
	Clock          ClockView           `json:"clock"`
	MaterialCount  chess.MaterialCount `json:"materialCount"`
	SpectatorCount int                 `json:"spectatorCount"`
	CreatedAt      time.Time           `json:"createdAt"`
}

type ClockView struct {
	WhiteSeconds   int    `json:"whiteSeconds"`
	BlackSeconds   int    `json:"blackSeconds"`
	WhiteFormatted string `json:"whiteFormatted"`
	BlackFormatted string `json:"blackFormatted"`
}

// GameSummary represents a stored game in the game list
type GameSummary struct {
	ID             string              `json:"id"`
	Status         string              `json:"status"`
	Reason         string              `json:"reason,omitempty"`
	FEN            string              `json:"fen"`
	MoveCount      int                 `json:"moveCount"`
	TimeControl    string              `json:"timeControl"`
	UpdatedAt      time.Time           `json:"updatedAt"`
	SpectatorCount int                 `json:"spectatorCount"`
	MaterialCount  chess.MaterialCount `json:"materialCount"`
}

func newClockView(clock *chess.Clock) ClockView {
	white := clock.Remaining(chess.White)
	black := clock.Remaining(chess.Black)
	return ClockView{
		WhiteSeconds:   int(white.Seconds()),
		BlackSeconds:   int(black.Seconds()),
		WhiteFormatted: chess.FormatTimeRemaining(white),
		BlackFormatted: chess.FormatTimeRemaining(black),
	}
}

func (s *Service) view(game *liveGame) GameView {
	clock := game.engine.Clock()
	return GameView{
		ID:             game.id,
		FEN:            game.engine.GetFEN(),
		StartFEN:       game.engine.Game().StartFEN(),
		Turn:           game.engine.GetActiveColor(),
		Status:         game.engine.GetStatus(),
		Reason:         game.engine.GetReason(),
		Check:          game.engine.IsCheck(),
		Moves:          game.engine.GetMoves(),
		TimeControl:    string(clock.Kind()),
		Clock:          newClockView(clock),
		MaterialCount:  game.engine.GetMaterialCount(),
		SpectatorCount: s.hub.ClientCount(game.id),
		CreatedAt:      game.createdAt,
	}
}

// ListGamesHandler returns every stored game, most recent first
func (s *Service) ListGamesHandler(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListGames()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list games")
		http.Error(w, "Failed to list games", http.StatusInternalServerError)
		return
	}

	games := make([]GameSummary, 0, len(records))
	for _, rec := range records {
		// Material comes from the stored position; a bad record still lists.
		var materialCount chess.MaterialCount
		engine, err := chess.NewEngineFromFEN(rec.FEN)
		if err != nil {
			log.Error().Err(err).Str("gameID", rec.ID).Msg("Failed to load FEN for material count")
		} else {
			materialCount = engine.GetMaterialCount()
		}

		games = append(games, GameSummary{
			ID:             rec.ID,
			Status:         rec.Status,
			Reason:         rec.Reason,
			FEN:            rec.FEN,
			MoveCount:      len(rec.Moves),
			TimeControl:    rec.TimeControl,
			UpdatedAt:      rec.UpdatedAt,
			SpectatorCount: s.hub.ClientCount(rec.ID),
			MaterialCount:  materialCount,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"total": len(games),
	})
}
