package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/lokesh185/rusty-chess/internal/chess"
	"github.com/lokesh185/rusty-chess/internal/config"
	"github.com/lokesh185/rusty-chess/internal/store"
	"github.com/rs/zerolog/log"
)

// GameStore is the persistence the service needs.
type GameStore interface {
	SaveGame(rec *store.GameRecord) error
	LoadGame(id string) (*store.GameRecord, error)
	ListGames() ([]*store.GameRecord, error)
	DeleteGame(id string) error
}

type Service struct {
	config *config.Config
	store  GameStore
	hub    *Hub
	now    func() time.Time

	mu    sync.Mutex
	games map[string]*liveGame
}

// liveGame is a game held in memory between requests.
type liveGame struct {
	id        string
	engine    *chess.Engine
	createdAt time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithNow replaces the wall clock used by game clocks.
func WithNow(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates the game service. hub may be nil when nobody needs
// live updates.
func NewService(cfg *config.Config, st GameStore, hub *Hub, opts ...ServiceOption) *Service {
	s := &Service{
		config: cfg,
		store:  st,
		hub:    hub,
		now:    time.Now,
		games:  make(map[string]*liveGame),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) HealthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	loaded := len(s.games)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"loadedGames": loaded,
	})
}

type CreateGameRequest struct {
	FEN         string `json:"fen,omitempty"`
	TimeControl string `json:"timeControl,omitempty"`
	Mode        string `json:"mode,omitempty"`
}

func (s *Service) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	mode := chess.ModeLocal
	if req.Mode != "" {
		mode = chess.GameMode(req.Mode)
	}
	if err := mode.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fen := req.FEN
	if fen == "" {
		fen = s.config.Game.StartFEN
	}
	tcName := req.TimeControl
	if tcName == "" {
		tcName = s.config.Game.TimeControl
	}
	tc, err := chess.ParseTimeControl(tcName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := uuid.NewString()
	engine, err := chess.NewEngineFromFEN(fen,
		chess.WithLogger(log.With().Str("gameID", id).Logger()),
		chess.WithClock(chess.NewClock(tc, chess.WithNow(s.now))),
	)
	if err != nil {
		log.Error().Err(err).Str("fen", fen).Msg("Invalid FEN")
		http.Error(w, "Invalid FEN", http.StatusBadRequest)
		return
	}

	game := &liveGame{id: id, engine: engine, createdAt: s.now().UTC()}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(game); err != nil {
		log.Error().Err(err).Str("gameID", id).Msg("Failed to save game")
		http.Error(w, "Failed to create game", http.StatusInternalServerError)
		return
	}
	s.games[id] = game

	log.Info().Str("gameID", id).Str("timeControl", string(tc)).Msg("Game created")
	writeJSON(w, http.StatusCreated, s.view(game))
}

func (s *Service) GetGameHandler(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.lookup(w, gameID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.view(game))
}

// LegalMovesHandler lists the legal moves from ?from=, or of every piece of
// the side to move when no square is given.
func (s *Service) LegalMovesHandler(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]
	from := r.URL.Query().Get("from")

	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.lookup(w, gameID)
	if !ok {
		return
	}

	var (
		moves []chess.LegalMove
		err   error
	)
	if from == "" {
		moves, err = game.engine.LegalMoves(r.Context())
	} else {
		moves, err = game.engine.LegalMovesFrom(from)
	}
	if err != nil {
		s.moveError(w, gameID, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"gameId": gameID,
		"moves":  moves,
	})
}

type MakeMoveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

func (s *Service) MakeMoveHandler(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var req MakeMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.lookup(w, gameID)
	if !ok {
		return
	}

	moveResult, err := game.engine.MakeMove(req.From, req.To, req.Promotion)
	if err != nil {
		if errors.Is(err, chess.ErrTimeExhausted) {
			// The flag fell on this move; the loss still has to be recorded.
			if perr := s.persist(game); perr != nil {
				log.Error().Err(perr).Str("gameID", gameID).Msg("Failed to save game")
			}
			s.broadcast(gameID, "game_end", s.view(game))
		}
		s.moveError(w, gameID, err)
		return
	}

	log.Info().
		Str("gameID", gameID).
		Str("from", moveResult.From).
		Str("to", moveResult.To).
		Str("resultFEN", moveResult.FEN).
		Bool("check", moveResult.Check).
		Bool("gameOver", moveResult.GameOver).
		Msg("Move executed successfully")

	if err := s.persist(game); err != nil {
		log.Error().Err(err).Str("gameID", gameID).Msg("Failed to save game")
		http.Error(w, "Failed to record move", http.StatusInternalServerError)
		return
	}

	s.broadcast(gameID, "move", moveResult)
	if moveResult.GameOver {
		s.broadcast(gameID, "game_end", s.view(game))
	}

	writeJSON(w, http.StatusOK, moveResult)
}

// ClockHandler reports both clocks, ending the game if the side to move has
// run out of time.
func (s *Service) ClockHandler(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.lookup(w, gameID)
	if !ok {
		return
	}

	wasActive := game.engine.GetStatus() == chess.StatusActive
	if game.engine.CheckFlag() && wasActive {
		if err := s.persist(game); err != nil {
			log.Error().Err(err).Str("gameID", gameID).Msg("Failed to save game")
		}
		s.broadcast(gameID, "game_end", s.view(game))
	}

	view := s.view(game)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"gameId": gameID,
		"status": view.Status,
		"reason": view.Reason,
		"clock":  view.Clock,
	})
}

func (s *Service) DeleteGameHandler(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteGame(gameID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("gameID", gameID).Msg("Failed to delete game")
		http.Error(w, "Failed to delete game", http.StatusInternalServerError)
		return
	}
	delete(s.games, gameID)

	w.WriteHeader(http.StatusNoContent)
}

// lookup returns the live game, rebuilding it from the store if needed.
// It writes the error response itself. Callers hold s.mu.
func (s *Service) lookup(w http.ResponseWriter, gameID string) (*liveGame, bool) {
	if game, ok := s.games[gameID]; ok {
		return game, true
	}

	rec, err := s.store.LoadGame(gameID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Game not found", http.StatusNotFound)
			return nil, false
		}
		log.Error().Err(err).Str("gameID", gameID).Msg("Failed to load game")
		http.Error(w, "Failed to load game", http.StatusInternalServerError)
		return nil, false
	}

	game, err := s.restore(rec)
	if err != nil {
		log.Error().Err(err).Str("gameID", gameID).Msg("Failed to rebuild game")
		http.Error(w, "Failed to load game", http.StatusInternalServerError)
		return nil, false
	}
	s.games[gameID] = game
	log.Info().Str("gameID", gameID).Int("moves", len(rec.Moves)).Msg("Game rebuilt from store")
	return game, true
}

// restore replays a stored game. The clock is attached after the replay so
// that replayed moves are not charged.
func (s *Service) restore(rec *store.GameRecord) (*liveGame, error) {
	engine, err := chess.NewEngineFromFEN(rec.StartFEN, chess.WithLogger(log.With().Str("gameID", rec.ID).Logger()))
	if err != nil {
		return nil, err
	}
	for _, mv := range rec.Moves {
		from, to, promo, err := chess.ParseMove(mv)
		if err != nil {
			return nil, err
		}
		if _, err := engine.MakeMove(from, to, promo); err != nil {
			return nil, fmt.Errorf("replaying %s: %w", mv, err)
		}
	}

	tc, err := chess.ParseTimeControl(rec.TimeControl)
	if err != nil {
		return nil, err
	}
	engine.AttachClock(chess.RestoreClock(tc, rec.WhiteRemaining, rec.BlackRemaining, chess.WithNow(s.now)))
	if rec.Reason == chess.ReasonTime {
		engine.LoseOnTime(engine.Game().Turn())
	}

	return &liveGame{id: rec.ID, engine: engine, createdAt: rec.CreatedAt}, nil
}

func (s *Service) persist(game *liveGame) error {
	clock := game.engine.Clock()
	rec := &store.GameRecord{
		ID:             game.id,
		StartFEN:       game.engine.Game().StartFEN(),
		FEN:            game.engine.GetFEN(),
		Moves:          game.engine.GetMoves(),
		Status:         string(game.engine.GetStatus()),
		Reason:         game.engine.GetReason(),
		TimeControl:    string(clock.Kind()),
		WhiteRemaining: clock.Remaining(chess.White),
		BlackRemaining: clock.Remaining(chess.Black),
		CreatedAt:      game.createdAt,
	}
	return s.store.SaveGame(rec)
}

func (s *Service) broadcast(gameID, kind string, data interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastGameUpdate(GameUpdate{GameID: gameID, Type: kind, Data: data})
}

// moveError maps engine errors to HTTP statuses.
func (s *Service) moveError(w http.ResponseWriter, gameID string, err error) {
	log.Warn().Err(err).Str("gameID", gameID).Msg("Move rejected")
	switch {
	case errors.Is(err, chess.ErrGameOver):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, chess.ErrInvalidSquare), errors.Is(err, chess.ErrIllegalMove):
		http.Error(w, fmt.Sprintf("Invalid move: %s", err.Error()), http.StatusBadRequest)
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
