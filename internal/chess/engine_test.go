package chess

import (
	"errors"
	"testing"
	"time"
)

func TestNewEngine(t *testing.T) {
	engine := NewEngine()
	if engine == nil {
		t.Fatal("Expected non-nil engine")
	}

	if engine.GetFEN() != StartFEN {
		t.Errorf("Expected FEN %s, got %s", StartFEN, engine.GetFEN())
	}

	if engine.GetStatus() != StatusActive {
		t.Errorf("Expected status %s, got %s", StatusActive, engine.GetStatus())
	}

	if engine.GetActiveColor() != "white" {
		t.Errorf("Expected active color white, got %s", engine.GetActiveColor())
	}
}

func TestMakeMove(t *testing.T) {
	engine := NewEngine()

	result, err := engine.MakeMove("e2", "e4", "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.From != "e2" {
		t.Errorf("Expected from e2, got %s", result.From)
	}

	if result.To != "e4" {
		t.Errorf("Expected to e4, got %s", result.To)
	}

	if result.FEN != "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1" {
		t.Errorf("Unexpected FEN %s", result.FEN)
	}

	if result.Check {
		t.Error("Expected no check")
	}

	if result.Checkmate {
		t.Error("Expected no checkmate")
	}

	// The pawn has already left e2
	_, err = engine.MakeMove("e2", "e4", "")
	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("Expected ErrIllegalMove, got %v", err)
	}
}

func TestMakeMoveInvalidSquare(t *testing.T) {
	engine := NewEngine()

	_, err := engine.MakeMove("z9", "e4", "")
	if !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("Expected ErrInvalidSquare, got %v", err)
	}

	_, err = engine.MakeMove("e2", "z9", "")
	if !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("Expected ErrInvalidSquare, got %v", err)
	}
}

func TestNewEngineFromFEN(t *testing.T) {
	validFEN := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	engine, err := NewEngineFromFEN(validFEN)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if engine.GetFEN() != validFEN {
		t.Errorf("Expected FEN %s, got %s", validFEN, engine.GetFEN())
	}

	if engine.GetActiveColor() != "black" {
		t.Errorf("Expected active color black, got %s", engine.GetActiveColor())
	}
}

func TestNewEngineFromInvalidFEN(t *testing.T) {
	_, err := NewEngineFromFEN("invalid-fen")
	if !errors.Is(err, ErrInvalidFEN) {
		t.Errorf("Expected ErrInvalidFEN, got %v", err)
	}
}

func TestParsePromotion(t *testing.T) {
	tests := []struct {
		input    string
		expected PieceKind
	}{
		{"q", Queen},
		{"r", Rook},
		{"b", Bishop},
		{"n", Knight},
		{"knight", Knight},
		{"x", NoPieceKind},
		{"", NoPieceKind},
	}

	for _, test := range tests {
		result := ParsePromotion(test.input)
		if result != test.expected {
			t.Errorf("ParsePromotion(%s) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestMakeMovePromotion(t *testing.T) {
	engine, err := NewEngineFromFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	result, err := engine.MakeMove("a7", "a8", "n")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Kind != "promotion" || result.Promotion != "knight" {
		t.Errorf("Expected knight promotion, got %s %s", result.Kind, result.Promotion)
	}
	if result.FEN != "N7/7k/8/8/8/8/8/K7 b - - 0 1" {
		t.Errorf("Unexpected FEN %s", result.FEN)
	}
	// King and knight cannot mate a bare king.
	if !result.Draw || engine.GetReason() != "insufficient_material" {
		t.Errorf("Expected draw by insufficient material, got %+v", result)
	}
}

func TestMakeMoveUnknownPromotion(t *testing.T) {
	engine, err := NewEngineFromFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	before := engine.GetFEN()

	for _, promo := range []string{"x", "king", "pawn"} {
		_, err := engine.MakeMove("a7", "a8", promo)
		if !errors.Is(err, ErrIllegalMove) {
			t.Errorf("promotion %q: expected ErrIllegalMove, got %v", promo, err)
		}
	}
	if engine.GetFEN() != before {
		t.Errorf("Expected position unchanged, got %s", engine.GetFEN())
	}

	// A non-promoting move with a bad piece letter is rejected as well.
	if _, err := engine.MakeMove("a1", "b1", "x"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("Expected ErrIllegalMove, got %v", err)
	}
}

func TestMakeMoveAfterMate(t *testing.T) {
	engine := NewEngine()
	moves := [][2]string{{"f2", "f3"}, {"e7", "e5"}, {"g2", "g4"}, {"d8", "h4"}}
	var result *MoveResult
	var err error
	for _, m := range moves {
		result, err = engine.MakeMove(m[0], m[1], "")
		if err != nil {
			t.Fatalf("Failed to make move %s-%s: %v", m[0], m[1], err)
		}
	}

	if !result.Checkmate || !result.GameOver {
		t.Fatalf("Expected checkmate, got %+v", result)
	}
	if engine.GetStatus() != StatusBlackWon {
		t.Errorf("Expected %s, got %s", StatusBlackWon, engine.GetStatus())
	}

	_, err = engine.MakeMove("a2", "a3", "")
	if !errors.Is(err, ErrGameOver) {
		t.Errorf("Expected ErrGameOver, got %v", err)
	}
}

func TestLegalMovesFrom(t *testing.T) {
	engine := NewEngine()

	moves, err := engine.LegalMovesFrom("g1")
	if err != nil {
		t.Fatal(err)
	}
	if len(moves) != 2 {
		t.Fatalf("Expected 2 knight moves, got %d", len(moves))
	}

	if _, err := engine.LegalMovesFrom("i1"); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("Expected ErrInvalidSquare, got %v", err)
	}
}

func TestEngineFlagFall(t *testing.T) {
	now := time.Unix(0, 0)
	clock := NewClock(Bullet, WithNow(func() time.Time { return now }))
	engine := NewEngine(WithClock(clock))

	now = now.Add(10 * time.Second)
	if _, err := engine.MakeMove("e2", "e4", ""); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if clock.Remaining(White) != 50*time.Second {
		t.Errorf("Expected 50s for white, got %v", clock.Remaining(White))
	}

	now = now.Add(2 * time.Minute)
	_, err := engine.MakeMove("e7", "e5", "")
	if !errors.Is(err, ErrTimeExhausted) || !errors.Is(err, ErrGameOver) {
		t.Fatalf("Expected flag fall, got %v", err)
	}
	if engine.GetStatus() != StatusWhiteWon {
		t.Errorf("Expected %s, got %s", StatusWhiteWon, engine.GetStatus())
	}
	if !engine.CheckFlag() {
		t.Error("Expected CheckFlag to report the loss on time")
	}
}

func TestGetMoves(t *testing.T) {
	engine := NewEngine()
	for _, m := range [][2]string{{"e2", "e4"}, {"e7", "e5"}, {"g1", "f3"}} {
		if _, err := engine.MakeMove(m[0], m[1], ""); err != nil {
			t.Fatal(err)
		}
	}

	moves := engine.GetMoves()
	expected := []string{"e2e4", "e7e5", "g1f3"}
	if len(moves) != len(expected) {
		t.Fatalf("Expected %d moves, got %d", len(expected), len(moves))
	}
	for i := range expected {
		if moves[i] != expected[i] {
			t.Errorf("Move %d: expected %s, got %s", i, expected[i], moves[i])
		}
	}
}

func TestParseMove(t *testing.T) {
	from, to, promo, err := ParseMove("e7e8q")
	if err != nil {
		t.Fatal(err)
	}
	if from != "e7" || to != "e8" || promo != "q" {
		t.Errorf("Unexpected split %s %s %s", from, to, promo)
	}

	if _, _, _, err := ParseMove("e7"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("Expected ErrIllegalMove, got %v", err)
	}
}

func TestGetPieceValues(t *testing.T) {
	engine := NewEngine()
	values := engine.GetPieceValues()

	expectedValues := map[string]int{
		"pawn":   1,
		"knight": 3,
		"bishop": 3,
		"rook":   5,
		"queen":  9,
		"king":   0,
	}

	for piece, expectedValue := range expectedValues {
		if value, ok := values[piece]; !ok || value != expectedValue {
			t.Errorf("Expected %s value %d, got %d", piece, expectedValue, value)
		}
	}
}
