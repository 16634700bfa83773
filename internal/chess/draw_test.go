package chess

import (
	"testing"
)

func TestDrawDetection(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		moves    [][2]string
		wantDraw bool
		drawType string
	}{
		{
			name:     "Stalemate position",
			fen:      "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", // Black king in stalemate
			wantDraw: true,
			drawType: "stalemate",
		},
		{
			name:     "Insufficient material - King vs King",
			fen:      "8/8/8/4k3/8/3K4/8/8 w - - 0 1",
			wantDraw: true,
			drawType: "insufficient_material",
		},
		{
			name:     "Insufficient material - King and Bishop vs King",
			fen:      "8/8/8/4k3/8/3KB3/8/8 w - - 0 1",
			wantDraw: true,
			drawType: "insufficient_material",
		},
		{
			name:     "Insufficient material - King and Knight vs King",
			fen:      "8/8/8/4k3/8/3KN3/8/8 w - - 0 1",
			wantDraw: true,
			drawType: "insufficient_material",
		},
		{
			name:     "Fifty move rule",
			fen:      "8/8/8/4k3/8/3K3R/8/8 w - - 100 80",
			wantDraw: true,
			drawType: "fifty_move_rule",
		},
		{
			name:     "Fifty move rule reached by a quiet move",
			fen:      "8/8/8/4k3/8/3K3R/8/8 w - - 99 80",
			moves:    [][2]string{{"h3", "h1"}},
			wantDraw: true,
			drawType: "fifty_move_rule",
		},
		{
			name:     "Stalemate reached by a move",
			fen:      "7k/8/6K1/8/8/8/8/5Q2 w - - 0 1",
			moves:    [][2]string{{"f1", "f7"}},
			wantDraw: true,
			drawType: "stalemate",
		},
		{
			name:     "Rook endgame is not a draw",
			fen:      "8/8/8/4k3/8/3K3R/8/8 w - - 0 1",
			wantDraw: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := NewEngineFromFEN(tt.fen)
			if err != nil {
				t.Fatalf("Failed to create engine from FEN: %v", err)
			}

			for _, move := range tt.moves {
				if _, err := engine.MakeMove(move[0], move[1], ""); err != nil {
					t.Fatalf("Failed to make move %s-%s: %v", move[0], move[1], err)
				}
			}

			isDraw := engine.GetStatus() == StatusDraw
			if isDraw != tt.wantDraw {
				t.Errorf("Expected draw=%v, got status %s", tt.wantDraw, engine.GetStatus())
			}
			if tt.wantDraw && engine.GetReason() != tt.drawType {
				t.Errorf("Expected draw type %s, got %s", tt.drawType, engine.GetReason())
			}
		})
	}
}
