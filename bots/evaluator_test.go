package bots

import (
	"testing"

	"chessai/rules"
)

func TestEvaluateStartIsZero(t *testing.T) {
	e := NewEvaluator(DefaultWeights())
	b := rules.Start()
	if got := e.Evaluate(b); got != 0 {
		t.Fatalf("Evaluate(start) = %d, want 0", got)
	}
	if got := e.StandPat(b, 1); got != 0 {
		t.Fatalf("StandPat(start) = %d, want 0", got)
	}
}

func TestEvaluateSymmetry(t *testing.T) {
	fens := []string{
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"r3k2r/ppp2ppp/2n1bn2/3pp3/3PP3/2N1BN2/PPP2PPP/R3K2R b KQkq - 0 8",
		"4k3/8/8/3q4/8/8/3Q4/4K3 w - - 0 1",
		"2kr3r/ppp2ppp/8/3N4/4n3/8/PPP2PPP/2KR3R b - - 0 15",
		"6k1/5ppp/8/8/8/8/1Q3PPP/6K1 b - - 0 30",
	}
	e := NewEvaluator(DefaultWeights())
	for _, fen := range fens {
		b := mustFEN(t, fen)
		m := mustFEN(t, mirrorFEN(fen))
		if got, want := e.Evaluate(m), -e.Evaluate(b); got != want {
			t.Errorf("%s: mirrored eval %d, want %d", fen, got, want)
		}
		if got, want := e.StandPat(m, m.Sign()), e.StandPat(b, b.Sign()); got != want {
			t.Errorf("%s: mirrored stand pat %d, want %d", fen, got, want)
		}
	}
}

func TestEvaluateTerms(t *testing.T) {
	e := NewEvaluator(DefaultWeights())
	cases := []struct {
		name string
		fen  string
		got  func(rules.Board) int
		want int
	}{
		{"extra queen", "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", e.Material, 900},
		{"black up a rook", "r3k3/8/8/8/8/8/8/4K3 w - - 0 1", e.Material, -500},
		{"pawn on d4", "4k3/8/8/8/3P4/8/8/4K3 w - - 0 1", e.centerControl, 20},
		{"black knight on e5", "4k3/8/8/4n3/8/8/8/4K3 w - - 0 1", e.centerControl, -30},
		{"developed knight and castled king", "4k3/8/8/8/8/5N2/8/R5K1 w - - 0 1", e.development, 30},
		{"black rook off back rank", "4k3/r7/8/8/8/8/8/4K3 w - - 0 1", e.development, -5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.got(mustFEN(t, c.fen)); got != c.want {
				t.Fatalf("got %d, want %d", got, c.want)
			}
		})
	}
}

func TestMobility(t *testing.T) {
	e := NewEvaluator(DefaultWeights())
	// White has a rook, Black only a king: White is far more mobile.
	b := mustFEN(t, "4k3/8/8/8/8/8/8/R3K3 b - - 0 1")
	if got := e.mobilityScore(b); got <= 0 {
		t.Fatalf("mobility = %d, want > 0", got)
	}
	if got := e.mobilityScore(rules.Start()); got != 0 {
		t.Fatalf("mobility at start = %d, want 0", got)
	}
}
