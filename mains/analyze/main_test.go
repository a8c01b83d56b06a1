package main

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"chessai/bots"
)

func TestReadFENs(t *testing.T) {
	fens, err := readFENs(strings.NewReader("# puzzles\n\n  8/8/8/8/8/8/8/K6k w - - 0 1  \nrnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(fens) != 2 || fens[0] != "8/8/8/8/8/8/8/K6k w - - 0 1" {
		t.Fatalf("got %q", fens)
	}
}

func TestAnalyzeKeepsOrder(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	s := bots.DefaultSettings()
	s.BaseDepth = 2
	s.TimeBudget = 0
	fens := []string{
		"3rk3/8/8/8/3Q4/8/8/4K3 b - - 0 1",
		"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	}
	results, err := analyze(context.Background(), s, fens, 2)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Res.Move.String() != "d8d4" {
		t.Fatalf("first position: %s", results[0].Res.Move)
	}
	if results[1].Res.Found {
		t.Fatalf("stalemate has no move")
	}
	if !strings.HasSuffix(format(results[1]), "stalemate") {
		t.Fatalf("format: %q", format(results[1]))
	}
	if !results[2].Board.IsLegal(results[2].Res.Move) {
		t.Fatalf("illegal move %s", results[2].Res.Move)
	}
	for i, r := range results {
		if r.FEN != fens[i] {
			t.Fatalf("result %d is for %q", i, r.FEN)
		}
	}
}

func TestAnalyzeBadFEN(t *testing.T) {
	if _, err := analyze(context.Background(), bots.DefaultSettings(), []string{"not a fen"}, 1); err == nil {
		t.Fatalf("expected an error")
	}
}
