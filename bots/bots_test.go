package bots

import (
	"os"
	"strings"
	"testing"
	"unicode"

	"github.com/rs/zerolog"

	"chessai/rules"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func mustFEN(t *testing.T, fen string) rules.Board {
	t.Helper()
	b, err := rules.FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	return b
}

func mustMove(t *testing.T, b rules.Board, uci string) rules.Move {
	t.Helper()
	m, err := rules.ParseMove(b, uci)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", uci, err)
	}
	return m
}

// mirrorFEN swaps colours and flips the board top to bottom. En passant
// squares are dropped.
func mirrorFEN(fen string) string {
	fields := strings.Fields(fen)
	ranks := strings.Split(fields[0], "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	placement := swapCase(strings.Join(ranks, "/"))

	turn := "w"
	if fields[1] == "w" {
		turn = "b"
	}

	castling := "-"
	if fields[2] != "-" {
		var upper, lower string
		for _, r := range swapCase(fields[2]) {
			if unicode.IsUpper(r) {
				upper += string(r)
			} else {
				lower += string(r)
			}
		}
		castling = upper + lower
	}
	return strings.Join([]string{placement, turn, castling, "-", fields[4], fields[5]}, " ")
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsUpper(r) {
			return unicode.ToLower(r)
		}
		return unicode.ToUpper(r)
	}, s)
}

// fixedRand always returns n, clamped to the requested range.
type fixedRand struct{ n int }

func (r fixedRand) Intn(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

func exactSettings(depth int) Settings {
	s := DefaultSettings()
	s.BaseDepth = depth
	s.TimeBudget = 0
	s.Quiescence = false
	s.Extensions = false
	return s
}
