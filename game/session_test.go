package game

import (
	"errors"
	"os"
	"testing"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"chessai/bots"
	"chessai/rules"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func quickBot() bots.ChessBot {
	s := bots.DefaultSettings()
	s.BaseDepth = 2
	return bots.NewMinimaxBot(s)
}

func TestPlayAndHistory(t *testing.T) {
	s := NewSession(quickBot())
	for _, uci := range []string{"e2e4", "d7d5", "e4d5"} {
		if err := s.PlayUCI(uci); err != nil {
			t.Fatalf("PlayUCI(%s): %v", uci, err)
		}
	}
	history := s.History()
	if len(history) != 3 || history[2].String() != "e4d5" {
		t.Fatalf("history %v", history)
	}
	last, ok := s.LastMove()
	if !ok || last != history[2] {
		t.Fatalf("LastMove = %s, %v", last, ok)
	}
	captured := s.Captured(chess.Black)
	if len(captured) != 1 || captured[0] != chess.BlackPawn {
		t.Fatalf("captured black pieces %v", captured)
	}
	if len(s.Captured(chess.White)) != 0 {
		t.Fatalf("no white piece was captured")
	}

	if err := s.PlayUCI("e2e4"); err == nil {
		t.Fatalf("expected an error replaying e2e4")
	}
}

func TestEnPassantBookkeeping(t *testing.T) {
	s, err := NewSessionFromFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", quickBot())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.PlayUCI("e5d6"); err != nil {
		t.Fatalf("en passant: %v", err)
	}
	captured := s.Captured(chess.Black)
	if len(captured) != 1 || captured[0] != chess.BlackPawn {
		t.Fatalf("captured %v", captured)
	}
}

func TestBotMove(t *testing.T) {
	s := NewSession(quickBot())
	if err := s.PlayUCI("e2e4"); err != nil {
		t.Fatal(err)
	}
	before := s.Board()
	m, err := s.BotMove()
	if err != nil {
		t.Fatalf("BotMove: %v", err)
	}
	if !before.IsLegal(m) {
		t.Fatalf("bot played illegal move %s", m)
	}
	if s.Board().Turn() != chess.White {
		t.Fatalf("expected white to move after the bot")
	}

	s.SetBot(nil)
	if _, err := s.BotMove(); !errors.Is(err, ErrNoBot) {
		t.Fatalf("expected ErrNoBot, got %v", err)
	}
}

func TestGameOver(t *testing.T) {
	s, err := NewSessionFromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", quickBot())
	if err != nil {
		t.Fatal(err)
	}
	if !s.Over() {
		t.Fatalf("checkmate should end the game")
	}
	if got := s.Eval(); got != -bots.MateScore {
		t.Fatalf("Eval = %d, want %d", got, -bots.MateScore)
	}
	if _, err := s.BotMove(); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
	if err := s.Play(rules.Move{From: chess.A2, To: chess.A3}); !errors.Is(err, ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}

	s.Reset()
	if s.Over() || len(s.History()) != 0 {
		t.Fatalf("reset should start a fresh game")
	}
	if s.Eval() != 0 {
		t.Fatalf("start position eval %d", s.Eval())
	}
}

func TestMovesBetweenPromotion(t *testing.T) {
	s, err := NewSessionFromFEN("4k3/1P6/8/8/8/8/8/4K3 w - - 0 1", quickBot())
	if err != nil {
		t.Fatal(err)
	}
	if got := len(s.MovesBetween(chess.B7, chess.B8)); got != 4 {
		t.Fatalf("got %d promotion moves, want 4", got)
	}
	if got := len(s.MovesBetween(chess.E1, chess.E2)); got != 1 {
		t.Fatalf("got %d king moves, want 1", got)
	}
}

func TestUndoTakesBackTwoPlies(t *testing.T) {
	s := NewSession(quickBot())
	for _, uci := range []string{"e2e4", "d7d5", "e4d5", "d8d5", "b1c3"} {
		if err := s.PlayUCI(uci); err != nil {
			t.Fatalf("PlayUCI(%s): %v", uci, err)
		}
	}
	if len(s.Captured(chess.White)) != 1 || len(s.Captured(chess.Black)) != 1 {
		t.Fatalf("expected one capture each before undo")
	}

	if err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	history := s.History()
	if len(history) != 3 || history[2].String() != "e4d5" {
		t.Fatalf("history after undo %v", history)
	}
	want := "rnbqkbnr/ppp1pppp/8/3P4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 2"
	if got := s.Board().FEN(); got != want {
		t.Fatalf("fen %s, want %s", got, want)
	}
	if got := s.Captured(chess.Black); len(got) != 1 || got[0] != chess.BlackPawn {
		t.Fatalf("captured black %v", got)
	}
	if got := s.Captured(chess.White); len(got) != 0 {
		t.Fatalf("captured white %v, the recapture was taken back", got)
	}

	if err := s.Undo(); err != nil {
		t.Fatalf("second Undo: %v", err)
	}
	if err := s.Undo(); !errors.Is(err, ErrNoUndo) {
		t.Fatalf("expected ErrNoUndo with one ply left, got %v", err)
	}
	if len(s.History()) != 1 {
		t.Fatalf("failed undo should keep the history")
	}
}

func TestUndoAfterMateFromFEN(t *testing.T) {
	start := "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1"
	s, err := NewSessionFromFEN(start, quickBot())
	if err != nil {
		t.Fatal(err)
	}
	for _, uci := range []string{"g1f1", "g8h8", "a1a8"} {
		if err := s.PlayUCI(uci); err != nil {
			t.Fatalf("PlayUCI(%s): %v", uci, err)
		}
	}
	if !s.Over() {
		t.Fatalf("Ra8 should mate")
	}
	if err := s.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if s.Over() || len(s.History()) != 1 {
		t.Fatalf("undo should reopen the game, history %v", s.History())
	}
	if got := s.Board().Piece(chess.A1); got != chess.WhiteRook {
		t.Fatalf("rook back on a1 expected, got %v", got)
	}
}
