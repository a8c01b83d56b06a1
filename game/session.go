// Package game keeps the state of one game between a player and a bot:
// the notnil/chess game record, the captured pieces and the bot itself.
package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"chessai/bots"
	"chessai/rules"
)

var (
	ErrGameOver = errors.New("game is over")
	ErrNoBot    = errors.New("no bot selected")
	ErrNoUndo   = errors.New("nothing to take back")
	// ErrStale means the position changed while the bot was thinking.
	ErrStale = errors.New("position changed during search")
)

// Session is safe for concurrent use. The bot searches on a copy of the
// game, so the board stays readable while it thinks.
type Session struct {
	mu        sync.Mutex
	startFEN  string // empty for the initial position
	chessGame *chess.Game
	captured  map[chess.Color][]chess.Piece
	bot       bots.ChessBot
	evaluator bots.PositionEvaluator
}

func NewSession(bot bots.ChessBot) *Session {
	s := &Session{
		bot:       bot,
		evaluator: bots.NewEvaluator(bots.DefaultWeights()),
	}
	s.reset(chess.NewGame())
	return s
}

// NewSessionFromFEN starts from a position instead of the initial one.
func NewSessionFromFEN(fen string, bot bots.ChessBot) (*Session, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	s := NewSession(bot)
	s.startFEN = fen
	s.reset(chess.NewGame(opt))
	return s, nil
}

func (s *Session) reset(g *chess.Game) {
	s.chessGame = g
	s.captured = make(map[chess.Color][]chess.Piece)
}

// Reset starts a new game from the initial position with the same bot.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startFEN = ""
	s.reset(chess.NewGame())
}

// Undo takes back the last two plies, the bot's reply and the player's
// move before it, and replays the rest from the starting position.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	played := s.chessGame.Moves()
	if len(played) < 2 {
		return ErrNoUndo
	}
	keep := make([]rules.Move, len(played)-2)
	for i := range keep {
		keep[i] = rules.MoveOf(played[i])
	}

	g := chess.NewGame()
	if s.startFEN != "" {
		opt, err := chess.FEN(s.startFEN)
		if err != nil {
			return fmt.Errorf("parse fen %q: %w", s.startFEN, err)
		}
		g = chess.NewGame(opt)
	}
	s.reset(g)
	for _, m := range keep {
		if err := s.playLocked(m); err != nil {
			return fmt.Errorf("replay %s: %w", m, err)
		}
	}
	return nil
}

func (s *Session) SetBot(bot bots.ChessBot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bot = bot
}

func (s *Session) Bot() bots.ChessBot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bot
}

// SetEvaluator replaces the evaluator used by Eval.
func (s *Session) SetEvaluator(e bots.PositionEvaluator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluator = e
}

func (s *Session) Board() rules.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rules.FromPosition(s.chessGame.Position())
}

// History lists the moves played, oldest first.
func (s *Session) History() []rules.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	played := s.chessGame.Moves()
	history := make([]rules.Move, len(played))
	for i, m := range played {
		history[i] = rules.MoveOf(m)
	}
	return history
}

// LastMove is the most recent move, if any.
func (s *Session) LastMove() (rules.Move, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	played := s.chessGame.Moves()
	if len(played) == 0 {
		return rules.NoMove, false
	}
	return rules.MoveOf(played[len(played)-1]), true
}

// Captured lists the pieces of colour c taken so far, in capture order.
func (s *Session) Captured(c chess.Color) []chess.Piece {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chess.Piece(nil), s.captured[c]...)
}

// Outcome is the notnil/chess result, "*" while the game goes on.
func (s *Session) Outcome() (chess.Outcome, chess.Method) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chessGame.Outcome(), s.chessGame.Method()
}

// Over reports whether no more moves can be played.
func (s *Session) Over() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overLocked()
}

func (s *Session) overLocked() bool {
	if s.chessGame.Outcome() != chess.NoOutcome {
		return true
	}
	return rules.FromPosition(s.chessGame.Position()).Status().Terminal()
}

// Eval scores the current position for White.
func (s *Session) Eval() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := rules.FromPosition(s.chessGame.Position())
	switch b.Status() {
	case rules.Checkmate:
		return -b.Sign() * bots.MateScore
	case rules.Stalemate, rules.OtherDraw:
		return 0
	}
	return s.evaluator.Evaluate(b)
}

// MovesBetween lists the legal moves from one square to another. More than
// one means the player has to pick a promotion piece.
func (s *Session) MovesBetween(from, to chess.Square) []rules.Move {
	var out []rules.Move
	for _, m := range s.Board().LegalMoves() {
		if m.From == from && m.To == to {
			out = append(out, m)
		}
	}
	return out
}

// Play applies a move for the side to move.
func (s *Session) Play(m rules.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playLocked(m)
}

// PlayUCI applies a move given in UCI notation, e.g. "e2e4".
func (s *Session) PlayUCI(uci string) error {
	m, err := rules.ParseMove(s.Board(), uci)
	if err != nil {
		return err
	}
	return s.Play(m)
}

func (s *Session) playLocked(m rules.Move) error {
	if s.overLocked() {
		return ErrGameOver
	}
	b := rules.FromPosition(s.chessGame.Position())
	cm, ok := b.ChessMove(m)
	if !ok {
		return fmt.Errorf("%s: %w", m, rules.ErrIllegalMove)
	}
	if b.IsCapture(m) {
		victim := b.Piece(m.To)
		if victim == chess.NoPiece {
			// en passant
			victim = chess.WhitePawn
			if b.Turn() == chess.White {
				victim = chess.BlackPawn
			}
		}
		s.captured[victim.Color()] = append(s.captured[victim.Color()], victim)
	}
	if err := s.chessGame.Move(cm); err != nil {
		return fmt.Errorf("%s: %w", m, err)
	}
	return nil
}

// BotMove asks the bot for a move and plays it.
func (s *Session) BotMove() (rules.Move, error) {
	s.mu.Lock()
	bot := s.bot
	if bot == nil {
		s.mu.Unlock()
		return rules.NoMove, ErrNoBot
	}
	if s.overLocked() {
		s.mu.Unlock()
		return rules.NoMove, ErrGameOver
	}
	snapshot := s.chessGame.Clone()
	fen := snapshot.Position().String()
	s.mu.Unlock()

	cm := bot.BestMove(snapshot)
	if cm == nil {
		return rules.NoMove, ErrGameOver
	}
	m := rules.MoveOf(cm)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chessGame.Position().String() != fen {
		return rules.NoMove, ErrStale
	}
	if err := s.playLocked(m); err != nil {
		return rules.NoMove, err
	}
	log.Debug().Str("bot", bot.Name()).Str("move", m.String()).Msg("bot-moved")
	return m, nil
}
