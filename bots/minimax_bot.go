package bots

import (
	"fmt"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"chessai/rules"
)

// MinimaxBot picks moves with a negamax alpha-beta search shaped by its
// Settings.
type MinimaxBot struct {
	Settings  Settings
	Evaluator PositionEvaluator
	Rand      Rand
	now       func() time.Time
}

// Result is the outcome of one move selection.
type Result struct {
	Move  rules.Move
	Found bool
	Score int // for the side to move
	Depth int
	Stats Stats
}

func NewMinimaxBot(settings Settings) *MinimaxBot {
	return &MinimaxBot{
		Settings:  settings,
		Evaluator: NewEvaluator(settings.Weights),
		Rand:      cryptoRand{},
		now:       time.Now,
	}
}

func (b *MinimaxBot) Name() string {
	return fmt.Sprintf("Minimax Bot (%s, depth %d)", b.Settings.Difficulty, b.Settings.depthFor())
}

func (b *MinimaxBot) BestMove(game *chess.Game) *chess.Move {
	if game == nil {
		return nil
	}
	m, ok := b.ChooseMove(rules.FromPosition(game.Position()), historyOf(game))
	if !ok {
		return nil
	}
	return chessMove(game, m)
}

// ChooseMove returns the move to play in board given the moves played so
// far, oldest first. It reports false only when board has no legal moves.
func (b *MinimaxBot) ChooseMove(board rules.Board, history []rules.Move) (rules.Move, bool) {
	res := b.Search(board, history)
	return res.Move, res.Found
}

// RootCandidates is the legal move list minus the move that would undo
// the side to move's own previous move, which discourages shuffling a
// piece back and forth. history alternates sides, so that move is the
// second to last. This differs from banning the reverse of the last move
// in history: that move belongs to the opponent, so its reverse is never
// legal here. The undo is kept when it is the only legal move.
func RootCandidates(board rules.Board, history []rules.Move) []rules.Move {
	moves := board.LegalMoves()
	banned, ok := BannedMove(history)
	if !ok {
		return moves
	}
	candidates := make([]rules.Move, 0, len(moves))
	for _, m := range moves {
		if m != banned {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return moves
	}
	return candidates
}

// BannedMove returns the reverse of the previous move of the side to move.
func BannedMove(history []rules.Move) (rules.Move, bool) {
	if len(history) < 2 {
		return rules.NoMove, false
	}
	return history[len(history)-2].Reverse(), true
}

// Depth is the search depth the bot uses for board.
func (b *MinimaxBot) Depth(board rules.Board) int {
	depth := b.Settings.depthFor()
	if b.Settings.DecisiveDepthBonus > 0 && abs(b.evaluator().Material(board)) >= b.Settings.DecisiveMaterial {
		depth += b.Settings.DecisiveDepthBonus
	}
	return depth
}

// Search runs one full move selection.
func (b *MinimaxBot) Search(board rules.Board, history []rules.Move) Result {
	now := b.now
	if now == nil {
		now = time.Now
	}
	start := now()

	var res Result
	candidates := RootCandidates(board, history)
	if len(candidates) == 0 {
		return res
	}
	res.Depth = b.Depth(board)

	if b.Settings.Difficulty == Easy && b.rollRandom() {
		res.Move = candidates[b.random().Intn(len(candidates))]
		res.Found = true
		res.Stats.Random = true
		res.Stats.Elapsed = now().Sub(start)
		b.logResult(board, res)
		return res
	}

	s := &searcher{
		eval:          b.evaluator(),
		quiesce:       b.Settings.Quiescence,
		extend:        b.Settings.Extensions,
		maxExtensions: b.Settings.MaxExtensions,
		now:           now,
	}
	if b.Settings.TimeBudget > 0 {
		s.deadline = start.Add(b.Settings.TimeBudget)
	}

	sign := board.Sign()
	for _, m := range OrderMoves(board, candidates) {
		child, err := board.Apply(m)
		if err != nil {
			continue
		}
		ext := s.extension(board, m, 0)
		score := -s.negamax(child, res.Depth-1+ext, MinScore+1, MaxScore, -sign, ext)
		s.stats.RootMoves++

		// first move wins ties
		if !res.Found || score > res.Score {
			res.Move, res.Score, res.Found = m, score, true
		}
		if s.expired() {
			s.stats.TimedOut = true
			break
		}
	}

	res.Stats = s.stats
	res.Stats.Elapsed = now().Sub(start)
	b.logResult(board, res)
	return res
}

func (b *MinimaxBot) evaluator() PositionEvaluator {
	if b.Evaluator == nil {
		return NewEvaluator(b.Settings.Weights)
	}
	return b.Evaluator
}

func (b *MinimaxBot) random() Rand {
	if b.Rand == nil {
		return cryptoRand{}
	}
	return b.Rand
}

// rollRandom succeeds with probability RandomMoveChance.
func (b *MinimaxBot) rollRandom() bool {
	chance := b.Settings.RandomMoveChance
	if chance <= 0 {
		return false
	}
	return b.random().Intn(1000) < int(chance*1000)
}

func (b *MinimaxBot) logResult(board rules.Board, res Result) {
	log.Debug().
		Str("fen", board.FEN()).
		Str("difficulty", b.Settings.Difficulty.String()).
		Int("depth", res.Depth).
		Str("move", res.Move.String()).
		Int("score", res.Score).
		Object("stats", res.Stats).
		Msg("search-done")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
