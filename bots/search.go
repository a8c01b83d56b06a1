package bots

import (
	"time"

	"chessai/rules"
)

const (
	// MateScore is what a checkmated side scores from its own point of view,
	// negated. It dominates any material sum.
	MateScore = 1_000_000
	// MaxScore and MinScore bound the root window. Both leave room below the
	// int limits for negation and the +1 offset.
	MaxScore = 1 << 30
	MinScore = -MaxScore
)

// searcher holds what stays fixed during one move selection. Everything
// that varies per node is passed as an argument.
type searcher struct {
	eval          PositionEvaluator
	quiesce       bool
	extend        bool
	maxExtensions int
	deadline      time.Time // zero means none
	now           func() time.Time
	stats         Stats
}

func (s *searcher) expired() bool {
	return !s.deadline.IsZero() && s.now().After(s.deadline)
}

// extension is 1 for captures, promotions and checks while the path has
// extensions left.
func (s *searcher) extension(b rules.Board, m rules.Move, used int) int {
	if !s.extend || used >= s.maxExtensions {
		return 0
	}
	if b.IsCapture(m) || m.IsPromotion() || b.GivesCheck(m) {
		return 1
	}
	return 0
}

// negamax returns the value of b for the side to move, whose sign is
// given. used counts the extensions already granted on this path.
func (s *searcher) negamax(b rules.Board, depth, alpha, beta, sign, used int) int {
	s.stats.Nodes++

	switch b.Status() {
	case rules.Checkmate:
		s.stats.Mates++
		return -MateScore
	case rules.Stalemate, rules.OtherDraw:
		return 0
	}

	if s.expired() {
		return sign * s.eval.Evaluate(b)
	}
	if depth <= 0 {
		if s.quiesce {
			return s.quiescence(b, alpha, beta, sign)
		}
		return sign * s.eval.Evaluate(b)
	}

	best := MinScore
	for _, m := range OrderMoves(b, b.LegalMoves()) {
		child, err := b.Apply(m)
		if err != nil {
			continue
		}
		ext := s.extension(b, m, used)
		score := -s.negamax(child, depth-1+ext, -beta, -alpha, -sign, used+ext)

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.stats.Cutoffs++
			break
		}
	}
	return best
}
