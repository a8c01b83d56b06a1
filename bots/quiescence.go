package bots

import "chessai/rules"

// quiescence extends a leaf with captures and promotions only, so a
// position is not scored in the middle of an exchange.
func (s *searcher) quiescence(b rules.Board, alpha, beta, sign int) int {
	s.stats.QNodes++

	switch b.Status() {
	case rules.Checkmate:
		s.stats.Mates++
		return -MateScore
	case rules.Stalemate, rules.OtherDraw:
		return 0
	}

	standPat := s.eval.StandPat(b, sign)
	if s.expired() {
		return standPat
	}
	if standPat >= beta {
		s.stats.Cutoffs++
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	var noisy []rules.Move
	for _, m := range b.LegalMoves() {
		if isNoisy(b, m) {
			noisy = append(noisy, m)
		}
	}

	for _, m := range OrderMoves(b, noisy) {
		child, err := b.Apply(m)
		if err != nil {
			continue
		}
		score := -s.quiescence(child, -beta, -alpha, -sign)
		if score >= beta {
			s.stats.Cutoffs++
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
