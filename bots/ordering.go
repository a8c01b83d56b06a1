package bots

import (
	"sort"

	"chessai/rules"
)

// Ordering keys, lower is searched first. A move collects every key that
// applies to it.
const (
	captureKey   = -10000
	promotionKey = -8000
	checkKey     = -5000
)

func moveKey(b rules.Board, m rules.Move) int {
	var key int
	if b.IsCapture(m) {
		key += captureKey
	}
	if m.IsPromotion() {
		key += promotionKey
	}
	if b.GivesCheck(m) {
		key += checkKey
	}
	return key
}

// OrderMoves returns moves sorted so that captures, promotions and checks
// come first. Moves with equal keys keep their relative order. The input
// slice is not modified.
func OrderMoves(b rules.Board, moves []rules.Move) []rules.Move {
	type keyed struct {
		move rules.Move
		key  int
	}
	scored := make([]keyed, len(moves))
	for i, m := range moves {
		scored[i] = keyed{move: m, key: moveKey(b, m)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].key < scored[j].key
	})

	ordered := make([]rules.Move, len(scored))
	for i, s := range scored {
		ordered[i] = s.move
	}
	return ordered
}

// isNoisy reports whether m belongs in the quiescence search.
func isNoisy(b rules.Board, m rules.Move) bool {
	return b.IsCapture(m) || m.IsPromotion()
}
