package bots

import (
	"github.com/notnil/chess"
	"lukechampine.com/frand"
)

// Rand is the source of random choices. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

type cryptoRand struct{}

func (cryptoRand) Intn(n int) int { return frand.Intn(n) }

type RandomBot struct {
	Rand Rand
}

func NewRandomBot() *RandomBot {
	return &RandomBot{Rand: cryptoRand{}}
}

func (b *RandomBot) BestMove(game *chess.Game) *chess.Move {
	moves := game.ValidMoves()
	if len(moves) > 0 {
		return moves[b.Rand.Intn(len(moves))]
	}
	return nil
}

func (b *RandomBot) Name() string {
	return "Random Bot"
}
