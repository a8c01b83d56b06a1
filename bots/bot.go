// bot.go
package bots

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"

	"chessai/rules"
)

// ChessBot is implemented by every move-choosing player.
type ChessBot interface {
	BestMove(game *chess.Game) *chess.Move
	Name() string
}

// PositionEvaluator scores leaf positions for the search.
type PositionEvaluator interface {
	// Evaluate is White-positive.
	Evaluate(b rules.Board) int
	// StandPat is the quiescence baseline, from the point of view of the
	// side whose sign is given.
	StandPat(b rules.Board, sign int) int
	// Material is the material balance alone, White-positive.
	Material(b rules.Board) int
}

var ErrUnknownBot = errors.New("unknown bot")

// BotNames lists the names accepted by New.
var BotNames = []string{"minimax", "random"}

// New builds a bot by name.
func New(name string, settings Settings) (ChessBot, error) {
	switch strings.ToLower(name) {
	case "minimax", "alphabeta", "":
		return NewMinimaxBot(settings), nil
	case "random":
		return NewRandomBot(), nil
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownBot)
}

// historyOf converts the moves played in game, oldest first.
func historyOf(game *chess.Game) []rules.Move {
	played := game.Moves()
	history := make([]rules.Move, len(played))
	for i, m := range played {
		history[i] = rules.MoveOf(m)
	}
	return history
}

// chessMove finds the notnil/chess move of game matching m.
func chessMove(game *chess.Game, m rules.Move) *chess.Move {
	for _, cm := range game.ValidMoves() {
		if rules.MoveOf(cm) == m {
			return cm
		}
	}
	return nil
}
