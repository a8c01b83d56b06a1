// Package rules adapts github.com/notnil/chess into the immutable board
// values the search works on. Nothing in this package knows about scoring.
package rules

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/notnil/chess"
)

// ErrIllegalMove is returned when a move is not legal in a position.
var ErrIllegalMove = errors.New("illegal move")

// Board is an immutable chess position. Applying a move returns a new
// Board and never touches the receiver.
type Board struct {
	pos   *chess.Position
	moves []*chess.Move
	null  *nullCache
}

// nullCache holds the null-move result of one position. Copies of a Board
// share it, so it is filled at most once.
type nullCache struct {
	once    sync.Once
	moves   int
	inCheck bool
}

// Start returns the standard initial position.
func Start() Board {
	return FromPosition(chess.NewGame().Position())
}

// FromFEN parses a position in Forsyth-Edwards Notation.
func FromFEN(fen string) (Board, error) {
	opt, err := chess.FEN(strings.TrimSpace(fen))
	if err != nil {
		return Board{}, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	return FromPosition(chess.NewGame(opt).Position()), nil
}

// FromPosition wraps an existing position. The position must not be
// modified afterwards.
func FromPosition(pos *chess.Position) Board {
	// notnil/chess caches the move list lazily inside the position; reading
	// it once here keeps later reads free of writes, so a Board can be
	// shared between goroutines.
	return Board{pos: pos, moves: pos.ValidMoves(), null: &nullCache{}}
}

// Position returns the underlying position.
func (b Board) Position() *chess.Position {
	return b.pos
}

// FEN returns the position in Forsyth-Edwards Notation.
func (b Board) FEN() string {
	return b.pos.String()
}

// Turn returns the side to move.
func (b Board) Turn() chess.Color {
	return b.pos.Turn()
}

// Sign is +1 when White is to move and -1 when Black is.
func (b Board) Sign() int {
	if b.pos.Turn() == chess.White {
		return 1
	}
	return -1
}

// Piece returns the piece on sq, or chess.NoPiece.
func (b Board) Piece(sq chess.Square) chess.Piece {
	return b.pos.Board().Piece(sq)
}

// LegalMoves lists the legal moves in the order notnil/chess generates them.
func (b Board) LegalMoves() []Move {
	out := make([]Move, len(b.moves))
	for i, m := range b.moves {
		out[i] = MoveOf(m)
	}
	return out
}

func (b Board) find(m Move) *chess.Move {
	for _, cm := range b.moves {
		if cm.S1() == m.From && cm.S2() == m.To && cm.Promo() == m.Promo {
			return cm
		}
	}
	return nil
}

// ChessMove returns the notnil/chess move matching m.
func (b Board) ChessMove(m Move) (*chess.Move, bool) {
	cm := b.find(m)
	return cm, cm != nil
}

// IsLegal reports whether m is legal in the position.
func (b Board) IsLegal(m Move) bool {
	return b.find(m) != nil
}

// Apply plays m and returns the resulting position.
func (b Board) Apply(m Move) (Board, error) {
	cm := b.find(m)
	if cm == nil {
		return Board{}, fmt.Errorf("%s in %s: %w", m, b.FEN(), ErrIllegalMove)
	}
	return FromPosition(b.pos.Update(cm)), nil
}

// IsCapture reports whether m lands on an occupied square or takes en passant.
func (b Board) IsCapture(m Move) bool {
	if b.Piece(m.To) != chess.NoPiece {
		return true
	}
	cm := b.find(m)
	return cm != nil && cm.HasTag(chess.EnPassant)
}

// GivesCheck reports whether the position after m has the opponent's king
// attacked.
func (b Board) GivesCheck(m Move) bool {
	cm := b.find(m)
	return cm != nil && cm.HasTag(chess.Check)
}

// InCheck reports whether the side to move is in check.
func (b Board) InCheck() bool {
	_, inCheck := b.nullCounts()
	return inCheck
}

// MoveCount returns the number of legal moves c would have in this piece
// placement. For the side not to move the turn is handed over (a null
// move) and the replies are counted. A null move is illegal while in
// check, so that count is zero in that case.
func (b Board) MoveCount(c chess.Color) int {
	if c == b.Turn() {
		return len(b.moves)
	}
	n, inCheck := b.nullCounts()
	if inCheck {
		return 0
	}
	return n
}

// nullCounts hands the move to the other side and counts its moves. Any of
// those moves landing on the mover's king means the mover is in check.
func (b Board) nullCounts() (int, bool) {
	if b.null == nil {
		return b.nullMove()
	}
	b.null.once.Do(func() {
		b.null.moves, b.null.inCheck = b.nullMove()
	})
	return b.null.moves, b.null.inCheck
}

func (b Board) nullMove() (int, bool) {
	fields := strings.Fields(b.pos.String())
	if len(fields) < 4 {
		return 0, false
	}
	fields[1] = "w"
	if b.Turn() == chess.White {
		fields[1] = "b"
	}
	fields[3] = "-"
	// UnmarshalText skips the game set-up done by chess.FEN.
	var flipped chess.Position
	if err := flipped.UnmarshalText([]byte(strings.Join(fields, " "))); err != nil {
		return 0, false
	}
	moves := flipped.ValidMoves()
	king := b.kingSquare(b.Turn())
	for _, m := range moves {
		if m.S2() == king {
			return len(moves), true
		}
	}
	return len(moves), false
}

func (b Board) kingSquare(c chess.Color) chess.Square {
	want := chess.WhiteKing
	if c == chess.Black {
		want = chess.BlackKing
	}
	board := b.pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if board.Piece(sq) == want {
			return sq
		}
	}
	return chess.NoSquare
}

// ParseMove decodes a UCI move string against the position.
func ParseMove(b Board, s string) (Move, error) {
	cm, err := chess.UCINotation{}.Decode(b.pos, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return NoMove, fmt.Errorf("decode %q: %w", s, err)
	}
	m := MoveOf(cm)
	if !b.IsLegal(m) {
		return NoMove, fmt.Errorf("%s in %s: %w", m, b.FEN(), ErrIllegalMove)
	}
	return m, nil
}
