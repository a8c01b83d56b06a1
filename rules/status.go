package rules

import "github.com/notnil/chess"

// Status classifies a position.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	// OtherDraw is any draw other than stalemate. Only insufficient
	// material is detected from a single position.
	OtherDraw
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case OtherDraw:
		return "draw"
	}
	return "unknown"
}

// Terminal reports whether the game is over.
func (s Status) Terminal() bool {
	return s != Ongoing
}

// Status returns the terminal classification of the position.
func (b Board) Status() Status {
	if len(b.moves) == 0 {
		if b.pos.Status() == chess.Checkmate {
			return Checkmate
		}
		return Stalemate
	}
	if insufficientMaterial(b.pos.Board()) {
		return OtherDraw
	}
	return Ongoing
}

// insufficientMaterial covers K v K, K+minor v K and K+B v K+B with both
// bishops on the same square colour.
func insufficientMaterial(board *chess.Board) bool {
	var minors []chess.Square
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := board.Piece(sq)
		switch p.Type() {
		case chess.NoPieceType, chess.King:
		case chess.Knight, chess.Bishop:
			minors = append(minors, sq)
			if len(minors) > 2 {
				return false
			}
		default:
			return false
		}
	}
	switch len(minors) {
	case 0, 1:
		return true
	case 2:
		a, b := board.Piece(minors[0]), board.Piece(minors[1])
		return a.Type() == chess.Bishop && b.Type() == chess.Bishop &&
			a.Color() != b.Color() && squareShade(minors[0]) == squareShade(minors[1])
	}
	return false
}

func squareShade(sq chess.Square) int {
	return (int(sq.File()) + int(sq.Rank())) % 2
}
