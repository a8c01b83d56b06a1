package rules

import "github.com/notnil/chess"

// Move identifies a move by its source, destination and promotion piece.
// Moves are comparable with ==.
type Move struct {
	From  chess.Square
	To    chess.Square
	Promo chess.PieceType
}

// NoMove is the zero Move. It is never legal.
var NoMove = Move{}

// MoveOf converts a notnil/chess move.
func MoveOf(m *chess.Move) Move {
	return Move{From: m.S1(), To: m.S2(), Promo: m.Promo()}
}

// Reverse returns the move travelling back from To to From with the same
// promotion field.
func (m Move) Reverse() Move {
	return Move{From: m.To, To: m.From, Promo: m.Promo}
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Promo != chess.NoPieceType
}

// String returns the move in UCI long algebraic notation, e.g. "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return m.From.String() + m.To.String() + promoSuffix(m.Promo)
}

func promoSuffix(p chess.PieceType) string {
	switch p {
	case chess.Queen:
		return "q"
	case chess.Rook:
		return "r"
	case chess.Bishop:
		return "b"
	case chess.Knight:
		return "n"
	}
	return ""
}
