package bots

import (
	"github.com/notnil/chess"

	"chessai/rules"
)

// Weights are the evaluation terms in centipawns.
type Weights struct {
	Pawn   int `yaml:"pawn"`
	Knight int `yaml:"knight"`
	Bishop int `yaml:"bishop"`
	Rook   int `yaml:"rook"`
	Queen  int `yaml:"queen"`

	Mobility int `yaml:"mobility"`

	CenterPawn   int `yaml:"center_pawn"`
	CenterKnight int `yaml:"center_knight"`
	CenterBishop int `yaml:"center_bishop"`
	CenterRook   int `yaml:"center_rook"`
	CenterQueen  int `yaml:"center_queen"`

	MinorDeveloped int `yaml:"minor_developed"`
	RookDeveloped  int `yaml:"rook_developed"`
	KingCastled    int `yaml:"king_castled"`
}

func DefaultWeights() Weights {
	return Weights{
		Pawn:   100,
		Knight: 320,
		Bishop: 330,
		Rook:   500,
		Queen:  900,

		Mobility: 5,

		CenterPawn:   20,
		CenterKnight: 30,
		CenterBishop: 30,
		CenterRook:   15,
		CenterQueen:  10,

		MinorDeveloped: 10,
		RookDeveloped:  5,
		KingCastled:    20,
	}
}

type DefaultEvaluator struct {
	Weights Weights
}

func NewEvaluator(w Weights) DefaultEvaluator {
	return DefaultEvaluator{Weights: w}
}

var center = []chess.Square{chess.D4, chess.D5, chess.E4, chess.E5}

// Evaluate sums material, mobility and center occupation, White-positive.
// Callers check for mate and stalemate first.
func (e DefaultEvaluator) Evaluate(b rules.Board) int {
	return e.Material(b) + e.mobilityScore(b) + e.centerControl(b)
}

// StandPat adds development and king placement to Evaluate and views the
// result from the side with the given sign.
func (e DefaultEvaluator) StandPat(b rules.Board, sign int) int {
	return sign * (e.Evaluate(b) + e.development(b))
}

func (e DefaultEvaluator) Material(b rules.Board) int {
	var score int
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := b.Piece(sq)
		if piece == chess.NoPiece {
			continue
		}
		score += colorSign(piece.Color()) * e.pieceValue(piece.Type())
	}
	return score
}

func (e DefaultEvaluator) pieceValue(p chess.PieceType) int {
	switch p {
	case chess.Pawn:
		return e.Weights.Pawn
	case chess.Knight:
		return e.Weights.Knight
	case chess.Bishop:
		return e.Weights.Bishop
	case chess.Rook:
		return e.Weights.Rook
	case chess.Queen:
		return e.Weights.Queen
	default:
		return 0
	}
}

func (e DefaultEvaluator) mobilityScore(b rules.Board) int {
	return e.Weights.Mobility * (b.MoveCount(chess.White) - b.MoveCount(chess.Black))
}

func (e DefaultEvaluator) centerControl(b rules.Board) int {
	var score int
	for _, sq := range center {
		piece := b.Piece(sq)
		if piece == chess.NoPiece {
			continue
		}
		score += colorSign(piece.Color()) * e.centerValue(piece.Type())
	}
	return score
}

func (e DefaultEvaluator) centerValue(p chess.PieceType) int {
	switch p {
	case chess.Pawn:
		return e.Weights.CenterPawn
	case chess.Knight:
		return e.Weights.CenterKnight
	case chess.Bishop:
		return e.Weights.CenterBishop
	case chess.Rook:
		return e.Weights.CenterRook
	case chess.Queen:
		return e.Weights.CenterQueen
	default:
		return 0
	}
}

// development rewards minor pieces off the first two ranks, rooks off the
// back rank and a king standing on the c or g file.
func (e DefaultEvaluator) development(b rules.Board) int {
	var score int
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := b.Piece(sq)
		if piece == chess.NoPiece {
			continue
		}
		// rank counted from the owner's side, 0 = back rank
		rank := int(sq.Rank())
		if piece.Color() == chess.Black {
			rank = 7 - rank
		}
		var bonus int
		switch piece.Type() {
		case chess.Knight, chess.Bishop:
			if rank > 1 {
				bonus = e.Weights.MinorDeveloped
			}
		case chess.Rook:
			if rank > 0 {
				bonus = e.Weights.RookDeveloped
			}
		case chess.King:
			if f := sq.File(); f == chess.FileC || f == chess.FileG {
				bonus = e.Weights.KingCastled
			}
		}
		score += colorSign(piece.Color()) * bonus
	}
	return score
}

func colorSign(c chess.Color) int {
	if c == chess.Black {
		return -1
	}
	return 1
}
