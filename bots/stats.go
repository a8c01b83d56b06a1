package bots

import (
	"time"

	"github.com/rs/zerolog"
)

// Stats counts the work done by one move selection.
type Stats struct {
	Nodes     uint64 // #negamax nodes visited
	QNodes    uint64 // #quiescence nodes visited
	Mates     uint64 // #checkmates found in the tree
	Cutoffs   uint64 // #(beta-)cut nodes, both searches
	RootMoves int    // #root candidates fully searched
	Elapsed   time.Duration
	TimedOut  bool // the deadline stopped the root loop
	Random    bool // the move was picked at random
}

func (s Stats) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("nodes", s.Nodes).
		Uint64("qnodes", s.QNodes).
		Uint64("mates", s.Mates).
		Uint64("cutoffs", s.Cutoffs).
		Int("root_moves", s.RootMoves).
		Dur("elapsed", s.Elapsed).
		Bool("timed_out", s.TimedOut).
		Bool("random", s.Random)
}
