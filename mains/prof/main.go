// Profiles one fixed-depth search from a given position. The CPU profile
// is written to a temporary directory named on startup.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chessai/bots"
	"chessai/rules"
)

// Kiwipete: lots of captures, checks and promotions nearby.
const defaultFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

func main() {
	fen := flag.String("fen", defaultFEN, "position to search")
	depth := flag.Int("depth", 4, "search depth")
	mem := flag.Bool("mem", false, "memory profile instead of CPU")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	board, err := rules.FromFEN(*fen)
	if err != nil {
		log.Fatal().Err(err).Msg("parse-fen")
	}

	mode := profile.CPUProfile
	if *mem {
		mode = profile.MemProfile
	}
	defer profile.Start(mode, profile.NoShutdownHook).Stop()

	s := bots.DefaultSettings()
	s.BaseDepth = *depth
	s.TimeBudget = 0
	res := bots.NewMinimaxBot(s).Search(board, nil)

	fmt.Println("info depth", res.Depth, "score cp", res.Score, "nodes", res.Stats.Nodes, "qnodes", res.Stats.QNodes,
		"time", res.Stats.Elapsed.Milliseconds(), "pv", res.Move)
	fmt.Println("bestmove", res.Move)
}
