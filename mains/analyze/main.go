// Batch analyzer: reads one FEN per line and prints the chosen move for
// each. Positions are searched on separate goroutines.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"chessai/bots"
	"chessai/config"
	"chessai/rules"
)

type analysis struct {
	FEN   string
	Board rules.Board
	Res   bots.Result
}

func main() {
	configFile := flag.String("config", "", "YAML engine config")
	input := flag.String("in", "", "file with one FEN per line (default stdin)")
	workers := flag.Int("workers", 4, "positions searched at once")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			log.Fatal().Err(err).Msg("load-config")
		}
	}
	zerolog.SetGlobalLevel(cfg.Level())

	var r io.Reader = os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			log.Fatal().Err(err).Msg("open-input")
		}
		defer f.Close()
		r = f
	}

	fens, err := readFENs(r)
	if err != nil {
		log.Fatal().Err(err).Msg("read-input")
	}
	results, err := analyze(context.Background(), cfg.Settings(), fens, *workers)
	if err != nil {
		log.Fatal().Err(err).Msg("analyze")
	}
	for _, a := range results {
		fmt.Println(format(a))
	}
}

// readFENs skips blank lines and lines starting with '#'.
func readFENs(r io.Reader) ([]string, error) {
	var fens []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fens = append(fens, line)
	}
	return fens, scanner.Err()
}

// analyze searches every position, at most workers at a time, and returns
// the results in input order. Each goroutine owns its bot.
func analyze(ctx context.Context, settings bots.Settings, fens []string, workers int) ([]analysis, error) {
	boards := make([]rules.Board, len(fens))
	for i, fen := range fens {
		b, err := rules.FromFEN(fen)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		boards[i] = b
	}

	results := make([]analysis, len(fens))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range boards {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := bots.NewMinimaxBot(settings).Search(boards[i], nil)
			results[i] = analysis{FEN: fens[i], Board: boards[i], Res: res}
			log.Debug().Int("position", i+1).Str("move", res.Move.String()).Object("stats", res.Stats).Msg("analyzed")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func format(a analysis) string {
	if !a.Res.Found {
		return fmt.Sprintf("%s\tnone\t%s", a.FEN, a.Board.Status())
	}
	return fmt.Sprintf("%s\t%s\t%d\tdepth %d\tnodes %d", a.FEN, a.Res.Move, a.Res.Score, a.Res.Depth, a.Res.Stats.Nodes+a.Res.Stats.QNodes)
}
