// UCI front end for the minimax bot. Logs go to stderr so stdout carries
// only protocol lines.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"chessai/bots"
	"chessai/config"
	"chessai/rules"
)

var VersionString = "1.0 " + runtime.GOOS + "-" + runtime.GOARCH

func main() {
	configFile := flag.String("config", "", "YAML engine config")
	writeConfig := flag.String("write-config", "", "write the effective config to this file and exit")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load-config")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	if *writeConfig != "" {
		if err := cfg.Save(*writeConfig); err != nil {
			log.Fatal().Err(err).Msg("write-config")
		}
		log.Info().Str("file", *writeConfig).Msg("config-written")
		return
	}

	e := newEngine(cfg.Settings(), os.Stdout)
	if err := e.uciLoop(os.Stdin); err != nil {
		log.Fatal().Err(err).Msg("uci-loop")
	}
}

// loadConfig returns the defaults when filename is empty.
func loadConfig(filename string) (config.Config, error) {
	if filename == "" {
		return config.Default(), nil
	}
	return config.Load(filename)
}

// engine holds the protocol state between commands.
type engine struct {
	settings bots.Settings
	board    rules.Board
	history  []rules.Move
	out      io.Writer
}

func newEngine(settings bots.Settings, out io.Writer) *engine {
	return &engine{settings: settings, board: rules.Start(), out: out}
}

func (e *engine) println(a ...interface{}) {
	fmt.Fprintln(e.out, a...)
}

func (e *engine) uciLoop(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 {
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			e.println("id name chessai", VersionString)
			e.println("id author chessai")
			e.println("option name Difficulty type combo default", e.settings.Difficulty, "var easy var medium var hard")
			e.println("option name BaseDepth type spin default", e.settings.BaseDepth, "min 1 max 64")
			e.println("option name TimeBudget type spin default", e.settings.TimeBudget.Milliseconds(), "min 0 max 3600000")
			e.println("uciok")
		case "isready":
			e.println("readyok")
		case "ucinewgame":
			e.board, e.history = rules.Start(), nil
		case "quit":
			return nil
		case "setoption":
			e.setOption(tokens)
		case "position":
			if err := e.position(tokens[1:]); err != nil {
				e.println("info string", err)
			}
		case "go":
			e.search(tokens[1:])
		default:
			e.println("info string Unknown command:", line)
		}
	}
	return scanner.Err()
}

func (e *engine) setOption(tokens []string) {
	if len(tokens) != 5 || tokens[1] != "name" || tokens[3] != "value" {
		e.println("info string Malformed setoption command")
		return
	}
	switch strings.ToLower(tokens[2]) {
	case "difficulty":
		d, err := bots.ParseDifficulty(tokens[4])
		if err != nil {
			e.println("info string", err)
			return
		}
		e.settings.Difficulty = d
	case "basedepth":
		n, err := strconv.Atoi(tokens[4])
		if err != nil || n < 1 {
			e.println("info string BaseDepth must be a positive int:", tokens[4])
			return
		}
		e.settings.BaseDepth = n
	case "timebudget":
		ms, err := strconv.Atoi(tokens[4])
		if err != nil || ms < 0 {
			e.println("info string TimeBudget must be a non-negative int:", tokens[4])
			return
		}
		e.settings.TimeBudget = time.Duration(ms) * time.Millisecond
	default:
		e.println("info string Unknown UCI option", tokens[2])
	}
}

// position handles "startpos|fen <fen> [moves m1 m2 ...]".
func (e *engine) position(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("malformed position command")
	}
	var board rules.Board
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		board = rules.Start()
	case "fen":
		end := len(rest)
		for i, tok := range rest {
			if strings.ToLower(tok) == "moves" {
				end = i
				break
			}
		}
		var err error
		if board, err = rules.FromFEN(strings.Join(rest[:end], " ")); err != nil {
			return err
		}
		rest = rest[end:]
	default:
		return fmt.Errorf("invalid position subcommand %q", args[0])
	}

	var history []rules.Move
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, s := range rest[1:] {
			m, err := rules.ParseMove(board, strings.ToLower(s))
			if err != nil {
				return fmt.Errorf("move %s: %w", s, err)
			}
			if board, err = board.Apply(m); err != nil {
				return err
			}
			history = append(history, m)
		}
	}
	e.board, e.history = board, history
	return nil
}

// search handles "go [depth N] [movetime MS]". Other subcommands are ignored.
func (e *engine) search(args []string) {
	settings := e.settings
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "depth", "movetime":
			if i+1 >= len(args) {
				e.println("info string Malformed go command option", args[i])
				continue
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 0 {
				e.println("info string Malformed go command option", args[i], args[i+1])
				i++
				continue
			}
			if args[i] == "depth" {
				settings.BaseDepth = n
				settings.Difficulty = bots.Medium
			} else {
				settings.TimeBudget = time.Duration(n) * time.Millisecond
			}
			i++
		}
	}

	res := bots.NewMinimaxBot(settings).Search(e.board, e.history)
	if !res.Found {
		e.println("bestmove", rules.NoMove)
		return
	}

	// UCI scores are from the engine's point of view, which Result already is.
	ms := res.Stats.Elapsed.Milliseconds()
	e.println("info depth", res.Depth, "score cp", res.Score, "nodes", res.Stats.Nodes+res.Stats.QNodes, "time", ms, "pv", res.Move)
	e.println("bestmove", res.Move)
}
