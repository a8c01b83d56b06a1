package bots

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Difficulty is the coarse skill level of the engine.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("difficulty(%d)", int(d))
}

// ParseDifficulty accepts the names printed by String, in any case, and the
// digits 1-3 used by the menu.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "1":
		return Easy, nil
	case "medium", "2":
		return Medium, nil
	case "hard", "3":
		return Hard, nil
	}
	return Medium, fmt.Errorf("unknown difficulty %q", s)
}

func (d *Difficulty) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDifficulty(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = parsed
	return nil
}

func (d Difficulty) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// Settings are the concrete search parameters of a MinimaxBot.
type Settings struct {
	Difficulty Difficulty
	BaseDepth  int
	// TimeBudget bounds one move selection. Zero or less means no limit.
	TimeBudget time.Duration

	Quiescence    bool
	Extensions    bool
	MaxExtensions int // per path

	// Easy plays a uniformly random move with this probability.
	RandomMoveChance float64
	EasyDepth        int
	HardDepthBonus   int

	// Search DecisiveDepthBonus plies deeper once the material balance
	// reaches DecisiveMaterial centipawns. A zero bonus disables it.
	DecisiveMaterial   int
	DecisiveDepthBonus int

	Weights Weights
}

func DefaultSettings() Settings {
	return Settings{
		Difficulty:         Medium,
		BaseDepth:          3,
		TimeBudget:         5 * time.Second,
		Quiescence:         true,
		Extensions:         true,
		MaxExtensions:      4,
		RandomMoveChance:   0.7,
		EasyDepth:          2,
		HardDepthBonus:     2,
		DecisiveMaterial:   1500,
		DecisiveDepthBonus: 0,
		Weights:            DefaultWeights(),
	}
}

// depthFor resolves the nominal search depth for the difficulty, before
// the material hook.
func (s Settings) depthFor() int {
	depth := s.BaseDepth
	switch s.Difficulty {
	case Easy:
		depth = s.EasyDepth
	case Hard:
		depth = s.BaseDepth + s.HardDepthBonus
	}
	if depth < 1 {
		depth = 1
	}
	return depth
}
