// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/maztic-arcade/internal/maze"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID               string            `yaml:"id"`
	Name             string            `yaml:"name,omitempty"`
	Seed             uint64            `yaml:"seed"`
	Size             YAMLSize          `yaml:"size"`
	Rows             []string          `yaml:"rows"`
	Balls            []YAMLBall        `yaml:"balls"`
	ConvergenceTicks int               `yaml:"convergence_ticks"`
	Solution         []int             `yaml:"solution,omitempty"`
	Score            int               `yaml:"score,omitempty"`
	Metadata         map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLBall represents a ball start placement.
type YAMLBall struct {
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`
	Dir string `yaml:"dir"`
}

// Level represents a parsed level ready for use.
type Level struct {
	Name     string
	Level    *maze.Level
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	grid, err := maze.ParseGrid(yl.Rows)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}
	if yl.Size.W != 0 || yl.Size.H != 0 {
		if yl.Size.W != grid.W || yl.Size.H != grid.H {
			return Level{}, fmt.Errorf("level %s: size %dx%d does not match rows %dx%d",
				yl.ID, yl.Size.W, yl.Size.H, grid.W, grid.H)
		}
	}

	balls := make([]maze.BallPlace, 0, len(yl.Balls))
	for i, b := range yl.Balls {
		dir, ok := maze.ParseDir(b.Dir)
		if !ok {
			return Level{}, fmt.Errorf("level %s: ball %d: unknown direction %q", yl.ID, i, b.Dir)
		}
		balls = append(balls, maze.BallPlace{Pos: maze.C(b.X, b.Y), Dir: dir})
	}

	level := &maze.Level{
		ID:               yl.ID,
		Seed:             yl.Seed,
		Grid:             grid,
		Balls:            balls,
		ConvergenceTicks: yl.ConvergenceTicks,
		Solution:         yl.Solution,
		Score:            yl.Score,
	}
	if err := level.Validate(); err != nil {
		return Level{}, err
	}

	return Level{
		Name:     yl.Name,
		Level:    level,
		Metadata: yl.Metadata,
	}, nil
}

// EncodeYAML serializes a level to the YAML file format.
func EncodeYAML(l Level) ([]byte, error) {
	if l.Level == nil || l.Level.Grid == nil {
		return nil, fmt.Errorf("encode: empty level")
	}
	ml := l.Level

	yl := YAMLLevel{
		ID:               ml.ID,
		Name:             l.Name,
		Seed:             ml.Seed,
		Size:             YAMLSize{W: ml.Grid.W, H: ml.Grid.H},
		Rows:             ml.Grid.Rows(),
		Balls:            make([]YAMLBall, 0, len(ml.Balls)),
		ConvergenceTicks: ml.ConvergenceTicks,
		Solution:         ml.Solution,
		Score:            ml.Score,
		Metadata:         l.Metadata,
	}
	for _, b := range ml.Balls {
		yl.Balls = append(yl.Balls, YAMLBall{
			X:   b.Pos.X,
			Y:   b.Pos.Y,
			Dir: strings.ToLower(b.Dir.String()),
		})
	}

	data, err := yaml.Marshal(&yl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
