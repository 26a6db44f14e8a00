// Package config holds the settings of a kbpost run.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/OpenTraceLab/kbpost/pkg/annotate"
	"gopkg.in/yaml.v3"
)

// File extensions appended to the input and output base names
const (
	SchematicExt = ".sch"
	BoardExt     = ".kicad_pcb"
)

// Default base names, as written by kbpcb
const (
	DefaultInput  = "keyboard-layout"
	DefaultOutput = "keyboard-layout-out"
)

// ErrSameBasename is returned when input and output name the same files
var ErrSameBasename = errors.New("input and output filenames must be different")

// Config is the full set of run settings
type Config struct {
	Input      string `yaml:"input"`
	Output     string `yaml:"output"`
	LED        bool   `yaml:"led"`
	LEDSymbols bool   `yaml:"led_sym"`
	LEDOffset  int    `yaml:"led_offset"`
	Mode       string `yaml:"mode"`
	Verify     bool   `yaml:"verify"`
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		Input:  DefaultInput,
		Output: DefaultOutput,
		Mode:   string(annotate.ModeBlocks),
	}
}

// Load reads a YAML config file over the defaults. Keys missing from the
// file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations that cannot run. It never touches the
// filesystem.
func (c Config) Validate() error {
	if c.Input == "" || c.Output == "" {
		return fmt.Errorf("input and output must be set")
	}
	if c.Input == c.Output {
		return fmt.Errorf("%w: %q", ErrSameBasename, c.Input)
	}
	if err := c.Options().Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// Options returns the schematic rewrite options
func (c Config) Options() annotate.Options {
	return annotate.Options{
		Mode:       annotate.Mode(c.Mode),
		LED:        c.LED,
		LEDSymbols: c.LEDSymbols,
		LEDOffset:  c.LEDOffset,
	}
}

// Job expands the base names into the four file paths of a run
func (c Config) Job() annotate.Job {
	return annotate.Job{
		SchematicIn:  c.Input + SchematicExt,
		SchematicOut: c.Output + SchematicExt,
		BoardIn:      c.Input + BoardExt,
		BoardOut:     c.Output + BoardExt,
		Options:      c.Options(),
		Verify:       c.Verify,
	}
}
