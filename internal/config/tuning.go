package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/stage"
)

// Tuning holds the difficulty tables a game is created with.
type Tuning struct {
	Stages      []stage.Settings
	Adversaries []object.AdversaryType
}

// DefaultTuning returns the built-in tables.
func DefaultTuning() Tuning {
	return Tuning{
		Stages:      stage.DefaultSettings,
		Adversaries: object.DefaultAdversaryTypes,
	}
}

type tuningFile struct {
	Stages      []stage.Settings `yaml:"stages"`
	Adversaries []adversaryEntry `yaml:"adversaries"`
}

type adversaryEntry struct {
	Kind       string  `yaml:"kind"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Speed      float64 `yaml:"speed"`
	ScoreValue int     `yaml:"score"`
	Health     int     `yaml:"health"`
	Pattern    string  `yaml:"pattern"`
}

// LoadTuning reads a YAML tuning file. An empty path returns the defaults;
// a table missing from the file keeps its default.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	return ParseTuning(data)
}

// ParseTuning decodes a tuning document.
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()

	var f tuningFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return t, fmt.Errorf("parse tuning: %w", err)
	}

	if len(f.Stages) > 0 {
		for i, s := range f.Stages {
			if s.EnemySpeedMultiplier <= 0 || s.EnemySpawnRateMultiplier <= 0 {
				return t, fmt.Errorf("parse tuning: stage %d: multipliers must be positive", i+1)
			}
		}
		t.Stages = f.Stages
	}

	if len(f.Adversaries) > 0 {
		types := make([]object.AdversaryType, 0, len(f.Adversaries))
		for i, e := range f.Adversaries {
			at, err := e.toType()
			if err != nil {
				return t, fmt.Errorf("parse tuning: adversary %d: %w", i+1, err)
			}
			types = append(types, at)
		}
		t.Adversaries = types
	}
	return t, nil
}

func (e adversaryEntry) toType() (object.AdversaryType, error) {
	kind, err := object.ParseAdversaryKind(e.Kind)
	if err != nil {
		return object.AdversaryType{}, err
	}
	pattern, err := object.ParseMovementPattern(e.Pattern)
	if err != nil {
		return object.AdversaryType{}, err
	}
	if e.Width <= 0 || e.Height <= 0 || e.Speed <= 0 {
		return object.AdversaryType{}, errors.New("size and speed must be positive")
	}
	if e.Health < 1 {
		return object.AdversaryType{}, errors.New("health must be at least 1")
	}
	return object.AdversaryType{
		Kind:       kind,
		Width:      e.Width,
		Height:     e.Height,
		Speed:      e.Speed,
		ScoreValue: e.ScoreValue,
		Health:     e.Health,
		Pattern:    pattern,
	}, nil
}
