package config

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyraid/internal/loop"
	"github.com/tomz197/skyraid/internal/score"
)

// Environment variables read by GameOptions.
const (
	TuningEnv    = "SKYRAID_TUNING"
	HighScoreEnv = "SKYRAID_HIGHSCORE"
	FPSEnv       = "SKYRAID_FPS"
)

// GameOptions builds the game template shared by every session of a binary
// from the environment. highScorePath is used when SKYRAID_HIGHSCORE is unset.
func GameOptions(logger *log.Logger, highScorePath string) (loop.Options, error) {
	t, err := LoadTuning(GetEnv(TuningEnv, ""))
	if err != nil {
		return loop.Options{}, fmt.Errorf("load tuning: %w", err)
	}
	return loop.Options{
		Stages:      t.Stages,
		Adversaries: t.Adversaries,
		Store:       score.NewFileStore(GetEnv(HighScoreEnv, highScorePath), logger),
		Logger:      logger,
		TargetFPS:   max(GetEnvInt(FPSEnv, 0), 0),
	}, nil
}
