// Package stage tracks per-stage progress and difficulty.
package stage

import (
	"time"

	"github.com/tomz197/skyraid/internal/clock"
	"github.com/tomz197/skyraid/internal/loop/config"
)

// Settings are the difficulty parameters of a stage.
type Settings struct {
	EnemySpeedMultiplier     float64 `yaml:"enemy_speed_multiplier"`
	EnemySpawnRateMultiplier float64 `yaml:"enemy_spawn_rate_multiplier"`
	BossLevel                bool    `yaml:"boss_level"`
}

// DefaultSettings is the built-in stage table, stage 1 first.
var DefaultSettings = []Settings{
	{EnemySpeedMultiplier: 1.0, EnemySpawnRateMultiplier: 1.0},
	{EnemySpeedMultiplier: 1.2, EnemySpawnRateMultiplier: 0.9},
	{EnemySpeedMultiplier: 1.3, EnemySpawnRateMultiplier: 0.8, BossLevel: true},
	{EnemySpeedMultiplier: 1.4, EnemySpawnRateMultiplier: 0.7},
	{EnemySpeedMultiplier: 1.5, EnemySpawnRateMultiplier: 0.6, BossLevel: true},
}

// KillsRequired returns the kill count that clears the stage.
func KillsRequired(stage int) int {
	return config.BaseKillsRequired + (max(stage, 1)-1)*config.KillsRequiredPerStage
}

// Director holds the progress of the current stage and signals when it is
// cleared. Not safe for concurrent use.
type Director struct {
	table  []Settings
	timers *clock.Timers
	delay  time.Duration

	onClear func()

	stageScore         int
	killCount          int
	clearDisplayActive bool
	pending            *clock.Timer
}

// NewDirector creates a director over table (nil for DefaultSettings).
// onClear is called once the stage-clear display has run for its full
// duration; deferred callbacks are scheduled on timers.
func NewDirector(table []Settings, timers *clock.Timers, onClear func()) *Director {
	if len(table) == 0 {
		table = DefaultSettings
	}
	return &Director{
		table:   table,
		timers:  timers,
		delay:   config.StageClearDisplay,
		onClear: onClear,
	}
}

// SettingsFor returns the settings of stage. Stages below 1 map to the
// first entry, stages past the table repeat the last.
func (d *Director) SettingsFor(stage int) Settings {
	idx := max(stage, 1) - 1
	idx = min(idx, len(d.table)-1)
	return d.table[idx]
}

// CheckClear reports whether this call started the stage-clear display.
// It fires once per threshold crossing; calls while the display is active
// do nothing.
func (d *Director) CheckClear(stage int, now time.Time) bool {
	if d.clearDisplayActive || d.killCount < KillsRequired(stage) {
		return false
	}

	d.clearDisplayActive = true
	d.pending = d.timers.AfterFunc(now, d.delay, func() {
		d.pending = nil
		d.clearDisplayActive = false
		if d.onClear != nil {
			d.onClear()
		}
		d.ResetProgress()
	})
	return true
}

// AddScore adds points to the stage score.
func (d *Director) AddScore(points int) {
	d.stageScore += points
}

// RegisterKill counts one confirmed kill.
func (d *Director) RegisterKill() {
	d.killCount++
}

// ResetProgress zeroes the stage score and kill count.
func (d *Director) ResetProgress() {
	d.stageScore = 0
	d.killCount = 0
}

// Reset drops any pending clear notification and all progress.
func (d *Director) Reset() {
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	d.clearDisplayActive = false
	d.ResetProgress()
}

// StageScore returns the points scored in the current stage.
func (d *Director) StageScore() int { return d.stageScore }

// KillCount returns the kills confirmed in the current stage.
func (d *Director) KillCount() int { return d.killCount }

// ClearDisplayActive reports whether the stage-clear display is showing.
func (d *Director) ClearDisplayActive() bool { return d.clearDisplayActive }
