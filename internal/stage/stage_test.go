package stage

import (
	"testing"
	"time"

	"github.com/tomz197/skyraid/internal/clock"
	"github.com/tomz197/skyraid/internal/loop/config"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestSettingsForClampsStage(t *testing.T) {
	d := NewDirector(nil, &clock.Timers{}, nil)
	tests := []struct {
		stage int
		want  Settings
	}{
		{-3, DefaultSettings[0]},
		{0, DefaultSettings[0]},
		{1, DefaultSettings[0]},
		{3, DefaultSettings[2]},
		{5, DefaultSettings[4]},
		{42, DefaultSettings[4]},
	}
	for _, tc := range tests {
		if got := d.SettingsFor(tc.stage); got != tc.want {
			t.Errorf("SettingsFor(%d) = %+v, want %+v", tc.stage, got, tc.want)
		}
	}
}

func TestKillsRequired(t *testing.T) {
	for stage, want := range map[int]int{1: 20, 2: 25, 5: 40, 0: 20} {
		if got := KillsRequired(stage); got != want {
			t.Errorf("KillsRequired(%d) = %d, want %d", stage, got, want)
		}
	}
}

func TestCheckClearFiresOnceThenAdvances(t *testing.T) {
	var timers clock.Timers
	cleared := 0
	d := NewDirector(nil, &timers, func() { cleared++ })

	for i := 0; i < KillsRequired(1)-1; i++ {
		d.RegisterKill()
	}
	d.AddScore(190)
	if d.CheckClear(1, t0) {
		t.Fatal("cleared one kill short of the threshold")
	}

	d.RegisterKill()
	if !d.CheckClear(1, t0) {
		t.Fatal("threshold reached but no clear")
	}
	if !d.ClearDisplayActive() {
		t.Fatal("clear display not active")
	}
	if d.CheckClear(1, t0.Add(time.Second)) {
		t.Fatal("clear re-triggered while displayed")
	}

	timers.Fire(t0.Add(config.StageClearDisplay - time.Millisecond))
	if cleared != 0 {
		t.Fatal("clear notified before the display elapsed")
	}

	timers.Fire(t0.Add(config.StageClearDisplay))
	if cleared != 1 {
		t.Fatalf("cleared = %d, want 1", cleared)
	}
	if d.ClearDisplayActive() || d.KillCount() != 0 || d.StageScore() != 0 {
		t.Fatalf("progress not reset: active=%v kills=%d score=%d",
			d.ClearDisplayActive(), d.KillCount(), d.StageScore())
	}
}

func TestResetCancelsPendingClear(t *testing.T) {
	var timers clock.Timers
	cleared := false
	d := NewDirector(nil, &timers, func() { cleared = true })
	for i := 0; i < KillsRequired(1); i++ {
		d.RegisterKill()
	}
	d.CheckClear(1, t0)

	d.Reset()
	timers.Fire(t0.Add(time.Hour))
	if cleared {
		t.Fatal("clear fired after Reset")
	}
	if d.ClearDisplayActive() {
		t.Fatal("display still active after Reset")
	}
}

func TestCustomTable(t *testing.T) {
	table := []Settings{{EnemySpeedMultiplier: 2, EnemySpawnRateMultiplier: 0.5}}
	d := NewDirector(table, &clock.Timers{}, nil)
	if got := d.SettingsFor(3); got != table[0] {
		t.Fatalf("SettingsFor(3) = %+v", got)
	}
}
