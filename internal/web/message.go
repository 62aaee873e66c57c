package web

import (
	"math"

	"github.com/tomz197/skyraid/internal/loop"
	"github.com/tomz197/skyraid/internal/object"
)

// clientMessage is a browser event.
//
//	{"type":"key","code":"ArrowLeft","down":true}
//	{"type":"resize","width":400,"height":500}
//	{"type":"blur"}
type clientMessage struct {
	Type   string  `json:"type"`
	Code   string  `json:"code,omitempty"`
	Down   bool    `json:"down,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

type rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func rectOf(e object.Entity) rect {
	return rect{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}

type kindRect struct {
	rect
	Kind string `json:"kind"`
}

type powerUp struct {
	Kind      string  `json:"kind"`
	Remaining float64 `json:"remaining"` // Seconds
}

type explosion struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"r"`
}

// frameMessage is the JSON form of a loop.Snapshot sent once per frame.
type frameMessage struct {
	Type  string `json:"type"`
	Phase string `json:"phase"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scroll float64 `json:"scroll"`

	Score         int  `json:"score"`
	HighScore     int  `json:"highScore"`
	Stage         int  `json:"stage"`
	Lives         int  `json:"lives"`
	StageScore    int  `json:"stageScore"`
	Kills         int  `json:"kills"`
	KillsRequired int  `json:"killsRequired"`
	StageClear    bool `json:"stageClear"`
	Boss          bool `json:"boss"`

	Player      *rect       `json:"player"` // Nil while blinked out
	Shield      bool        `json:"shield"`
	PowerUps    []powerUp   `json:"powerUps"`
	Projectiles []rect      `json:"projectiles"`
	Adversaries []kindRect  `json:"adversaries"`
	Pickups     []kindRect  `json:"pickups"`
	Explosions  []explosion `json:"explosions"`
}

func newFrameMessage(s loop.Snapshot) frameMessage {
	st := s.Session
	m := frameMessage{
		Type:          "frame",
		Phase:         st.Phase.String(),
		Width:         s.Screen.Width,
		Height:        s.Screen.Height,
		Scroll:        s.Scroll,
		Score:         st.Score,
		HighScore:     st.HighScore,
		Stage:         st.Stage,
		Lives:         st.Lives,
		StageScore:    s.StageScore,
		Kills:         s.KillCount,
		KillsRequired: s.KillsRequired,
		StageClear:    s.StageClear,
		Boss:          s.Settings.BossLevel,
		Shield:        s.Player.HasPowerUp(object.PowerUpShield),
		PowerUps:      make([]powerUp, 0, len(s.Player.PowerUps)),
		Projectiles:   make([]rect, 0, len(s.Projectiles)),
		Adversaries:   make([]kindRect, 0, len(s.Adversaries)),
		Pickups:       make([]kindRect, 0, len(s.Pickups)),
		Explosions:    make([]explosion, 0, len(s.Explosions)),
	}

	if s.PlayerVisible {
		r := rectOf(s.Player.Entity)
		m.Player = &r
	}
	for _, pu := range s.Player.PowerUps {
		left := max(pu.ExpiresAt.Sub(s.Time).Seconds(), 0)
		m.PowerUps = append(m.PowerUps, powerUp{Kind: pu.Kind.String(), Remaining: math.Ceil(left)})
	}
	for _, p := range s.Projectiles {
		m.Projectiles = append(m.Projectiles, rectOf(p.Entity))
	}
	for _, a := range s.Adversaries {
		m.Adversaries = append(m.Adversaries, kindRect{rect: rectOf(a.Entity), Kind: a.Kind.String()})
	}
	for _, p := range s.Pickups {
		m.Pickups = append(m.Pickups, kindRect{rect: rectOf(p.Entity), Kind: p.Kind.String()})
	}
	for _, e := range s.Explosions {
		m.Explosions = append(m.Explosions, explosion{X: e.X, Y: e.Y, Radius: e.Size / 2 * e.Scale})
	}
	return m
}
