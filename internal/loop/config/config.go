// Package config centralizes all tunable game parameters.
package config

import "time"

// Playfield - default logical size before the viewport collaborator reports one.
const (
	DefaultWidth  = 400
	DefaultHeight = 500

	// Viewport reports larger than this are clamped.
	MaxPlayfieldWidth  = 4096
	MaxPlayfieldHeight = 4096
)

// Timing
const (
	FireCooldown          = 200 * time.Millisecond
	SpawnBasePeriod       = 1000 * time.Millisecond
	PowerUpDuration       = 10 * time.Second
	HitInvulnerability    = 2 * time.Second
	ShieldInvulnerability = 3 * time.Second
	ExplosionDuration     = 500 * time.Millisecond
	StageClearDisplay     = 3 * time.Second
	GameOverDelay         = 1 * time.Second
)

// Player
const (
	InitialLives       = 3
	PlayerWidth        = 40
	PlayerHeight       = 40
	PlayerBaseSpeed    = 5.0
	PlayerBoostedSpeed = 8.0
	PlayerBottomMargin = 20 // Gap between the player and the bottom edge at spawn
	PlayerBlinkHz      = 10.0
)

// Projectiles
const (
	ProjectileWidth  = 5
	ProjectileHeight = 10
	ProjectileSpeed  = 7.0
	ProjectilePower  = 1
)

// Pickups
const (
	PickupChance = 0.1
	PickupWidth  = 30
	PickupHeight = 30
	PickupSpeed  = 1.0
)

// Explosions
const (
	ExplosionSize = 40.0
)

// Spawning
const (
	UpgradeChancePerStage = 0.1 // Chance per stage above 1 to spawn the next-stronger kind
)

// Stage progression
const (
	BaseKillsRequired     = 20
	KillsRequiredPerStage = 5
)

// Background scroll
const (
	ScrollSpeed  = 2.0
	ScrollPeriod = 200.0
)

// Collision pre-filter margins
const (
	ProjectileHitMargin = 10.0
	PlayerHitMargin     = 50.0
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 100
	MaxTermHeight         = 50
)

// Inactivity
const (
	InactivityWarn       = 90 * time.Second
	InactivityDisconnect = 120 * time.Second
)
