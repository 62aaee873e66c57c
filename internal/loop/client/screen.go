package client

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tomz197/skyraid/internal/draw"
	"github.com/tomz197/skyraid/internal/loop"
	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/session"
)

// backgroundStars is the number of scrolling background dots.
const backgroundStars = 40

// drawFrame draws one snapshot. The whole frame, including the clear, goes
// out in one flush to avoid flicker.
func (c *Client) drawFrame(s loop.Snapshot) error {
	cw := c.chunkWriter
	cw.WriteString("\033[H\033[2J")

	c.canvas.Clear()
	c.drawBackground(s)
	if s.Session.Phase != session.NotStarted && !c.state.isInactive {
		c.drawEntities(s)
	}
	c.canvas.Render(cw)
	c.canvas.RenderBorder(cw)

	c.drawUI(s)
	return cw.Flush()
}

// drawBackground scatters dots that scroll down with the snapshot offset.
func (c *Client) drawBackground(s loop.Snapshot) {
	w, h := s.Screen.Width, s.Screen.Height
	for i := 0; i < backgroundStars; i++ {
		x := math.Mod(float64(i*97), w)
		y := math.Mod(float64(i*131)+s.Scroll*float64(1+i%3), h)
		c.canvas.Set(x, y)
	}
}

func (c *Client) drawEntities(s loop.Snapshot) {
	cv := c.canvas

	for _, p := range s.Projectiles {
		cv.FillRect(p.X, p.Y, p.Width, p.Height)
	}

	for _, a := range s.Adversaries {
		switch a.Kind {
		case object.AdversarySmall:
			cv.FillRect(a.X, a.Y, a.Width, a.Height)
		case object.AdversaryMedium:
			cv.FillPolygon([]draw.Point{
				{X: a.X + a.Width/2, Y: a.Y + a.Height},
				{X: a.X + a.Width, Y: a.Y + a.Height/2},
				{X: a.X + a.Width/2, Y: a.Y},
				{X: a.X, Y: a.Y + a.Height/2},
			})
		default:
			cv.StrokeRect(a.X, a.Y, a.Width, a.Height)
			cv.DrawLine(draw.Point{X: a.X, Y: a.Y}, draw.Point{X: a.X + a.Width, Y: a.Y + a.Height})
			cv.DrawLine(draw.Point{X: a.X + a.Width, Y: a.Y}, draw.Point{X: a.X, Y: a.Y + a.Height})
		}
	}

	for _, p := range s.Pickups {
		cv.StrokeRect(p.X, p.Y, p.Width, p.Height)
	}

	for _, e := range s.Explosions {
		cv.Ring(e.X, e.Y, e.Size/2*e.Scale)
	}

	if s.PlayerVisible {
		p := s.Player
		cv.FillPolygon([]draw.Point{
			{X: p.X + p.Width/2, Y: p.Y},
			{X: p.X + p.Width, Y: p.Y + p.Height},
			{X: p.X, Y: p.Y + p.Height},
		})
		if p.HasPowerUp(object.PowerUpShield) {
			cx, cy := p.Center()
			cv.Ring(cx, cy, p.Width*0.75)
		}
	}
}

// pickupGlyph labels a pickup box by its effect.
func pickupGlyph(k object.PowerUpKind) string {
	switch k {
	case object.PowerUpSpeed:
		return "S"
	case object.PowerUpDoubleFire:
		return "D"
	case object.PowerUpShield:
		return "O"
	case object.PowerUpBomb:
		return "B"
	}
	return "?"
}

// drawUI draws text overlays for the current phase.
func (c *Client) drawUI(s loop.Snapshot) {
	if c.state.isInactive {
		c.drawInactivityScreen(s.Time)
		return
	}

	switch s.Session.Phase {
	case session.NotStarted:
		c.drawStartScreen(s)
	case session.Playing:
		c.drawPlayingHUD(s)
		if s.StageClear {
			c.drawStageClear(s)
		}
	case session.Paused:
		c.drawPlayingHUD(s)
		c.drawPauseScreen()
	case session.GameOver:
		c.drawGameOverScreen(s)
	}
}

func (c *Client) centered(row int, lines ...string) {
	for i, line := range lines {
		c.chunkWriter.WriteCentered(c.canvas.Cols(), row+i, line)
	}
}

func (c *Client) drawStartScreen(s loop.Snapshot) {
	titleArt := []string{
		` ___ _  ____   _____    _   ___ ___  `,
		`/ __| |/ /\ \ / / _ \  /_\ |_ _|   \ `,
		`\__ \ ' <  \ V /|   / / _ \ | || |) |`,
		`|___/_|\_\  |_| |_|_\/_/ \_\___|___/ `,
	}
	top := max(c.canvas.Rows()/2-8, 1)
	c.centered(top, titleArt...)
	c.centered(top+len(titleArt)+1, "~ vertical shooter ~")

	controls := []string{
		"Controls",
		"arrows / WASD . . .  Move",
		"SPACE  . . . . . . . Fire",
		"ESC  . . . . . . .  Pause",
		"Q  . . . . . . . . . Quit",
	}
	c.centered(top+len(titleArt)+3, controls...)

	row := top + len(titleArt) + len(controls) + 4
	c.centered(row, fmt.Sprintf("High score: %d", s.Session.HighScore))
	if blinkOn(s.Time) {
		c.centered(row+2, ">>  Press SPACE to Start  <<")
	}
}

// drawPlayingHUD draws the status lines above and below the playfield and
// labels the pickups.
func (c *Client) drawPlayingHUD(s loop.Snapshot) {
	cw := c.chunkWriter
	cols, rows := c.canvas.Cols(), c.canvas.Rows()
	st := s.Session

	left := fmt.Sprintf("Score: %-7d Stage: %-3d", st.Score, st.Stage)
	if s.Settings.BossLevel {
		left += " BOSS"
	}
	cw.WriteAt(1, -1, left)
	lives := "Lives: " + strings.Repeat("♥", st.Lives)
	cw.WriteAt(max(cols-len([]rune(lives))+1, 1), -1, lives)

	status := fmt.Sprintf("Kills: %d/%d", s.KillCount, s.KillsRequired)
	for _, pu := range s.Player.PowerUps {
		remaining := max(pu.ExpiresAt.Sub(s.Time), 0)
		status += fmt.Sprintf("  %s %ds", pu.Kind, int(math.Ceil(remaining.Seconds())))
	}
	cw.WriteAt(1, rows+2, status)

	for _, p := range s.Pickups {
		col, row := c.canvas.LogicalToTerminal(p.X+p.Width/2, p.Y+p.Height/2)
		if col >= 1 && col <= cols && row >= 1 && row <= rows {
			cw.WriteAt(col, row, pickupGlyph(p.Kind))
		}
	}
}

func (c *Client) drawStageClear(s loop.Snapshot) {
	mid := c.canvas.Rows() / 2
	c.centered(mid-1,
		fmt.Sprintf("STAGE %d CLEAR!", s.Session.Stage),
		"",
		fmt.Sprintf("Stage score: %d", s.StageScore),
	)
}

func (c *Client) drawPauseScreen() {
	mid := c.canvas.Rows() / 2
	c.centered(mid-1, "PAUSED", "", "ESC resume   M menu   Q quit")
}

func (c *Client) drawGameOverScreen(s loop.Snapshot) {
	titleArt := []string{
		`  ___   _   __  __ ___    _____   _____ ___ `,
		` / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \`,
		`| (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   /`,
		` \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\`,
	}
	top := max(c.canvas.Rows()/2-6, 1)
	c.centered(top, titleArt...)

	st := s.Session
	row := top + len(titleArt) + 1
	c.centered(row, fmt.Sprintf("Score: %d   Stage: %d", st.Score, st.Stage))
	c.centered(row+1, fmt.Sprintf("High score: %d", st.HighScore))
	if st.Score > 0 && st.Score == st.HighScore {
		c.centered(row+2, "NEW HIGH SCORE!")
	}
	if blinkOn(s.Time) {
		c.centered(row+4, ">>  SPACE retry   M menu   Q quit  <<")
	}
}

func (c *Client) drawInactivityScreen(now time.Time) {
	left := c.idleDisconnect - now.Sub(c.state.lastInput)
	mid := c.canvas.Rows() / 2
	c.centered(mid-2,
		"INACTIVITY WARNING",
		"",
		fmt.Sprintf("Disconnecting in %d seconds.", max(int(left.Seconds()), 0)),
		"",
		"Press any key to continue",
	)
}

func blinkOn(now time.Time) bool {
	return now.UnixMilli()/600%2 == 0
}
