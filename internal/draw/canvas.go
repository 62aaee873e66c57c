// Package draw renders the playfield to a terminal using half-block cells.
package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Point is a position in logical playfield coordinates.
type Point struct {
	X, Y float64
}

// Half-block glyphs; each terminal cell holds two vertical sub-pixels.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// maxChunkSize is the maximum bytes written at once, sized to a typical MTU
// for smooth SSH output.
const maxChunkSize = 1400

// Canvas is a monochrome pixel buffer that maps the logical playfield onto
// a terminal area of cols x rows cells (rows*2 sub-pixels).
type Canvas struct {
	cols, rows int
	subRows    int
	pixels     []bool // [y*cols + x]

	logicalWidth  float64
	logicalHeight float64
	scaleX        float64
	scaleY        float64

	// 0-based terminal offset of the canvas, for centering.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
	scaled    []Point   // fillPolygon scratch
	crossings []float64 // fillPolygon scratch
}

// NewScaledCanvas creates a canvas of cols x rows terminal cells showing a
// logical area of logicalWidth x logicalHeight.
func NewScaledCanvas(cols, rows int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(cols, rows)
	return c
}

// Resize changes the terminal area while keeping the logical size.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols != c.cols || rows != c.rows || c.pixels == nil {
		c.cols = cols
		c.rows = rows
		c.subRows = rows * 2
		c.pixels = make([]bool, c.subRows*cols)
	}
	c.rescale()
}

// SetLogicalSize changes the logical area mapped onto the canvas.
func (c *Canvas) SetLogicalSize(width, height float64) {
	c.logicalWidth = width
	c.logicalHeight = height
	c.rescale()
}

func (c *Canvas) rescale() {
	c.scaleX, c.scaleY = 0, 0
	if c.logicalWidth > 0 {
		c.scaleX = float64(c.cols) / c.logicalWidth
	}
	if c.logicalHeight > 0 {
		c.scaleY = float64(c.subRows) / c.logicalHeight
	}
}

// SetOffset sets the 0-based column and row where the canvas starts.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Cols returns the canvas width in terminal cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the canvas height in terminal cells.
func (c *Canvas) Rows() int { return c.rows }

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.subRows {
		c.pixels[y*c.cols+x] = true
	}
}

// Lit reports whether the sub-pixel at (x, y) is set.
func (c *Canvas) Lit(x, y int) bool {
	if x < 0 || x >= c.cols || y < 0 || y >= c.subRows {
		return false
	}
	return c.pixels[y*c.cols+x]
}

func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Round(x * c.scaleX)), int(math.Round(y * c.scaleY))
}

// Set lights the pixel at a logical position.
func (c *Canvas) Set(x, y float64) {
	c.setPixel(c.toPixel(x, y))
}

// FillRect fills a logical rectangle. Every non-empty rectangle inside the
// canvas lights at least one pixel so small entities stay visible.
func (c *Canvas) FillRect(x, y, w, h float64) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := max(int(math.Ceil((x+w)*c.scaleX))-1, x0)
	y1 := max(int(math.Ceil((y+h)*c.scaleY))-1, y0)

	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.cols-1), min(y1, c.subRows-1)
	for py := y0; py <= y1; py++ {
		row := c.pixels[py*c.cols:]
		for px := x0; px <= x1; px++ {
			row[px] = true
		}
	}
}

// StrokeRect draws the outline of a logical rectangle.
func (c *Canvas) StrokeRect(x, y, w, h float64) {
	tl, tr := Point{x, y}, Point{x + w, y}
	bl, br := Point{x, y + h}, Point{x + w, y + h}
	c.DrawLine(tl, tr)
	c.DrawLine(tr, br)
	c.DrawLine(br, bl)
	c.DrawLine(bl, tl)
}

// DrawLine draws a line between logical points (Bresenham in pixel space).
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1, y1 := c.toPixel(p1.X, p1.Y)
	x2, y2 := c.toPixel(p2.X, p2.Y)

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// FillPolygon fills and outlines a polygon given in logical coordinates.
func (c *Canvas) FillPolygon(points []Point) {
	if len(points) < 3 {
		return
	}
	c.fillPolygon(points)
	for i := range points {
		c.DrawLine(points[i], points[(i+1)%len(points)])
	}
}

// fillPolygon is a scanline fill in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaled) < len(points) {
		c.scaled = make([]Point, len(points))
	}
	scaled := c.scaled[:len(points)]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		minY = min(minY, scaled[i].Y)
		maxY = max(maxY, scaled[i].Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		xs := c.crossings[:0]
		for i := range scaled {
			p1, p2 := scaled[i], scaled[(i+1)%len(scaled)]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		c.crossings = xs

		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// Ring draws a circle outline of logical radius r around (cx, cy).
func (c *Canvas) Ring(cx, cy, r float64) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	const segments = 16
	prev := Point{cx + r, cy}
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		next := Point{cx + r*math.Cos(a), cy + r*math.Sin(a)}
		c.DrawLine(prev, next)
		prev = next
	}
}

// Render writes every lit cell as a positioned half-block glyph, in chunks
// of at most maxChunkSize bytes.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.cols * c.rows * 4)

	for row := 0; row < c.rows; row++ {
		top := c.pixels[row*2*c.cols:]
		bottom := c.pixels[(row*2+1)*c.cols:]
		for col := 0; col < c.cols; col++ {
			var ch rune
			switch {
			case top[col] && bottom[col]:
				ch = BlockFull
			case top[col]:
				ch = BlockUpperHalf
			case bottom[col]:
				ch = BlockLowerHalf
			default:
				continue
			}
			c.moveTo(col+1+c.offsetCol, row+1+c.offsetRow)
			c.renderBuf.WriteRune(ch)
		}
	}

	writeChunked(w, c.renderBuf.String())
}

func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// RenderBorder frames the canvas. Horizontal bars need a free row above
// and below, vertical bars a free column on each side.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1
	left, right := c.offsetCol, c.offsetCol+c.cols+1
	top, bottom := c.offsetRow, c.offsetRow+c.rows+1
	bar := strings.Repeat("─", c.cols)

	var b strings.Builder
	switch {
	case hasV && hasH:
		b.WriteString(cursor(left, top) + "┌" + bar + "┐")
		b.WriteString(cursor(left, bottom) + "└" + bar + "┘")
	case hasV:
		b.WriteString(cursor(left+1, top) + bar)
		b.WriteString(cursor(left+1, bottom) + bar)
	}
	if hasH {
		for row := top + 1; row < bottom; row++ {
			b.WriteString(cursor(left, row) + "│" + cursor(right, row) + "│")
		}
	}
	writeChunked(w, b.String())
}

func cursor(col, row int) string {
	return "\033[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

func writeChunked(w io.Writer, data string) {
	for len(data) > 0 {
		chunk := data[:min(len(data), maxChunkSize)]
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// LogicalToTerminal converts a logical position to a 1-based terminal
// (col, row) relative to the canvas, for text overlays.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return px + 1, py/2 + 1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
