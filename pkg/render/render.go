// Package render draws turtle motion on an ebiten canvas. It sits behind the
// interpreter's sink: every executed basic instruction mutates turtle state
// and the ebiten loop paints the accumulated paths each frame.
package render

import (
	"image/color"
	"math"
	"strconv"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// palette cycles over pen colors as turtles are created.
var palette = []color.RGBA{
	colornames.Black,
	colornames.Blue,
	colornames.Red,
	colornames.Green,
	colornames.Darkorange,
	colornames.Purple,
	colornames.Teal,
	colornames.Brown,
}

type turtle struct {
	x, y    float64
	heading float64 // radians, 0 = north, positive clockwise
	radians bool    // angle unit for rol/ror amounts
	col     color.RGBA
}

type segment struct {
	x0, y0, x1, y1 float32
	col            color.RGBA
}

// Canvas implements both the interpreter sink and ebiten.Game. The
// interpreter runs in its own goroutine, so all state is mutex-guarded.
type Canvas struct {
	mu       sync.Mutex
	width    int
	height   int
	turtles  map[string]*turtle
	created  int
	segments []segment
}

func New(width, height int) *Canvas {
	return &Canvas{
		width:   width,
		height:  height,
		turtles: make(map[string]*turtle),
	}
}

// Apply executes one basic instruction. It has the interp.Sink signature.
// Operands were validated by the interpreter; motion on a turtle that was
// never created creates it implicitly at the origin.
func (c *Canvas) Apply(op string, args []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name := args[0]
	switch op {
	case "create":
		c.create(name)
		return
	case "destroy":
		if name == "everyone" {
			c.turtles = make(map[string]*turtle)
		} else {
			delete(c.turtles, name)
		}
		return
	}

	t, ok := c.turtles[name]
	if !ok {
		t = c.create(name)
	}

	switch op {
	case "deg":
		t.radians = false
		return
	case "rad":
		t.radians = true
		return
	}

	amount, _ := strconv.ParseFloat(args[1], 64)
	switch op {
	case "fd":
		c.advance(t, t.heading, amount)
	case "bk":
		c.advance(t, t.heading, -amount)
	case "shl":
		c.advance(t, t.heading-math.Pi/2, amount)
	case "shr":
		c.advance(t, t.heading+math.Pi/2, amount)
	case "up":
		c.shift(t, 0, -amount)
	case "down":
		c.shift(t, 0, amount)
	case "rol":
		t.heading -= t.angle(amount)
	case "ror":
		t.heading += t.angle(amount)
	}
}

func (t *turtle) angle(amount float64) float64 {
	if t.radians {
		return amount
	}
	return amount * math.Pi / 180
}

func (c *Canvas) create(name string) *turtle {
	t := &turtle{
		x:   float64(c.width) / 2,
		y:   float64(c.height) / 2,
		col: palette[c.created%len(palette)],
	}
	c.created++
	c.turtles[name] = t
	return t
}

func (c *Canvas) advance(t *turtle, heading, amount float64) {
	c.shift(t, math.Sin(heading)*amount, -math.Cos(heading)*amount)
}

func (c *Canvas) shift(t *turtle, dx, dy float64) {
	x1, y1 := t.x+dx, t.y+dy
	c.segments = append(c.segments, segment{
		x0: float32(t.x), y0: float32(t.y),
		x1: float32(x1), y1: float32(y1),
		col: t.col,
	})
	t.x, t.y = x1, y1
}

func (c *Canvas) Update() error {
	return nil
}

func (c *Canvas) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.White)

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.segments {
		vector.StrokeLine(screen, s.x0, s.y0, s.x1, s.y1, 2, s.col, true)
	}
	for _, t := range c.turtles {
		vector.DrawFilledCircle(screen, float32(t.x), float32(t.y), 4, t.col, true)
	}
}

func (c *Canvas) Layout(outsideWidth, outsideHeight int) (int, int) {
	return c.width, c.height
}
