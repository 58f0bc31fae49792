// Package counter animates the home page statistics from their previous value
// to a new target. The only guarantee is that a counter lands exactly on its
// target after Steps ticks.
package counter

import (
	"math"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultSteps    = 24
	DefaultInterval = 40 * time.Millisecond
)

type Counter struct {
	Label    string
	Target   float64
	Value    float64
	Decimals int
	Steps    int

	start float64
	step  int
}

func New(label string, target float64, decimals int, steps int) Counter {
	if steps <= 0 {
		steps = DefaultSteps
	}
	return Counter{Label: label, Target: target, Decimals: decimals, Steps: steps}
}

func (c Counter) Done() bool { return c.step >= c.Steps }

// Step advances one tick along an ease-out curve.
func (c Counter) Step() Counter {
	if c.Done() {
		c.Value = c.Target
		return c
	}
	c.step++
	if c.step >= c.Steps {
		c.Value = c.Target
		return c
	}
	t := float64(c.step) / float64(c.Steps)
	eased := 1 - math.Pow(1-t, 3)
	c.Value = c.start + (c.Target-c.start)*eased
	return c
}

// Retarget restarts the animation from the current value.
func (c Counter) Retarget(target float64) Counter {
	c.start = c.Value
	c.Target = target
	c.step = 0
	return c
}

func (c Counter) Display() string {
	return strconv.FormatFloat(c.Value, 'f', c.Decimals, 64)
}

// TickMsg drives one animation frame.
type TickMsg struct{}

func TickCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return tea.Tick(interval, func(time.Time) tea.Msg { return TickMsg{} })
}

// Set is a row of counters animated together.
type Set []Counter

// Step advances every counter and reports whether any is still moving.
func (s Set) Step() (Set, bool) {
	out := make(Set, len(s))
	running := false
	for i, c := range s {
		out[i] = c.Step()
		if !out[i].Done() {
			running = true
		}
	}
	return out, running
}

func (s Set) Done() bool {
	for _, c := range s {
		if !c.Done() {
			return false
		}
	}
	return true
}
