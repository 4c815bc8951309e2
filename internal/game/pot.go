package game

import (
	"math"
	"time"

	"github.com/coder/quartz"
)

// AnimatedValue tracks a target number and a display number that moves
// toward it over one second, measured on the clock rather than per frame.
type AnimatedValue struct {
	clock     quartz.Clock
	animate   bool
	target    int
	start     int
	startTime time.Time
}

// NewAnimatedValue creates a value at zero. With animate false the display
// value always equals the target.
func NewAnimatedValue(clock quartz.Clock, animate bool) *AnimatedValue {
	return &AnimatedValue{clock: clock, animate: animate}
}

// Set changes the target and restarts the animation from the value shown now
func (a *AnimatedValue) Set(v int) {
	a.start = a.Current()
	a.target = v
	a.startTime = a.clock.Now()
}

// Target returns the authoritative value
func (a *AnimatedValue) Target() int {
	return a.target
}

// Current returns the value to display now
func (a *AnimatedValue) Current() int {
	if !a.animate || a.start == a.target {
		return a.target
	}

	delta := float64(a.target - a.start)
	elapsed := a.clock.Since(a.startTime).Seconds()
	if elapsed >= 1 {
		return a.target
	}

	v := float64(a.start) + delta*elapsed
	if delta > 0 {
		return min(int(math.Floor(v)), a.target)
	}
	return max(int(math.Ceil(v)), a.target)
}

// Pot holds the chips wagered in the current round
type Pot struct {
	value *AnimatedValue
}

// NewPot creates an empty pot
func NewPot(clock quartz.Clock, animate bool) *Pot {
	return &Pot{value: NewAnimatedValue(clock, animate)}
}

// AddAmount adds chips to the pot
func (p *Pot) AddAmount(amount int) {
	p.value.Set(p.value.Target() + amount)
}

// PayOut empties the pot and returns everything it held
func (p *Pot) PayOut() int {
	amount := p.value.Target()
	p.value.Set(0)
	return amount
}

// Amount returns the chips in the pot
func (p *Pot) Amount() int {
	return p.value.Target()
}

// Display returns the animated amount for rendering
func (p *Pot) Display() int {
	return p.value.Current()
}
