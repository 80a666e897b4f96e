package view

import "time"

// Animation durations.
const (
	TransitionDuration = 500 * time.Millisecond
	PulseDuration      = 1500 * time.Millisecond
)

// animation interpolates the camera between two states over a fixed
// duration with a cubic ease-out.
type animation struct {
	from    State
	to      State
	elapsed time.Duration
}

// easeOutCubic is 1-(1-t)^3 for t in [0,1].
func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// lerp interpolates between two camera states.
func lerp(from, to State, t float64) State {
	return State{
		OffsetX: from.OffsetX + (to.OffsetX-from.OffsetX)*t,
		OffsetY: from.OffsetY + (to.OffsetY-from.OffsetY)*t,
		Scale:   from.Scale + (to.Scale-from.Scale)*t,
	}
}

// step advances the animation by dt and returns the interpolated state
// plus whether the animation has completed.
func (a *animation) step(dt time.Duration) (State, bool) {
	a.elapsed += dt
	t := float64(a.elapsed) / float64(TransitionDuration)
	if t >= 1 {
		return a.to, true
	}
	return lerp(a.from, a.to, easeOutCubic(t)), false
}
