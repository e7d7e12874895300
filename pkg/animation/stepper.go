package animation

import (
	"math"
	"time"
)

// DefaultBaseStep is the nominal number of pixels moved per step.
const DefaultBaseStep = 4

// Stepper computes step sizes for moving a fixed pixel distance within a
// target duration.
//
// The number of steps is distance/baseStep, each nominally taking
// duration/steps. On every step the stepper compares the wall-clock time
// elapsed since Start against the steps taken so far; when it is behind
// schedule the step is enlarged by the lag (in steps) so the animation still
// ends on time. A step never carries past the remaining distance.
type Stepper struct {
	distance     float64
	duration     time.Duration
	steps        int
	stepDuration time.Duration
	nominal      float64

	start     time.Time
	taken     int
	travelled float64
}

// NewStepper prepares a stepper. baseStep <= 0 uses DefaultBaseStep.
func NewStepper(distance int, duration time.Duration, baseStep int) *Stepper {
	if baseStep <= 0 {
		baseStep = DefaultBaseStep
	}
	distance = max(distance, 0)
	steps := max(distance/baseStep, 1)
	return &Stepper{
		distance:     float64(distance),
		duration:     duration,
		steps:        steps,
		stepDuration: duration / time.Duration(steps),
		nominal:      float64(distance) / float64(steps),
	}
}

// Start records the reference time that lag is measured against.
func (s *Stepper) Start(now time.Time) {
	s.start = now
	s.taken = 0
	s.travelled = 0
}

// Steps returns the nominal number of steps.
func (s *Stepper) Steps() int { return s.steps }

// StepDuration returns the nominal time between steps.
func (s *Stepper) StepDuration() time.Duration { return s.stepDuration }

// Distance returns the total distance in pixels.
func (s *Stepper) Distance() int { return int(s.distance) }

// Travelled returns the distance covered so far, rounded to whole pixels.
func (s *Stepper) Travelled() int { return int(math.Round(s.travelled)) }

// Progress returns the fraction of the distance covered, in [0, 1].
func (s *Stepper) Progress() float64 {
	if s.distance == 0 {
		return 1
	}
	return math.Min(s.travelled/s.distance, 1)
}

// Done reports whether the full distance has been covered.
func (s *Stepper) Done() bool {
	return s.distance-s.travelled < 1e-9
}

// Next advances by one step as of now and returns the total distance
// travelled and whether the stepper is finished.
func (s *Stepper) Next(now time.Time) (travelled int, done bool) {
	if s.Done() {
		return s.Travelled(), true
	}

	step := s.nominal
	if s.stepDuration > 0 {
		expected := float64(now.Sub(s.start)) / float64(s.stepDuration)
		if lag := expected - float64(s.taken+1); lag > 0 {
			step += s.nominal * lag
		}
	} else {
		step = s.distance
	}

	remaining := s.distance - s.travelled
	step = math.Min(step, remaining)

	s.travelled += step
	s.taken++
	return s.Travelled(), s.Done()
}
