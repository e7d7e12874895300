package animation_test

import (
	"fmt"
	"time"

	"github.com/go-drift/pocketdash/pkg/animation"
)

// This example shows a stepper catching up after its first step ran late.
func ExampleStepper() {
	s := animation.NewStepper(32, 80*time.Millisecond, 8)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.Start(start)

	for _, at := range []time.Duration{20, 60, 80} {
		travelled, done := s.Next(start.Add(at * time.Millisecond))
		fmt.Println(travelled, done)
	}

	// Output:
	// 8 false
	// 24 false
	// 32 true
}
