// Package sysmetrics produces the synthetic host utilisation readings served
// by the API. Readings are random and carry no relationship to the host the
// service runs on.
package sysmetrics

import (
	"math/rand/v2"

	"techwave/internal/types"
)

// PercentCeiling is the exclusive upper bound of every generated reading.
const PercentCeiling = 100

// Sampler produces one MetricsSample per call.
type Sampler interface {
	Sample() types.MetricsSample
}

// RandomSampler draws each reading uniformly from [0, PercentCeiling).
// The zero value draws from the runtime's per-goroutine random source and is
// safe for concurrent use.
type RandomSampler struct {
	// intN overrides the random source in tests.
	intN func(n int) int
}

// NewRandomSampler returns a RandomSampler backed by math/rand/v2.
func NewRandomSampler() *RandomSampler {
	return &RandomSampler{}
}

// Sample returns a fresh reading.
func (s *RandomSampler) Sample() types.MetricsSample {
	return types.MetricsSample{
		CPU:    s.draw(),
		Memory: s.draw(),
		Disk:   s.draw(),
	}
}

func (s *RandomSampler) draw() int {
	if s.intN != nil {
		return s.intN(PercentCeiling)
	}
	return rand.IntN(PercentCeiling)
}
