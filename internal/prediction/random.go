package prediction

import (
	"math/rand/v2"
	"sync"
)

// RandomSource yields uniform values in [0, 1). *rand.Rand satisfies it but
// is not safe for concurrent use; wrap it with NewSeededSource for servers.
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource returns the goroutine-safe process-wide source.
func DefaultSource() RandomSource { return globalSource{} }

type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedSource) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// NewSeededSource returns a reproducible, goroutine-safe source.
func NewSeededSource(seed uint64) RandomSource {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// FixedSource always returns the same value. FixedSource(0.5) disables the
// perturbation.
type FixedSource float64

func (f FixedSource) Float64() float64 { return float64(f) }
