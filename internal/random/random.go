package random

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_source.go github.com/KirkDiggler/secretmafia/internal/random Source

// Source provides the randomness behind join codes and role shuffles
type Source interface {
	// Intn returns a uniform value in [0, n)
	Intn(n int) int
}

// Roller is a Source backed by math/rand, safe for concurrent use
type Roller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the random source
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new random source
func New(cfg *Config) *Roller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Roller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Intn returns a uniform value in [0, n); n below 1 yields 0
func (r *Roller) Intn(n int) int {
	if n < 1 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.random.Intn(n)
}

// Shuffle permutes n elements in place with Fisher-Yates, swapping through swap
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		swap(i, j)
	}
}
