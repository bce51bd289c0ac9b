package dice

import (
	"math"
	"math/rand"
	"sync"

	"github.com/KirkDiggler/pet-battle-effects/internal/config"
)

// chanceGrid is the resolution of a percent roll: hundredths of a percent
const chanceGrid = 10000

// seededRoller implements Roller on top of a private math/rand source
type seededRoller struct {
	mu   sync.Mutex
	seed int64
	rng  *rand.Rand
}

// NewSeededRoller creates a deterministic roller for a single battle
func NewSeededRoller(seed int64) Roller {
	return &seededRoller{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// NewRollerFromConfig creates the seeded roller configured by BATTLE_SEED
func NewRollerFromConfig(cfg *config.EngineConfig) Roller {
	if cfg == nil {
		return NewSeededRoller(1)
	}
	return NewSeededRoller(cfg.Seed)
}

// RandomInt implements Roller.RandomInt
func (r *seededRoller) RandomInt(min, max int) int {
	if max < min {
		min, max = max, min
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return min + r.rng.Intn(max-min+1)
}

// Shuffle implements Roller.Shuffle
func (r *seededRoller) Shuffle(n int, swap func(i, j int)) {
	if n < 2 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}

// Chance reports whether a percent roll succeeds (percent in 0-100). The roll
// is drawn in hundredths of a percent, so fractional chances are honored.
func Chance(r Roller, percent float64) bool {
	if math.IsNaN(percent) || percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	threshold := int(math.Round(percent * chanceGrid / 100))
	return r.RandomInt(1, chanceGrid) <= threshold
}
