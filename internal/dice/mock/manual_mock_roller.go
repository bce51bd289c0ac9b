package mockdice

import (
	"sync"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results.
// RandomInt returns queued values (clamped into range) and Shuffle reverses the
// input so tests can assert on a known permutation.
type ManualMockRoller struct {
	mu        sync.Mutex
	rolls     []int
	rollIndex int
	fallback  int
}

// NewManualMockRoller creates a new mock roller. Once the queue is drained,
// RandomInt returns the lower bound of the requested range.
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{
		rolls:    []int{},
		fallback: -1,
	}
}

// SetNextRoll queues the next roll result
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls replaces the queue of roll results
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// SetFallback sets the value returned when the queue is empty
func (m *ManualMockRoller) SetFallback(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = roll
}

// Reset clears all rolls and resets the index
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
	m.fallback = -1
}

// RandomInt implements dice.Roller.RandomInt
func (m *ManualMockRoller) RandomInt(min, max int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	roll := min
	switch {
	case m.rollIndex < len(m.rolls):
		roll = m.rolls[m.rollIndex]
		m.rollIndex++
	case m.fallback >= 0:
		roll = m.fallback
	}

	if roll < min {
		return min
	}
	if roll > max {
		return max
	}
	return roll
}

// Shuffle implements dice.Roller.Shuffle by reversing the sequence
func (m *ManualMockRoller) Shuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}
