package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller is the battle-scoped random source. Every random decision an effect
// makes goes through a Roller so a replay with the same seed and inputs draws
// the same numbers.
type Roller interface {
	// RandomInt returns a uniformly distributed integer in [min, max]
	RandomInt(min, max int) int

	// Shuffle permutes n elements using the provided swap function
	Shuffle(n int, swap func(i, j int))
}
