package game

import "github.com/samdwyer/tilecraft/internal/tuning"

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible terrain generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// Tuning holds the simulation constants.
	Tuning tuning.Tuning
}

// DefaultConfig returns a config with a random seed and stock tuning.
func DefaultConfig() Config {
	return Config{Tuning: tuning.Default()}
}
