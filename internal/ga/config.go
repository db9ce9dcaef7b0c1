package ga

import "fmt"

// Config holds the optimizer parameters fixed at construction.
type Config struct {
	Size          int     // number of individuals per generation
	MutationRate  float64 // per-gene mutation probability
	CrossoverRate float64 // probability a child is produced by crossover
	ElitismCount  int     // top individuals cloned unchanged into the next generation
}

// Validate reports the first invalid parameter.
func (c Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, c.Size)
	}
	if c.ElitismCount < 0 || c.ElitismCount >= c.Size {
		return fmt.Errorf("%w: elitism=%d size=%d", ErrInvalidElitism, c.ElitismCount, c.Size)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("%w: mutation_rate=%v", ErrInvalidRate, c.MutationRate)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("%w: crossover_rate=%v", ErrInvalidRate, c.CrossoverRate)
	}
	return nil
}
