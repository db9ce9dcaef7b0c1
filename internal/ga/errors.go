package ga

import "errors"

var (
	ErrInvalidSize        = errors.New("ga: population size must be at least 1")
	ErrInvalidElitism     = errors.New("ga: elitism count must be in [0, size)")
	ErrInvalidRate        = errors.New("ga: rate must be in [0, 1]")
	ErrInvalidTournament  = errors.New("ga: tournament size must be at least 1")
	ErrTournamentTooLarge = errors.New("ga: tournament size exceeds population size")
	ErrUnknownSelection   = errors.New("ga: unknown selection method")
	ErrSelectionSize      = errors.New("ga: selected pool does not match population size")
	ErrPopulationSize     = errors.New("ga: initial population does not match population size")
)
