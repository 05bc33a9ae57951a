package cmd

// Next command constants
const (
	// DefaultNextCount is the default number of runs to show
	DefaultNextCount = 10
	// MinNextCount is the minimum number of runs to show
	MinNextCount = 1
	// MaxNextCount is the maximum number of runs to show
	MaxNextCount = 100
)

// Check command constants
const (
	// DefaultMaxRunsPerDay is the default threshold for excessive runs warning
	DefaultMaxRunsPerDay = 1000
)
