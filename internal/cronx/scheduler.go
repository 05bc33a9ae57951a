package cronx

import "time"

// Scheduler is a thin expression-in, instants-out facade over Parser and
// Schedule.Next, kept for the callers (internal/cmd, internal/check) that
// want to inject a mock implementation in their own tests rather than
// depend on cronx's concrete types.
type Scheduler interface {
	// Next parses expression and returns up to count instants >= from
	// (truncated to the minute) at which it fires, in from's location.
	Next(expression string, from time.Time, count int) ([]time.Time, error)
}

type scheduler struct {
	parser Parser
}

// NewScheduler returns a Scheduler using the default English locale.
func NewScheduler() Scheduler {
	return &scheduler{parser: NewParser()}
}

// NewSchedulerWithParser returns a Scheduler backed by an arbitrary Parser,
// e.g. one built via NewParserWithLocale for alias-aware expressions.
func NewSchedulerWithParser(p Parser) Scheduler {
	return &scheduler{parser: p}
}

func (s *scheduler) Next(expression string, from time.Time, count int) ([]time.Time, error) {
	schedule, err := s.parser.Parse(expression)
	if err != nil {
		return nil, err
	}

	opts := DefaultSearchOptions()
	opts.StartAt = from
	opts.MatchCount = count
	opts.Location = from.Location()
	// Every emitted instant costs at least one search step, so the loop
	// budget is raised to count when count exceeds the default.
	if count > opts.MaxLoopCount {
		opts.MaxLoopCount = count
	}

	return schedule.Next(opts), nil
}
