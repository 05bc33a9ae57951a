package cronx

import (
	"time"
)

// SearchOptions bundles the parameters of a Next() forward search
// (spec.md §6.3). The zero value is not directly usable; build one with
// DefaultSearchOptions and override fields as needed.
type SearchOptions struct {
	// Location is the IANA zone all field extraction happens in. Nil
	// defaults to UTC.
	Location *time.Location
	// StartAt is the inclusive lower bound, truncated to whole-minute
	// precision. The zero value means "now" (resolved by the caller).
	StartAt time.Time
	// MatchCount is the maximum number of instants to emit.
	MatchCount int
	// MaxLoopCount bounds the number of advance-steps the search will
	// take before giving up and returning a (possibly short) result.
	MaxLoopCount int
	// Validator, if set, additionally filters candidate instants; a
	// rejected instant does not count against MatchCount.
	Validator func(time.Time) bool
}

// DefaultSearchOptions returns the spec's default bundle: UTC, now,
// MatchCount 2, MaxLoopCount 1000.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Location:     time.UTC,
		StartAt:      time.Now(),
		MatchCount:   DefaultMatchCount,
		MaxLoopCount: DefaultMaxLoopCount,
	}
}

// Next runs the forward search described in spec.md §4.2.5, returning at
// most opts.MatchCount instants >= opts.StartAt (truncated to the minute)
// at which the schedule matches and the optional validator accepts.
func (s *Schedule) Next(opts SearchOptions) []time.Time {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	matchCount := opts.MatchCount
	if matchCount <= 0 {
		matchCount = DefaultMatchCount
	}
	maxLoop := opts.MaxLoopCount
	if maxLoop <= 0 {
		maxLoop = DefaultMaxLoopCount
	}

	cursor := opts.StartAt.In(loc).Truncate(time.Minute)
	results := make([]time.Time, 0, matchCount)

	fastPath := isFastPathAny(s)

	for i := 0; i < maxLoop && len(results) < matchCount; i++ {
		if s.Matches(cursor) && (opts.Validator == nil || opts.Validator(cursor)) {
			results = append(results, cursor)
			if len(results) >= matchCount {
				break
			}
		}
		cursor = s.advance(cursor, fastPath)
	}

	return results
}

// isFastPathAny reports the "* * * * *" shape (spec.md §4.2.5 fast path):
// every field unconstrained.
func isFastPathAny(s *Schedule) bool {
	return s.Minute.IsEvery() && s.Hour.IsEvery() && s.DayOfMonth.IsEvery() &&
		s.Month.IsEvery() && s.DayOfWeek.IsEvery()
}

// advance returns the earliest instant strictly greater than cursor that
// is a plausible match, applying the accelerations of spec.md §4.2.5 while
// preserving the §4.2.6 no-skip obligation.
func (s *Schedule) advance(cursor time.Time, fastPath bool) time.Time {
	if fastPath {
		return cursor.Add(time.Minute)
	}

	if s.Month.matchesSimple(int(cursor.Month())) && s.dayMatches(cursor, cursor.Day(), int(cursor.Month()), int(cursor.Weekday())) {
		if next, ok := s.advanceWithinDay(cursor); ok {
			return next
		}
	}

	return s.advanceByDay(cursor)
}

// advanceWithinDay tries the same-day minute/hour advance (spec.md §4.2.5).
func (s *Schedule) advanceWithinDay(cursor time.Time) (time.Time, bool) {
	if nextMinute, ok := s.Minute.NextValue(cursor.Minute()); ok {
		return time.Date(cursor.Year(), cursor.Month(), cursor.Day(), cursor.Hour(), nextMinute, 0, 0, cursor.Location()), true
	}
	if nextHour, ok := s.Hour.NextValue(cursor.Hour()); ok {
		firstMinute, ok := s.Minute.FirstValue()
		if !ok {
			return time.Time{}, false
		}
		return time.Date(cursor.Year(), cursor.Month(), cursor.Day(), nextHour, firstMinute, 0, 0, cursor.Location()), true
	}
	return time.Time{}, false
}

// advanceByDay advances day-by-day (with month-skip and simple
// day_of_month-skip accelerations), resetting hour/minute to the first
// accepted values on the first matching day (spec.md §4.2.5).
func (s *Schedule) advanceByDay(cursor time.Time) time.Time {
	loc := cursor.Location()
	day := time.Date(cursor.Year(), cursor.Month(), cursor.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	for i := 0; i < maxDaySkipCap; i++ {
		month := int(day.Month())

		if !s.Month.matchesSimple(month) {
			day = startOfNextMatchingMonth(day, s.Month)
			continue
		}

		if s.DayOfWeek.IsEvery() && !s.DayOfMonth.HasSpecialClauses() && !s.DayOfMonth.IsEvery() {
			if min, ok := s.DayOfMonth.FirstValue(); ok && day.Day() < min {
				daysInMo := daysInMonth(day.Year(), month)
				if min <= daysInMo {
					day = time.Date(day.Year(), day.Month(), min, 0, 0, 0, 0, loc)
				}
			}
		}

		if s.dayMatches(day, day.Day(), month, int(day.Weekday())) {
			firstHour, okH := s.Hour.FirstValue()
			firstMinute, okM := s.Minute.FirstValue()
			if okH && okM {
				return time.Date(day.Year(), day.Month(), day.Day(), firstHour, firstMinute, 0, 0, loc)
			}
		}

		day = day.AddDate(0, 0, 1)
	}

	// Budget exhausted; the caller's maxLoopCount will terminate the
	// outer Next loop with a short result.
	return day
}

// startOfNextMatchingMonth jumps to day 1 of the next month whose number
// accepts the month matcher, wrapping the year as needed.
func startOfNextMatchingMonth(day time.Time, month *FieldMatcher) time.Time {
	loc := day.Location()
	cursor := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
	for i := 0; i < 12; i++ {
		if month.matchesSimple(int(cursor.Month())) {
			return cursor
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
	return cursor
}

// Schedule is the immutable, normalized form of a parsed cron expression
// (spec.md §3, "Parsed expression"). It is safe for concurrent use: every
// field is set once by the parser and never mutated afterward.
type Schedule struct {
	Minute     *FieldMatcher
	Hour       *FieldMatcher
	DayOfMonth *FieldMatcher
	Month      *FieldMatcher
	DayOfWeek  *FieldMatcher

	// Expression is the original input text, echoed for diagnostics.
	Expression string
	// Normalized is the whitespace-joined 5-field form after macro
	// expansion and the 4-field default-day_of_week fill-in.
	Normalized string
}

// Matches reports whether the schedule fires at instant t, evaluated in
// t's own location (callers should construct t in the target IANA zone
// before calling). See spec.md §4.2.1.
func (s *Schedule) Matches(t time.Time) bool {
	minute := t.Minute()
	hour := t.Hour()
	dom := t.Day()
	month := int(t.Month())
	dow := int(t.Weekday())

	if !s.Minute.matchesSimple(minute) {
		return false
	}
	if !s.Hour.matchesSimple(hour) {
		return false
	}
	if !s.Month.matchesSimple(month) {
		return false
	}
	return s.dayMatches(t, dom, month, dow)
}

// dayMatches implements the day-disjunction rule (spec.md §4.2.2).
func (s *Schedule) dayMatches(t time.Time, dom, month, dow int) bool {
	domAny := s.DayOfMonth.IsEvery()
	dowAny := s.DayOfWeek.IsEvery()

	switch {
	case domAny && dowAny:
		return true
	case !domAny && dowAny:
		return s.matchesDayOfMonth(t, dom, month)
	case domAny && !dowAny:
		return s.matchesDayOfWeek(t, dom, month, dow)
	default:
		return s.matchesDayOfMonth(t, dom, month) || s.matchesDayOfWeek(t, dom, month, dow)
	}
}

// matchesDayOfMonth evaluates the day_of_month matcher, including its
// special LastDay/LastWeekday/NearestWeekdays clauses (spec.md §4.2.3).
func (s *Schedule) matchesDayOfMonth(t time.Time, dom, month int) bool {
	fm := s.DayOfMonth
	if fm.matchesSimple(dom) {
		return true
	}
	if !fm.HasSpecialClauses() {
		return false
	}

	daysInMonth := daysInMonth(t.Year(), month)

	if fm.lastDay && dom == daysInMonth {
		return true
	}
	if fm.lastWeekday && dom == lastWeekdayOfMonth(t.Year(), month, daysInMonth) {
		return true
	}
	for _, target := range fm.nearestWeekdays {
		if dom == resolveNearestWeekday(t.Year(), month, target, daysInMonth) {
			return true
		}
	}
	return false
}

// matchesDayOfWeek evaluates the day_of_week matcher, including its
// special NthDays/LastDays clauses (spec.md §4.2.3).
func (s *Schedule) matchesDayOfWeek(t time.Time, dom, month, dow int) bool {
	fm := s.DayOfWeek
	if fm.matchesSimple(dow) {
		return true
	}
	if !fm.HasSpecialClauses() {
		return false
	}

	for _, nd := range fm.nthDays {
		if nd.Weekday == dow && nthOccurrence(t.Year(), month, dom, dow) == nd.Instance {
			return true
		}
	}
	if len(fm.lastWeekday2) > 0 {
		daysInMonth := daysInMonth(t.Year(), month)
		for _, w := range fm.lastWeekday2 {
			if w == dow && dom == lastOccurrenceOfWeekday(t.Year(), month, daysInMonth, w) {
				return true
			}
		}
	}
	return false
}

// --- calendar-context resolvers (spec.md §4.2.3, §4.2.4) ---

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func weekdayOf(year, month, day int) int {
	return int(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday())
}

// lastWeekdayOfMonth returns the last Mon-Fri day of the month.
func lastWeekdayOfMonth(year, month, daysInMonth int) int {
	d := daysInMonth
	for {
		w := weekdayOf(year, month, d)
		if w != 0 && w != 6 {
			return d
		}
		d--
	}
}

// resolveNearestWeekday implements spec.md §4.2.4.
func resolveNearestWeekday(year, month, target, daysInMonth int) int {
	d := target
	if d < 1 {
		d = 1
	}
	if d > daysInMonth {
		d = daysInMonth
	}

	w := weekdayOf(year, month, d)
	switch w {
	case 0: // Sunday
		if d == daysInMonth {
			return d - 2
		}
		return d + 1
	case 6: // Saturday
		if d == 1 {
			return d + 2
		}
		return d - 1
	default:
		return d
	}
}

// nthOccurrence returns the 1-based occurrence index of weekday dow's
// appearance on day dom within the given month (spec.md §4.2.3).
func nthOccurrence(year, month, dom, dow int) int {
	firstDow := weekdayOf(year, month, 1)
	firstOccurrence := ((dow-firstDow)+7)%7 + 1
	return (dom-firstOccurrence)/7 + 1
}

// lastOccurrenceOfWeekday returns the day-of-month of the last occurrence
// of weekday w within the given month.
func lastOccurrenceOfWeekday(year, month, daysInMonth, w int) int {
	d := daysInMonth
	for weekdayOf(year, month, d) != w {
		d--
	}
	return d
}
