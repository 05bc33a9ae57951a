package cronx

// Cron field value ranges
const (
	// MinMinute is the minimum minute value (0)
	MinMinute = 0
	// MaxMinute is the maximum minute value (59)
	MaxMinute = 59
	// MinHour is the minimum hour value (0)
	MinHour = 0
	// MaxHour is the maximum hour value (23)
	MaxHour = 23
	// MinDayOfMonth is the minimum day of month value (1)
	MinDayOfMonth = 1
	// MaxDayOfMonth is the maximum day of month value (31)
	MaxDayOfMonth = 31
	// MinMonth is the minimum month value (1)
	MinMonth = 1
	// MaxMonth is the maximum month value (12)
	MaxMonth = 12
	// MinDayOfWeek is the minimum day of week value (0, Sunday)
	MinDayOfWeek = 0
	// MaxDayOfWeek is the maximum day of week value (6, Saturday)
	MaxDayOfWeek = 6
	// MaxDayOfWeekStep is the upper bound of a day_of_week step progression:
	// the implicit end of "*/n" and "d/n", and the end of "d-7/n", where 7
	// is kept as the bound instead of being stored as 0 (spec.md §9).
	MaxDayOfWeekStep = 7
)

// SearchOptions defaults from spec.md §6.3.
const (
	DefaultMatchCount   = 2
	DefaultMaxLoopCount = 1000
	// maxDaySkipCap bounds the day-by-day loop inside Next; spec.md §4.2.6
	// calls for at least 4*366 days so sparse expressions like
	// "0 0 29 2 *" still terminate within maxLoopCount.
	maxDaySkipCap = 4 * 366
)

// macroExpansions is the predefined macro table from spec.md §4.1.
var macroExpansions = map[string]string{
	"@yearly":   "0 0 1 1 *",
	"@annually": "0 0 1 1 *",
	"@monthly":  "0 0 1 * *",
	"@weekly":   "0 0 ? * 0",
	"@daily":    "0 0 * * *",
	"@midnight": "0 0 * * *",
	"@hourly":   "0 * * * *",
	"@minutely": "* * * * *",
}
