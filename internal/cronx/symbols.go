package cronx

import "strings"

// SymbolRegistry provides locale-specific mappings for day and month names.
type SymbolRegistry interface {
	// ParseDayOfWeek attempts to resolve a day-of-week alias (e.g. "mon").
	ParseDayOfWeek(s string) (int, bool)

	// ParseMonth attempts to resolve a month alias (e.g. "jan").
	ParseMonth(s string) (int, bool)

	// Locale returns the locale identifier (e.g., "en", "fr", "es").
	Locale() string
}

type symbolRegistry struct {
	locale     string
	dayNames   map[string]int
	monthNames map[string]int
}

// NewSymbolRegistry creates a new symbol registry with the given mappings.
func NewSymbolRegistry(locale string, dayNames, monthNames map[string]int) SymbolRegistry {
	return &symbolRegistry{locale: locale, dayNames: dayNames, monthNames: monthNames}
}

func (r *symbolRegistry) ParseDayOfWeek(s string) (int, bool) {
	v, ok := r.dayNames[strings.ToUpper(s)]
	return v, ok
}

func (r *symbolRegistry) ParseMonth(s string) (int, bool) {
	v, ok := r.monthNames[strings.ToUpper(s)]
	return v, ok
}

func (r *symbolRegistry) Locale() string {
	return r.locale
}

// DefaultSymbolRegistry is the English symbol registry.
var DefaultSymbolRegistry = NewSymbolRegistry(
	"en",
	map[string]int{
		"SUN": 0,
		"MON": 1,
		"TUE": 2,
		"WED": 3,
		"THU": 4,
		"FRI": 5,
		"SAT": 6,
	},
	map[string]int{
		"JAN": 1,
		"FEB": 2,
		"MAR": 3,
		"APR": 4,
		"MAY": 5,
		"JUN": 6,
		"JUL": 7,
		"AUG": 8,
		"SEP": 9,
		"OCT": 10,
		"NOV": 11,
		"DEC": 12,
	},
)

// symbolRegistryMap holds all available symbol registries by locale.
var symbolRegistryMap = map[string]SymbolRegistry{
	"en": DefaultSymbolRegistry,
}

// GetSymbolRegistry returns a symbol registry for the given locale. Falls
// back to English if the locale is not found.
func GetSymbolRegistry(locale string) (SymbolRegistry, bool) {
	if registry, ok := symbolRegistryMap[strings.ToLower(locale)]; ok {
		return registry, true
	}
	return DefaultSymbolRegistry, false
}
