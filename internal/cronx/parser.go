package cronx

import (
	"strconv"
	"strings"
	"sync"
)

// Parser turns cron expression text into a *Schedule (spec.md §4.1).
type Parser interface {
	Parse(expression string) (*Schedule, error)
}

type parser struct {
	locale   string
	registry SymbolRegistry

	mu    sync.RWMutex
	cache map[string]*cacheEntry
}

type cacheEntry struct {
	schedule *Schedule
	err      error
}

// NewParser returns a Parser using the default (English) symbol registry.
func NewParser() Parser {
	return NewParserWithLocale("en")
}

// NewParserWithLocale returns a Parser whose day/month aliases resolve
// against the named locale, falling back to English when unknown.
func NewParserWithLocale(locale string) Parser {
	registry, _ := GetSymbolRegistry(locale)
	return &parser{
		locale:   locale,
		registry: registry,
		cache:    make(map[string]*cacheEntry),
	}
}

func (p *parser) Parse(expression string) (*Schedule, error) {
	trimmed := strings.TrimSpace(expression)

	p.mu.RLock()
	if entry, ok := p.cache[trimmed]; ok {
		p.mu.RUnlock()
		return entry.schedule, entry.err
	}
	p.mu.RUnlock()

	schedule, err := p.parseUncached(trimmed, expression)

	p.mu.Lock()
	p.cache[trimmed] = &cacheEntry{schedule: schedule, err: err}
	p.mu.Unlock()

	return schedule, err
}

func (p *parser) parseUncached(trimmed, original string) (*Schedule, error) {
	if trimmed == "" {
		return nil, newEmptyInputError(original)
	}

	if strings.HasPrefix(trimmed, "@") {
		expansion, ok := macroExpansions[strings.ToLower(trimmed)]
		if !ok {
			return nil, newUnknownMacroError(original)
		}
		return p.parseUncached(expansion, original)
	}

	fields := strings.Fields(trimmed)
	if len(fields) != 4 && len(fields) != 5 {
		return nil, newArityError(original, len(fields))
	}
	if len(fields) == 4 {
		fields = append(fields, "*")
	}

	minute, err := p.parseField(original, FieldMinute, fields[0])
	if err != nil {
		return nil, err
	}
	hour, err := p.parseField(original, FieldHour, fields[1])
	if err != nil {
		return nil, err
	}
	dom, err := p.parseField(original, FieldDayOfMonth, fields[2])
	if err != nil {
		return nil, err
	}
	month, err := p.parseField(original, FieldMonth, fields[3])
	if err != nil {
		return nil, err
	}
	dow, err := p.parseField(original, FieldDayOfWeek, fields[4])
	if err != nil {
		return nil, err
	}

	return &Schedule{
		Minute:      minute,
		Hour:        hour,
		DayOfMonth:  dom,
		Month:       month,
		DayOfWeek:   dow,
		Expression:  original,
		Normalized:  strings.Join(fields, " "),
	}, nil
}

// parseField parses one whitespace-delimited field token into a FieldMatcher
// (spec.md §4.1, "Per-field grammar").
func (p *parser) parseField(original string, id FieldID, token string) (*FieldMatcher, error) {
	raw := token

	if token == "*" {
		return &FieldMatcher{id: id, raw: raw, any: true}, nil
	}
	if token == "?" {
		if id != FieldDayOfMonth && id != FieldDayOfWeek {
			return nil, newMisplacedExtensionError(original, id.String(), token)
		}
		return &FieldMatcher{id: id, raw: raw, omit: true}, nil
	}

	if id == FieldDayOfWeek {
		token = p.substituteDayAliases(token)
	}

	token = strings.ToLower(token)
	parts := strings.Split(token, ",")

	fm := &FieldMatcher{id: id, raw: raw}
	for _, part := range parts {
		if part == "" {
			return nil, newBadTokenError(original, id.String(), part, "Empty sub-part")
		}
		if err := p.parsePart(fm, original, id, part); err != nil {
			return nil, err
		}
	}

	fm.values = sortedUniqueInts(fm.values)
	fm.ranges = dedupeRanges(fm.ranges)
	return fm, nil
}

// substituteDayAliases replaces whole-word day-of-week aliases (sun..sat)
// with their numeric value before the field is lowercased and split, so
// that composite tokens like "mon-fri" and "mon,wed,fri" still lex.
func (p *parser) substituteDayAliases(token string) string {
	var b strings.Builder
	word := func(start, end int) string { return token[start:end] }
	i := 0
	for i < len(token) {
		c := token[i]
		if isAlpha(c) {
			j := i
			for j < len(token) && isAlpha(token[j]) {
				j++
			}
			w := word(i, j)
			if v, ok := p.registry.ParseDayOfWeek(w); ok {
				b.WriteString(strconv.Itoa(v))
			} else {
				b.WriteString(w)
			}
			i = j
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// parsePart dispatches one comma-delimited sub-part onto fm, per spec.md
// §4.1's ordered rule list.
func (p *parser) parsePart(fm *FieldMatcher, original string, id FieldID, part string) error {
	if id == FieldDayOfMonth {
		if part == "l" {
			fm.lastDay = true
			return nil
		}
		if part == "lw" {
			fm.lastWeekday = true
			return nil
		}
		if strings.HasSuffix(part, "w") && len(part) > 1 {
			head := part[:len(part)-1]
			n, err := strconv.Atoi(head)
			if err != nil {
				return newBadTokenError(original, id.String(), part, "Malformed nearest-weekday token")
			}
			if n < MinDayOfMonth || n > MaxDayOfMonth {
				return newOutOfRangeError(original, id.String(), part)
			}
			fm.nearestWeekdays = append(fm.nearestWeekdays, n)
			return nil
		}
	}

	if id == FieldDayOfWeek {
		if strings.HasSuffix(part, "l") && len(part) > 1 && !strings.Contains(part, "-") && !strings.Contains(part, "/") {
			head := part[:len(part)-1]
			d, err := p.parseDayOfWeekValue(original, head)
			if err != nil {
				return err
			}
			fm.lastWeekday2 = append(fm.lastWeekday2, d)
			return nil
		}
		if idx := strings.Index(part, "#"); idx >= 0 {
			head, tail := part[:idx], part[idx+1:]
			d, err := p.parseDayOfWeekValue(original, head)
			if err != nil {
				return err
			}
			k, err := strconv.Atoi(tail)
			if err != nil || k < 1 || k > 5 {
				return newBadTokenError(original, id.String(), part, "Malformed nth-weekday token")
			}
			fm.nthDays = append(fm.nthDays, NthDay{Weekday: d, Instance: k})
			return nil
		}
	}

	// Extensions used outside their field.
	if strings.ContainsAny(part, "lw") && id != FieldDayOfMonth && id != FieldDayOfWeek {
		if part == "l" || part == "lw" || strings.HasSuffix(part, "w") {
			return newMisplacedExtensionError(original, id.String(), part)
		}
	}
	if strings.Contains(part, "#") {
		return newMisplacedExtensionError(original, id.String(), part)
	}

	if strings.Contains(part, "/") {
		return p.parseStep(fm, original, id, part)
	}
	if strings.Contains(part, "-") {
		return p.parseRange(fm, original, id, part)
	}
	v, err := p.parseValue(original, id, part)
	if err != nil {
		return err
	}
	fm.values = append(fm.values, v)
	return nil
}

// parseStep parses "<head>/<step>" per spec.md §4.1's "Step parsing".
func (p *parser) parseStep(fm *FieldMatcher, original string, id FieldID, part string) error {
	idx := strings.LastIndex(part, "/")
	head, stepStr := part[:idx], part[idx+1:]

	step, err := strconv.Atoi(stepStr)
	if err != nil || step < 0 {
		return newBadTokenError(original, id.String(), part, "Malformed step")
	}

	min, max := id.bounds()
	if id == FieldDayOfWeek {
		max = MaxDayOfWeekStep
	}

	var from, to int
	if head == "*" {
		from, to = min, max
	} else if strings.Contains(head, "-") {
		dash := strings.Index(head, "-")
		fromStr, toStr := head[:dash], head[dash+1:]
		from, err = p.parseValue(original, id, fromStr)
		if err != nil {
			return err
		}
		to, err = p.parseValue(original, id, toStr)
		if err != nil {
			return err
		}
		if id == FieldDayOfWeek && toStr == "7" {
			to = MaxDayOfWeekStep
		}
	} else {
		from, err = p.parseValue(original, id, head)
		if err != nil {
			return err
		}
		to = max
	}

	if from > to {
		return newBadTokenError(original, id.String(), part, "Range start exceeds end")
	}

	fm.steps = append(fm.steps, StepRange{From: from, To: to, Step: step})
	return nil
}

// parseRange parses "<from>-<to>" per spec.md §4.1, deduplicated by the
// caller on (from,to) after all parts have been processed.
func (p *parser) parseRange(fm *FieldMatcher, original string, id FieldID, part string) error {
	idx := strings.Index(part, "-")
	fromStr, toStr := part[:idx], part[idx+1:]

	from, err := p.parseValue(original, id, fromStr)
	if err != nil {
		return err
	}
	to, err := p.parseValue(original, id, toStr)
	if err != nil {
		return err
	}
	if from > to {
		return newBadTokenError(original, id.String(), part, "Range start exceeds end")
	}
	fm.ranges = append(fm.ranges, ValueRange{From: from, To: to})
	return nil
}

// parseValue parses a single literal, applying alias substitution and the
// day_of_week "7 → 0" normalization (spec.md §4.1, "Value parsing").
func (p *parser) parseValue(original string, id FieldID, token string) (int, error) {
	if id == FieldMonth {
		if v, ok := p.registry.ParseMonth(token); ok {
			return v, nil
		}
	}
	if id == FieldDayOfWeek {
		return p.parseDayOfWeekValue(original, token)
	}

	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, newBadTokenError(original, id.String(), token, "Not an integer")
	}
	min, max := id.bounds()
	if v < min || v > max {
		return 0, newOutOfRangeError(original, id.String(), token)
	}
	return v, nil
}

// parseDayOfWeekValue parses a day_of_week literal or alias, normalizing 7
// to 0 without range-checking the literal 7 (spec.md §4.1 step 3).
func (p *parser) parseDayOfWeekValue(original, token string) (int, error) {
	if v, ok := p.registry.ParseDayOfWeek(token); ok {
		return v, nil
	}
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, newBadTokenError(original, FieldDayOfWeek.String(), token, "Not an integer")
	}
	if v == 7 {
		return 0, nil
	}
	if v < MinDayOfWeek || v > MaxDayOfWeek {
		return 0, newOutOfRangeError(original, FieldDayOfWeek.String(), token)
	}
	return v, nil
}
