// Package dates recovers packing/harvest dates from recognized order text.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// datePattern matches day/month/year shaped substrings: one or two digits,
// a separator out of {/, -, .}, one or two digits, a separator, two to four
// digit year.
var datePattern = regexp.MustCompile(`(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{2,4})`)

// priorityPattern tags lines that talk about packing or harvest. Dates on
// these lines win over incidental dates elsewhere in the document.
var priorityPattern = regexp.MustCompile(`(?i)envasad|recolec|cosech|packing|harvest|f\.?\s*env`)

// twoDigitYearPivot: two-digit years >= 70 belong to the 1900s, < 70 to the 2000s.
const twoDigitYearPivot = 70

type candidate struct {
	day, month, year int
}

// PackingDate scans raw multi-line text and returns the ISO (YYYY-MM-DD) form
// of the most likely packing/harvest date. Candidates on lines matching a
// packing/harvest keyword are tried first, in document order, then all
// remaining candidates in document order. The first candidate that resolves
// to a real calendar date in [1900,2100] wins. The second return is false
// when no candidate validates; callers must treat that as a normal outcome.
func PackingDate(text string) (string, bool) {
	var prioritized, secondary []candidate

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		matches := datePattern.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}
		cands := make([]candidate, 0, len(matches))
		for _, m := range matches {
			d, _ := strconv.Atoi(m[1])
			mo, _ := strconv.Atoi(m[2])
			y, _ := strconv.Atoi(m[3])
			cands = append(cands, candidate{day: d, month: mo, year: y})
		}
		if priorityPattern.MatchString(line) {
			prioritized = append(prioritized, cands...)
		} else {
			secondary = append(secondary, cands...)
		}
	}

	for _, c := range prioritized {
		if iso, ok := normalize(c); ok {
			return iso, true
		}
	}
	for _, c := range secondary {
		if iso, ok := normalize(c); ok {
			return iso, true
		}
	}
	return "", false
}

// normalize resolves a day/month/year triple into ISO form. Two-digit years
// use the 70 pivot. The triple must land on a real calendar date between
// 1900 and 2100; time.Date normalizes overflow (e.g. 31/2), so the result is
// compared against the inputs to reject impossible dates. UTC construction
// keeps the day stable across timezones.
func normalize(c candidate) (string, bool) {
	year := c.year
	if year < 100 {
		if year >= twoDigitYearPivot {
			year += 1900
		} else {
			year += 2000
		}
	}
	if year < 1900 || year > 2100 {
		return "", false
	}

	t := time.Date(year, time.Month(c.month), c.day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != c.month || t.Day() != c.day {
		return "", false
	}
	return t.Format("2006-01-02"), true
}
