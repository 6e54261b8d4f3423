// Package clean provides the field-level normalizers shared by all entity
// cleaners. Every function is total: it accepts any raw cell value and
// returns either a canonical value of the expected type or nil, never an
// error. A field that fails its rule degrades to the canonical null; it is
// the caller's per-entity policy that decides between nulling and dropping.
package clean

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	emailRx    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRx    = regexp.MustCompile(`[^\d+\-]`)
	nonAlnumRx = regexp.MustCompile(`[^A-Z0-9]`)
)

// dateLayouts are tried in order when a date arrives as text.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
}

// Text trims a raw text value and title-cases it. Empty or non-string
// values become nil.
func Text(v any) any {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return Title(s)
}

// Title capitalizes the first letter of each word and lowercases the rest,
// like Python's str.title().
func Title(s string) string {
	return cases.Title(language.Und).String(s)
}

// Email validates a raw email. The trimmed value is kept verbatim when it
// matches local@domain.tld; anything else becomes nil.
func Email(v any) any {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" || !emailRx.MatchString(s) {
		return nil
	}
	return s
}

// Phone strips every character except digits, '+' and '-'.
// An empty result becomes nil.
func Phone(v any) any {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = phoneRx.ReplaceAllString(s, "")
	if s == "" {
		return nil
	}
	return s
}

// IBAN trims and upper-cases an account number. Empty becomes nil.
func IBAN(v any) any {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	return s
}

// Plate upper-cases a license plate and strips all non-alphanumerics.
// Empty or non-string values become nil.
func Plate(v any) any {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = nonAlnumRx.ReplaceAllString(strings.ToUpper(s), "")
	if s == "" {
		return nil
	}
	return s
}

// Year validates a numeric year within [1900, current year] and returns it
// as int64. Anything else becomes nil.
func Year(v any) any {
	f, ok := asNumber(v)
	if !ok {
		return nil
	}
	yr := int64(f)
	if yr < 1900 || yr > int64(time.Now().Year()) {
		return nil
	}
	return yr
}

// Amount validates a strictly positive numeric amount and rounds it
// half-up to 2 decimal places. Anything else becomes nil.
func Amount(v any) any {
	f, ok := asNumber(v)
	if !ok || f <= 0 {
		return nil
	}
	res, _ := decimal.NewFromFloat(f).Round(2).Float64()
	return res
}

// PastDate parses a calendar date and rejects dates in the future.
// Accepts time.Time or text in a small set of layouts; anything else
// becomes nil.
func PastDate(v any) any {
	var ts time.Time
	switch d := v.(type) {
	case time.Time:
		ts = d
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				ts = parsed
				break
			}
		}
		if ts.IsZero() {
			return nil
		}
	default:
		return nil
	}
	if ts.After(time.Now()) {
		return nil
	}
	return ts
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
