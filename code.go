package fundsync

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Fund feeds and the ledger live on Chinese exchange time.
var zoneCN = time.FixedZone("UTC+8", 8*60*60)

// NowCN returns the current instant in the ledger's UTC+8 zone.
func NowCN() time.Time { return time.Now().In(zoneCN) }

// TodayCN returns today's ISO date in the ledger's UTC+8 zone.
func TodayCN() string { return NowCN().Format("2006-01-02") }

// Zpad6 normalizes a raw fund code: every non-digit character is removed,
// and the remaining digits are left-padded with zeros to width 6. The empty
// string is returned when the input carries no digits at all.
func Zpad6(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	t := b.String()
	if t == "" {
		return ""
	}
	if len(t) >= 6 {
		return t
	}
	return strings.Repeat("0", 6-len(t)) + t
}

// NormalizeNum strips the decorations the feeds put around numbers: the
// full-width minus sign, percent signs and surrounding whitespace.
func NormalizeNum(s string) string {
	s = strings.ReplaceAll(s, "－", "-")
	s = strings.ReplaceAll(s, "%", "")
	return strings.TrimSpace(s)
}

// ParseDecimal parses a feed number after normalization. ok is false when
// the string does not hold a number.
func ParseDecimal(s string) (d decimal.Decimal, ok bool) {
	s = NormalizeNum(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

var isoLike = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(?:[ T]\d{2}:\d{2}(?::\d{2})?)?$`)

// IsISOLike reports whether s is an ISO-8601 date or date-time as published
// by the feeds. Anything else (notably localized dates) is rejected.
func IsISOLike(s string) bool { return isoLike.MatchString(s) }

// TitleUnset reports whether a holding title still needs a real fund name:
// it is empty, purely numeric, or just a copy of the fund code.
func TitleUnset(title, code string) bool {
	title = strings.TrimSpace(title)
	if title == "" || title == code {
		return true
	}
	for _, r := range title {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
