package utils

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// neutral is returned by Normalize for a degenerate range.
const neutral = 0.5

var usd = message.NewPrinter(language.English)

// Normalize scales v into [0,1] relative to [min, max].
// A degenerate range (min == max) yields 0.5.
func Normalize(v, min, max float64) float64 {
	if max == min {
		return neutral
	}
	n := (v - min) / (max - min)
	return math.Max(0, math.Min(1, n))
}

// ParseUSD parses a currency string such as "$120,000" by dropping every
// character that is neither a digit nor a dot. The second return value is
// false when nothing usable is left.
func ParseUSD(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FormatUSD renders an amount with thousands separators, e.g. $120,000.
func FormatUSD(v float64) string {
	if v == math.Trunc(v) {
		return usd.Sprintf("$%d", int64(v))
	}
	return usd.Sprintf("$%.2f", v)
}

// Unique returns the distinct items of s in first-seen order.
func Unique[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	out := make([]T, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

type roleKeyword struct {
	keyword string
	weight  float64
}

// Checked in order, first match wins.
var roleKeywords = []roleKeyword{
	{"frontend", 1.0},
	{"software", 0.8},
	{"full stack", 0.7},
	{"developer", 0.6},
	{"engineer", 0.6},
	{"product", 0.3},
}

// RoleRelevance maps a job title to a relevance weight in [0,1].
func RoleRelevance(role string) float64 {
	r := strings.ToLower(role)
	for _, rk := range roleKeywords {
		if strings.Contains(r, rk.keyword) {
			return rk.weight
		}
	}
	return 0
}
