// Package experience parses free-text experience requirements such as
// "2-3 years", "5+ years", "6 months" or "fresher" into year ranges.
package experience

import (
	"regexp"
	"strconv"
	"strings"
)

// OpenEndedMax caps "N+ years" ranges.
const OpenEndedMax = 50

type Range struct {
	Min, Max float64
}

var (
	yearRangeRe  = regexp.MustCompile(`(?i)(\d+)\s*-\s*(\d+)\s*years?`)
	yearPlusRe   = regexp.MustCompile(`(?i)(\d+)\s*\+\s*years?`)
	yearSingleRe = regexp.MustCompile(`(?i)(\d+)\s*years?`)
	entryRe      = regexp.MustCompile(`(?i)fresher|entry\s*level|junior`)
	monthRangeRe = regexp.MustCompile(`(?i)(\d+)\s*-\s*(\d+)\s*months?`)
	monthRe      = regexp.MustCompile(`(?i)(\d+)\s*months?`)
)

// Parse extracts a year range from s. ok is false when nothing matches.
func Parse(s string) (r Range, ok bool) {
	if m := yearRangeRe.FindStringSubmatch(s); m != nil {
		return Range{atof(m[1]), atof(m[2])}, true
	}
	if m := yearPlusRe.FindStringSubmatch(s); m != nil {
		return Range{atof(m[1]), OpenEndedMax}, true
	}
	if m := yearSingleRe.FindStringSubmatch(s); m != nil {
		y := atof(m[1])
		return Range{y, y}, true
	}
	if entryRe.MatchString(s) {
		return Range{0, 1}, true
	}
	if m := monthRangeRe.FindStringSubmatch(s); m != nil {
		return Range{atof(m[1]) / 12, atof(m[2]) / 12}, true
	}
	if m := monthRe.FindStringSubmatch(s); m != nil {
		return Range{0, atof(m[1]) / 12}, true
	}
	return Range{}, false
}

// Buckets are the filter values offered to job seekers.
var Buckets = []string{"0-2 years", "2-5 years", "5-10 years", "10+ years"}

// ValidBucket reports whether b is one of Buckets (case-insensitive).
func ValidBucket(b string) bool {
	b = strings.ToLower(strings.TrimSpace(b))
	for _, v := range Buckets {
		if b == v {
			return true
		}
	}
	return false
}

// Matches reports whether the requirement text falls inside bucket.
// Unparseable requirements never match.
func Matches(requirement, bucket string) bool {
	if strings.TrimSpace(requirement) == "" {
		return false
	}
	r, ok := Parse(requirement)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(bucket)) {
	case "0-2 years":
		return r.Max <= 2
	case "2-5 years":
		return r.Min >= 2 && r.Max <= 5
	case "5-10 years":
		return r.Min >= 5 && r.Max <= 10
	case "10+ years":
		return r.Min >= 10
	}
	return false
}

func atof(s string) float64 {
	n, _ := strconv.Atoi(s)
	return float64(n)
}
