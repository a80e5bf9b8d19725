package tle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const lineLength = 69

// MalformedElementSetError reports a structural or checksum failure while
// decoding two-line element text. It is always caused by the input itself,
// never by downstream numeric state.
type MalformedElementSetError struct {
	Reason string
}

func (e MalformedElementSetError) Error() string {
	return "malformed element set: " + e.Reason
}

// ParseSet decodes a two-line element set, optionally preceded by a name
// line. It validates line lengths, prefixes, per-line checksums, and that
// both lines reference the same catalog number, so truncated or reordered
// input is rejected here instead of surfacing later as a numeric error.
func ParseSet(text string) (ElementSet, error) {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r ")
		if line != "" {
			lines = append(lines, line)
		}
	}

	var name, line1, line2 string
	switch len(lines) {
	case 2:
		line1, line2 = lines[0], lines[1]
	case 3:
		name, line1, line2 = strings.TrimSpace(lines[0]), lines[1], lines[2]
	default:
		return ElementSet{}, MalformedElementSetError{Reason: fmt.Sprintf("expected 2 element lines (plus optional name line), got %d lines", len(lines))}
	}

	if len(line1) != lineLength {
		return ElementSet{}, MalformedElementSetError{Reason: fmt.Sprintf("line 1 is %d characters, expected %d", len(line1), lineLength)}
	}
	if len(line2) != lineLength {
		return ElementSet{}, MalformedElementSetError{Reason: fmt.Sprintf("line 2 is %d characters, expected %d", len(line2), lineLength)}
	}
	if !strings.HasPrefix(line1, "1 ") {
		return ElementSet{}, MalformedElementSetError{Reason: "line 1 must begin with '1 '"}
	}
	if !strings.HasPrefix(line2, "2 ") {
		return ElementSet{}, MalformedElementSetError{Reason: "line 2 must begin with '2 '"}
	}

	for i, line := range []string{line1, line2} {
		want := int(line[lineLength-1] - '0')
		if got := Checksum(line); got != want {
			return ElementSet{}, MalformedElementSetError{Reason: fmt.Sprintf("line %d checksum digit is %d, computed %d", i+1, want, got)}
		}
	}

	// Catalog number occupies columns 3-7 of both lines and must agree.
	cat1 := strings.TrimSpace(line1[2:7])
	cat2 := strings.TrimSpace(line2[2:7])
	if cat1 != cat2 {
		return ElementSet{}, MalformedElementSetError{Reason: fmt.Sprintf("catalog number mismatch between lines: %q vs %q", cat1, cat2)}
	}
	catalog, err := strconv.Atoi(cat1)
	if err != nil {
		return ElementSet{}, MalformedElementSetError{Reason: fmt.Sprintf("invalid catalog number %q", cat1)}
	}

	epoch, err := parseEpoch(strings.TrimSpace(line1[18:32]))
	if err != nil {
		return ElementSet{}, MalformedElementSetError{Reason: err.Error()}
	}

	// Eccentricity field has an assumed leading decimal point.
	ecc, err := strconv.ParseFloat("0."+strings.TrimSpace(line2[26:33]), 64)
	if err != nil {
		return ElementSet{}, MalformedElementSetError{Reason: fmt.Sprintf("invalid eccentricity field %q", line2[26:33])}
	}
	meanMotion, err := strconv.ParseFloat(strings.TrimSpace(line2[52:63]), 64)
	if err != nil {
		return ElementSet{}, MalformedElementSetError{Reason: fmt.Sprintf("invalid mean motion field %q", line2[52:63])}
	}

	return ElementSet{
		CatalogNumber: catalog,
		Name:          name,
		Line1:         line1,
		Line2:         line2,
		Epoch:         epoch,
		Eccentricity:  ecc,
		MeanMotion:    meanMotion,
	}, nil
}

// Checksum computes the mod-10 element line checksum over the first 68
// columns: digits count as their value, '-' counts as 1, everything else
// as 0.
func Checksum(line string) int {
	var sum int
	n := len(line) - 1
	if n > lineLength-1 {
		n = lineLength - 1
	}
	for _, c := range line[:n] {
		switch {
		case c >= '0' && c <= '9':
			sum += int(c - '0')
		case c == '-':
			sum++
		}
	}
	return sum % 10
}

// parseEpoch converts a TLE epoch string in YYDDD.DDDDDDDD format to time.Time.
// Year 00-56 → 2000s, 57-99 → 1900s.
func parseEpoch(s string) (time.Time, error) {
	if len(s) < 5 {
		return time.Time{}, fmt.Errorf("epoch field too short: %q", s)
	}

	year, err := strconv.Atoi(s[:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch year %q", s[:2])
	}
	if year >= 57 {
		year += 1900
	} else {
		year += 2000
	}

	dayOfYear, err := strconv.ParseFloat(s[2:], 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch day %q", s[2:])
	}
	if dayOfYear < 1 || dayOfYear >= 367 {
		return time.Time{}, fmt.Errorf("epoch day %v out of range", dayOfYear)
	}

	// dayOfYear is 1-based: day 1.0 = Jan 1 00:00 UTC.
	t := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return t.Add(time.Duration((dayOfYear - 1) * float64(24*time.Hour))), nil
}
