package dimension

import (
	"regexp"
	"strconv"
	"strings"
)

// Nominal value forms, most specific first so mixed numbers and fractions
// are not swallowed by the bare-integer form. The fraction forms must not
// be preceded by a digit or decimal point, which keeps "12.5/3" reading as
// the decimal 12.5 rather than the fraction 5/3.
var (
	mixedNumberPattern = regexp.MustCompile(`(?:^|[^.\d])(\d+)\s(\d+)/(\d+)`)
	fractionPattern    = regexp.MustCompile(`(?:^|[^.\d])(\d+)/(\d+)`)
	decimalPattern     = regexp.MustCompile(`(\d+\.\d+)`)
	wholePattern       = regexp.MustCompile(`(\d+)`)
)

// Tolerance forms, tried in order. Spaces inside a match are stripped.
var tolerancePatterns = []*regexp.Regexp{
	regexp.MustCompile(`±\s*\d+\.\d+`),         // ±0.05
	regexp.MustCompile(`±\s*\d+`),              // ±1
	regexp.MustCompile(`\+\d+\.\d+/-\d+\.\d+`), // +0.1/-0.2
	regexp.MustCompile(`\+\d+/-\d+`),           // +1/-1
	regexp.MustCompile(`[+\-]\d+\.\d+`),        // one-sided decimal
	regexp.MustCompile(`[+\-]\d+`),             // one-sided whole
}

var (
	criticalMarker = regexp.MustCompile(`\bC\b`)
	standardMarker = regexp.MustCompile(`\bS\b`)
)

// Parse interprets a callout's dimension text, the part after the balloon
// number. Balloon and page are supplied by the caller; everything else is
// derived from the text. An empty defaultTolerance falls back to
// DefaultTolerance.
func Parse(text, defaultTolerance string) Dimension {
	text = strings.TrimSpace(text)
	if defaultTolerance == "" {
		defaultTolerance = DefaultTolerance
	}

	parameter := classify(text)

	return Dimension{
		Parameter:  parameter,
		Nominal:    parseNominal(text),
		Tolerance:  parseTolerance(text, defaultTolerance),
		Type:       parseType(text),
		Instrument: InstrumentFor(parameter),
		Raw:        text,
	}
}

// parseNominal extracts the nominal value. Mixed numbers and fractions
// convert to their decimal value; a zero denominator rejects the fraction
// form and falls through to the plainer ones. Returns nil when the text
// carries no number at all.
func parseNominal(text string) *float64 {
	if m := mixedNumberPattern.FindStringSubmatch(text); m != nil {
		whole, _ := strconv.ParseFloat(m[1], 64)
		num, _ := strconv.ParseFloat(m[2], 64)
		den, _ := strconv.ParseFloat(m[3], 64)
		if den != 0 {
			v := whole + num/den
			return &v
		}
	}

	if m := fractionPattern.FindStringSubmatch(text); m != nil {
		num, _ := strconv.ParseFloat(m[1], 64)
		den, _ := strconv.ParseFloat(m[2], 64)
		if den != 0 {
			v := num / den
			return &v
		}
	}

	if m := decimalPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return &v
		}
	}

	if m := wholePattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return &v
		}
	}

	return nil
}

// parseTolerance extracts the tolerance callout, or returns the fallback
// when the text carries none
func parseTolerance(text, fallback string) string {
	for _, pattern := range tolerancePatterns {
		if m := pattern.FindString(text); m != "" {
			return strings.ReplaceAll(m, " ", "")
		}
	}
	return fallback
}

// parseType detects the inspection type marker. C (critical) takes
// precedence over S (specification), which takes precedence over K (key).
func parseType(text string) string {
	upper := strings.ToUpper(text)

	switch {
	case criticalMarker.MatchString(upper) || strings.Contains(upper, "CRITICAL"):
		return TypeCritical
	case standardMarker.MatchString(upper) || strings.Contains(upper, "SPEC"):
		return TypeStandard
	case strings.Contains(upper, "KEY") || strings.Contains(upper, "MAJOR"):
		return TypeKey
	}

	return ""
}
