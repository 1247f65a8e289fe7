package dimension

import (
	"regexp"
	"strconv"
	"strings"
)

// balloonPatterns lists the accepted balloon callout forms. Each pattern is
// anchored at the start of the line and captures the balloon number followed
// by the dimension text.
var balloonPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d+)\s+(.+)`),         // "12 25.4 ±0.1"
	regexp.MustCompile(`^\((\d+)\)\s*(.+)`),     // "(12) 25.4 ±0.1"
	regexp.MustCompile(`^(\d+)[.\-:]\s*(.+)`),   // "12. 25.4 ±0.1"
	regexp.MustCompile(`^(\d+)\s*[^\d\w]*(.+)`), // "12 - 25.4 ±0.1"
}

// MatchBalloon reports whether a drawing line is a balloon callout. It
// returns the balloon number and the dimension text that follows it. Lines
// whose remaining text is a single character are rejected as noise.
func MatchBalloon(line string) (int, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, "", false
	}

	for _, pattern := range balloonPatterns {
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		balloon, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		text := strings.TrimSpace(m[2])
		if len(text) <= 1 {
			continue
		}

		return balloon, text, true
	}

	return 0, "", false
}
