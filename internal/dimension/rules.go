package dimension

import (
	"regexp"
	"strings"
)

// classificationRule recognises one parameter class in callout text. Rules
// receive the raw text and an uppercased copy: engineering symbols (Ø, Ra,
// M6) are case-sensitive and match the raw text, keywords match the
// uppercased one.
type classificationRule struct {
	parameter string
	matches   func(raw, upper string) bool
}

// classificationRules lists the parameter classes in precedence order. The
// first matching rule wins; callouts matching none are plain lengths.
var classificationRules = []classificationRule{
	{ParameterDiameter, isDiameter},
	{ParameterRadius, isRadius},
	{ParameterThread, isThread},
	{ParameterChamfer, isChamfer},
	{ParameterAngle, isAngle},
	{ParameterSurface, isSurfaceRoughness},
	{ParameterRunout, isRunout},
}

var (
	threadPattern  = regexp.MustCompile(`M\d+`)
	chamferPattern = regexp.MustCompile(`\d+\s*[Xx]\s*\d+°`)
)

// classify assigns a parameter class to the callout text
func classify(text string) string {
	upper := strings.ToUpper(text)
	for _, rule := range classificationRules {
		if rule.matches(text, upper) {
			return rule.parameter
		}
	}
	return ParameterLength
}

func isDiameter(raw, upper string) bool {
	return strings.Contains(raw, "Ø") || strings.Contains(upper, "DIA")
}

// isRadius matches the R prefix convention and the standalone R marker.
// A leading lowercase r is not a radius callout.
func isRadius(raw, upper string) bool {
	return strings.HasPrefix(raw, "R") ||
		strings.Contains(upper, "RADIUS") ||
		strings.Contains(raw, " R ")
}

func isThread(raw, upper string) bool {
	return threadPattern.MatchString(raw) || strings.Contains(upper, "THREAD")
}

// isChamfer requires the degree sign together with a count marker, or the
// full "2 X 45°" form. Checked before the angle rule so chamfers are not
// misread as plain angles.
func isChamfer(raw, upper string) bool {
	if strings.Contains(raw, "°") &&
		(strings.Contains(upper, "X") || strings.Contains(upper, "CHAM")) {
		return true
	}
	return chamferPattern.MatchString(raw)
}

func isAngle(raw, upper string) bool {
	return strings.Contains(raw, "°") ||
		strings.Contains(upper, "ANGLE") ||
		strings.Contains(upper, "DEG")
}

func isSurfaceRoughness(raw, upper string) bool {
	return strings.Contains(raw, "Ra") ||
		strings.Contains(raw, "Rz") ||
		strings.Contains(raw, "Rt") ||
		strings.Contains(upper, "SURFACE")
}

func isRunout(raw, upper string) bool {
	return strings.Contains(raw, "⌖") ||
		strings.Contains(raw, "↗") ||
		strings.Contains(upper, "CONC") ||
		strings.Contains(upper, "RUNOUT")
}
