package dimension

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchBalloon(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantBalloon int
		wantText    string
		wantOK      bool
	}{
		{
			name:        "standard_callout",
			line:        "1 25.4 ±0.1",
			wantBalloon: 1,
			wantText:    "25.4 ±0.1",
			wantOK:      true,
		},
		{
			name:        "parenthesised_balloon",
			line:        "(2) Ø12.0 ±0.05",
			wantBalloon: 2,
			wantText:    "Ø12.0 ±0.05",
			wantOK:      true,
		},
		{
			name:        "dot_separator",
			line:        "3. R5.0",
			wantBalloon: 3,
			wantText:    "R5.0",
			wantOK:      true,
		},
		{
			name:        "dash_separator",
			line:        "4- 45°",
			wantBalloon: 4,
			wantText:    "45°",
			wantOK:      true,
		},
		{
			name:        "colon_separator",
			line:        "5: M6 x 1",
			wantBalloon: 5,
			wantText:    "M6 x 1",
			wantOK:      true,
		},
		{
			name:        "surrounding_whitespace",
			line:        "  12 2 X 45° CHAM  ",
			wantBalloon: 12,
			wantText:    "2 X 45° CHAM",
			wantOK:      true,
		},
		{
			name:   "no_leading_number",
			line:   "NOTE: SEE DETAIL A",
			wantOK: false,
		},
		{
			name:   "single_char_dimension_text",
			line:   "7 X",
			wantOK: false,
		},
		{
			name:   "bare_number",
			line:   "123",
			wantOK: false,
		},
		{
			name:   "empty_line",
			line:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balloon, text, ok := MatchBalloon(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantBalloon, balloon)
				assert.Equal(t, tt.wantText, text)
			}
		})
	}
}

func TestParseNominal(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
		none bool
	}{
		{name: "decimal", text: "25.4 ±0.1", want: 25.4},
		{name: "whole_number", text: "Ø12", want: 12},
		{name: "simple_fraction", text: "1/2 DRILL THRU", want: 0.5},
		{name: "mixed_number", text: "2 1/2 SLOT", want: 2.5},
		{name: "zero_denominator_falls_through", text: "3/0 REF", want: 3},
		{name: "decimal_beats_trailing_fraction", text: "12.5/3", want: 12.5},
		{name: "no_number", text: "SEE NOTE", none: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseNominal(tt.text)
			if tt.none {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 1e-9)
		})
	}
}

func TestParseTolerance(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "plus_minus_decimal", text: "25.4 ±0.1", want: "±0.1"},
		{name: "spaced_plus_minus", text: "25.4 ± 0.05", want: "±0.05"},
		{name: "plus_minus_whole", text: "45° ±1°", want: "±1"},
		{name: "asymmetric_decimal", text: "10.0 +0.1/-0.2", want: "+0.1/-0.2"},
		{name: "asymmetric_whole", text: "10 +1/-1", want: "+1/-1"},
		{name: "one_sided", text: "10.0 -0.05", want: "-0.05"},
		{name: "defaulted", text: "25.4", want: "±0.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTolerance(tt.text, DefaultTolerance))
		})
	}

	t.Run("custom_fallback", func(t *testing.T) {
		assert.Equal(t, "±0.25", parseTolerance("25.4", "±0.25"))
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "diameter_symbol", text: "Ø12.0 ±0.05", want: ParameterDiameter},
		{name: "diameter_abbreviation", text: "25.4 DIA", want: ParameterDiameter},
		{name: "diameter_keyword", text: "12 diameter", want: ParameterDiameter},
		{name: "radius_prefix", text: "R5.0 ±0.1", want: ParameterRadius},
		{name: "radius_marker", text: "5.0 R TYP", want: ParameterRadius},
		{name: "roughness_prefix_reads_as_radius", text: "Ra 3.2", want: ParameterRadius},
		{name: "thread_metric", text: "M6 x 1", want: ParameterThread},
		{name: "thread_keyword", text: "1/4-20 UNC THREAD", want: ParameterThread},
		{name: "chamfer_count", text: "2 X 45° CHAM", want: ParameterChamfer},
		{name: "chamfer_compact", text: "2x45°", want: ParameterChamfer},
		{name: "angle_degrees", text: "45° ±1°", want: ParameterAngle},
		{name: "angle_keyword", text: "30 DEG TYP", want: ParameterAngle},
		{name: "surface_roughness", text: "FINISH Ra 3.2", want: ParameterSurface},
		{name: "surface_keyword", text: "1.6 SURFACE FINISH", want: ParameterSurface},
		{name: "runout_keyword", text: "TOTAL RUNOUT 0.05", want: ParameterRunout},
		{name: "concentricity", text: "CONC 0.02", want: ParameterRunout},
		{name: "position_symbol", text: "⌖ 0.1", want: ParameterRunout},
		{name: "plain_length", text: "25.4 ±0.1", want: ParameterLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.text))
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "critical_marker", text: "25.4 ±0.1 C", want: TypeCritical},
		{name: "critical_keyword", text: "25.4 CRITICAL", want: TypeCritical},
		{name: "standard_marker", text: "25.4 S", want: TypeStandard},
		{name: "spec_keyword", text: "SPEC 10.0", want: TypeStandard},
		{name: "key_keyword", text: "KEY DIM 12", want: TypeKey},
		{name: "major_keyword", text: "MAJOR 8.0", want: TypeKey},
		{name: "chamfer_is_not_critical", text: "2 X 45° CHAM", want: ""},
		{name: "unmarked", text: "25.4 ±0.1", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseType(tt.text))
		})
	}
}

func TestParse(t *testing.T) {
	dim := Parse("Ø12.0 ±0.05 C", "")

	assert.Equal(t, ParameterDiameter, dim.Parameter)
	require.NotNil(t, dim.Nominal)
	assert.InDelta(t, 12.0, *dim.Nominal, 1e-9)
	assert.Equal(t, "±0.05", dim.Tolerance)
	assert.Equal(t, TypeCritical, dim.Type)
	assert.Equal(t, "DVC", dim.Instrument)
	assert.Equal(t, "Ø12.0 ±0.05 C", dim.Raw)
}

func TestParseAppliesDefaultTolerance(t *testing.T) {
	dim := Parse("25.4", "±0.25")
	assert.Equal(t, "±0.25", dim.Tolerance)

	dim = Parse("25.4", "")
	assert.Equal(t, DefaultTolerance, dim.Tolerance)
}

func TestInstrumentFor(t *testing.T) {
	assert.Equal(t, "DVC", InstrumentFor(ParameterDiameter))
	assert.Equal(t, "VMS/IMM", InstrumentFor(ParameterRadius))
	assert.Equal(t, "Thread Gauge", InstrumentFor(ParameterThread))
	assert.Equal(t, "Surface Tester", InstrumentFor(ParameterSurface))
	assert.Equal(t, "CMM", InstrumentFor(ParameterRunout))
	assert.Equal(t, "DVC", InstrumentFor("unknown"))
}
