package dimension

// Parameter classifications for dimensional callouts
const (
	ParameterDiameter = "Diameter"
	ParameterRadius   = "Radius"
	ParameterThread   = "Thread"
	ParameterChamfer  = "Chamfer"
	ParameterAngle    = "Angle"
	ParameterSurface  = "Surface Roughness"
	ParameterRunout   = "Concentricity/Runout"
	ParameterLength   = "Length"
)

// Inspection type markers
const (
	TypeCritical = "C"
	TypeStandard = "S"
	TypeKey      = "K"
)

// DefaultTolerance is applied when a callout carries no explicit tolerance
const DefaultTolerance = "±0.10"

// Dimension represents a single dimensional callout lifted from a drawing
type Dimension struct {
	Balloon    int      `json:"balloon"`
	Parameter  string   `json:"parameter"`
	Nominal    *float64 `json:"nominal"`
	Tolerance  string   `json:"tolerance"`
	Type       string   `json:"type,omitempty"`
	Instrument string   `json:"instrument"`
	Page       int      `json:"page,omitempty"`
	Raw        string   `json:"raw"`
}

// instruments maps each parameter classification to the measuring instrument
// used for it on the inspection floor
var instruments = map[string]string{
	ParameterDiameter: "DVC",
	ParameterRadius:   "VMS/IMM",
	ParameterThread:   "Thread Gauge",
	ParameterChamfer:  "VMS/IMM",
	ParameterAngle:    "VMS/IMM",
	ParameterSurface:  "Surface Tester",
	ParameterRunout:   "CMM",
	ParameterLength:   "DVC",
}

// InstrumentFor returns the measuring instrument for a parameter classification
func InstrumentFor(parameter string) string {
	if inst, ok := instruments[parameter]; ok {
		return inst
	}
	return instruments[ParameterLength]
}

// Parameters returns all parameter classifications in precedence order
func Parameters() []string {
	return []string{
		ParameterDiameter,
		ParameterRadius,
		ParameterThread,
		ParameterChamfer,
		ParameterAngle,
		ParameterSurface,
		ParameterRunout,
		ParameterLength,
	}
}
