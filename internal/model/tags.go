package model

// Severity groups tags across indicators for display.
type Severity int

const (
	SeverityUnclassified Severity = iota
	SeverityNormal
	SeverityModerate
	SeveritySevere
)

// WFATag is the Weight-for-Age classification.
type WFATag string

const (
	WFAUnclassified        WFATag = ""
	WFANormal              WFATag = "N"
	WFASeverelyUnderweight WFATag = "SUW"
	WFAUnderweight         WFATag = "UW"
	WFAOverweight          WFATag = "OW"
)

// Label returns a human-readable name for the tag.
func (t WFATag) Label() string {
	switch t {
	case WFANormal:
		return "Normal"
	case WFASeverelyUnderweight:
		return "Severely Underweight"
	case WFAUnderweight:
		return "Underweight"
	case WFAOverweight:
		return "Overweight"
	default:
		return "Not classifiable"
	}
}

// Severity maps the tag to a display severity.
func (t WFATag) Severity() Severity {
	switch t {
	case WFANormal:
		return SeverityNormal
	case WFAUnderweight, WFAOverweight:
		return SeverityModerate
	case WFASeverelyUnderweight:
		return SeveritySevere
	default:
		return SeverityUnclassified
	}
}

// LHFATag is the Length/Height-for-Age classification.
type LHFATag string

const (
	LHFAUnclassified    LHFATag = ""
	LHFANormal          LHFATag = "N"
	LHFASeverelyStunted LHFATag = "SST"
	LHFAStunted         LHFATag = "ST"
	LHFATall            LHFATag = "T"
)

// Label returns a human-readable name for the tag.
func (t LHFATag) Label() string {
	switch t {
	case LHFANormal:
		return "Normal"
	case LHFASeverelyStunted:
		return "Severely Stunted"
	case LHFAStunted:
		return "Stunted"
	case LHFATall:
		return "Tall"
	default:
		return "Not classifiable"
	}
}

// Severity maps the tag to a display severity.
func (t LHFATag) Severity() Severity {
	switch t {
	case LHFANormal, LHFATall:
		return SeverityNormal
	case LHFAStunted:
		return SeverityModerate
	case LHFASeverelyStunted:
		return SeveritySevere
	default:
		return SeverityUnclassified
	}
}

// WFHTag is the Weight-for-Height classification.
type WFHTag string

const (
	WFHUnclassified   WFHTag = ""
	WFHNormal         WFHTag = "N"
	WFHSeverelyWasted WFHTag = "SW"
	WFHWasted         WFHTag = "W"
	WFHOverweight     WFHTag = "OW"
	WFHObese          WFHTag = "OB"
)

// Label returns a human-readable name for the tag.
func (t WFHTag) Label() string {
	switch t {
	case WFHNormal:
		return "Normal"
	case WFHSeverelyWasted:
		return "Severely Wasted"
	case WFHWasted:
		return "Wasted"
	case WFHOverweight:
		return "Overweight"
	case WFHObese:
		return "Obese"
	default:
		return "Not classifiable"
	}
}

// Severity maps the tag to a display severity.
func (t WFHTag) Severity() Severity {
	switch t {
	case WFHNormal:
		return SeverityNormal
	case WFHWasted, WFHOverweight:
		return SeverityModerate
	case WFHSeverelyWasted, WFHObese:
		return SeveritySevere
	default:
		return SeverityUnclassified
	}
}

// MUACTag is the MUAC screening classification.
type MUACTag string

const (
	MUACUnclassified MUACTag = ""
	MUACNormal       MUACTag = "N"
	MUACModerate     MUACTag = "MAM"
	MUACSevere       MUACTag = "SAM"
)

// Label returns a human-readable name for the tag.
func (t MUACTag) Label() string {
	switch t {
	case MUACNormal:
		return "Normal"
	case MUACModerate:
		return "Moderate Acute Malnutrition"
	case MUACSevere:
		return "Severe Acute Malnutrition"
	default:
		return "Not classifiable"
	}
}

// Severity maps the tag to a display severity.
func (t MUACTag) Severity() Severity {
	switch t {
	case MUACNormal:
		return SeverityNormal
	case MUACModerate:
		return SeverityModerate
	case MUACSevere:
		return SeveritySevere
	default:
		return SeverityUnclassified
	}
}
