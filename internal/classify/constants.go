package classify

const (
	// WFHMinHeight and WFHMaxHeight bound the weight-for-height window in cm.
	WFHMinHeight = 65.0
	WFHMaxHeight = 120.0

	// MUACMinMonths and MUACMaxMonths bound the MUAC screening window.
	MUACMinMonths = 6.0
	MUACMaxMonths = 59.0

	// MUACSevereBelow and MUACModerateBelow are the SAM and MAM cutoffs in cm.
	MUACSevereBelow   = 11.5
	MUACModerateBelow = 12.5
)
