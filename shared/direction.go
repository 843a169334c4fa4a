package shared

import "fmt"

// Direction represents the directional opinion of an indicator or signal.
type Direction int

const (
	Neutral Direction = iota
	Long
	Short
)

// String stringifies the provided direction.
func (d Direction) String() string {
	switch d {
	case Long:
		return "LONG"
	case Short:
		return "SHORT"
	default:
		return "NEUTRAL"
	}
}

// MarshalJSON marshals the direction into its string form.
func (d Direction) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// Confidence represents the reliability tier of a signal, derived from how
// many indicators could be computed for it.
type Confidence int

const (
	LowConfidence Confidence = iota
	MediumConfidence
	HighConfidence
)

// String stringifies the provided confidence tier.
func (c Confidence) String() string {
	switch c {
	case HighConfidence:
		return "HIGH"
	case MediumConfidence:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// MarshalJSON marshals the confidence tier into its string form.
func (c Confidence) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", c.String())), nil
}
