package shared

import "fmt"

// Category represents the family an indicator belongs to.
type Category int

const (
	Momentum Category = iota
	Trend
	MovingAverage
	Band
	VolumeCategory
	Volatility
	Composite
)

// String stringifies the provided category.
func (c Category) String() string {
	switch c {
	case Momentum:
		return "momentum"
	case Trend:
		return "trend"
	case MovingAverage:
		return "moving_average"
	case Band:
		return "band"
	case VolumeCategory:
		return "volume"
	case Volatility:
		return "volatility"
	case Composite:
		return "composite"
	default:
		return "unknown"
	}
}

// MarshalJSON marshals the category into its string form.
func (c Category) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", c.String())), nil
}

// IndicatorResult represents the outcome of a single indicator computation.
// It is produced once per evaluation and never mutated.
type IndicatorResult struct {
	// Name uniquely identifies the indicator and its parameterization.
	Name string `json:"name"`
	// Category is the indicator family.
	Category Category `json:"category"`
	// Values holds the indicator numerics, most significant first.
	Values []float64 `json:"values"`
	// Vote is the directional opinion derived from the values.
	Vote Direction `json:"vote"`
	// Conviction is a monotonic distance-from-neutral-threshold measure used
	// to rank contributing indicators. Larger means further from neutral.
	Conviction float64 `json:"conviction"`
}

// IndicatorFilter restricts which catalog indicators are evaluated.
type IndicatorFilter struct {
	// Include lists indicator names to evaluate exclusively. When empty, the
	// full catalog is considered.
	Include []string
	// Exclude lists indicator names to skip.
	Exclude []string
}

// Allows reports whether the provided indicator name passes the filter.
func (f *IndicatorFilter) Allows(name string) bool {
	if f == nil {
		return true
	}

	for idx := range f.Exclude {
		if f.Exclude[idx] == name {
			return false
		}
	}

	if len(f.Include) == 0 {
		return true
	}

	for idx := range f.Include {
		if f.Include[idx] == name {
			return true
		}
	}

	return false
}
