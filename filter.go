package chintai

import (
	"math"
	"strings"
)

// MaxStations is the maximum number of stations a filter may select.
const MaxStations = 5

// LayoutAll disables the layout condition of a PropertyFilter.
const LayoutAll = "すべて"

// Layouts lists the selectable layout codes, LayoutAll first.
var Layouts = []string{LayoutAll, "1K", "1DK", "1LDK", "2K", "2DK", "2LDK", "3K", "3DK", "3LDK", "4LDK"}

// Range is an inclusive numeric range.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range. A nil value is never
// contained.
func (r Range) Contains(v *float64) bool {
	return v != nil && *v >= r.Min && *v <= r.Max
}

// PropertyFilter holds the user's search conditions.
type PropertyFilter struct {
	Rent          Range `json:"rent"`
	ManagementFee Range `json:"managementFee"`
	Age           Range `json:"age"`
	Area          Range `json:"area"`

	// Layout must equal the record's layout unless empty or LayoutAll.
	Layout string `json:"layout"`

	// Stations, when non-empty, requires any of the record's stations to be
	// in the set. Names are compared without surrounding space and without
	// a trailing "駅", so "渋谷" and "渋谷駅" are the same station.
	Stations []string `json:"stations"`
}

// DefaultPropertyFilter returns the widest filter offered by the UI.
func DefaultPropertyFilter() PropertyFilter {
	return PropertyFilter{
		Rent:          Range{Min: 0, Max: 250000},
		ManagementFee: Range{Min: 0, Max: 50000},
		Age:           Range{Min: 0, Max: 50},
		Area:          Range{Min: 0, Max: 200},
		Layout:        LayoutAll,
	}
}

// Validate returns an error if the filter contains invalid fields.
func (f *PropertyFilter) Validate() error {
	ranges := []struct {
		name string
		r    Range
	}{
		{"rent", f.Rent},
		{"management fee", f.ManagementFee},
		{"age", f.Age},
		{"area", f.Area},
	}
	for _, x := range ranges {
		if math.IsNaN(x.r.Min) || math.IsNaN(x.r.Max) {
			return Errorf(EINVALID, "%s range bounds must be numbers", x.name)
		}
		if x.r.Min > x.r.Max {
			return Errorf(EINVALID, "%s range minimum %g exceeds maximum %g", x.name, x.r.Min, x.r.Max)
		}
	}
	if len(f.Stations) > MaxStations {
		return Errorf(EINVALID, "at most %d stations may be selected", MaxStations)
	}
	return nil
}

// Match reports whether the property satisfies every condition.
func (f *PropertyFilter) Match(p *Property) bool {
	if p == nil {
		return false
	}
	if !f.Rent.Contains(p.Rent) ||
		!f.ManagementFee.Contains(p.ManagementFee) ||
		!f.Age.Contains(p.Age) ||
		!f.Area.Contains(p.Area) {
		return false
	}
	if f.Layout != "" && f.Layout != LayoutAll && p.Layout != f.Layout {
		return false
	}
	if len(f.Stations) == 0 {
		return true
	}
	for _, station := range p.Stations() {
		for _, want := range f.Stations {
			if canonicalStation(station) == canonicalStation(want) {
				return true
			}
		}
	}
	return false
}

// FilterProperties returns the properties matching the filter, preserving
// order. The input slice is not modified.
func FilterProperties(props []*Property, f PropertyFilter) []*Property {
	out := make([]*Property, 0, len(props))
	for _, p := range props {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

func canonicalStation(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), "駅")
}
