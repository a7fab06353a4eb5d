package web

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/onobori/chintai"
)

// Form field names shared by the HTML form and the JSON API query string.
const (
	fieldWorkStation    = "work_station"
	fieldCommuteMinutes = "commute_minutes"
	fieldLayout         = "layout"
	fieldStation        = "station"
)

// rangeFields maps each filter range to its min and max field names.
var rangeFields = []struct {
	min, max string
	get      func(*chintai.PropertyFilter) *chintai.Range
}{
	{"rent_min", "rent_max", func(f *chintai.PropertyFilter) *chintai.Range { return &f.Rent }},
	{"fee_min", "fee_max", func(f *chintai.PropertyFilter) *chintai.Range { return &f.ManagementFee }},
	{"age_min", "age_max", func(f *chintai.PropertyFilter) *chintai.Range { return &f.Age }},
	{"area_min", "area_max", func(f *chintai.PropertyFilter) *chintai.Range { return &f.Area }},
}

// parseFilter reads filter conditions from form values. Absent or blank
// fields keep the DefaultPropertyFilter value. Station values are copied
// as given; callers decide whether they are names or suggestion lines.
func parseFilter(values url.Values) (chintai.PropertyFilter, error) {
	f := chintai.DefaultPropertyFilter()

	for _, rf := range rangeFields {
		r := rf.get(&f)
		if err := parseFloatField(values, rf.min, &r.Min); err != nil {
			return f, err
		}
		if err := parseFloatField(values, rf.max, &r.Max); err != nil {
			return f, err
		}
	}

	if layout := strings.TrimSpace(values.Get(fieldLayout)); layout != "" {
		f.Layout = layout
	}

	for _, s := range values[fieldStation] {
		if s = strings.TrimSpace(s); s != "" {
			f.Stations = append(f.Stations, s)
		}
	}

	return f, f.Validate()
}

func parseFloatField(values url.Values, name string, dst *float64) error {
	v := strings.TrimSpace(values.Get(name))
	if v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) {
		return chintai.Errorf(chintai.EINVALID, "%s must be a number", name)
	}
	*dst = n
	return nil
}

// parseCommute reads the workplace station and commute minutes. A blank
// minutes field selects the default of 10.
func parseCommute(values url.Values) (string, int, error) {
	station := strings.TrimSpace(values.Get(fieldWorkStation))
	minutes := defaultCommuteMinutes
	if v := strings.TrimSpace(values.Get(fieldCommuteMinutes)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return "", 0, chintai.Errorf(chintai.EINVALID, "%s must be a whole number", fieldCommuteMinutes)
		}
		minutes = n
	}
	return station, minutes, chintai.ValidateSuggestRequest(station, minutes)
}
