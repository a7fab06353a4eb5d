package web

import (
	"html/template"
	"strconv"

	"github.com/onobori/chintai"
)

var funcs = template.FuncMap{
	"num":         formatNumber,
	"str":         formatString,
	"stationName": chintai.StationName,
	"selected":    func(sel *chintai.Selection, line string) bool { return sel != nil && sel.IsSelected(line) },
	"maxStations": func() int { return chintai.MaxStations },
}

// formatNumber renders an optional number without trailing zeros, or "-"
// when absent.
func formatNumber(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// formatString renders an optional string, or "" when absent.
func formatString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
