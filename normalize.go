package chintai

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// AccessSeparator joins multiple access descriptors in one access field.
const AccessSeparator = ", "

// walkRe matches the station and walk-minutes clause of a descriptor,
// e.g. "渋谷駅 歩9分".
var walkRe = regexp.MustCompile(`^(.*?)[\s　]+歩\s*(\p{Nd}+)`)

// ParseNumber coerces free text such as "8.5万円", "25.5m2" or "築12年" to a
// number. Every rune that is not a digit or a decimal point is dropped
// (full-width digits are folded first). Empty results and parse failures
// return nil, never zero.
func ParseNumber(text string) *float64 {
	var sb strings.Builder
	for _, r := range width.Narrow.String(text) {
		if (r >= '0' && r <= '9') || r == '.' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return nil
	}

	v, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return nil
	}
	return &v
}

// SplitAccess splits an access field into exactly MaxAccess triples.
// Descriptors beyond MaxAccess are dropped; missing slots are zero Access
// values. A descriptor of the form "Line/Station 歩N分" yields all three
// fields. Any other descriptor keeps its whole text as the line and leaves
// station and walk minutes nil.
func SplitAccess(text string) [MaxAccess]Access {
	var out [MaxAccess]Access
	for i, desc := range strings.Split(text, AccessSeparator) {
		if i >= MaxAccess {
			break
		}
		out[i] = parseAccess(desc)
	}
	return out
}

// JoinAccess joins descriptors into a single access field.
func JoinAccess(descs []string) string {
	return strings.Join(descs, AccessSeparator)
}

func parseAccess(desc string) Access {
	desc = strings.TrimSpace(desc)
	whole := Access{Line: optional(desc)}

	parts := strings.Split(desc, "/")
	if len(parts) != 2 {
		return whole
	}

	m := walkRe.FindStringSubmatch(strings.TrimSpace(parts[1]))
	if m == nil {
		return whole
	}
	minutes, err := strconv.Atoi(width.Narrow.String(m[2]))
	if err != nil {
		return whole
	}
	walk := float64(minutes)

	return Access{
		Line:        optional(parts[0]),
		Station:     optional(m[1]),
		WalkMinutes: &walk,
	}
}

// Dedupe removes exact duplicate records, keeping the first occurrence.
func Dedupe(records []RawRecord) []RawRecord {
	seen := make(map[RawRecord]struct{}, len(records))
	out := make([]RawRecord, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Normalize removes duplicate records and converts the rest to properties.
func Normalize(records []RawRecord) []*Property {
	records = Dedupe(records)
	props := make([]*Property, 0, len(records))
	for _, r := range records {
		props = append(props, NormalizeRecord(r))
	}
	return props
}

// NormalizeRecord coerces numeric fields and splits the access field of a
// single record. It never fails; unparseable fields become nil.
func NormalizeRecord(r RawRecord) *Property {
	return &Property{
		Name:              r.Name,
		Category:          r.Category,
		Address:           r.Address,
		Age:               ParseNumber(r.Age),
		Structure:         r.Structure,
		Floor:             ParseNumber(r.Floor),
		Rent:              ParseNumber(r.Rent),
		ManagementFee:     ParseNumber(r.ManagementFee),
		Deposit:           ParseNumber(r.Deposit),
		KeyMoney:          ParseNumber(r.KeyMoney),
		Layout:            r.Layout,
		Area:              ParseNumber(r.Area),
		ImageURL:          optional(r.ImageURL),
		FloorPlanImageURL: optional(r.FloorPlanImageURL),
		DetailURL:         optional(r.DetailURL),
		Access:            SplitAccess(r.Access),
	}
}

// optional returns nil for blank text and a pointer to the trimmed text otherwise.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
