package chintai

import "context"

// MaxAccess is the number of access slots kept per property record.
// Extra descriptors are discarded.
const MaxAccess = 3

// Access is one line/station/walk-time triple. Any field may be nil when the
// descriptor is absent or malformed.
type Access struct {
	Line        *string  `json:"line"`
	Station     *string  `json:"station"`
	WalkMinutes *float64 `json:"walkMinutes"`
}

// Property is the normalized, flattened unit of output: one row per
// building × room × access context. Numeric fields are nil when the source
// text could not be parsed.
type Property struct {
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Address   string   `json:"address"`
	Age       *float64 `json:"age"`
	Structure string   `json:"structure"`

	Floor         *float64 `json:"floor"`
	Rent          *float64 `json:"rent"`
	ManagementFee *float64 `json:"managementFee"`
	Deposit       *float64 `json:"deposit"`
	KeyMoney      *float64 `json:"keyMoney"`
	Layout        string   `json:"layout"`
	Area          *float64 `json:"area"`

	ImageURL          *string `json:"imageUrl"`
	FloorPlanImageURL *string `json:"floorPlanImageUrl"`
	DetailURL         *string `json:"detailUrl"`

	Access [MaxAccess]Access `json:"access"`
}

// Validate returns an error if the property contains invalid fields.
func (p *Property) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "property name required")
	}
	return nil
}

// Stations returns the non-nil station names of the record's access slots.
func (p *Property) Stations() []string {
	var stations []string
	for _, a := range p.Access {
		if a.Station != nil {
			stations = append(stations, *a.Station)
		}
	}
	return stations
}

// PropertyService represents the persistent property table.
// The table is append-only: rows are never updated or deduplicated against
// earlier runs.
type PropertyService interface {
	// CreateProperties appends the records to the table in one transaction.
	// Returns EINVALID if any record fails validation; nothing is written then.
	CreateProperties(ctx context.Context, props []*Property) error

	// FindProperties returns every row in insertion order.
	FindProperties(ctx context.Context) ([]*Property, error)

	// CountProperties returns the number of rows in the table.
	CountProperties(ctx context.Context) (int, error)
}
