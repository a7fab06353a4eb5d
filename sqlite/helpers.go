package sqlite

import (
	"database/sql"
	"strings"

	"github.com/onobori/chintai"
)

// propertyColumns lists the properties table columns in insert and select order.
var propertyColumns = []string{
	"name", "category", "address", "age", "structure",
	"floor", "rent", "management_fee", "deposit", "key_money", "layout", "area",
	"image_url", "floorplan_image_url", "detail_url",
	"line_1", "station_1", "walk_minutes_1",
	"line_2", "station_2", "walk_minutes_2",
	"line_3", "station_3", "walk_minutes_3",
}

// insertPropertySQL is the parameterized insert for one property row.
var insertPropertySQL = "INSERT INTO properties (" + strings.Join(propertyColumns, ", ") +
	") VALUES (" + strings.TrimSuffix(strings.Repeat("?, ", len(propertyColumns)), ", ") + ")"

// selectPropertiesSQL reads every property row in insertion order.
var selectPropertiesSQL = "SELECT " + strings.Join(propertyColumns, ", ") + " FROM properties ORDER BY rowid"

// propertyArgs returns the insert arguments for p. Nil pointers become NULL.
func propertyArgs(p *chintai.Property) []any {
	args := []any{
		p.Name, p.Category, p.Address, nullable(p.Age), p.Structure,
		nullable(p.Floor), nullable(p.Rent), nullable(p.ManagementFee),
		nullable(p.Deposit), nullable(p.KeyMoney), p.Layout, nullable(p.Area),
		nullable(p.ImageURL), nullable(p.FloorPlanImageURL), nullable(p.DetailURL),
	}
	for _, a := range p.Access {
		args = append(args, nullable(a.Line), nullable(a.Station), nullable(a.WalkMinutes))
	}
	return args
}

// nullable converts a nil pointer to a NULL argument.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanProperty reads one row selected with propertyColumns.
func scanProperty(s scanner) (*chintai.Property, error) {
	var (
		name, category, address, structure, layout sql.Null[string]
		age, floor, rent, fee, deposit, keyMoney   sql.Null[float64]
		area                                       sql.Null[float64]
		image, floorPlan, detail                   sql.Null[string]
		lines, stations                            [chintai.MaxAccess]sql.Null[string]
		walks                                      [chintai.MaxAccess]sql.Null[float64]
	)

	dest := []any{
		&name, &category, &address, &age, &structure,
		&floor, &rent, &fee, &deposit, &keyMoney, &layout, &area,
		&image, &floorPlan, &detail,
	}
	for i := range chintai.MaxAccess {
		dest = append(dest, &lines[i], &stations[i], &walks[i])
	}
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	p := &chintai.Property{
		Name:              name.V,
		Category:          category.V,
		Address:           address.V,
		Age:               ptr(age),
		Structure:         structure.V,
		Floor:             ptr(floor),
		Rent:              ptr(rent),
		ManagementFee:     ptr(fee),
		Deposit:           ptr(deposit),
		KeyMoney:          ptr(keyMoney),
		Layout:            layout.V,
		Area:              ptr(area),
		ImageURL:          ptr(image),
		FloorPlanImageURL: ptr(floorPlan),
		DetailURL:         ptr(detail),
	}
	for i := range chintai.MaxAccess {
		p.Access[i] = chintai.Access{
			Line:        ptr(lines[i]),
			Station:     ptr(stations[i]),
			WalkMinutes: ptr(walks[i]),
		}
	}
	return p, nil
}

func ptr[T any](n sql.Null[T]) *T {
	if !n.Valid {
		return nil
	}
	v := n.V
	return &v
}
