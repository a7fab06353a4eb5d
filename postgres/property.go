package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/onobori/chintai"
)

var _ chintai.PropertyService = (*PropertyService)(nil)

var propertyColumns = []string{
	"name", "category", "address", "age", "structure",
	"floor", "rent", "management_fee", "deposit", "key_money", "layout", "area",
	"image_url", "floorplan_image_url", "detail_url",
	"line_1", "station_1", "walk_minutes_1",
	"line_2", "station_2", "walk_minutes_2",
	"line_3", "station_3", "walk_minutes_3",
}

// PropertyService implements chintai.PropertyService using PostgreSQL.
type PropertyService struct {
	db *DB
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(db *DB) *PropertyService {
	return &PropertyService{db: db}
}

// CreateProperties appends props in a single transaction after validating
// every record.
func (s *PropertyService) CreateProperties(ctx context.Context, props []*chintai.Property) error {
	for i, p := range props {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("property %d: %w", i, err)
		}
	}
	if len(props) == 0 {
		return nil
	}

	tx, err := s.db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL())
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range props {
		if _, err := stmt.ExecContext(ctx, args(p)...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindProperties returns every row ordered by id.
func (s *PropertyService) FindProperties(ctx context.Context) ([]*chintai.Property, error) {
	rows, err := s.db.db.QueryContext(ctx,
		"SELECT "+strings.Join(propertyColumns, ", ")+" FROM properties ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	props := []*chintai.Property{}
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, rows.Err()
}

// CountProperties returns the number of stored rows.
func (s *PropertyService) CountProperties(ctx context.Context) (int, error) {
	var n int
	err := s.db.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties").Scan(&n)
	return n, err
}

func insertSQL() string {
	placeholders := make([]string, len(propertyColumns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return "INSERT INTO properties (" + strings.Join(propertyColumns, ", ") +
		") VALUES (" + strings.Join(placeholders, ", ") + ")"
}

func args(p *chintai.Property) []any {
	a := []any{
		p.Name, p.Category, p.Address, p.Age, p.Structure,
		p.Floor, p.Rent, p.ManagementFee, p.Deposit, p.KeyMoney, p.Layout, p.Area,
		p.ImageURL, p.FloorPlanImageURL, p.DetailURL,
	}
	for _, acc := range p.Access {
		a = append(a, acc.Line, acc.Station, acc.WalkMinutes)
	}
	return a
}

func scan(rows *sql.Rows) (*chintai.Property, error) {
	p := &chintai.Property{}
	var name, category, address, structure, layout sql.NullString
	dest := []any{
		&name, &category, &address, &p.Age, &structure,
		&p.Floor, &p.Rent, &p.ManagementFee, &p.Deposit, &p.KeyMoney, &layout, &p.Area,
		&p.ImageURL, &p.FloorPlanImageURL, &p.DetailURL,
	}
	for i := range p.Access {
		dest = append(dest, &p.Access[i].Line, &p.Access[i].Station, &p.Access[i].WalkMinutes)
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	p.Name = name.String
	p.Category = category.String
	p.Address = address.String
	p.Structure = structure.String
	p.Layout = layout.String
	return p, nil
}
