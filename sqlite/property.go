package sqlite

import (
	"context"
	"fmt"

	"github.com/onobori/chintai"
)

// Compile-time interface verification.
var _ chintai.PropertyService = (*PropertyService)(nil)

// PropertyService implements chintai.PropertyService using SQLite.
type PropertyService struct {
	db *DB
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(db *DB) *PropertyService {
	return &PropertyService{db: db}
}

// CreateProperties appends props in a single transaction. Every record is
// validated first, so an invalid record leaves the table untouched.
func (s *PropertyService) CreateProperties(ctx context.Context, props []*chintai.Property) error {
	for i, p := range props {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("property %d: %w", i, err)
		}
	}
	if len(props) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertPropertySQL)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range props {
		if _, err := stmt.ExecContext(ctx, propertyArgs(p)...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindProperties returns every row in insertion order.
func (s *PropertyService) FindProperties(ctx context.Context) ([]*chintai.Property, error) {
	rows, err := s.db.QueryContext(ctx, selectPropertiesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	props := []*chintai.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
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
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
