// Package fs provides file-based export of property records.
package fs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/onobori/chintai"
)

// Header is the CSV header row. It matches the database column names.
var Header = []string{
	"name", "category", "address", "age", "structure",
	"floor", "rent", "management_fee", "deposit", "key_money", "layout", "area",
	"image_url", "floorplan_image_url", "detail_url",
	"line_1", "station_1", "walk_minutes_1",
	"line_2", "station_2", "walk_minutes_2",
	"line_3", "station_3", "walk_minutes_3",
}

// Row formats p as a CSV record in Header order. Absent values are empty.
func Row(p *chintai.Property) []string {
	row := []string{
		p.Name, p.Category, p.Address, number(p.Age), p.Structure,
		number(p.Floor), number(p.Rent), number(p.ManagementFee),
		number(p.Deposit), number(p.KeyMoney), p.Layout, number(p.Area),
		text(p.ImageURL), text(p.FloorPlanImageURL), text(p.DetailURL),
	}
	for _, a := range p.Access {
		row = append(row, text(a.Line), text(a.Station), number(a.WalkMinutes))
	}
	return row
}

// WriteCSV writes the header followed by one record per property.
func WriteCSV(w io.Writer, props []*chintai.Property) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, p := range props {
		if err := cw.Write(Row(p)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Exporter writes property records to CSV files.
type Exporter struct {
	baseDir string
}

// NewExporter creates an Exporter that resolves relative paths against baseDir.
func NewExporter(baseDir string) *Exporter {
	return &Exporter{baseDir: baseDir}
}

// Export writes props to path, creating parent directories. The file is
// written to a temporary name first and renamed into place, so an existing
// export is never left half-written.
func (e *Exporter) Export(path string, props []*chintai.Property) (err error) {
	if path == "" {
		return chintai.Errorf(chintai.EINVALID, "export path required")
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.baseDir, path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.CreateTemp(dir, ".export-*.csv")
	if err != nil {
		return fmt.Errorf("csv: create file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err := WriteCSV(f, props); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("csv: close file: %w", err)
	}
	return os.Rename(f.Name(), path)
}

func number(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func text(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
