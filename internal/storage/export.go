// ABOUTME: Export and import functionality for ledger data.
// ABOUTME: Supports JSON, YAML, and CSV export formats.
package storage

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/harperreed/payback/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion identifies the current export schema.
const ExportVersion = "1.0"

// ExportData represents the full export format for ledger data.
type ExportData struct {
	Version    string                `json:"version" yaml:"version"`
	ExportedAt time.Time             `json:"exported_at" yaml:"exported_at"`
	Tool       string                `json:"tool" yaml:"tool"`
	Entries    []*models.LedgerEntry `json:"entries" yaml:"entries"`
	CheckIns   []*models.CheckIn     `json:"checkins" yaml:"checkins"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	entries, err := d.ListEntries(0)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	checkins, err := d.ListCheckIns(0)
	if err != nil {
		return nil, fmt.Errorf("list checkins: %w", err)
	}

	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "payback",
		Entries:    entries,
		CheckIns:   checkins,
	}, nil
}

// ImportData imports data from an export file. Records with already-known
// IDs are skipped rather than duplicated.
func (d *DB) ImportData(data *ExportData) error {
	for _, e := range data.Entries {
		if existing, err := d.GetEntry(e.ID.String()); err == nil && existing != nil {
			continue
		}
		if err := d.CreateEntry(e); err != nil {
			return fmt.Errorf("import entry %s: %w", e.ID, err)
		}
	}
	for _, c := range data.CheckIns {
		if existing, err := d.GetCheckIn(c.ID.String()); err == nil && existing != nil {
			continue
		}
		if err := d.CreateCheckIn(c); err != nil {
			return fmt.Errorf("import checkin %s: %w", c.ID, err)
		}
	}
	return nil
}

// MarshalJSONIndent renders an export as indented JSON.
func (x *ExportData) MarshalJSONIndent() ([]byte, error) {
	return json.MarshalIndent(x, "", "  ")
}

// MarshalYAMLBytes renders an export as YAML.
func (x *ExportData) MarshalYAMLBytes() ([]byte, error) {
	return yaml.Marshal(x)
}

// UnmarshalExport parses an export file in JSON or YAML form.
func UnmarshalExport(data []byte) (*ExportData, error) {
	var x ExportData
	if err := json.Unmarshal(data, &x); err == nil {
		return &x, nil
	}
	if err := yaml.Unmarshal(data, &x); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	return &x, nil
}

// EntriesCSV renders the ledger as CSV, oldest first, with the columns
// the original export used.
func (x *ExportData) EntriesCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"timestamp", "name", "minutes", "raw_minutes", "kcal",
		"multiplier", "style", "size", "brewery", "brand", "rating", "notes"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := len(x.Entries) - 1; i >= 0; i-- {
		e := x.Entries[i]
		notes := ""
		if e.Notes != nil {
			notes = *e.Notes
		}
		rawMinutes := ""
		if e.IsCredit() {
			rawMinutes = strconv.Itoa(e.RawMinutes)
		}
		multiplier := ""
		if e.Multiplier != 0 {
			multiplier = strconv.FormatFloat(e.Multiplier, 'g', -1, 64)
		}
		row := []string{
			e.Timestamp.Format(time.RFC3339),
			e.Name,
			strconv.Itoa(e.Minutes),
			rawMinutes,
			strconv.FormatFloat(e.Kcal, 'f', 1, 64),
			multiplier,
			e.Style,
			e.Size,
			e.Brewery,
			e.Brand,
			strconv.Itoa(e.Rating),
			notes,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// CheckInsCSV renders check-ins as CSV, oldest first.
func (x *ExportData) CheckInsCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"timestamp", "rest_day", "waist_ease", "foot_lightness",
		"water_ok", "fiber_ok", "weight_kg"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := len(x.CheckIns) - 1; i >= 0; i-- {
		c := x.CheckIns[i]
		weight := ""
		if c.WeightKg != nil {
			weight = strconv.FormatFloat(*c.WeightKg, 'f', 1, 64)
		}
		row := []string{
			c.Timestamp.Format(time.RFC3339),
			strconv.FormatBool(c.RestDay),
			strconv.FormatBool(c.WaistEase),
			strconv.FormatBool(c.FootLightness),
			strconv.FormatBool(c.WaterOK),
			strconv.FormatBool(c.FiberOK),
			weight,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
