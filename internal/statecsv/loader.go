package statecsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/nao1215/homeheat/internal/model"
)

// StateColumn is the header of the key column.
const StateColumn = "State"

// Table is the result of loading a CSV export.
type Table struct {
	// MetricColumn is the header of the last column.
	MetricColumn string

	// Rows holds one entry per data row with a non-empty metric, in file order.
	Rows []model.StateValue
}

// Values returns the metric values in row order.
func (t *Table) Values() []float64 {
	out := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r.Value
	}
	return out
}

// ByState returns the metric keyed by state. A later row overrides an
// earlier row with the same key.
func (t *Table) ByState() map[string]float64 {
	out := make(map[string]float64, len(t.Rows))
	for _, r := range t.Rows {
		out[r.State] = r.Value
	}
	return out
}

// Load reads a CSV export from r.
// Rows whose metric cell is empty are skipped; thousands separators in the
// metric are ignored.
func Load(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	stateIdx := -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		header[i] = name
		if name == StateColumn && stateIdx < 0 {
			stateIdx = i
		}
	}
	if stateIdx < 0 {
		return nil, ErrMissingStateColumn
	}

	metricIdx := len(header) - 1
	if metricIdx == stateIdx {
		return nil, ErrNoMetricColumn
	}

	table := &Table{MetricColumn: header[metricIdx]}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)

		if len(record) <= metricIdx || len(record) <= stateIdx {
			continue
		}

		cell := strings.TrimSpace(record[metricIdx])
		if cell == "" {
			continue
		}

		value, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
		if err == nil && (math.IsNaN(value) || math.IsInf(value, 0)) {
			err = ErrNotFinite
		}
		if err != nil {
			return nil, &ParseError{Line: line, Column: table.MetricColumn, Value: cell, Err: err}
		}

		table.Rows = append(table.Rows, model.StateValue{
			State: strings.TrimSpace(record[stateIdx]),
			Value: value,
		})
	}

	return table, nil
}

// LoadFile reads the CSV export at path.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	return Load(f)
}
