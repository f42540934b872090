// Package metrictable implements the wide metric table produced by the
// collectors: one row per (timestamp, endpoint), one column per metric,
// sparse cells for metrics with no observation at that instant.
package metrictable

import (
	"sort"
	"time"
)

// Column names shared by every table regardless of which metrics it holds.
const (
	ColumnTimestamp    = "Timestamp"
	ColumnEndpointName = "EndpointName"
)

// Key identifies one row of a Table.
type Key struct {
	Timestamp    time.Time
	EndpointName string
}

// Table is a wide metric table. The metric column schema is fixed at
// construction; setting a value for an unknown metric appends its column.
// Absent cells mean "no observation", never zero.
type Table struct {
	metricColumns []string
	columnSet     map[string]struct{}
	rows          map[Key]map[string]float64
}

// New creates an empty table with the given metric column schema.
// An empty table still reports the full schema, so consumers can rely on
// the column set even when a window had no datapoints.
func New(metricColumns []string) *Table {
	t := &Table{
		metricColumns: make([]string, 0, len(metricColumns)),
		columnSet:     make(map[string]struct{}, len(metricColumns)),
		rows:          make(map[Key]map[string]float64),
	}
	for _, c := range metricColumns {
		t.addColumn(c)
	}
	return t
}

func (t *Table) addColumn(name string) {
	if _, ok := t.columnSet[name]; ok {
		return
	}
	t.columnSet[name] = struct{}{}
	t.metricColumns = append(t.metricColumns, name)
}

func key(ts time.Time, endpoint string) Key {
	return Key{Timestamp: ts.UTC(), EndpointName: endpoint}
}

// Set stores one observation. It reports whether an existing value for the
// same (timestamp, endpoint, metric) was replaced, so the caller can apply
// its duplicate-datapoint policy.
func (t *Table) Set(ts time.Time, endpoint, metric string, value float64) (replaced bool) {
	t.addColumn(metric)
	k := key(ts, endpoint)
	row, ok := t.rows[k]
	if !ok {
		row = make(map[string]float64)
		t.rows[k] = row
	}
	_, replaced = row[metric]
	row[metric] = value
	return replaced
}

// Value returns the cell for (timestamp, endpoint, metric) and whether it
// is present.
func (t *Table) Value(ts time.Time, endpoint, metric string) (float64, bool) {
	row, ok := t.rows[key(ts, endpoint)]
	if !ok {
		return 0, false
	}
	v, ok := row[metric]
	return v, ok
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Empty reports whether the table has no rows. An empty table still
// carries its column schema.
func (t *Table) Empty() bool { return len(t.rows) == 0 }

// MetricColumns returns the metric column names in schema order.
func (t *Table) MetricColumns() []string {
	out := make([]string, len(t.metricColumns))
	copy(out, t.metricColumns)
	return out
}

// Columns returns the full column list: Timestamp, EndpointName, then the
// metric columns in schema order.
func (t *Table) Columns() []string {
	return append([]string{ColumnTimestamp, ColumnEndpointName}, t.MetricColumns()...)
}

// HasColumn reports whether the table schema contains the metric column.
func (t *Table) HasColumn(metric string) bool {
	_, ok := t.columnSet[metric]
	return ok
}

// Keys returns the row keys sorted by timestamp ascending, then endpoint
// name. Row order carries no semantics; this is the natural presentation
// order.
func (t *Table) Keys() []Key {
	keys := make([]Key, 0, len(t.rows))
	for k := range t.rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].Timestamp.Equal(keys[j].Timestamp) {
			return keys[i].Timestamp.Before(keys[j].Timestamp)
		}
		return keys[i].EndpointName < keys[j].EndpointName
	})
	return keys
}

// Row returns a copy of the cells for the given key, or nil if the row
// does not exist.
func (t *Table) Row(k Key) map[string]float64 {
	row, ok := t.rows[key(k.Timestamp, k.EndpointName)]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(row))
	for m, v := range row {
		out[m] = v
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := New(t.metricColumns)
	for k, row := range t.rows {
		for m, v := range row {
			c.Set(k.Timestamp, k.EndpointName, m, v)
		}
	}
	return c
}
