package metrictable

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

// nullCell marks an absent observation in the text rendering.
const nullCell = "-"

// RenderText renders the table as aligned columns for terminal output.
func (t *Table) RenderText() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(t.Columns(), "\t"))
	for _, k := range t.Keys() {
		row := t.Row(k)
		cells := []string{k.Timestamp.Format(time.RFC3339), k.EndpointName}
		for _, m := range t.metricColumns {
			if v, ok := row[m]; ok {
				cells = append(cells, strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				cells = append(cells, nullCell)
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
	return b.String()
}

// RenderCSV renders the table as CSV with a header row. Absent cells are
// written as empty fields.
func (t *Table) RenderCSV() (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write(t.Columns()); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, k := range t.Keys() {
		row := t.Row(k)
		cells := []string{k.Timestamp.Format(time.RFC3339), k.EndpointName}
		for _, m := range t.metricColumns {
			if v, ok := row[m]; ok {
				cells = append(cells, strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				cells = append(cells, "")
			}
		}
		if err := w.Write(cells); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return b.String(), nil
}

// Head renders the first n rows as text, for log previews.
func (t *Table) Head(n int) string {
	if t.Len() <= n {
		return t.RenderText()
	}
	head := New(t.metricColumns)
	for _, k := range t.Keys()[:n] {
		for m, v := range t.Row(k) {
			head.Set(k.Timestamp, k.EndpointName, m, v)
		}
	}
	return head.RenderText()
}
