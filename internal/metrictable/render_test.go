package metrictable

import (
	"strings"
	"testing"
	"time"
)

func TestRenderCSV(t *testing.T) {
	tbl := New([]string{"CPUUtilization", "Invocations"})
	tbl.Set(t0, "ep-1", "CPUUtilization", 42.5)

	out, err := tbl.RenderCSV()
	if err != nil {
		t.Fatalf("RenderCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "Timestamp,EndpointName,CPUUtilization,Invocations" {
		t.Errorf("header = %q", lines[0])
	}
	// null cell is an empty field, not zero
	if lines[1] != "2025-06-01T12:00:00Z,ep-1,42.5," {
		t.Errorf("row = %q", lines[1])
	}
}

func TestRenderTextMarksNulls(t *testing.T) {
	tbl := New([]string{"CPUUtilization", "Invocations"})
	tbl.Set(t0, "ep-1", "CPUUtilization", 42.5)

	out := tbl.RenderText()
	if !strings.Contains(out, "42.5") {
		t.Errorf("text rendering missing value: %q", out)
	}
	if !strings.Contains(out, nullCell) {
		t.Errorf("text rendering missing null marker: %q", out)
	}
}

func TestHeadLimitsRows(t *testing.T) {
	tbl := New([]string{"Invocations"})
	for i := 0; i < 10; i++ {
		tbl.Set(t0.Add(time.Duration(i)*time.Minute), "ep-1", "Invocations", float64(i))
	}

	head := tbl.Head(3)
	lines := strings.Split(strings.TrimSpace(head), "\n")
	if len(lines) != 4 { // header + 3 rows
		t.Errorf("Head(3) produced %d lines, expected 4", len(lines))
	}

	full := tbl.Head(100)
	if lines := strings.Split(strings.TrimSpace(full), "\n"); len(lines) != 11 {
		t.Errorf("Head beyond row count produced %d lines, expected 11", len(lines))
	}
}
