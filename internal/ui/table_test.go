package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTableLines(t *testing.T) {
	tbl := NewTable(3).AlignRight(2, 7)
	tbl.Indent = "  "
	tbl.AddRow("1", "Screws", "10.00 g")
	tbl.AddRow("12", "Servo", "200.00 g", "ignored")
	tbl.AddRow("3")

	want := []string{
		"  1   Screws   10.00 g",
		"  12  Servo   200.00 g",
		"  3                   ",
	}
	if diff := cmp.Diff(want, tbl.Lines()); diff != "" {
		t.Fatalf("Lines() mismatch (-want +got):\n%s", diff)
	}
	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}
}

func TestTablePadsByVisibleWidth(t *testing.T) {
	tbl := NewTable(2)
	tbl.Gap = 1
	tbl.AddRow(Bold.Render("ab"), "x")
	tbl.AddRow("abcd", "y")

	lines := tbl.Lines()
	if got, want := lines[1], "abcd y"; got != want {
		t.Fatalf("plain row = %q, want %q", got, want)
	}
	if got := lines[0]; got[len(got)-4:] != "   x" {
		t.Fatalf("styled row not padded to visible width: %q", got)
	}
}

func TestEmptyTable(t *testing.T) {
	if got := NewTable(2).String(); got != "" {
		t.Fatalf("empty table should render nothing, got %q", got)
	}
}

func TestBullets(t *testing.T) {
	got := Bullets("    ", "-", []string{"Screws #1", "Servo #2"})
	if want := "    - Screws #1\n    - Servo #2\n"; got != want {
		t.Fatalf("Bullets() = %q, want %q", got, want)
	}
	if got := Bullets("  ", "•", nil); got != "" {
		t.Fatalf("Bullets(nil) = %q, want empty", got)
	}
}

func TestFormatters(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FormatGrams(30), "30.00 g"},
		{FormatGrams(0.125), "0.12 g"},
		{FormatMoney(20), "$20.00"},
		{FormatMoney(-1.5), "-$1.50"},
		{FormatOptionalGrams(nil), "-"},
		{FormatOptionalMoney(nil), "-"},
		{Plural(1, "item", "items"), "1 item"},
		{Count(0, "item", "items"), "(0 items)"},
		{IssueCounts(0), "(no issues)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
