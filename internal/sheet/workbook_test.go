package sheet

import (
	"testing"

	"github.com/cmac1989/AFWorkshopMover/internal/model"
)

func TestWorkbook_SetRowAndReadGrid(t *testing.T) {
	t.Parallel()

	wb := NewInMemory()
	defer wb.Close()

	if err := wb.SetRow("Sheet1", 1, []string{"Geneva L2", "", "", "", "", "Standard"}); err != nil {
		t.Fatalf("set row 1: %v", err)
	}
	if err := wb.SetRow("Sheet1", 2, []string{"Virtual L1"}); err != nil {
		t.Fatalf("set row 2: %v", err)
	}

	grid, err := wb.ReadGrid("Sheet1")
	if err != nil {
		t.Fatalf("read grid: %v", err)
	}
	if len(grid) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(grid))
	}
	if grid[0][0] != "Geneva L2" || grid[1][0] != "Virtual L1" {
		t.Fatalf("unexpected grid: %v", grid)
	}
}

func TestWorkbook_SetCellRoundtrip(t *testing.T) {
	t.Parallel()

	wb := NewInMemory()
	defer wb.Close()

	col := model.Col(model.FieldAmountPaid)
	if err := wb.SetCell("Sheet1", 3, col, "450"); err != nil {
		t.Fatalf("set cell: %v", err)
	}

	grid, err := wb.ReadGrid("Sheet1")
	if err != nil {
		t.Fatalf("read grid: %v", err)
	}
	if got := model.CellAt(PadRow(grid[2]), model.FieldAmountPaid); got != "450" {
		t.Fatalf("expected 450, got %q", got)
	}
}

func TestWorkbook_MarkRowCompletedColorVisible(t *testing.T) {
	t.Parallel()

	wb := NewInMemory()
	defer wb.Close()

	if err := wb.SetRow("Sheet1", 1, []string{"Geneva L2"}); err != nil {
		t.Fatalf("set row: %v", err)
	}
	if err := wb.MarkRowCompleted("Sheet1", 1); err != nil {
		t.Fatalf("mark: %v", err)
	}

	colors, err := wb.ReadColumnColors("Sheet1", 1)
	if err != nil {
		t.Fatalf("read colors: %v", err)
	}
	if colors[0] == "" {
		t.Fatalf("completed row should carry a fill color")
	}
}

func TestWorkbook_AddNote(t *testing.T) {
	t.Parallel()

	wb := NewInMemory()
	defer wb.Close()

	if err := wb.AddNote("Sheet1", 2, model.Col(model.FieldTitle), "报名导入"); err != nil {
		t.Fatalf("add note: %v", err)
	}

	comments, err := wb.File().GetComments("Sheet1")
	if err != nil {
		t.Fatalf("get comments: %v", err)
	}
	if len(comments) != 1 || comments[0].Cell != "A2" {
		t.Fatalf("unexpected comments: %+v", comments)
	}
}

func TestRosterRows(t *testing.T) {
	t.Parallel()

	grid := [][]string{
		{"Geneva L2", "", "", "", "", "Standard"},
		{"Virtual L1"},
	}
	colors := []string{"", "FFD966"}

	rows := RosterRows(grid, colors)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].RowNo != 1 || rows[1].RowNo != 2 {
		t.Fatalf("row numbers should be 1 based: %+v", rows)
	}
	if rows[1].Color != "FFD966" {
		t.Fatalf("color not carried: %+v", rows[1])
	}
	if rows[0].Title() != "Geneva L2" {
		t.Fatalf("unexpected title: %q", rows[0].Title())
	}
}

func TestPadRow(t *testing.T) {
	t.Parallel()

	short := PadRow([]string{"a", "b"})
	if len(short) != model.RowWidth {
		t.Fatalf("expected width %d, got %d", model.RowWidth, len(short))
	}
	if short[0] != "a" || short[1] != "b" || short[2] != "" {
		t.Fatalf("unexpected padding: %v", short)
	}

	full := make([]string, model.RowWidth+2)
	if got := PadRow(full); len(got) != model.RowWidth+2 {
		t.Fatalf("longer rows must pass through unchanged")
	}
}
