package parser

import (
	"testing"

	"github.com/cmac1989/AFWorkshopMover/internal/model"
)

// newRow 构造一行测试数据
func newRow(values map[model.Field]string) []string {
	row := make([]string, model.RowWidth)
	for f, v := range values {
		row[model.Col(f)] = v
	}
	return row
}

func TestExtract_BlankRow(t *testing.T) {
	t.Parallel()

	e := NewExtractor()
	if rec := e.Extract(1, newRow(nil)); rec != nil {
		t.Fatalf("expected nil for blank row, got %+v", rec)
	}
	if rec := e.Extract(2, []string{}); rec != nil {
		t.Fatalf("expected nil for empty row, got %+v", rec)
	}
}

func TestExtract_HeaderRow(t *testing.T) {
	t.Parallel()

	e := NewExtractor()
	rec := e.Extract(1, newRow(map[model.Field]string{
		model.FieldTitle:      "Workshop",
		model.FieldTicketType: "Ticket",
	}))
	if rec != nil {
		t.Fatalf("expected nil for header row, got %+v", rec)
	}

	// 表头判定不区分大小写
	rec = e.Extract(1, newRow(map[model.Field]string{
		model.FieldTitle:      "Workshop",
		model.FieldTicketType: "TICKET",
	}))
	if rec != nil {
		t.Fatalf("expected nil for upper-case header row, got %+v", rec)
	}
}

func TestExtract_BalanceUpdate(t *testing.T) {
	t.Parallel()

	e := NewExtractor()
	rec := e.Extract(3, newRow(map[model.Field]string{
		model.FieldTitle:      "Animal Flow Level 2 Geneva (ENG)",
		model.FieldTicketType: "BALANCE",
		model.FieldFirstName:  "Ada",
		model.FieldLastName:   "Moreno",
		model.FieldAmountPaid: "150",
	}))
	if rec == nil {
		t.Fatalf("expected record")
	}
	if rec.Kind != model.KindBalanceUpdate {
		t.Fatalf("expected balance update, got %s", rec.Kind)
	}
	if rec.Title != "Geneva L2" {
		t.Fatalf("unexpected title: %s", rec.Title)
	}
	if rec.AmountPaid != "150" {
		t.Fatalf("unexpected amount: %s", rec.AmountPaid)
	}
}

func TestExtract_InvalidTitle(t *testing.T) {
	t.Parallel()

	e := NewExtractor()
	rec := e.Extract(4, newRow(map[model.Field]string{
		model.FieldTitle:      "Gift Card",
		model.FieldTicketType: "Standard",
		model.FieldFirstName:  "Ben",
		model.FieldLastName:   "Okafor",
	}))
	if rec == nil {
		t.Fatalf("expected diagnostic record, got nil")
	}
	if rec.Kind != model.KindInvalid {
		t.Fatalf("expected invalid kind, got %s", rec.Kind)
	}
	if rec.RawTitle != "Gift Card" || rec.FirstName != "Ben" || rec.LastName != "Okafor" {
		t.Fatalf("diagnostic fields missing: %+v", rec)
	}
	if rec.Title != "" {
		t.Fatalf("invalid record must not carry canonical title: %s", rec.Title)
	}
}

func TestExtract_NewRegistration(t *testing.T) {
	t.Parallel()

	e := NewExtractor()
	rec := e.Extract(5, newRow(map[model.Field]string{
		model.FieldTitle:       "Animal Flow Level 1 Bogotá (ESP)",
		model.FieldTicketType:  "Early Bird",
		model.FieldTransaction: "T-1001",
		model.FieldFirstName:   "Carla",
		model.FieldLastName:    "Núñez",
		model.FieldEmail:       "carla@example.com",
		model.FieldAmountPaid:  "350",
		model.FieldMetadata:    "x,y,Instagram,Pro Plan: 2yr,Cert A,Fly to NYC",
	}))
	if rec == nil {
		t.Fatalf("expected record")
	}
	if rec.Kind != model.KindNewRegistration {
		t.Fatalf("expected new registration, got %s", rec.Kind)
	}
	if rec.Title != "Bogotá L1" || rec.Level != 1 {
		t.Fatalf("unexpected title: %q level %d", rec.Title, rec.Level)
	}
	if rec.SourceRow != 5 {
		t.Fatalf("unexpected source row: %d", rec.SourceRow)
	}
	if rec.Email != "carla@example.com" || rec.Transaction != "T-1001" {
		t.Fatalf("fields not copied: %+v", rec)
	}
}

func TestExtractAll_PreservesOrder(t *testing.T) {
	t.Parallel()

	e := NewExtractor()
	rows := [][]string{
		newRow(map[model.Field]string{model.FieldTitle: "Workshop", model.FieldTicketType: "Ticket"}),
		newRow(map[model.Field]string{model.FieldTitle: "Geneva L2", model.FieldTicketType: "Standard", model.FieldFirstName: "A"}),
		newRow(nil),
		newRow(map[model.Field]string{model.FieldTitle: "Geneva L2", model.FieldTicketType: "Standard", model.FieldFirstName: "B"}),
	}

	regs := e.ExtractAll(rows)
	if len(regs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(regs))
	}
	if regs[0].FirstName != "A" || regs[1].FirstName != "B" {
		t.Fatalf("order not preserved: %+v", regs)
	}
	if regs[0].SourceRow != 2 || regs[1].SourceRow != 4 {
		t.Fatalf("unexpected source rows: %d %d", regs[0].SourceRow, regs[1].SourceRow)
	}
}
