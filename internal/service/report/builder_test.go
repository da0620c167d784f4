package report

import (
	"strings"
	"testing"

	"github.com/cytrico/frontdesk/internal/domain/models"
)

func sampleRecord() models.ShiftRecord {
	return models.ShiftRecord{
		ID:           "shift-1",
		Shift:        models.ShiftMorning,
		ShiftLabel:   "Mañana",
		Receptionist: "Laura Muñoz",
		Date:         "2026-03-10",
		Checkins: []models.CheckEvent{
			{Room: "201", Guest: "García", Type: models.CheckIn, Time: "08:15",
				Checks: map[string]bool{"fotos": true, "registro": true, "llave": true, "pago": true}},
			{Room: "105", Guest: "Ríos", Type: models.CheckOut, Time: "11:00",
				Checks: map[string]bool{"llave": true, "habitacion": true, "cargos": true, "factura": true}},
		},
		Invoices: []models.Invoice{
			{Number: "F-0042", Guest: "García", Amount: 45000, Method: models.PayCard},
		},
		Income: []models.Income{
			{Type: models.IncomeLodging, Concept: "Hab 201", Amount: 100000, Method: models.PayCash, TypeLabel: "Alojamiento"},
			{Type: models.IncomeLaundry, Amount: 20000, Method: models.PayTransfer, TypeLabel: "Lavandería"},
		},
		Expenses: []models.Expense{
			{Concept: "plomería", Amount: 12000, Category: models.ExpenseMaintenance},
		},
		Notes: "Huésped de la 305 pidió cambio de habitación.\nRevisar el aire de la 112.",
		Totals: models.ShiftTotals{
			Income: 120000, Lodging: 100000, Laundry: 20000,
			Invoices: 45000, Expenses: 12000, PettyCashBalance: 38000,
		},
	}
}

func TestFilename(t *testing.T) {
	got := Filename(models.ShiftNight, "2026-03-10")
	if got != "turno_night_2026-03-10.pdf" {
		t.Errorf("Filename = %q, want turno_night_2026-03-10.pdf", got)
	}
}

func TestBuild(t *testing.T) {
	builder := NewBuilder("Hotel Cytrico", nil)

	data, filename, err := builder.Build(sampleRecord())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("output does not start with a PDF header")
	}
	if filename != "turno_morning_2026-03-10.pdf" {
		t.Errorf("filename = %q, want turno_morning_2026-03-10.pdf", filename)
	}
}

func TestBuildEmptyShift(t *testing.T) {
	builder := NewBuilder("Hotel Cytrico", nil)

	record := models.ShiftRecord{
		Shift:        models.ShiftAfternoon,
		ShiftLabel:   "Tarde",
		Receptionist: "Pedro",
		Date:         "2026-03-10",
	}
	data, _, err := builder.Build(record)
	if err != nil {
		t.Fatalf("Build with empty sections: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty-shift report has no content")
	}
}

func TestBuildNotesWithAccents(t *testing.T) {
	builder := NewBuilder("Hotel Cytrico", nil)

	record := sampleRecord()
	record.Notes = "Habitación 112: aire dañado, llegó el señor Muñoz.\n" +
		"Segunda línea con más tildes: áéíóú y ¿signos? ¡también!\n" +
		"Tercera línea.\nCuarta línea que ya no cabe."

	data, _, err := builder.Build(record)
	if err != nil {
		t.Fatalf("Build with accented notes: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF") {
		t.Error("output does not start with a PDF header")
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{1500, "$1.500"},
		{125000, "$125.000"},
		{1250000, "$1.250.000"},
	}
	for _, tc := range cases {
		if got := formatAmount(tc.in); got != tc.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
