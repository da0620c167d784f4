package models

import "testing"

func TestShiftKeyNext(t *testing.T) {
	cases := []struct {
		in, want ShiftKey
	}{
		{ShiftMorning, ShiftAfternoon},
		{ShiftAfternoon, ShiftNight},
		{ShiftNight, ShiftMorning},
		{ShiftKey("bogus"), ShiftMorning},
	}
	for _, tc := range cases {
		if got := tc.in.Next(); got != tc.want {
			t.Errorf("Next(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseShiftKey(t *testing.T) {
	if _, err := ParseShiftKey("afternoon"); err != nil {
		t.Errorf("ParseShiftKey(afternoon): %v", err)
	}
	if _, err := ParseShiftKey("siesta"); err == nil {
		t.Error("ParseShiftKey(siesta) should fail")
	}
}

func TestCheckEventComplete(t *testing.T) {
	t.Run("check-in requires all four steps", func(t *testing.T) {
		ev := CheckEvent{
			Type:   CheckIn,
			Checks: map[string]bool{"fotos": true, "registro": true, "llave": true, "pago": true},
		}
		if !ev.Complete() {
			t.Error("fully ticked check-in reported incomplete")
		}

		ev.Checks["pago"] = false
		if ev.Complete() {
			t.Error("check-in missing payment reported complete")
		}
	})

	t.Run("check-out uses its own checklist", func(t *testing.T) {
		ev := CheckEvent{
			Type:   CheckOut,
			Checks: map[string]bool{"llave": true, "habitacion": true, "cargos": true, "factura": true},
		}
		if !ev.Complete() {
			t.Error("fully ticked check-out reported incomplete")
		}
	})

	t.Run("missing keys count as unchecked", func(t *testing.T) {
		ev := CheckEvent{Type: CheckIn, Checks: map[string]bool{}}
		if ev.Complete() {
			t.Error("empty checklist reported complete")
		}
	})
}

func TestLedgerTotals(t *testing.T) {
	ledger := &ShiftLedger{
		Income: []Income{
			{Type: IncomeLodging, Amount: 100000},
			{Type: IncomeLaundry, Amount: 20000},
			{Type: IncomeOther, Amount: 5000},
		},
		Invoices: []Invoice{{Amount: 45000}, {Amount: 15000}},
		Expenses: []Expense{{Amount: 7000}, {Amount: 3000}},
	}

	totals := ledger.Totals(38000)
	if totals.Income != 125000 {
		t.Errorf("Income = %v, want 125000", totals.Income)
	}
	if totals.Lodging != 100000 || totals.Laundry != 20000 || totals.Other != 5000 {
		t.Errorf("breakdown = %v/%v/%v, want 100000/20000/5000", totals.Lodging, totals.Laundry, totals.Other)
	}
	if totals.Invoices != 60000 {
		t.Errorf("Invoices = %v, want 60000", totals.Invoices)
	}
	if totals.Expenses != 10000 {
		t.Errorf("Expenses = %v, want 10000", totals.Expenses)
	}
	if totals.PettyCashBalance != 38000 {
		t.Errorf("PettyCashBalance = %v, want 38000", totals.PettyCashBalance)
	}
}

func TestLedgerCheckCounts(t *testing.T) {
	ledger := &ShiftLedger{Checkins: []CheckEvent{
		{Type: CheckIn}, {Type: CheckIn}, {Type: CheckOut},
	}}
	in, out := ledger.CheckCounts()
	if in != 2 || out != 1 {
		t.Errorf("CheckCounts = %d/%d, want 2/1", in, out)
	}
}

func TestNewShiftLedgerNonNilSlices(t *testing.T) {
	ledger := NewShiftLedger()
	if ledger.Checkins == nil || ledger.Invoices == nil || ledger.Income == nil || ledger.Expenses == nil {
		t.Error("ledger slices must be non-nil so snapshots serialize as empty arrays")
	}
}

func TestLedgerSnapshot(t *testing.T) {
	t.Run("empty ledger keeps non-nil slices", func(t *testing.T) {
		snap := NewShiftLedger().Snapshot()
		if snap.Checkins == nil || snap.Invoices == nil || snap.Income == nil || snap.Expenses == nil {
			t.Error("snapshot slices must stay non-nil")
		}
	})

	t.Run("independent of later in-place mutation", func(t *testing.T) {
		ledger := NewShiftLedger()
		ledger.Income = []Income{{ID: "b", Amount: 2000}, {ID: "a", Amount: 1000}}

		snap := ledger.Snapshot()
		ledger.Income = append(ledger.Income[:0], ledger.Income[1:]...)

		if len(snap.Income) != 2 || snap.Income[0].ID != "b" {
			t.Errorf("snapshot = %+v, want the original two entries", snap.Income)
		}
	})
}

func TestRolePermissions(t *testing.T) {
	if !HasPermission(RoleAdmin, PermDeleteUser) {
		t.Error("admin should hold every permission")
	}
	if !HasPermission(RoleReceptionist, PermManageCash) {
		t.Error("receptionist should manage the cash register")
	}
	if HasPermission(RoleHousekeeper, PermViewFinances) {
		t.Error("housekeeper should not see finances")
	}
	if HasPermission(RoleReceptionist, PermDeleteShift) {
		t.Error("receptionist should not delete shifts")
	}
}
