package models

// CheckDirection distinguishes check-in from check-out movements.
type CheckDirection string

const (
	CheckIn  CheckDirection = "in"
	CheckOut CheckDirection = "out"
)

// PaymentMethod is how an income or invoice amount was collected.
type PaymentMethod string

const (
	PayCash     PaymentMethod = "efectivo"
	PayCard     PaymentMethod = "tarjeta"
	PayTransfer PaymentMethod = "transferencia"
)

// IncomeType categorizes main-till income.
type IncomeType string

const (
	IncomeLodging IncomeType = "alojamiento"
	IncomeLaundry IncomeType = "lavanderia"
	IncomeOther   IncomeType = "otro"
)

var incomeLabels = map[IncomeType]string{
	IncomeLodging: "Alojamiento",
	IncomeLaundry: "Lavandería",
	IncomeOther:   "Otro",
}

// Label returns the display name persisted alongside income entries.
func (t IncomeType) Label() string {
	if label, ok := incomeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Valid reports whether t is a known income category.
func (t IncomeType) Valid() bool {
	_, ok := incomeLabels[t]
	return ok
}

// ExpenseCategory classifies petty-cash expenses.
type ExpenseCategory string

const (
	ExpenseOperational ExpenseCategory = "operativo"
	ExpenseMaintenance ExpenseCategory = "mantenimiento"
	ExpenseCleaning    ExpenseCategory = "limpieza"
	ExpenseFood        ExpenseCategory = "alimentos"
	ExpenseOther       ExpenseCategory = "otro"
)

// ValidExpenseCategory reports whether c is a known expense category.
func ValidExpenseCategory(c ExpenseCategory) bool {
	switch c {
	case ExpenseOperational, ExpenseMaintenance, ExpenseCleaning, ExpenseFood, ExpenseOther:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PayCash, PayCard, PayTransfer:
		return true
	}
	return false
}

// checkSteps holds the direction-specific required checklist keys.
var checkSteps = map[CheckDirection][]string{
	CheckIn:  {"fotos", "registro", "llave", "pago"},
	CheckOut: {"llave", "habitacion", "cargos", "factura"},
}

// RequiredChecks returns the checklist keys a check event of the given
// direction must carry.
func RequiredChecks(dir CheckDirection) []string {
	return checkSteps[dir]
}

// CheckEvent is a check-in or check-out movement tied to a room and guest.
type CheckEvent struct {
	ID     string          `bson:"id" json:"id"`
	Room   string          `bson:"room" json:"room"`
	Guest  string          `bson:"guest" json:"guest"`
	Type   CheckDirection  `bson:"type" json:"type"`
	Time   string          `bson:"time" json:"time"`
	Checks map[string]bool `bson:"checks" json:"checks"`
}

// Complete reports whether every required checklist step for the event's
// direction has been ticked.
func (e CheckEvent) Complete() bool {
	for _, key := range RequiredChecks(e.Type) {
		if !e.Checks[key] {
			return false
		}
	}
	return true
}

// Invoice is an invoice issued during the shift.
type Invoice struct {
	ID     string        `bson:"id" json:"id"`
	Number string        `bson:"number" json:"number"`
	Guest  string        `bson:"guest" json:"guest"`
	Amount float64       `bson:"amount" json:"amount"`
	Method PaymentMethod `bson:"method" json:"method"`
}

// Income is a main-till income entry.
type Income struct {
	ID        string        `bson:"id" json:"id"`
	Type      IncomeType    `bson:"type" json:"type"`
	Concept   string        `bson:"concept" json:"concept"`
	Amount    float64       `bson:"amount" json:"amount"`
	Method    PaymentMethod `bson:"method" json:"method"`
	TypeLabel string        `bson:"typeLabel" json:"typeLabel"`
}

// Expense is a petty-cash expense entry.
type Expense struct {
	ID       string          `bson:"id" json:"id"`
	Concept  string          `bson:"concept" json:"concept"`
	Amount   float64         `bson:"amount" json:"amount"`
	Category ExpenseCategory `bson:"category" json:"category"`
}

// ShiftLedger is the mutable collection of entries belonging to one open
// shift. It is created empty, mutated while the shift is active, and
// snapshotted into a ShiftRecord at handover.
type ShiftLedger struct {
	Checkins []CheckEvent `json:"checkins"`
	Invoices []Invoice    `json:"invoices"`
	Income   []Income     `json:"income"`
	Expenses []Expense    `json:"expenses"`
	Notes    string       `json:"notes"`
}

// NewShiftLedger returns an empty ledger with non-nil entry lists so that
// persisted snapshots serialize as empty arrays rather than null.
func NewShiftLedger() *ShiftLedger {
	return &ShiftLedger{
		Checkins: []CheckEvent{},
		Invoices: []Invoice{},
		Income:   []Income{},
		Expenses: []Expense{},
	}
}

// Snapshot returns a copy of the ledger whose entry slices share no backing
// arrays with the original, so callers can hold it outside the owner's lock
// while deletes compact the live slices in place.
func (l *ShiftLedger) Snapshot() ShiftLedger {
	out := ShiftLedger{
		Checkins: make([]CheckEvent, len(l.Checkins)),
		Invoices: make([]Invoice, len(l.Invoices)),
		Income:   make([]Income, len(l.Income)),
		Expenses: make([]Expense, len(l.Expenses)),
		Notes:    l.Notes,
	}
	copy(out.Checkins, l.Checkins)
	copy(out.Invoices, l.Invoices)
	copy(out.Income, l.Income)
	copy(out.Expenses, l.Expenses)
	return out
}

// Totals computes the derived figures for the ledger. They are recomputed
// on every read, never cached.
func (l *ShiftLedger) Totals(pettyCashBalance float64) ShiftTotals {
	t := ShiftTotals{PettyCashBalance: pettyCashBalance}
	for _, inc := range l.Income {
		t.Income += inc.Amount
		switch inc.Type {
		case IncomeLodging:
			t.Lodging += inc.Amount
		case IncomeLaundry:
			t.Laundry += inc.Amount
		default:
			t.Other += inc.Amount
		}
	}
	for _, inv := range l.Invoices {
		t.Invoices += inv.Amount
	}
	for _, exp := range l.Expenses {
		t.Expenses += exp.Amount
	}
	return t
}

// CheckCounts returns the number of check-in and check-out movements.
func (l *ShiftLedger) CheckCounts() (in, out int) {
	for _, ev := range l.Checkins {
		if ev.Type == CheckIn {
			in++
		} else {
			out++
		}
	}
	return in, out
}

// ShiftTotals carries the reconciled figures persisted with a closed shift.
// Field names match the stored document shape.
type ShiftTotals struct {
	Income           float64 `bson:"ingresos" json:"ingresos"`
	Lodging          float64 `bson:"alojamiento" json:"alojamiento"`
	Laundry          float64 `bson:"lavanderia" json:"lavanderia"`
	Other            float64 `bson:"otros" json:"otros"`
	Expenses         float64 `bson:"gastos" json:"gastos"`
	Invoices         float64 `bson:"facturas" json:"facturas"`
	PettyCashBalance float64 `bson:"saldoCajaMenor" json:"saldoCajaMenor"`
}
