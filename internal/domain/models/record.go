package models

import "time"

// ShiftRecord is the immutable snapshot of a closed shift as stored in the
// turnos collection.
type ShiftRecord struct {
	ID           string       `bson:"_id,omitempty" json:"id"`
	Shift        ShiftKey     `bson:"shift" json:"shift"`
	ShiftLabel   string       `bson:"shiftLabel" json:"shiftLabel"`
	Receptionist string       `bson:"receptionist" json:"receptionist"`
	Date         string       `bson:"date" json:"date"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
	Checkins     []CheckEvent `bson:"checkins" json:"checkins"`
	Invoices     []Invoice    `bson:"invoices" json:"invoices"`
	Income       []Income     `bson:"income" json:"income"`
	Expenses     []Expense    `bson:"expenses" json:"expenses"`
	Notes        string       `bson:"notes" json:"notes"`
	Totals       ShiftTotals  `bson:"totals" json:"totals"`
}

// PettyCash is the single system-wide petty-cash balance document. It is
// always overwritten in place, never appended.
type PettyCash struct {
	Amount    float64   `bson:"monto" json:"monto"`
	UpdatedAt time.Time `bson:"actualizadoEn" json:"actualizadoEn"`
}
