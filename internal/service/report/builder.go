package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/cytrico/frontdesk/internal/domain/models"
)

const (
	pageWidth  = 210.0
	margin     = 18.0
	rowHeight  = 7.0
	signHeight = 26.0
)

// Builder renders closed-shift records into the handover PDF. It implements
// the register's DocumentBuilder interface.
type Builder struct {
	hotelName string
	logger    *zap.Logger
	now       func() time.Time
}

// NewBuilder constructs a PDF builder branded with the hotel name.
func NewBuilder(hotelName string, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{hotelName: hotelName, logger: logger, now: time.Now}
}

// Filename returns the download name for a shift report.
func Filename(shift models.ShiftKey, date string) string {
	return fmt.Sprintf("turno_%s_%s.pdf", shift, date)
}

// formatAmount renders currency without decimals, thousands separated by
// dots, matching the front-desk convention.
func formatAmount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	digits := fmt.Sprintf("%.0f", v)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// Build renders the multi-section report and returns the PDF bytes along
// with the suggested download filename. Sections with zero entries are
// omitted entirely.
func (b *Builder) Build(record models.ShiftRecord) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	now := b.now()
	dateLabel := record.Date
	timeLabel := now.Format("15:04")
	y := b.drawHeader(pdf, tr, record, dateLabel, timeLabel)
	y = b.drawReceptionistBox(pdf, tr, record.Receptionist, y)
	y = b.drawCashSummary(pdf, tr, record.Totals, y)

	if len(record.Income) > 0 {
		y = b.drawIncomeTable(pdf, tr, record, y)
	}
	if len(record.Invoices) > 0 {
		y = b.drawInvoiceTable(pdf, tr, record, y)
	}
	if len(record.Expenses) > 0 {
		y = b.drawExpenseTable(pdf, tr, record, y)
	}
	if len(record.Checkins) > 0 {
		y = b.drawMovementTable(pdf, tr, record, y)
	}
	if strings.TrimSpace(record.Notes) != "" {
		y = b.drawNotes(pdf, tr, record.Notes, y)
	}

	b.drawSignatures(pdf, tr, record.Receptionist, y, dateLabel, timeLabel)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("rendering shift report: %w", err)
	}

	filename := Filename(record.Shift, record.Date)
	b.logger.Debug("shift report rendered",
		zap.String("filename", filename),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), filename, nil
}

func (b *Builder) drawHeader(pdf *gofpdf.Fpdf, tr func(string) string, record models.ShiftRecord, dateLabel, timeLabel string) float64 {
	pdf.SetFillColor(15, 15, 19)
	pdf.Rect(0, 0, pageWidth, 38, "F")

	pdf.SetTextColor(240, 237, 232)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(margin, 16, tr(b.hotelName))

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(150, 150, 180)
	pdf.Text(margin, 24, tr("Reporte de Entrega de Turno"))
	pdf.Text(margin, 30, tr(fmt.Sprintf("%s  -  %s", dateLabel, timeLabel)))

	// Shift badge on the right.
	pdf.SetFillColor(30, 30, 46)
	pdf.RoundedRect(pageWidth-margin-50, 8, 50, 22, 4, "1234", "F")
	pdf.SetTextColor(200, 200, 230)
	pdf.SetFont("Helvetica", "B", 11)
	badge := tr("Turno " + record.ShiftLabel)
	pdf.SetXY(pageWidth-margin-50, 14)
	pdf.CellFormat(50, 6, badge, "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(130, 130, 160)
	pdf.SetXY(pageWidth-margin-50, 21)
	pdf.CellFormat(50, 5, tr(record.Shift.Hours()), "", 0, "C", false, 0, "")

	return 46
}

func (b *Builder) drawReceptionistBox(pdf *gofpdf.Fpdf, tr func(string) string, name string, y float64) float64 {
	pdf.SetFillColor(22, 22, 34)
	pdf.RoundedRect(margin, y, pageWidth-margin*2, 14, 3, "1234", "F")
	pdf.SetTextColor(150, 150, 200)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(margin+4, y+5.5, tr("RECEPCIONISTA SALIENTE"))
	pdf.SetTextColor(220, 220, 240)
	pdf.SetFont("Helvetica", "B", 10)
	if name == "" {
		name = "Sin nombre"
	}
	pdf.Text(margin+4, y+11, tr(name))
	return y + 20
}

func (b *Builder) drawCashSummary(pdf *gofpdf.Fpdf, tr func(string) string, totals models.ShiftTotals, y float64) float64 {
	boxWidth := (pageWidth - margin*2 - 6) / 2

	// Main till.
	pdf.SetFillColor(13, 40, 24)
	pdf.RoundedRect(margin, y, boxWidth, 28, 3, "1234", "F")
	pdf.SetTextColor(80, 160, 100)
	pdf.SetFont("Helvetica", "B", 7.5)
	pdf.Text(margin+4, y+6, tr("CAJA PRINCIPAL - INGRESOS"))
	pdf.SetTextColor(74, 222, 128)
	pdf.SetFont("Helvetica", "B", 15)
	pdf.Text(margin+4, y+16, formatAmount(totals.Income))
	pdf.SetTextColor(80, 140, 90)
	pdf.SetFont("Helvetica", "", 7.5)
	breakdown := fmt.Sprintf("Aloj. %s  Lav. %s  Otros %s",
		formatAmount(totals.Lodging), formatAmount(totals.Laundry), formatAmount(totals.Other))
	pdf.Text(margin+4, y+24, tr(breakdown))

	// Petty cash.
	x := margin + boxWidth + 6
	pdf.SetFillColor(26, 20, 40)
	pdf.RoundedRect(x, y, boxWidth, 28, 3, "1234", "F")
	pdf.SetTextColor(100, 80, 160)
	pdf.SetFont("Helvetica", "B", 7.5)
	pdf.Text(x+4, y+6, tr("CAJA MENOR - SALDO RESTANTE"))
	pdf.SetTextColor(192, 132, 252)
	pdf.SetFont("Helvetica", "B", 15)
	pdf.Text(x+4, y+16, formatAmount(totals.PettyCashBalance))
	pdf.SetTextColor(100, 80, 140)
	pdf.SetFont("Helvetica", "", 7.5)
	pdf.Text(x+4, y+24, tr("Gastos del turno: "+formatAmount(totals.Expenses)))

	return y + 34
}

func (b *Builder) sectionTitle(pdf *gofpdf.Fpdf, tr func(string) string, title string, r, g, bl int, y float64) float64 {
	pdf.SetFillColor(r, g, bl)
	pdf.Rect(margin, y, 3, 6, "F")
	pdf.SetTextColor(200, 200, 230)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(margin+6, y+5, tr(title))
	return y + 10
}

type tableCell struct {
	text  string
	x     float64
	align string
}

func (b *Builder) tableHeader(pdf *gofpdf.Fpdf, tr func(string) string, cells []tableCell, y float64) float64 {
	pdf.SetFillColor(20, 20, 30)
	pdf.Rect(margin, y, pageWidth-margin*2, rowHeight, "F")
	pdf.SetTextColor(100, 100, 140)
	pdf.SetFont("Helvetica", "B", 7.5)
	b.drawCells(pdf, tr, cells, y)
	return y + rowHeight
}

func (b *Builder) tableRow(pdf *gofpdf.Fpdf, tr func(string) string, cells []tableCell, shaded bool, y float64) float64 {
	if shaded {
		pdf.SetFillColor(18, 18, 28)
		pdf.Rect(margin, y, pageWidth-margin*2, rowHeight, "F")
	}
	pdf.SetTextColor(190, 190, 210)
	pdf.SetFont("Helvetica", "", 8)
	b.drawCells(pdf, tr, cells, y)
	return y + rowHeight
}

func (b *Builder) drawCells(pdf *gofpdf.Fpdf, tr func(string) string, cells []tableCell, y float64) {
	for _, c := range cells {
		if c.align == "R" {
			pdf.SetXY(c.x-60, y+1)
			pdf.CellFormat(60, 5, tr(c.text), "", 0, "R", false, 0, "")
			continue
		}
		pdf.Text(c.x, y+5, tr(c.text))
	}
}

func (b *Builder) totalRow(pdf *gofpdf.Fpdf, tr func(string) string, label string, amount float64, fillR, fillG, fillB, txtR, txtG, txtB int, y float64) float64 {
	pdf.SetFillColor(fillR, fillG, fillB)
	pdf.Rect(margin, y, pageWidth-margin*2, 8, "F")
	pdf.SetTextColor(txtR, txtG, txtB)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(margin+4, y+5.5, tr(label))
	pdf.SetXY(pageWidth-margin-62, y+1.5)
	pdf.CellFormat(60, 5, formatAmount(amount), "", 0, "R", false, 0, "")
	return y + 12
}

func (b *Builder) divider(pdf *gofpdf.Fpdf, y float64) float64 {
	pdf.SetDrawColor(30, 30, 46)
	pdf.Line(margin, y, pageWidth-margin, y)
	return y + 4
}

func (b *Builder) drawIncomeTable(pdf *gofpdf.Fpdf, tr func(string) string, record models.ShiftRecord, y float64) float64 {
	y = b.sectionTitle(pdf, tr, "INGRESOS - CAJA PRINCIPAL", 74, 222, 128, y)
	y = b.tableHeader(pdf, tr, []tableCell{
		{"Tipo", margin + 2, "L"},
		{"Detalle", margin + 35, "L"},
		{"Método", margin + 110, "L"},
		{"Monto", pageWidth - margin - 2, "R"},
	}, y)
	for i, inc := range record.Income {
		concept := inc.Concept
		if concept == "" {
			concept = "-"
		}
		y = b.tableRow(pdf, tr, []tableCell{
			{inc.TypeLabel, margin + 2, "L"},
			{concept, margin + 35, "L"},
			{string(inc.Method), margin + 110, "L"},
			{formatAmount(inc.Amount), pageWidth - margin - 2, "R"},
		}, i%2 == 0, y)
	}
	y = b.totalRow(pdf, tr, "TOTAL INGRESOS", record.Totals.Income, 13, 40, 24, 74, 222, 128, y)
	return b.divider(pdf, y)
}

func (b *Builder) drawInvoiceTable(pdf *gofpdf.Fpdf, tr func(string) string, record models.ShiftRecord, y float64) float64 {
	y = b.sectionTitle(pdf, tr, "FACTURAS EMITIDAS", 96, 165, 250, y)
	y = b.tableHeader(pdf, tr, []tableCell{
		{"N° Factura", margin + 2, "L"},
		{"Cliente", margin + 45, "L"},
		{"Método", margin + 110, "L"},
		{"Monto", pageWidth - margin - 2, "R"},
	}, y)
	for i, inv := range record.Invoices {
		guest := inv.Guest
		if guest == "" {
			guest = "-"
		}
		y = b.tableRow(pdf, tr, []tableCell{
			{inv.Number, margin + 2, "L"},
			{guest, margin + 45, "L"},
			{string(inv.Method), margin + 110, "L"},
			{formatAmount(inv.Amount), pageWidth - margin - 2, "R"},
		}, i%2 == 0, y)
	}
	y = b.totalRow(pdf, tr, "TOTAL FACTURAS", record.Totals.Invoices, 20, 25, 50, 96, 165, 250, y)
	return b.divider(pdf, y)
}

func (b *Builder) drawExpenseTable(pdf *gofpdf.Fpdf, tr func(string) string, record models.ShiftRecord, y float64) float64 {
	y = b.sectionTitle(pdf, tr, "GASTOS - CAJA MENOR", 192, 132, 252, y)
	y = b.tableHeader(pdf, tr, []tableCell{
		{"Concepto", margin + 2, "L"},
		{"Categoría", margin + 80, "L"},
		{"Monto", pageWidth - margin - 2, "R"},
	}, y)
	for i, exp := range record.Expenses {
		y = b.tableRow(pdf, tr, []tableCell{
			{exp.Concept, margin + 2, "L"},
			{string(exp.Category), margin + 80, "L"},
			{formatAmount(exp.Amount), pageWidth - margin - 2, "R"},
		}, i%2 == 0, y)
	}
	y = b.totalRow(pdf, tr, "TOTAL GASTOS", record.Totals.Expenses, 26, 20, 40, 192, 132, 252, y)
	return b.divider(pdf, y)
}

func (b *Builder) drawMovementTable(pdf *gofpdf.Fpdf, tr func(string) string, record models.ShiftRecord, y float64) float64 {
	y = b.sectionTitle(pdf, tr, "MOVIMIENTOS DE HABITACIONES", 160, 120, 240, y)
	y = b.tableHeader(pdf, tr, []tableCell{
		{"Hab.", margin + 2, "L"},
		{"Huésped", margin + 20, "L"},
		{"Tipo", margin + 90, "L"},
		{"Hora", margin + 120, "L"},
	}, y)
	for i, ev := range record.Checkins {
		kind := "Check-in"
		if ev.Type == models.CheckOut {
			kind = "Check-out"
		}
		y = b.tableRow(pdf, tr, []tableCell{
			{ev.Room, margin + 2, "L"},
			{ev.Guest, margin + 20, "L"},
			{kind, margin + 90, "L"},
			{ev.Time, margin + 120, "L"},
		}, i%2 == 0, y)
	}
	return b.divider(pdf, y+4)
}

func (b *Builder) drawNotes(pdf *gofpdf.Fpdf, tr func(string) string, notes string, y float64) float64 {
	y = b.sectionTitle(pdf, tr, "NOTAS PARA EL PRÓXIMO TURNO", 251, 191, 36, y)
	pdf.SetFillColor(30, 28, 20)
	pdf.RoundedRect(margin, y, pageWidth-margin*2, 20, 3, "1234", "F")
	pdf.SetTextColor(200, 180, 120)
	pdf.SetFont("Helvetica", "I", 8.5)
	// Split the raw UTF-8 text; the cp1252 translation happens per line
	// because SplitText indexes glyph widths by rune.
	lines := pdf.SplitText(notes, pageWidth-margin*2-8)
	for i, line := range lines {
		if i >= 3 {
			break
		}
		pdf.Text(margin+4, y+7+float64(i)*5, tr(line))
	}
	return b.divider(pdf, y+26)
}

func (b *Builder) drawSignatures(pdf *gofpdf.Fpdf, tr func(string) string, outgoing string, y float64, dateLabel, timeLabel string) {
	if y > 230 {
		pdf.AddPage()
		y = 20
	}

	_, pageHeight := pdf.GetPageSize()
	pdf.SetFillColor(15, 15, 22)
	pdf.Rect(0, y, pageWidth, pageHeight-y, "F")
	y += 6

	pdf.SetTextColor(80, 80, 120)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(margin, y, tr("FIRMAS DE CONFORMIDAD"))
	y += 8

	sigWidth := (pageWidth - margin*2 - 12) / 2
	if outgoing == "" {
		outgoing = "___________________"
	}
	b.signatureBox(pdf, tr, margin, y, sigWidth, "RECEPCIONISTA SALIENTE", outgoing)
	b.signatureBox(pdf, tr, margin+sigWidth+12, y, sigWidth, "RECEPCIONISTA ENTRANTE", "___________________")
	y += signHeight + 8

	pdf.SetTextColor(50, 50, 80)
	pdf.SetFont("Helvetica", "", 7)
	footer := fmt.Sprintf("Generado el %s a las %s  -  %s", dateLabel, timeLabel, b.hotelName)
	pdf.SetXY(0, y)
	pdf.CellFormat(pageWidth, 6, tr(footer), "", 0, "C", false, 0, "")
}

func (b *Builder) signatureBox(pdf *gofpdf.Fpdf, tr func(string) string, x, y, w float64, title, name string) {
	pdf.SetFillColor(18, 18, 28)
	pdf.RoundedRect(x, y, w, signHeight, 3, "1234", "F")
	pdf.SetDrawColor(40, 40, 60)
	pdf.RoundedRect(x, y, w, signHeight, 3, "1234", "D")
	pdf.SetTextColor(80, 80, 110)
	pdf.SetFont("Helvetica", "", 7.5)
	pdf.Text(x+4, y+6, tr(title))
	pdf.SetTextColor(170, 170, 200)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(x+4, y+13, tr(name))
	pdf.SetDrawColor(50, 50, 80)
	pdf.Line(x+4, y+signHeight-5, x+w-4, y+signHeight-5)
	pdf.SetTextColor(60, 60, 90)
	pdf.SetFont("Helvetica", "", 7)
	pdf.Text(x+4, y+signHeight-1, tr("Firma"))
}
