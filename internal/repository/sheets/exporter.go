package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/cytrico/frontdesk/internal/config"
	"github.com/cytrico/frontdesk/internal/domain/models"
)

// GoogleSheetExporter appends closed-shift totals to an accounting
// spreadsheet using the official Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Sheets-backed totals exporter.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    cfg.Range,
		logger:        logger,
	}, nil
}

// ExportShiftTotals appends one row of reconciled figures for a closed
// shift: date, shift, receptionist, the income breakdown, invoices,
// expenses, and the remaining petty-cash balance.
func (e *GoogleSheetExporter) ExportShiftTotals(ctx context.Context, record models.ShiftRecord) error {
	values := []interface{}{
		record.Date,
		record.ShiftLabel,
		record.Receptionist,
		record.Totals.Income,
		record.Totals.Lodging,
		record.Totals.Laundry,
		record.Totals.Other,
		record.Totals.Invoices,
		record.Totals.Expenses,
		record.Totals.PettyCashBalance,
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, e.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append totals row into range %s: %w", e.sheetRange, err)
	}

	e.logger.Debug("shift totals exported",
		zap.String("range", e.sheetRange),
		zap.String("shift", string(record.Shift)),
		zap.String("date", record.Date))
	return nil
}
