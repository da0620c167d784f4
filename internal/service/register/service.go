package register

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/cytrico/frontdesk/internal/domain/models"
)

// Repository is the persistence surface the register depends on.
type Repository interface {
	AppendShift(ctx context.Context, record models.ShiftRecord) (string, error)
	LastShift(ctx context.Context) (*models.ShiftRecord, error)
	GetShift(ctx context.Context, id string) (*models.ShiftRecord, error)
	GetPettyCash(ctx context.Context) (*models.PettyCash, error)
	PutPettyCash(ctx context.Context, amount float64) error
	UsersByRole(ctx context.Context, role models.Role) ([]models.User, error)
}

// DocumentBuilder renders a closed shift snapshot into a downloadable report.
type DocumentBuilder interface {
	Build(record models.ShiftRecord) (data []byte, filename string, err error)
}

// Notifier pushes best-effort shift-closed notifications. Failures are
// logged and never block the handover.
type Notifier interface {
	ShiftClosed(ctx context.Context, record models.ShiftRecord) error
}

// Exporter appends accounting rows for closed shifts, also best-effort.
type Exporter interface {
	ExportShiftTotals(ctx context.Context, record models.ShiftRecord) error
}

// PendingHandover is the resting state between closing a shift and the
// incoming operator confirming their identity. Abandoning the confirmation
// is valid and leaves the register here indefinitely.
type PendingHandover struct {
	ClosedShiftID string          `json:"closedShiftId"`
	Next          models.ShiftKey `json:"next"`
}

// Service owns the in-memory ledgers for the three rotating shifts, the
// petty-cash balance, and the handover protocol. It is the single
// session-scoped controller for one front-desk terminal; concurrent closes
// from multiple terminals are out of scope. The mutex only serializes the
// HTTP handlers of this process.
type Service struct {
	repo     Repository
	builder  DocumentBuilder
	notifier Notifier
	exporter Exporter
	logger   *zap.Logger
	now      func() time.Time

	mu           sync.Mutex
	active       models.ShiftKey
	receptionist string
	ledgers      map[models.ShiftKey]*models.ShiftLedger
	pettyCash    *float64
	cashLocked   bool
	pending      *PendingHandover
}

// NewService builds the register and seeds the active shift pointer and
// petty-cash balance from the store. Seed failures are tolerated the same
// way a fresh install is: the rotation starts at morning with the balance
// unset.
func NewService(ctx context.Context, repo Repository, builder DocumentBuilder, notifier Notifier, exporter Exporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		repo:     repo,
		builder:  builder,
		notifier: notifier,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
		active:   models.ShiftMorning,
		ledgers: map[models.ShiftKey]*models.ShiftLedger{
			models.ShiftMorning:   models.NewShiftLedger(),
			models.ShiftAfternoon: models.NewShiftLedger(),
			models.ShiftNight:     models.NewShiftLedger(),
		},
	}

	last, err := repo.LastShift(ctx)
	switch {
	case err != nil:
		logger.Warn("could not read last shift, starting rotation at morning", zap.Error(err))
	case last != nil:
		s.active = last.Shift.Next()
	}

	cash, err := repo.GetPettyCash(ctx)
	switch {
	case err != nil:
		logger.Warn("could not read petty cash balance, treating as unset", zap.Error(err))
	case cash != nil:
		amount := cash.Amount
		s.pettyCash = &amount
		s.cashLocked = true
	}

	logger.Info("register initialized",
		zap.String("active_shift", string(s.active)),
		zap.Bool("petty_cash_set", s.pettyCash != nil))

	return s
}

func newEntryID() string {
	return uuid.NewString()[:8]
}

func validAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0) && amount > 0
}

// balance returns the current petty-cash figure, treating unset as zero.
func (s *Service) balance() float64 {
	if s.pettyCash == nil {
		return 0
	}
	return *s.pettyCash
}

// guardMutable rejects entry mutations while a handover awaits confirmation.
func (s *Service) guardMutable() error {
	if s.pending != nil {
		return fmt.Errorf("%w: confirm the incoming receptionist first", ErrPendingHandover)
	}
	return nil
}

// Status is a point-in-time snapshot of the open shift for the UI.
type Status struct {
	Shift        models.ShiftKey     `json:"shift"`
	ShiftLabel   string              `json:"shiftLabel"`
	ShiftHours   string              `json:"shiftHours"`
	Receptionist string              `json:"receptionist"`
	Ledger       models.ShiftLedger  `json:"ledger"`
	Totals       models.ShiftTotals  `json:"totals"`
	Checkins     int                 `json:"checkins"`
	Checkouts    int                 `json:"checkouts"`
	PettyCashSet bool                `json:"pettyCashSet"`
	CashLocked   bool                `json:"pettyCashLocked"`
	Pending      *PendingHandover    `json:"pendingHandover,omitempty"`
}

// Status returns the current register snapshot.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger := s.ledgers[s.active]
	in, out := ledger.CheckCounts()
	return Status{
		Shift:        s.active,
		ShiftLabel:   s.active.Label(),
		ShiftHours:   s.active.Hours(),
		Receptionist: s.receptionist,
		Ledger:       ledger.Snapshot(),
		Totals:       ledger.Totals(s.balance()),
		Checkins:     in,
		Checkouts:    out,
		PettyCashSet: s.pettyCash != nil,
		CashLocked:   s.cashLocked,
		Pending:      s.pending,
	}
}

// SetReceptionist records the outgoing operator's display name for the open
// shift.
func (s *Service) SetReceptionist(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guardMutable(); err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: receptionist name must not be empty", ErrValidation)
	}
	s.receptionist = strings.TrimSpace(name)
	return nil
}

// SetNotes replaces the open shift's handover notes.
func (s *Service) SetNotes(notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guardMutable(); err != nil {
		return err
	}
	s.ledgers[s.active].Notes = notes
	return nil
}

// CheckEventInput is the payload for registering a room movement.
type CheckEventInput struct {
	Room   string          `json:"room"`
	Guest  string          `json:"guest"`
	Type   string          `json:"type"`
	Time   string          `json:"time"`
	Checks map[string]bool `json:"checks"`
}

// AddCheckEvent registers a check-in or check-out on the open shift.
func (s *Service) AddCheckEvent(in CheckEventInput) (models.CheckEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guardMutable(); err != nil {
		return models.CheckEvent{}, err
	}
	if strings.TrimSpace(in.Room) == "" || strings.TrimSpace(in.Guest) == "" {
		return models.CheckEvent{}, fmt.Errorf("%w: room and guest are required", ErrValidation)
	}

	dir := models.CheckDirection(in.Type)
	if dir != models.CheckIn && dir != models.CheckOut {
		return models.CheckEvent{}, fmt.Errorf("%w: type must be in or out", ErrValidation)
	}

	eventTime := in.Time
	if eventTime == "" {
		eventTime = s.now().Format("15:04")
	}

	// Only the direction's required steps are kept; missing keys default to
	// unchecked.
	checks := make(map[string]bool, 4)
	for _, key := range models.RequiredChecks(dir) {
		checks[key] = in.Checks[key]
	}

	event := models.CheckEvent{
		ID:     newEntryID(),
		Room:   strings.TrimSpace(in.Room),
		Guest:  strings.TrimSpace(in.Guest),
		Type:   dir,
		Time:   eventTime,
		Checks: checks,
	}

	ledger := s.ledgers[s.active]
	ledger.Checkins = append([]models.CheckEvent{event}, ledger.Checkins...)
	return event, nil
}

// InvoiceInput is the payload for recording an issued invoice.
type InvoiceInput struct {
	Number string  `json:"number"`
	Guest  string  `json:"guest"`
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

// AddInvoice records an invoice issued during the open shift.
func (s *Service) AddInvoice(in InvoiceInput) (models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guardMutable(); err != nil {
		return models.Invoice{}, err
	}
	if strings.TrimSpace(in.Number) == "" {
		return models.Invoice{}, fmt.Errorf("%w: invoice number is required", ErrValidation)
	}
	if !validAmount(in.Amount) {
		return models.Invoice{}, fmt.Errorf("%w: amount must be a positive number", ErrValidation)
	}

	method := models.PaymentMethod(in.Method)
	if in.Method == "" {
		method = models.PayCash
	} else if !models.ValidPaymentMethod(method) {
		return models.Invoice{}, fmt.Errorf("%w: unknown payment method %q", ErrValidation, in.Method)
	}

	invoice := models.Invoice{
		ID:     newEntryID(),
		Number: strings.TrimSpace(in.Number),
		Guest:  strings.TrimSpace(in.Guest),
		Amount: in.Amount,
		Method: method,
	}

	ledger := s.ledgers[s.active]
	ledger.Invoices = append([]models.Invoice{invoice}, ledger.Invoices...)
	return invoice, nil
}

// IncomeInput is the payload for recording main-till income.
type IncomeInput struct {
	Type    string  `json:"type"`
	Concept string  `json:"concept"`
	Amount  float64 `json:"amount"`
	Method  string  `json:"method"`
}

// AddIncome records a main-till income entry on the open shift.
func (s *Service) AddIncome(in IncomeInput) (models.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guardMutable(); err != nil {
		return models.Income{}, err
	}
	if !validAmount(in.Amount) {
		return models.Income{}, fmt.Errorf("%w: amount must be a positive number", ErrValidation)
	}

	incomeType := models.IncomeType(in.Type)
	if in.Type == "" {
		incomeType = models.IncomeLodging
	} else if !incomeType.Valid() {
		return models.Income{}, fmt.Errorf("%w: unknown income type %q", ErrValidation, in.Type)
	}

	method := models.PaymentMethod(in.Method)
	if in.Method == "" {
		method = models.PayCash
	} else if !models.ValidPaymentMethod(method) {
		return models.Income{}, fmt.Errorf("%w: unknown payment method %q", ErrValidation, in.Method)
	}

	income := models.Income{
		ID:        newEntryID(),
		Type:      incomeType,
		Concept:   strings.TrimSpace(in.Concept),
		Amount:    in.Amount,
		Method:    method,
		TypeLabel: incomeType.Label(),
	}

	ledger := s.ledgers[s.active]
	ledger.Income = append([]models.Income{income}, ledger.Income...)
	return income, nil
}

// ExpenseInput is the payload for recording a petty-cash expense.
type ExpenseInput struct {
	Concept  string  `json:"concept"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
}

// AddExpense records a petty-cash expense. The expense is rejected up front
// when it would drive the balance negative; the balance and ledger are left
// untouched in that case.
func (s *Service) AddExpense(in ExpenseInput) (models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guardMutable(); err != nil {
		return models.Expense{}, err
	}
	if strings.TrimSpace(in.Concept) == "" {
		return models.Expense{}, fmt.Errorf("%w: concept is required", ErrValidation)
	}
	if !validAmount(in.Amount) {
		return models.Expense{}, fmt.Errorf("%w: amount must be a positive number", ErrValidation)
	}

	category := models.ExpenseCategory(in.Category)
	if in.Category == "" {
		category = models.ExpenseOperational
	} else if !models.ValidExpenseCategory(category) {
		return models.Expense{}, fmt.Errorf("%w: unknown expense category %q", ErrValidation, in.Category)
	}

	if in.Amount > s.balance() {
		return models.Expense{}, fmt.Errorf("%w: %.0f exceeds balance %.0f", ErrInsufficientFunds, in.Amount, s.balance())
	}

	expense := models.Expense{
		ID:       newEntryID(),
		Concept:  strings.TrimSpace(in.Concept),
		Amount:   in.Amount,
		Category: category,
	}

	newBalance := s.balance() - in.Amount
	s.pettyCash = &newBalance

	ledger := s.ledgers[s.active]
	ledger.Expenses = append([]models.Expense{expense}, ledger.Expenses...)
	return expense, nil
}

// DeleteCheckEvent removes a room movement by id. Unknown ids are a no-op.
func (s *Service) DeleteCheckEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guardMutable(); err != nil {
		return err
	}
	ledger := s.ledgers[s.active]
	for i, ev := range ledger.Checkins {
		if ev.ID == id {
			ledger.Checkins = append(ledger.Checkins[:i], ledger.Checkins[i+1:]...)
			return nil
		}
	}
	return nil
}

// DeleteInvoice removes an invoice by id. Unknown ids are a no-op.
func (s *Service) DeleteInvoice(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guardMutable(); err != nil {
		return err
	}
	ledger := s.ledgers[s.active]
	for i, inv := range ledger.Invoices {
		if inv.ID == id {
			ledger.Invoices = append(ledger.Invoices[:i], ledger.Invoices[i+1:]...)
			return nil
		}
	}
	return nil
}

// DeleteIncome removes an income entry by id. Unknown ids are a no-op.
func (s *Service) DeleteIncome(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guardMutable(); err != nil {
		return err
	}
	ledger := s.ledgers[s.active]
	for i, inc := range ledger.Income {
		if inc.ID == id {
			ledger.Income = append(ledger.Income[:i], ledger.Income[i+1:]...)
			return nil
		}
	}
	return nil
}

// DeleteExpense removes an expense by id, crediting its amount back to the
// petty-cash balance before the entry disappears. Unknown ids are a no-op.
func (s *Service) DeleteExpense(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guardMutable(); err != nil {
		return err
	}
	ledger := s.ledgers[s.active]
	for i, exp := range ledger.Expenses {
		if exp.ID == id {
			restored := s.balance() + exp.Amount
			s.pettyCash = &restored
			ledger.Expenses = append(ledger.Expenses[:i], ledger.Expenses[i+1:]...)
			return nil
		}
	}
	return nil
}

// Totals returns the derived figures for the open shift.
func (s *Service) Totals() models.ShiftTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledgers[s.active].Totals(s.balance())
}

// InitPettyCash sets the opening petty-cash amount, persists it, and locks
// the input against accidental re-entry.
func (s *Service) InitPettyCash(ctx context.Context, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cashLocked {
		return fmt.Errorf("%w: unlock it before correcting the amount", ErrCashLocked)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return fmt.Errorf("%w: opening amount must be a non-negative number", ErrValidation)
	}

	if err := s.repo.PutPettyCash(ctx, amount); err != nil {
		return fmt.Errorf("%w: saving petty cash balance: %v", ErrPersistence, err)
	}

	s.pettyCash = &amount
	s.cashLocked = true
	s.logger.Info("petty cash balance set", zap.Float64("amount", amount))
	return nil
}

// UnlockPettyCash re-opens the opening-amount input so a mistaken entry can
// be corrected. The persisted value stays until InitPettyCash confirms a
// new one.
func (s *Service) UnlockPettyCash() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cashLocked = false
}

// CloseResult is what a successful (or report-degraded) handover close
// returns to the caller.
type CloseResult struct {
	Record   models.ShiftRecord
	Next     models.ShiftKey
	Report   []byte
	Filename string
}

// CloseShift runs the handover protocol for the open shift: persist the
// petty-cash balance, persist the immutable shift record, render the
// report, and enter the pending-handover state. A persistence failure
// aborts everything with the ledger untouched. A report failure after
// persistence still enters the pending state; the caller gets
// ErrDocumentGeneration and can regenerate later.
func (s *Service) CloseShift(ctx context.Context) (*CloseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		return nil, fmt.Errorf("%w: previous handover not yet confirmed", ErrPendingHandover)
	}
	if strings.TrimSpace(s.receptionist) == "" {
		return nil, fmt.Errorf("%w: outgoing receptionist name is required", ErrValidation)
	}

	snap := s.ledgers[s.active].Snapshot()
	now := s.now()
	record := models.ShiftRecord{
		Shift:        s.active,
		ShiftLabel:   s.active.Label(),
		Receptionist: s.receptionist,
		Date:         now.Format("2006-01-02"),
		CreatedAt:    now.UTC(),
		Checkins:     snap.Checkins,
		Invoices:     snap.Invoices,
		Income:       snap.Income,
		Expenses:     snap.Expenses,
		Notes:        snap.Notes,
		Totals:       snap.Totals(s.balance()),
	}

	// Balance first, record second: a reload between the two writes must
	// always find a consistent (balance, last-closed-shift) pair. An
	// uninitialized balance stays absent in the store so the next boot
	// keeps the opening-amount input unlocked; zero is a confirmed
	// balance, nil is not.
	if s.pettyCash != nil {
		if err := s.repo.PutPettyCash(ctx, s.balance()); err != nil {
			return nil, fmt.Errorf("%w: saving petty cash balance: %v", ErrPersistence, err)
		}
	}

	id, err := s.repo.AppendShift(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("%w: saving shift record: %v", ErrPersistence, err)
	}
	record.ID = id

	s.pending = &PendingHandover{ClosedShiftID: id, Next: s.active.Next()}
	s.logger.Info("shift closed, awaiting handover confirmation",
		zap.String("shift", string(record.Shift)),
		zap.String("record_id", id),
		zap.String("next", string(s.pending.Next)))

	s.notifyClosed(ctx, record)

	result := &CloseResult{Record: record, Next: s.pending.Next}

	data, filename, err := s.builder.Build(record)
	if err != nil {
		s.logger.Error("report generation failed after persistence", zap.String("record_id", id), zap.Error(err))
		return result, fmt.Errorf("%w: %v", ErrDocumentGeneration, err)
	}
	result.Report = data
	result.Filename = filename
	return result, nil
}

// notifyClosed fans the closed record out to the optional webhook and
// accounting exporter. Both are best-effort.
func (s *Service) notifyClosed(ctx context.Context, record models.ShiftRecord) {
	if s.notifier != nil {
		if err := s.notifier.ShiftClosed(ctx, record); err != nil {
			s.logger.Warn("shift-closed notification failed", zap.Error(err))
		}
	}
	if s.exporter != nil {
		if err := s.exporter.ExportShiftTotals(ctx, record); err != nil {
			s.logger.Warn("shift totals export failed", zap.Error(err))
		}
	}
}

// ConfirmHandover completes the rotation: the incoming operator's name must
// match a provisioned, active receptionist account and their password must
// verify against that account's stored hash. Only then is the closed
// shift's ledger cleared and the pointer advanced.
func (s *Service) ConfirmHandover(ctx context.Context, name, password string) (models.ShiftKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return "", ErrNoPendingHandover
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: incoming receptionist name is required", ErrValidation)
	}

	receptionists, err := s.repo.UsersByRole(ctx, models.RoleReceptionist)
	if err != nil {
		return "", fmt.Errorf("%w: loading receptionist accounts: %v", ErrPersistence, err)
	}

	var account *models.User
	for i := range receptionists {
		if receptionists[i].Active && strings.EqualFold(receptionists[i].Name, name) {
			account = &receptionists[i]
			break
		}
	}
	if account == nil {
		return "", fmt.Errorf("%w: no active receptionist named %q", ErrAuthConfirmation, name)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: password mismatch", ErrAuthConfirmation)
	}

	closed := s.active
	s.ledgers[closed] = models.NewShiftLedger()
	s.active = s.pending.Next
	s.receptionist = account.Name
	s.pending = nil

	s.logger.Info("handover confirmed",
		zap.String("closed", string(closed)),
		zap.String("active", string(s.active)),
		zap.String("receptionist", account.Name))
	return s.active, nil
}

// RegenerateReport rebuilds the report for an already-persisted shift, the
// recourse for a close whose render failed.
func (s *Service) RegenerateReport(ctx context.Context, shiftID string) ([]byte, string, error) {
	record, err := s.repo.GetShift(ctx, shiftID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: loading shift %s: %w", ErrPersistence, shiftID, err)
	}

	data, filename, err := s.builder.Build(*record)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDocumentGeneration, err)
	}
	return data, filename, nil
}
