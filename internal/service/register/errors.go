package register

import "errors"

// Every failure the register surfaces belongs to one of these classes. They
// are matched with errors.Is at the HTTP boundary; none of them crash the
// session and the ledger is always left in its last known-good state.
var (
	// ErrValidation marks a rejected mutation with missing or malformed
	// required fields. Nothing is mutated and no persistence call is made.
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientFunds marks an expense that would drive the petty-cash
	// balance negative.
	ErrInsufficientFunds = errors.New("insufficient petty cash balance")

	// ErrPersistence marks a failed write or read against the backing store.
	// During handover it aborts the protocol before any later step runs.
	ErrPersistence = errors.New("persistence failure")

	// ErrDocumentGeneration marks a failed report render after the shift
	// record was already durably saved. The record survives; the report can
	// be regenerated later.
	ErrDocumentGeneration = errors.New("report generation failed")

	// ErrAuthConfirmation marks a rejected incoming-operator confirmation.
	// The register stays in the pending-handover state and the confirmation
	// remains retryable.
	ErrAuthConfirmation = errors.New("handover confirmation rejected")

	// ErrPendingHandover marks a mutation attempted while a handover is
	// awaiting the incoming operator's confirmation.
	ErrPendingHandover = errors.New("handover pending confirmation")

	// ErrNoPendingHandover marks a confirmation with no handover in flight.
	ErrNoPendingHandover = errors.New("no handover pending")

	// ErrCashLocked marks an attempt to re-enter the opening petty-cash
	// amount without unlocking it first.
	ErrCashLocked = errors.New("petty cash is locked")
)
