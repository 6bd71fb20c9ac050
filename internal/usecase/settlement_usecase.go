package usecase

import (
	"errors"
	"fmt"

	"github.com/iho/ledgerbatch/internal/domain"
)

// SettlementUseCase applies validated transactions to the ledger.
type SettlementUseCase struct {
	ledger Ledger
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(ledger Ledger) *SettlementUseCase {
	return &SettlementUseCase{ledger: ledger}
}

// Settle applies tx and reports the outcome. It never panics and never
// returns an error: every failure becomes an ERROR result so the rest of the
// batch keeps going.
func (uc *SettlementUseCase) Settle(tx domain.Transaction) (result domain.OperationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.NewFailure(tx, fmt.Sprintf("%s: %v", MessageProcessingError, r))
		}
	}()

	if !tx.Amount.IsPositive() {
		return domain.NewFailure(tx, (&domain.RecordError{Err: domain.ErrInvalidAmount, Detail: tx.Amount.String()}).Error())
	}

	err := uc.ledger.Transfer(tx.FromAccountID, tx.ToAccountID, tx.Amount)
	switch {
	case err == nil:
		return domain.NewSuccess(tx, MessageProcessed)
	case errors.Is(err, domain.ErrInsufficientFunds):
		return domain.NewFailure(tx, fmt.Sprintf("%s on account %s", domain.ErrInsufficientFunds, tx.FromAccountID))
	default:
		return domain.NewFailure(tx, fmt.Sprintf("%s: %v", MessageProcessingError, err))
	}
}
