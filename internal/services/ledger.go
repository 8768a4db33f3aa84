package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"withdrawal-service/internal/models"
)

// Ledger is the boundary to the deposit accounts withdrawals draw from. All
// calls take the caller's transaction handle so balance checks and debits
// commit together with the withdrawal row.
type Ledger interface {
	GetDeposit(ctx context.Context, tx *gorm.DB, id uint, forUpdate bool) (*models.Deposit, error)
	Debit(ctx context.Context, tx *gorm.DB, id uint, amount decimal.Decimal) (decimal.Decimal, error)
}

type DepositLedger struct{}

var _ Ledger = DepositLedger{}

func NewDepositLedger() DepositLedger {
	return DepositLedger{}
}

func (DepositLedger) GetDeposit(ctx context.Context, tx *gorm.DB, id uint, forUpdate bool) (*models.Deposit, error) {
	q := tx.WithContext(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var deposit models.Deposit
	if err := q.First(&deposit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("deposit", id)
		}
		return nil, fmt.Errorf("failed to load deposit %d: %w", id, err)
	}
	return &deposit, nil
}

// Debit subtracts amount from the deposit's balance under a row lock and
// returns the new balance. It never drives the balance below zero.
func (l DepositLedger) Debit(ctx context.Context, tx *gorm.DB, id uint, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, newError(ErrValidation, "debit amount must be positive")
	}

	deposit, err := l.GetDeposit(ctx, tx, id, true)
	if err != nil {
		return decimal.Zero, err
	}
	if deposit.CurrentBalance.LessThan(amount) {
		return decimal.Zero, insufficientBalance(amount, deposit.CurrentBalance)
	}

	balance := deposit.CurrentBalance.Sub(amount)
	res := tx.WithContext(ctx).Model(&models.Deposit{}).
		Where("id = ?", id).
		Update("current_balance", balance)
	if res.Error != nil {
		return decimal.Zero, fmt.Errorf("failed to debit deposit %d: %w", id, res.Error)
	}
	if res.RowsAffected != 1 {
		return decimal.Zero, fmt.Errorf("failed to debit deposit %d: no rows updated", id)
	}
	return balance, nil
}
