package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"withdrawal-service/internal/models"
)

func TestFormatAndParseRequestNumber(t *testing.T) {
	assert.Equal(t, "WR-2026-000001", FormatRequestNumber(2026, 1))
	assert.Equal(t, "WR-2026-123456", FormatRequestNumber(2026, 123456))

	seq, err := ParseRequestSequence("WR-2026-000042", 2026)
	require.NoError(t, err)
	assert.Equal(t, 42, seq)

	_, err = ParseRequestSequence("WR-2025-000042", 2026)
	assert.Error(t, err)
	_, err = ParseRequestSequence("WR-2026-42", 2026)
	assert.Error(t, err)
	_, err = ParseRequestSequence("WR-2026-00004x", 2026)
	assert.Error(t, err)
}

func TestNextRequestNumber(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	next := func(year int) (string, error) {
		var number string
		err := db.Transaction(func(tx *gorm.DB) error {
			var err error
			number, err = NextRequestNumber(ctx, tx, year)
			return err
		})
		return number, err
	}

	number, err := next(2026)
	require.NoError(t, err)
	assert.Equal(t, "WR-2026-000001", number)

	insert := func(number string) {
		require.NoError(t, db.Create(&models.WithdrawalRequest{
			RequestNumber: number,
			DepositID:     1,
			DepositorID:   1,
			Reason:        "seeded for numbering",
			ApprovalMode:  models.ApprovalManual,
			Status:        models.StatusPending,
		}).Error)
	}
	insert("WR-2026-000007")
	insert("WR-2025-000900")

	number, err = next(2026)
	require.NoError(t, err)
	assert.Equal(t, "WR-2026-000008", number)

	// Years are numbered independently.
	number, err = next(2025)
	require.NoError(t, err)
	assert.Equal(t, "WR-2025-000901", number)

	number, err = next(2027)
	require.NoError(t, err)
	assert.Equal(t, "WR-2027-000001", number)

	insert("WR-2024-999999")
	_, err = next(2024)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateAssignsSequentialNumbers(t *testing.T) {
	f := newFixture(t)
	deposit := f.seedDeposit(t, 11, 100000)

	for i := 1; i <= 5; i++ {
		req := f.create(t, deposit, 100, models.UrgencyNormal)
		assert.Equal(t, FormatRequestNumber(2026, i), req.RequestNumber)
	}
}
