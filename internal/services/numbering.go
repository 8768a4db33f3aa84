package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"withdrawal-service/internal/models"
)

const maxRequestSequence = 999999

func requestNumberPrefix(year int) string {
	return fmt.Sprintf("WR-%d-", year)
}

// RequestNumberLockKey names the lock that serializes numbering for a year.
func RequestNumberLockKey(year int) string {
	return fmt.Sprintf("request-number:%d", year)
}

func FormatRequestNumber(year, seq int) string {
	return fmt.Sprintf("%s%06d", requestNumberPrefix(year), seq)
}

// ParseRequestSequence extracts the trailing counter of a number issued in year.
func ParseRequestSequence(number string, year int) (int, error) {
	prefix := requestNumberPrefix(year)
	if !strings.HasPrefix(number, prefix) {
		return 0, fmt.Errorf("request number %q does not belong to %d", number, year)
	}
	digits := strings.TrimPrefix(number, prefix)
	if len(digits) != 6 {
		return 0, fmt.Errorf("request number %q has malformed sequence", number)
	}
	seq, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("request number %q has malformed sequence: %w", number, err)
	}
	return seq, nil
}

// NextRequestNumber reads the highest number issued for year and returns its
// successor. It must run inside the transaction that inserts the request and
// under the RequestNumberLockKey lock; the unique index on request_number is
// the storage-level backstop.
func NextRequestNumber(ctx context.Context, tx *gorm.DB, year int) (string, error) {
	var last models.WithdrawalRequest
	err := tx.WithContext(ctx).
		Select("request_number").
		Where("request_number LIKE ?", requestNumberPrefix(year)+"%").
		Order("request_number DESC").
		Take(&last).Error

	seq := 0
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return "", fmt.Errorf("failed to read last request number: %w", err)
	default:
		if seq, err = ParseRequestSequence(last.RequestNumber, year); err != nil {
			return "", err
		}
	}

	if seq >= maxRequestSequence {
		return "", newError(ErrValidation, "request number sequence exhausted for %d", year)
	}
	return FormatRequestNumber(year, seq+1), nil
}
