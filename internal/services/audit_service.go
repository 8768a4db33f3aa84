package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"withdrawal-service/internal/models"
)

const entityWithdrawal = "withdrawal_request"

type AuditEntry struct {
	EntityType string
	EntityID   string
	Action     string
	ActorID    uint
	Before     any
	After      any
	Message    string
}

// AuditRecorder appends to the audit trail using the caller's transaction.
type AuditRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, entry AuditEntry) error
}

type AuditService struct {
	DB *gorm.DB
}

var _ AuditRecorder = (*AuditService)(nil)

func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{DB: db}
}

func (s *AuditService) Record(ctx context.Context, tx *gorm.DB, entry AuditEntry) error {
	if tx == nil {
		tx = s.DB
	}

	before, err := snapshot(entry.Before)
	if err != nil {
		return err
	}
	after, err := snapshot(entry.After)
	if err != nil {
		return err
	}

	log := models.AuditLog{
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Action:     entry.Action,
		ActorID:    entry.ActorID,
		Before:     before,
		After:      after,
		Message:    entry.Message,
	}
	if err := tx.WithContext(ctx).Create(&log).Error; err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// History lists the audit trail of one entity, oldest first.
func (s *AuditService) History(ctx context.Context, entityType, entityID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := s.DB.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("id ASC").
		Find(&logs).Error
	return logs, err
}

func snapshot(v any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot audit state: %w", err)
	}
	return datatypes.JSON(b), nil
}
