package models

import (
	"time"

	"gorm.io/datatypes"
)

type AuditLog struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	EntityType string         `gorm:"column:entity_type;size:50;not null;index:idx_audit_entity" json:"entityType"`
	EntityID   string         `gorm:"column:entity_id;size:64;not null;index:idx_audit_entity" json:"entityId"`
	Action     string         `gorm:"column:action;size:50;not null" json:"action"`
	ActorID    uint           `gorm:"column:actor_id" json:"actorId"`
	Before     datatypes.JSON `gorm:"column:before" json:"before,omitempty"`
	After      datatypes.JSON `gorm:"column:after" json:"after,omitempty"`
	Message    string         `gorm:"column:message;type:text" json:"message"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
