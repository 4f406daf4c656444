package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/talentnest247/Talentnest-sub001/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DBAuditLog is the database model for an audit trail entry
type DBAuditLog struct {
	ID           uint   `gorm:"primaryKey"`
	ActorID      uint   `gorm:"index"`
	Action       string `gorm:"index;size:64"`
	ResourceType string `gorm:"index:idx_audit_resource;size:64"`
	ResourceID   uint   `gorm:"index:idx_audit_resource"`
	Before       datatypes.JSON
	After        datatypes.JSON
	CreatedAt    time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBAuditLog) TableName() string {
	return "audit_logs"
}

// AuditRepository implements domain.AuditLogger on top of GORM
type AuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// LogEvent implements domain.AuditLogger
func (r *AuditRepository) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	before, err := toJSON(event.Before)
	if err != nil {
		return fmt.Errorf("failed to marshal audit before state: %w", err)
	}
	after, err := toJSON(event.After)
	if err != nil {
		return fmt.Errorf("failed to marshal audit after state: %w", err)
	}

	row := &DBAuditLog{
		ActorID:      event.ActorID,
		Action:       string(event.EventType),
		ResourceType: event.ResourceType,
		ResourceID:   event.ResourceID,
		Before:       before,
		After:        after,
		CreatedAt:    event.Timestamp,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return domain.Persistence("write audit log", err)
	}
	return nil
}

// ListForResource returns audit entries for one resource, oldest first
func (r *AuditRepository) ListForResource(ctx context.Context, resourceType string, resourceID uint) ([]domain.AuditEvent, error) {
	var rows []DBAuditLog
	err := r.db.WithContext(ctx).
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, domain.Persistence("list audit logs", err)
	}

	events := make([]domain.AuditEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, domain.AuditEvent{
			EventType:    domain.AuditEventType(row.Action),
			ActorID:      row.ActorID,
			ResourceType: row.ResourceType,
			ResourceID:   row.ResourceID,
			Before:       json.RawMessage(row.Before),
			After:        json.RawMessage(row.After),
			Timestamp:    row.CreatedAt,
		})
	}
	return events, nil
}

func toJSON(v interface{}) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

var _ domain.AuditLogger = (*AuditRepository)(nil)
