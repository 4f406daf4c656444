package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Verification workflow events
	VerificationApprovedEvent AuditEventType = "VERIFICATION_APPROVED"
	VerificationRejectedEvent AuditEventType = "VERIFICATION_REJECTED"
	ProfileResubmittedEvent   AuditEventType = "PROFILE_RESUBMITTED"

	// Evidence document events
	DocumentAttachedEvent AuditEventType = "DOCUMENT_ATTACHED"
	DocumentRemovedEvent  AuditEventType = "DOCUMENT_REMOVED"

	// Account events
	UserRegisteredEvent AuditEventType = "USER_REGISTERED"
)

// Audit resource types
const (
	ResourceProviderProfile = "provider_profile"
	ResourceDocument        = "verification_document"
	ResourceUser            = "user"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType    AuditEventType `json:"event_type"`
	ActorID      uint           `json:"actor_id"`
	ResourceType string         `json:"resource_type"`
	ResourceID   uint           `json:"resource_id"`
	Before       interface{}    `json:"before,omitempty"`
	After        interface{}    `json:"after,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

// AuditLogger records audit events
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent) error
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, actorID uint, resourceType string, resourceID uint) *AuditEvent {
	return &AuditEvent{
		EventType:    eventType,
		ActorID:      actorID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Timestamp:    time.Now().UTC(),
	}
}

// WithChange records the state before and after the event
func (e *AuditEvent) WithChange(before, after interface{}) *AuditEvent {
	e.Before = before
	e.After = after
	return e
}

// DecisionEventSubject is the message subject for published verification decisions
const DecisionEventSubject = "talentnest.verification.decided"

// VerificationDecided is published after a decision is committed
type VerificationDecided struct {
	ProfileID  uint               `json:"profile_id"`
	UserID     uint               `json:"user_id"`
	Status     VerificationStatus `json:"status"`
	Checks     VerificationChecks `json:"verification_details"`
	Notes      string             `json:"notes"`
	ReviewerID uint               `json:"reviewer_id"`
	DecidedAt  time.Time          `json:"decided_at"`
}
