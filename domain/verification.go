package domain

import (
	"fmt"
	"strings"
	"time"
)

// DecisionAction is the administrative verdict on a provider profile
type DecisionAction string

const (
	ActionApprove DecisionAction = "approve"
	ActionReject  DecisionAction = "reject"
)

// ParseDecisionAction validates a raw action value
func ParseDecisionAction(raw string) (DecisionAction, error) {
	switch a := DecisionAction(strings.ToLower(strings.TrimSpace(raw))); a {
	case ActionApprove, ActionReject:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, raw)
}

const (
	defaultApproveNotes = "All verification checks passed"
	defaultRejectNotes  = "Verification requirements not met"
)

// CheckDetails carries caller-supplied sub-check values. Nil fields were omitted.
type CheckDetails struct {
	MatricNumberVerified *bool `json:"matric_number_verified"`
	BusinessNameVerified *bool `json:"business_name_verified"`
	CertificatesVerified *bool `json:"certificates_verified"`
	BioVerified          *bool `json:"bio_verified"`
}

// Evaluation is the resolved outcome of a verification decision
type Evaluation struct {
	Checks VerificationChecks
	Status VerificationStatus
	Notes  string
}

// Evaluate resolves the sub-checks, aggregate status and notes for a decision.
// Approve attests every sub-check; reject keeps the supplied details, with
// omitted ones defaulting to false.
func Evaluate(action DecisionAction, details *CheckDetails, notes string) (Evaluation, error) {
	var ev Evaluation
	switch action {
	case ActionApprove:
		ev.Checks = VerificationChecks{
			MatricNumberVerified: true,
			BusinessNameVerified: true,
			CertificatesVerified: true,
			BioVerified:          true,
		}
		ev.Status = StatusApproved
		ev.Notes = defaultApproveNotes
	case ActionReject:
		if details != nil {
			ev.Checks = VerificationChecks{
				MatricNumberVerified: boolValue(details.MatricNumberVerified),
				BusinessNameVerified: boolValue(details.BusinessNameVerified),
				CertificatesVerified: boolValue(details.CertificatesVerified),
				BioVerified:          boolValue(details.BioVerified),
			}
		}
		ev.Status = StatusRejected
		ev.Notes = defaultRejectNotes
	default:
		return Evaluation{}, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}

	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		ev.Notes = trimmed
	}
	return ev, nil
}

func boolValue(b *bool) bool {
	return b != nil && *b
}

// DecisionRequest is a validated administrative decision on a profile
type DecisionRequest struct {
	ProfileID uint
	Action    DecisionAction
	Notes     string
	Details   *CheckDetails
}

// DecisionCommit is everything written atomically when a decision is persisted.
// The profile write is conditional on ExpectedVersion.
type DecisionCommit struct {
	ProfileID       uint
	UserID          uint
	ExpectedVersion uint
	Evaluation      Evaluation
	ReviewedAt      time.Time
	ReviewerID      uint
}

// UserActive is the active/verified flag value the linked user receives
func (c DecisionCommit) UserActive() bool {
	return c.Evaluation.Status == StatusApproved
}
