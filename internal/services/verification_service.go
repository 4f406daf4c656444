package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

// DecisionLockKey is the lock key that serialises decisions on one profile
func DecisionLockKey(profileID uint) string {
	return fmt.Sprintf("verification:lock:%d", profileID)
}

// VerificationServiceImpl implements domain.VerificationService
type VerificationServiceImpl struct {
	userRepo    domain.UserRepository
	profileRepo domain.ProfileRepository
	locker      domain.ProfileLocker
	audit       domain.AuditLogger
	publisher   domain.EventPublisher
	notifier    domain.NotificationService
	log         logrus.FieldLogger
	now         func() time.Time
}

// NewVerificationService creates the administrative verification workflow
func NewVerificationService(
	userRepo domain.UserRepository,
	profileRepo domain.ProfileRepository,
	locker domain.ProfileLocker,
	audit domain.AuditLogger,
	publisher domain.EventPublisher,
	notifier domain.NotificationService,
	log logrus.FieldLogger,
) *VerificationServiceImpl {
	return &VerificationServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		locker:      locker,
		audit:       audit,
		publisher:   publisher,
		notifier:    notifier,
		log:         log.WithField("component", "verification_service"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// authorizeAdmin resolves the actor through the user repository.
// Token claims alone never grant admin rights.
func (s *VerificationServiceImpl) authorizeAdmin(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	if actor.UserID == 0 {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if user.Role != domain.RoleAdmin {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// ListPending implements domain.VerificationService
func (s *VerificationServiceImpl) ListPending(ctx context.Context, actor domain.Actor) ([]domain.ProviderProfile, error) {
	if _, err := s.authorizeAdmin(ctx, actor); err != nil {
		return nil, err
	}
	return s.profileRepo.ListByStatus(ctx, domain.StatusPending)
}

// Decide implements domain.VerificationService
func (s *VerificationServiceImpl) Decide(ctx context.Context, actor domain.Actor, req domain.DecisionRequest) (*domain.ProviderProfile, error) {
	admin, err := s.authorizeAdmin(ctx, actor)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.FindByID(ctx, req.ProfileID)
	if err != nil {
		return nil, err
	}

	evaluation, err := domain.Evaluate(req.Action, req.Details, req.Notes)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, DecisionLockKey(profile.ID))
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.log.WithError(err).WithField("profile_id", profile.ID).Warn("release decision lock failed")
		}
	}()

	decidedAt := s.now()
	commit := domain.DecisionCommit{
		ProfileID:       profile.ID,
		UserID:          profile.UserID,
		ExpectedVersion: profile.Version,
		Evaluation:      evaluation,
		ReviewedAt:      decidedAt,
		ReviewerID:      admin.ID,
	}
	if err := s.profileRepo.CommitDecision(ctx, commit); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"profile_id":  profile.ID,
		"user_id":     profile.UserID,
		"status":      evaluation.Status,
		"reviewer_id": admin.ID,
	}).Info("verification decision committed")

	s.afterDecision(ctx, profile, commit)

	return s.profileRepo.FindByID(ctx, profile.ID)
}

// afterDecision runs the side effects of a committed decision. Failures are logged only.
func (s *VerificationServiceImpl) afterDecision(ctx context.Context, before *domain.ProviderProfile, commit domain.DecisionCommit) {
	ev := commit.Evaluation
	log := s.log.WithField("profile_id", commit.ProfileID)

	eventType := domain.VerificationRejectedEvent
	if ev.Status == domain.StatusApproved {
		eventType = domain.VerificationApprovedEvent
	}
	auditEvent := domain.NewAuditEvent(eventType, commit.ReviewerID, domain.ResourceProviderProfile, commit.ProfileID).
		WithChange(decisionSnapshot(before.Status, before.Checks, before.VerificationNotes),
			decisionSnapshot(ev.Status, ev.Checks, ev.Notes))
	if err := s.audit.LogEvent(ctx, auditEvent); err != nil {
		log.WithError(err).Warn("audit decision failed")
	}

	decided := domain.VerificationDecided{
		ProfileID:  commit.ProfileID,
		UserID:     commit.UserID,
		Status:     ev.Status,
		Checks:     ev.Checks,
		Notes:      ev.Notes,
		ReviewerID: commit.ReviewerID,
		DecidedAt:  commit.ReviewedAt,
	}
	if err := s.publisher.Publish(ctx, domain.DecisionEventSubject, decided); err != nil {
		log.WithError(err).Warn("publish decision event failed")
	}

	if before.User != nil && before.User.Phone != "" {
		if err := s.notifier.SendSMS(before.User.Phone, decisionMessage(ev)); err != nil {
			log.WithError(err).Warn("decision sms failed")
		}
	}
}

func decisionSnapshot(status domain.VerificationStatus, checks domain.VerificationChecks, notes string) map[string]interface{} {
	return map[string]interface{}{
		"verification_status":  status,
		"verification_details": checks,
		"verification_notes":   notes,
	}
}

func decisionMessage(ev domain.Evaluation) string {
	if ev.Status == domain.StatusApproved {
		return "TalentNest: your provider profile has been verified and is now visible on the marketplace."
	}
	return "TalentNest: your provider profile was not verified. Notes: " + ev.Notes
}

var _ domain.VerificationService = (*VerificationServiceImpl)(nil)
