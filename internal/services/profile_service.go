package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

// ProfileServiceImpl implements domain.ProfileService
type ProfileServiceImpl struct {
	userRepo    domain.UserRepository
	profileRepo domain.ProfileRepository
	store       domain.DocumentStore
	audit       domain.AuditLogger
	log         logrus.FieldLogger
}

// NewProfileService creates the provider profile service
func NewProfileService(
	userRepo domain.UserRepository,
	profileRepo domain.ProfileRepository,
	store domain.DocumentStore,
	audit domain.AuditLogger,
	log logrus.FieldLogger,
) *ProfileServiceImpl {
	return &ProfileServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		store:       store,
		audit:       audit,
		log:         log.WithField("component", "profile_service"),
	}
}

// authorizeOwner allows the profile owner, or an admin resolved through the user repository
func (s *ProfileServiceImpl) authorizeOwner(ctx context.Context, actor domain.Actor, userID uint) error {
	if actor.UserID == 0 {
		return domain.ErrUnauthorized
	}
	if actor.UserID == userID {
		return nil
	}
	user, err := s.userRepo.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnauthorized
		}
		return err
	}
	if user.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}

func (s *ProfileServiceImpl) load(ctx context.Context, actor domain.Actor, userID uint) (*domain.ProviderProfile, error) {
	if err := s.authorizeOwner(ctx, actor, userID); err != nil {
		return nil, err
	}
	return s.profileRepo.FindByUserID(ctx, userID)
}

// GetProfile implements domain.ProfileService
func (s *ProfileServiceImpl) GetProfile(ctx context.Context, actor domain.Actor, userID uint) (*domain.ProviderProfile, error) {
	return s.load(ctx, actor, userID)
}

// UpdateProfile writes the editable fields. Verification state is never changed here.
func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, actor domain.Actor, userID uint, update domain.ProfileUpdate) (*domain.ProviderProfile, error) {
	if err := validateProfileUpdate(update); err != nil {
		return nil, err
	}
	profile, err := s.load(ctx, actor, userID)
	if err != nil {
		return nil, err
	}

	profile.BusinessName = strings.TrimSpace(update.BusinessName)
	profile.Description = strings.TrimSpace(update.Description)
	profile.Bio = strings.TrimSpace(update.Bio)
	profile.Specialization = trimAll(update.Specialization)
	profile.YearsOfExperience = update.YearsOfExperience
	profile.Location = strings.TrimSpace(update.Location)
	profile.HourlyRate = update.HourlyRate
	profile.Currency = strings.ToUpper(strings.TrimSpace(update.Currency))
	profile.AvailabilityStatus = strings.TrimSpace(update.AvailabilityStatus)
	profile.AvailableDays = trimAll(update.AvailableDays)

	if err := s.profileRepo.UpdateDetails(ctx, profile); err != nil {
		return nil, err
	}
	return s.profileRepo.FindByID(ctx, profile.ID)
}

func validateProfileUpdate(u domain.ProfileUpdate) error {
	switch {
	case u.YearsOfExperience < 0:
		return fmt.Errorf("%w: years of experience must not be negative", domain.ErrInvalidInput)
	case u.HourlyRate < 0:
		return fmt.Errorf("%w: hourly rate must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Resubmit returns a decided profile to the pending queue with its checks cleared
func (s *ProfileServiceImpl) Resubmit(ctx context.Context, actor domain.Actor, userID uint) (*domain.ProviderProfile, error) {
	profile, err := s.load(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	if profile.Status == domain.StatusApproved {
		return nil, domain.ErrProfileAlreadyApproved
	}

	if err := s.profileRepo.Resubmit(ctx, profile.ID, profile.Version, time.Now().UTC()); err != nil {
		return nil, err
	}

	event := domain.NewAuditEvent(domain.ProfileResubmittedEvent, actor.UserID, domain.ResourceProviderProfile, profile.ID).
		WithChange(map[string]interface{}{"verification_status": profile.Status},
			map[string]interface{}{"verification_status": domain.StatusPending})
	s.logAudit(ctx, event)

	return s.profileRepo.FindByID(ctx, profile.ID)
}

// AttachDocument links an uploaded file to the profile. The file must live under the
// owner's prefix and exist in the document store, which also supplies its size.
func (s *ProfileServiceImpl) AttachDocument(ctx context.Context, actor domain.Actor, userID uint, att domain.DocumentAttachment) (*domain.VerificationDocument, error) {
	docType := strings.ToLower(strings.TrimSpace(att.DocumentType))
	if docType == "" {
		return nil, fmt.Errorf("%w: document type is required", domain.ErrInvalidInput)
	}
	profile, err := s.load(ctx, actor, userID)
	if err != nil {
		return nil, err
	}
	if !OwnsStoragePath(userID, att.StoragePath) {
		return nil, fmt.Errorf("%w: storage path is not owned by the profile owner", domain.ErrForbidden)
	}
	stored, err := s.store.Stat(ctx, att.StoragePath)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotStored) {
			return nil, err
		}
		return nil, persistenceError("stat stored file", err)
	}

	fileName := strings.TrimSpace(att.FileName)
	if fileName == "" {
		fileName = att.StoragePath[strings.LastIndex(att.StoragePath, "/")+1:]
	}
	doc := &domain.VerificationDocument{
		ProfileID:    profile.ID,
		DocumentType: docType,
		StoragePath:  att.StoragePath,
		FileName:     fileName,
		SizeBytes:    stored.SizeBytes,
	}
	if err := s.profileRepo.AddDocument(ctx, doc); err != nil {
		return nil, err
	}

	s.logAudit(ctx, domain.NewAuditEvent(domain.DocumentAttachedEvent, actor.UserID, domain.ResourceDocument, doc.ID).
		WithChange(nil, doc))
	return doc, nil
}

// RemoveDocument deletes the document row, then the stored blob on a best-effort basis
func (s *ProfileServiceImpl) RemoveDocument(ctx context.Context, actor domain.Actor, userID, documentID uint) error {
	profile, err := s.load(ctx, actor, userID)
	if err != nil {
		return err
	}
	doc, err := s.profileRepo.FindDocument(ctx, profile.ID, documentID)
	if err != nil {
		return err
	}
	if err := s.profileRepo.DeleteDocument(ctx, doc.ID); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"document_id": doc.ID,
			"path":        doc.StoragePath,
		}).Warn("blob cleanup failed")
	}

	s.logAudit(ctx, domain.NewAuditEvent(domain.DocumentRemovedEvent, actor.UserID, domain.ResourceDocument, doc.ID).
		WithChange(doc, nil))
	return nil
}

func (s *ProfileServiceImpl) logAudit(ctx context.Context, event *domain.AuditEvent) {
	if err := s.audit.LogEvent(ctx, event); err != nil {
		s.log.WithError(err).WithField("event", event.EventType).Warn("audit failed")
	}
}

var _ domain.ProfileService = (*ProfileServiceImpl)(nil)
