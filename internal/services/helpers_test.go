package services

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/talentnest247/Talentnest-sub001/domain"
	"github.com/talentnest247/Talentnest-sub001/internal/mocks"
)

// newTestLogger returns a discarding logger and a hook capturing its entries
func newTestLogger(t *testing.T) (logrus.FieldLogger, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

// createTestContext creates a context for testing with timeout
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func createStudent(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           1,
		Email:        "student@uni.edu",
		PasswordHash: "hashed_password123",
		Role:         domain.RoleStudent,
		FullName:     "Ada Student",
		MatricNumber: "CSC/2021/001",
		IsActive:     true,
		CreatedAt:    time.Now().Add(-24 * time.Hour),
	}
}

func createAdmin(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           2,
		Email:        "admin@uni.edu",
		PasswordHash: "hashed_password123",
		Role:         domain.RoleAdmin,
		FullName:     "Site Admin",
		IsActive:     true,
		IsVerified:   true,
	}
}

func createArtisan(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           3,
		Email:        "artisan@uni.edu",
		PasswordHash: "hashed_password123",
		Role:         domain.RoleArtisan,
		FullName:     "Tobi Artisan",
		Phone:        "+2348000000003",
		MatricNumber: "ENG/2020/044",
	}
}

// createPendingProfile builds a freshly submitted profile owned by owner
func createPendingProfile(t *testing.T, owner *domain.User) *domain.ProviderProfile {
	t.Helper()

	submitted := time.Now().Add(-time.Hour).UTC()
	return &domain.ProviderProfile{
		ID:                      10,
		UserID:                  owner.ID,
		BusinessName:            "Tobi Tailoring",
		Bio:                     "Custom tailoring for students",
		Specialization:          []string{"Tailoring"},
		Location:                "North Campus",
		Status:                  domain.StatusPending,
		VerificationSubmittedAt: &submitted,
		Version:                 1,
		User:                    owner,
		Documents: []domain.VerificationDocument{
			{ID: 100, ProfileID: 10, DocumentType: "certificate", StoragePath: "3/1_cert.pdf", FileName: "cert.pdf"},
		},
	}
}

// profileStore is a stateful ProfileRepository backing for workflow tests
type profileStore struct {
	profiles map[uint]*domain.ProviderProfile
	users    map[uint]*domain.User
}

func newProfileStore(users []*domain.User, profiles ...*domain.ProviderProfile) (*profileStore, *mocks.MockProfileRepository) {
	store := &profileStore{
		profiles: map[uint]*domain.ProviderProfile{},
		users:    map[uint]*domain.User{},
	}
	for _, u := range users {
		store.users[u.ID] = u
	}
	for _, p := range profiles {
		store.profiles[p.ID] = p
	}

	repo := mocks.NewMockProfileRepository()
	repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.ProviderProfile, error) {
		p, ok := store.profiles[id]
		if !ok {
			return nil, domain.ErrProfileNotFound
		}
		cp := *p
		return &cp, nil
	}
	repo.FindByUserIDFunc = func(ctx context.Context, userID uint) (*domain.ProviderProfile, error) {
		for _, p := range store.profiles {
			if p.UserID == userID {
				cp := *p
				return &cp, nil
			}
		}
		return nil, domain.ErrProfileNotFound
	}
	repo.ListByStatusFunc = func(ctx context.Context, status domain.VerificationStatus) ([]domain.ProviderProfile, error) {
		out := []domain.ProviderProfile{}
		for _, p := range store.profiles {
			if p.Status == status {
				out = append(out, *p)
			}
		}
		return out, nil
	}
	repo.CommitDecisionFunc = func(ctx context.Context, c domain.DecisionCommit) error {
		p, ok := store.profiles[c.ProfileID]
		if !ok {
			return domain.ErrProfileNotFound
		}
		if p.Version != c.ExpectedVersion {
			return domain.ErrConcurrentDecision
		}
		reviewedAt, reviewer := c.ReviewedAt, c.ReviewerID
		p.Checks = c.Evaluation.Checks
		p.Status = c.Evaluation.Status
		p.VerificationNotes = c.Evaluation.Notes
		p.VerificationReviewedAt = &reviewedAt
		p.ReviewedBy = &reviewer
		p.Version++
		if u, ok := store.users[c.UserID]; ok {
			u.IsActive = c.UserActive()
			u.IsVerified = c.UserActive()
		}
		return nil
	}
	return store, repo
}
