package mocks

import (
	"context"
	"time"

	"github.com/talentnest247/Talentnest-sub001/domain"
)

// MockProfileRepository implements domain.ProfileRepository interface for testing.
// Every mutating call is counted in Writes.
type MockProfileRepository struct {
	CreateWithOwnerFunc func(ctx context.Context, user *domain.User, profile *domain.ProviderProfile) error
	FindByIDFunc        func(ctx context.Context, id uint) (*domain.ProviderProfile, error)
	FindByUserIDFunc    func(ctx context.Context, userID uint) (*domain.ProviderProfile, error)
	ListByStatusFunc    func(ctx context.Context, status domain.VerificationStatus) ([]domain.ProviderProfile, error)
	ListApprovedFunc    func(ctx context.Context) ([]domain.ProviderProfile, error)
	UpdateDetailsFunc   func(ctx context.Context, profile *domain.ProviderProfile) error
	ResubmitFunc        func(ctx context.Context, profileID, expectedVersion uint, submittedAt time.Time) error
	CommitDecisionFunc  func(ctx context.Context, commit domain.DecisionCommit) error
	AddDocumentFunc     func(ctx context.Context, doc *domain.VerificationDocument) error
	FindDocumentFunc    func(ctx context.Context, profileID, documentID uint) (*domain.VerificationDocument, error)
	DeleteDocumentFunc  func(ctx context.Context, documentID uint) error

	Writes int
}

// NewMockProfileRepository creates a new MockProfileRepository with default behaviors
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{}
}

func (m *MockProfileRepository) CreateWithOwner(ctx context.Context, user *domain.User, profile *domain.ProviderProfile) error {
	m.Writes++
	if m.CreateWithOwnerFunc != nil {
		return m.CreateWithOwnerFunc(ctx, user, profile)
	}
	return nil
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uint) (*domain.ProviderProfile, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrProfileNotFound
}

func (m *MockProfileRepository) FindByUserID(ctx context.Context, userID uint) (*domain.ProviderProfile, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, domain.ErrProfileNotFound
}

func (m *MockProfileRepository) ListByStatus(ctx context.Context, status domain.VerificationStatus) ([]domain.ProviderProfile, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status)
	}
	return []domain.ProviderProfile{}, nil
}

func (m *MockProfileRepository) ListApproved(ctx context.Context) ([]domain.ProviderProfile, error) {
	if m.ListApprovedFunc != nil {
		return m.ListApprovedFunc(ctx)
	}
	return []domain.ProviderProfile{}, nil
}

func (m *MockProfileRepository) UpdateDetails(ctx context.Context, profile *domain.ProviderProfile) error {
	m.Writes++
	if m.UpdateDetailsFunc != nil {
		return m.UpdateDetailsFunc(ctx, profile)
	}
	return nil
}

func (m *MockProfileRepository) Resubmit(ctx context.Context, profileID, expectedVersion uint, submittedAt time.Time) error {
	m.Writes++
	if m.ResubmitFunc != nil {
		return m.ResubmitFunc(ctx, profileID, expectedVersion, submittedAt)
	}
	return nil
}

func (m *MockProfileRepository) CommitDecision(ctx context.Context, commit domain.DecisionCommit) error {
	m.Writes++
	if m.CommitDecisionFunc != nil {
		return m.CommitDecisionFunc(ctx, commit)
	}
	return nil
}

func (m *MockProfileRepository) AddDocument(ctx context.Context, doc *domain.VerificationDocument) error {
	m.Writes++
	if m.AddDocumentFunc != nil {
		return m.AddDocumentFunc(ctx, doc)
	}
	return nil
}

func (m *MockProfileRepository) FindDocument(ctx context.Context, profileID, documentID uint) (*domain.VerificationDocument, error) {
	if m.FindDocumentFunc != nil {
		return m.FindDocumentFunc(ctx, profileID, documentID)
	}
	return nil, domain.ErrDocumentNotFound
}

func (m *MockProfileRepository) DeleteDocument(ctx context.Context, documentID uint) error {
	m.Writes++
	if m.DeleteDocumentFunc != nil {
		return m.DeleteDocumentFunc(ctx, documentID)
	}
	return nil
}

var _ domain.ProfileRepository = (*MockProfileRepository)(nil)
