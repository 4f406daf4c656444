package mocks

import (
	"context"

	"github.com/talentnest247/Talentnest-sub001/domain"
)

// MockVerificationService implements domain.VerificationService interface for testing
type MockVerificationService struct {
	ListPendingFunc func(ctx context.Context, actor domain.Actor) ([]domain.ProviderProfile, error)
	DecideFunc      func(ctx context.Context, actor domain.Actor, req domain.DecisionRequest) (*domain.ProviderProfile, error)
}

func (m *MockVerificationService) ListPending(ctx context.Context, actor domain.Actor) ([]domain.ProviderProfile, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx, actor)
	}
	return []domain.ProviderProfile{}, nil
}

func (m *MockVerificationService) Decide(ctx context.Context, actor domain.Actor, req domain.DecisionRequest) (*domain.ProviderProfile, error) {
	if m.DecideFunc != nil {
		return m.DecideFunc(ctx, actor, req)
	}
	return nil, domain.ErrProfileNotFound
}

// MockListingService implements domain.ListingService interface for testing
type MockListingService struct {
	ListVerifiedFunc func(ctx context.Context, query domain.ListingQuery) ([]domain.ArtisanListing, error)
}

func (m *MockListingService) ListVerified(ctx context.Context, query domain.ListingQuery) ([]domain.ArtisanListing, error) {
	if m.ListVerifiedFunc != nil {
		return m.ListVerifiedFunc(ctx, query)
	}
	return []domain.ArtisanListing{}, nil
}

// MockUploadService implements domain.UploadService interface for testing
type MockUploadService struct {
	UploadFunc func(ctx context.Context, actor domain.Actor, file domain.FileUpload) (*domain.StoredFile, error)
	DeleteFunc func(ctx context.Context, actor domain.Actor, fileName string) error
}

func (m *MockUploadService) Upload(ctx context.Context, actor domain.Actor, file domain.FileUpload) (*domain.StoredFile, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, actor, file)
	}
	return &domain.StoredFile{Path: actor.IDString() + "/" + file.FileName, ContentType: file.ContentType, SizeBytes: file.Size}, nil
}

func (m *MockUploadService) Delete(ctx context.Context, actor domain.Actor, fileName string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, actor, fileName)
	}
	return nil
}

// MockProfileService implements domain.ProfileService interface for testing
type MockProfileService struct {
	GetProfileFunc     func(ctx context.Context, actor domain.Actor, userID uint) (*domain.ProviderProfile, error)
	UpdateProfileFunc  func(ctx context.Context, actor domain.Actor, userID uint, update domain.ProfileUpdate) (*domain.ProviderProfile, error)
	ResubmitFunc       func(ctx context.Context, actor domain.Actor, userID uint) (*domain.ProviderProfile, error)
	AttachDocumentFunc func(ctx context.Context, actor domain.Actor, userID uint, doc domain.DocumentAttachment) (*domain.VerificationDocument, error)
	RemoveDocumentFunc func(ctx context.Context, actor domain.Actor, userID, documentID uint) error
}

func (m *MockProfileService) GetProfile(ctx context.Context, actor domain.Actor, userID uint) (*domain.ProviderProfile, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, actor, userID)
	}
	return nil, domain.ErrProfileNotFound
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, actor domain.Actor, userID uint, update domain.ProfileUpdate) (*domain.ProviderProfile, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, actor, userID, update)
	}
	return nil, domain.ErrProfileNotFound
}

func (m *MockProfileService) Resubmit(ctx context.Context, actor domain.Actor, userID uint) (*domain.ProviderProfile, error) {
	if m.ResubmitFunc != nil {
		return m.ResubmitFunc(ctx, actor, userID)
	}
	return nil, domain.ErrProfileNotFound
}

func (m *MockProfileService) AttachDocument(ctx context.Context, actor domain.Actor, userID uint, doc domain.DocumentAttachment) (*domain.VerificationDocument, error) {
	if m.AttachDocumentFunc != nil {
		return m.AttachDocumentFunc(ctx, actor, userID, doc)
	}
	return nil, domain.ErrProfileNotFound
}

func (m *MockProfileService) RemoveDocument(ctx context.Context, actor domain.Actor, userID, documentID uint) error {
	if m.RemoveDocumentFunc != nil {
		return m.RemoveDocumentFunc(ctx, actor, userID, documentID)
	}
	return nil
}

var (
	_ domain.VerificationService = (*MockVerificationService)(nil)
	_ domain.ListingService      = (*MockListingService)(nil)
	_ domain.UploadService       = (*MockUploadService)(nil)
	_ domain.ProfileService      = (*MockProfileService)(nil)
)
