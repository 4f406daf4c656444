package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentnest247/Talentnest-sub001/domain"
	"github.com/talentnest247/Talentnest-sub001/internal/mocks"
)

type profileFixture struct {
	store   *profileStore
	repo    *mocks.MockProfileRepository
	blobs   *mocks.MockDocumentStore
	audit   *mocks.MockAuditLogger
	svc     *ProfileServiceImpl
	artisan *domain.User
	admin   *domain.User
	student *domain.User
	profile *domain.ProviderProfile
}

func newProfileFixture(t *testing.T) *profileFixture {
	t.Helper()

	f := &profileFixture{
		artisan: createArtisan(t),
		admin:   createAdmin(t),
		student: createStudent(t),
	}
	f.profile = createPendingProfile(t, f.artisan)
	f.store, f.repo = newProfileStore([]*domain.User{f.artisan, f.admin, f.student}, f.profile)

	f.repo.UpdateDetailsFunc = func(ctx context.Context, p *domain.ProviderProfile) error {
		stored := f.store.profiles[p.ID]
		checks, status := stored.Checks, stored.Status
		*stored = *p
		stored.Checks, stored.Status = checks, status
		return nil
	}
	f.repo.ResubmitFunc = func(ctx context.Context, id, version uint, at time.Time) error {
		p := f.store.profiles[id]
		if p.Version != version {
			return domain.ErrConcurrentDecision
		}
		p.Status = domain.StatusPending
		p.Checks = domain.VerificationChecks{}
		p.VerificationNotes = ""
		p.VerificationSubmittedAt = &at
		p.Version++
		return nil
	}
	f.repo.AddDocumentFunc = func(ctx context.Context, doc *domain.VerificationDocument) error {
		doc.ID = 500
		p := f.store.profiles[doc.ProfileID]
		p.Documents = append(p.Documents, *doc)
		return nil
	}
	f.repo.FindDocumentFunc = func(ctx context.Context, profileID, documentID uint) (*domain.VerificationDocument, error) {
		for _, d := range f.store.profiles[profileID].Documents {
			if d.ID == documentID {
				cp := d
				return &cp, nil
			}
		}
		return nil, domain.ErrDocumentNotFound
	}

	users := mocks.NewMockUserRepository()
	users.FindByIDFunc = mocks.UsersByID(f.artisan, f.admin, f.student)
	f.blobs = mocks.NewMockDocumentStore()
	f.blobs.Files["3/1700_cert.pdf"] = 4096
	f.blobs.Files["3/1_id.png"] = 512
	f.audit = mocks.NewMockAuditLogger()
	log, _ := newTestLogger(t)
	f.svc = NewProfileService(users, f.repo, f.blobs, f.audit, log)
	return f
}

func (f *profileFixture) owner() domain.Actor {
	return domain.Actor{UserID: f.artisan.ID, Role: domain.RoleArtisan}
}

func TestProfileService_GetProfile_Access(t *testing.T) {
	tests := []struct {
		name        string
		actor       func(f *profileFixture) domain.Actor
		expectedErr error
	}{
		{"owner", func(f *profileFixture) domain.Actor { return f.owner() }, nil},
		{"admin", func(f *profileFixture) domain.Actor { return domain.Actor{UserID: f.admin.ID, Role: domain.RoleAdmin} }, nil},
		{"other user", func(f *profileFixture) domain.Actor { return domain.Actor{UserID: f.student.ID, Role: domain.RoleStudent} }, domain.ErrForbidden},
		{"unknown user", func(f *profileFixture) domain.Actor { return domain.Actor{UserID: 99} }, domain.ErrUnauthorized},
		{"anonymous", func(f *profileFixture) domain.Actor { return domain.Actor{} }, domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProfileFixture(t)
			got, err := f.svc.GetProfile(createTestContext(t), tt.actor(f), f.artisan.ID)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, f.profile.ID, got.ID)
		})
	}
}

func TestProfileService_UpdateProfile(t *testing.T) {
	f := newProfileFixture(t)

	got, err := f.svc.UpdateProfile(createTestContext(t), f.owner(), f.artisan.ID, domain.ProfileUpdate{
		BusinessName:      "  Tobi Tailoring & Repairs ",
		Bio:               "Alterations in 24h",
		Specialization:    []string{" Tailoring ", "", "Repairs"},
		YearsOfExperience: 4,
		HourlyRate:        2500,
		Currency:          "ngn",
		AvailableDays:     []string{"Mon", "Wed"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tobi Tailoring & Repairs", got.BusinessName)
	assert.Equal(t, []string{"Tailoring", "Repairs"}, got.Specialization)
	assert.Equal(t, "NGN", got.Currency)
	assert.Equal(t, domain.StatusPending, got.Status, "editing never changes verification state")
}

func TestProfileService_UpdateProfile_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		update domain.ProfileUpdate
	}{
		{"negative experience", domain.ProfileUpdate{YearsOfExperience: -1}},
		{"negative rate", domain.ProfileUpdate{HourlyRate: -10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProfileFixture(t)
			_, err := f.svc.UpdateProfile(createTestContext(t), f.owner(), f.artisan.ID, tt.update)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Zero(t, f.repo.Writes)
		})
	}
}

func TestProfileService_Resubmit(t *testing.T) {
	tests := []struct {
		name        string
		status      domain.VerificationStatus
		expectedErr error
	}{
		{"rejected goes back to pending", domain.StatusRejected, nil},
		{"pending refreshes submission", domain.StatusPending, nil},
		{"approved cannot resubmit", domain.StatusApproved, domain.ErrProfileAlreadyApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProfileFixture(t)
			f.profile.Status = tt.status
			f.profile.VerificationNotes = "previous notes"
			f.profile.Checks.BioVerified = true

			got, err := f.svc.Resubmit(createTestContext(t), f.owner(), f.artisan.ID)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Equal(t, domain.KindConflict, domain.KindOf(err))
				assert.Zero(t, f.repo.Writes)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusPending, got.Status)
			assert.False(t, got.Checks.BioVerified)
			assert.Empty(t, got.VerificationNotes)
			require.Len(t, f.audit.Events, 1)
			assert.Equal(t, domain.ProfileResubmittedEvent, f.audit.Events[0].EventType)
		})
	}
}

func TestProfileService_AttachDocument(t *testing.T) {
	tests := []struct {
		name        string
		att         domain.DocumentAttachment
		expectedErr error
	}{
		{"own upload", domain.DocumentAttachment{DocumentType: " Certificate ", StoragePath: "3/1700_cert.pdf"}, nil},
		{"someone else's upload", domain.DocumentAttachment{DocumentType: "certificate", StoragePath: "4/1700_cert.pdf"}, domain.ErrForbidden},
		{"never uploaded", domain.DocumentAttachment{DocumentType: "certificate", StoragePath: "3/never_uploaded.pdf"}, domain.ErrFileNotStored},
		{"missing type", domain.DocumentAttachment{StoragePath: "3/1700_cert.pdf"}, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProfileFixture(t)
			doc, err := f.svc.AttachDocument(createTestContext(t), f.owner(), f.artisan.ID, tt.att)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Zero(t, f.repo.Writes)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(500), doc.ID)
			assert.Equal(t, "certificate", doc.DocumentType)
			assert.Equal(t, "1700_cert.pdf", doc.FileName)
			assert.Equal(t, int64(4096), doc.SizeBytes, "size comes from the store")
			require.Len(t, f.audit.Events, 1)
			assert.Equal(t, domain.DocumentAttachedEvent, f.audit.Events[0].EventType)
		})
	}
}

func TestProfileService_AttachDocument_StoreFailure(t *testing.T) {
	f := newProfileFixture(t)
	f.blobs.StatFunc = func(ctx context.Context, path string) (*domain.StoredFile, error) {
		return nil, errors.New("cdn down")
	}

	_, err := f.svc.AttachDocument(createTestContext(t), f.owner(), f.artisan.ID, domain.DocumentAttachment{DocumentType: "certificate", StoragePath: "3/1700_cert.pdf"})
	assert.ErrorIs(t, err, domain.ErrPersistenceFailure)
	assert.Zero(t, f.repo.Writes)
}

func TestProfileService_AdminAttachesForOwner(t *testing.T) {
	f := newProfileFixture(t)
	admin := domain.Actor{UserID: f.admin.ID, Role: domain.RoleAdmin}

	_, err := f.svc.AttachDocument(createTestContext(t), admin, f.artisan.ID, domain.DocumentAttachment{DocumentType: "id", StoragePath: "2/1_id.png"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "file must come from the owner's prefix")

	_, err = f.svc.AttachDocument(createTestContext(t), admin, f.artisan.ID, domain.DocumentAttachment{DocumentType: "id", StoragePath: "3/1_id.png"})
	assert.NoError(t, err)
}

func TestProfileService_RemoveDocument(t *testing.T) {
	t.Run("removes row and blob", func(t *testing.T) {
		f := newProfileFixture(t)
		require.NoError(t, f.svc.RemoveDocument(createTestContext(t), f.owner(), f.artisan.ID, 100))
		assert.Equal(t, []string{"3/1_cert.pdf"}, f.blobs.Deleted)
		require.Len(t, f.audit.Events, 1)
		assert.Equal(t, domain.DocumentRemovedEvent, f.audit.Events[0].EventType)
	})

	t.Run("blob failure is not surfaced", func(t *testing.T) {
		f := newProfileFixture(t)
		f.blobs.DeleteFunc = func(ctx context.Context, path string) error { return errors.New("cdn down") }
		assert.NoError(t, f.svc.RemoveDocument(createTestContext(t), f.owner(), f.artisan.ID, 100))
	})

	t.Run("unknown document", func(t *testing.T) {
		f := newProfileFixture(t)
		err := f.svc.RemoveDocument(createTestContext(t), f.owner(), f.artisan.ID, 999)
		assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
		assert.Empty(t, f.blobs.Deleted)
	})

	t.Run("row failure keeps blob", func(t *testing.T) {
		f := newProfileFixture(t)
		f.repo.DeleteDocumentFunc = func(ctx context.Context, id uint) error {
			return domain.Persistence("delete document", errors.New("locked"))
		}
		err := f.svc.RemoveDocument(createTestContext(t), f.owner(), f.artisan.ID, 100)
		assert.Equal(t, domain.KindPersistenceFailure, domain.KindOf(err))
		assert.Empty(t, f.blobs.Deleted)
	})
}
