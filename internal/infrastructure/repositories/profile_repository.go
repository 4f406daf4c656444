package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/talentnest247/Talentnest-sub001/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepositoryImpl implements domain.ProfileRepository using GORM
type ProfileRepositoryImpl struct {
	db *gorm.DB
}

// DBProviderProfile is the database model for a provider profile
type DBProviderProfile struct {
	ID                      uint                        `gorm:"primaryKey"`
	UserID                  uint                        `gorm:"uniqueIndex;not null"`
	User                    *DBUser                     `gorm:"foreignKey:UserID"`
	BusinessName            string                      `gorm:"size:255"`
	Description             string                      `gorm:"type:text"`
	Bio                     string                      `gorm:"type:text"`
	Specialization          datatypes.JSONSlice[string] `gorm:"type:json"`
	YearsOfExperience       int
	Location                string  `gorm:"size:255"`
	Rating                  float64 `gorm:"index"`
	HourlyRate              float64
	Currency                string                      `gorm:"size:8"`
	AvailabilityStatus      string                      `gorm:"size:32"`
	AvailableDays           datatypes.JSONSlice[string] `gorm:"type:json"`
	MatricNumberVerified    bool
	BusinessNameVerified    bool
	CertificatesVerified    bool
	BioVerified             bool
	VerificationStatus      string     `gorm:"index;size:16"`
	VerificationNotes       string     `gorm:"type:text"`
	VerificationSubmittedAt *time.Time `gorm:"index"`
	VerificationReviewedAt  *time.Time
	ReviewedBy              *uint
	Version                 uint                 `gorm:"not null"`
	Documents               []DBProviderDocument `gorm:"foreignKey:ProfileID"`
	CreatedAt               time.Time            `gorm:"index"`
	UpdatedAt               time.Time
}

// TableName returns the table name for GORM
func (DBProviderProfile) TableName() string {
	return "provider_profiles"
}

// DBProviderDocument is the database model for a verification document
type DBProviderDocument struct {
	ID           uint   `gorm:"primaryKey"`
	ProfileID    uint   `gorm:"index;not null"`
	DocumentType string `gorm:"index;size:64"`
	StoragePath  string `gorm:"size:512"`
	FileName     string `gorm:"size:255"`
	SizeBytes    int64
	UploadedAt   time.Time
}

// TableName returns the table name for GORM
func (DBProviderDocument) TableName() string {
	return "provider_documents"
}

// NewProfileRepository creates a new provider profile repository
func NewProfileRepository(db *gorm.DB) domain.ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

// CreateWithOwner inserts the owning user and its profile in one transaction
func (r *ProfileRepositoryImpl) CreateWithOwner(ctx context.Context, user *domain.User, profile *domain.ProviderProfile) error {
	dbUser := userToDB(user)
	dbProfile := profileToDB(profile)
	if dbProfile.Version == 0 {
		dbProfile.Version = 1
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(dbUser).Error; err != nil {
			return err
		}
		dbProfile.UserID = dbUser.ID
		return tx.Omit(clause.Associations).Create(dbProfile).Error
	})
	if err != nil {
		return domain.Persistence("create artisan", err)
	}

	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	profile.ID = dbProfile.ID
	profile.UserID = dbUser.ID
	profile.Version = dbProfile.Version
	profile.CreatedAt = dbProfile.CreatedAt
	profile.UpdatedAt = dbProfile.UpdatedAt
	return nil
}

// FindByID implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.ProviderProfile, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByUserID implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) FindByUserID(ctx context.Context, userID uint) (*domain.ProviderProfile, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *ProfileRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*domain.ProviderProfile, error) {
	var dbProfile DBProviderProfile
	err := r.withRelations(ctx).Where(query, arg).First(&dbProfile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, domain.Persistence("find profile", err)
	}
	return profileToDomain(&dbProfile), nil
}

// ListByStatus returns profiles in the given status, most recently submitted first
func (r *ProfileRepositoryImpl) ListByStatus(ctx context.Context, status domain.VerificationStatus) ([]domain.ProviderProfile, error) {
	var rows []DBProviderProfile
	err := r.withRelations(ctx).
		Where("verification_status = ?", string(status)).
		Order("verification_submitted_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, domain.Persistence("list profiles by status", err)
	}
	return profilesToDomain(rows), nil
}

// ListApproved returns approved profiles whose four checks all passed.
// The remaining listing conditions are applied by the caller.
func (r *ProfileRepositoryImpl) ListApproved(ctx context.Context) ([]domain.ProviderProfile, error) {
	var rows []DBProviderProfile
	err := r.withRelations(ctx).
		Where("verification_status = ?", string(domain.StatusApproved)).
		Where("matric_number_verified = ? AND business_name_verified = ? AND certificates_verified = ? AND bio_verified = ?", true, true, true, true).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, domain.Persistence("list approved profiles", err)
	}
	return profilesToDomain(rows), nil
}

// UpdateDetails writes the artisan-editable fields. Verification state is untouched.
func (r *ProfileRepositoryImpl) UpdateDetails(ctx context.Context, profile *domain.ProviderProfile) error {
	res := r.db.WithContext(ctx).Model(&DBProviderProfile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"business_name":       profile.BusinessName,
			"description":         profile.Description,
			"bio":                 profile.Bio,
			"specialization":      datatypes.NewJSONSlice(nonNilStrings(profile.Specialization)),
			"years_of_experience": profile.YearsOfExperience,
			"location":            profile.Location,
			"hourly_rate":         profile.HourlyRate,
			"currency":            profile.Currency,
			"availability_status": profile.AvailabilityStatus,
			"available_days":      datatypes.NewJSONSlice(nonNilStrings(profile.AvailableDays)),
		})
	if res.Error != nil {
		return domain.Persistence("update profile", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// Resubmit moves a profile back to pending with cleared checks, guarded by version
func (r *ProfileRepositoryImpl) Resubmit(ctx context.Context, profileID, expectedVersion uint, submittedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&DBProviderProfile{}).
		Where("id = ? AND version = ?", profileID, expectedVersion).
		Updates(map[string]interface{}{
			"matric_number_verified":    false,
			"business_name_verified":    false,
			"certificates_verified":     false,
			"bio_verified":              false,
			"verification_status":       string(domain.StatusPending),
			"verification_notes":        "",
			"verification_submitted_at": submittedAt,
			"verification_reviewed_at":  nil,
			"reviewed_by":               nil,
			"version":                   gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return domain.Persistence("resubmit profile", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrConcurrentDecision
	}
	return nil
}

// CommitDecision writes the evaluated profile state and the linked user's
// active/verified flags in one transaction. The profile write only applies
// when the stored version still equals commit.ExpectedVersion.
func (r *ProfileRepositoryImpl) CommitDecision(ctx context.Context, commit domain.DecisionCommit) error {
	ev := commit.Evaluation
	reviewedAt := commit.ReviewedAt
	reviewer := commit.ReviewerID
	active := commit.UserActive()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&DBProviderProfile{}).
			Where("id = ? AND version = ?", commit.ProfileID, commit.ExpectedVersion).
			Updates(map[string]interface{}{
				"matric_number_verified":   ev.Checks.MatricNumberVerified,
				"business_name_verified":   ev.Checks.BusinessNameVerified,
				"certificates_verified":    ev.Checks.CertificatesVerified,
				"bio_verified":             ev.Checks.BioVerified,
				"verification_status":      string(ev.Status),
				"verification_notes":       ev.Notes,
				"verification_reviewed_at": &reviewedAt,
				"reviewed_by":              &reviewer,
				"version":                  gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return domain.Persistence("commit decision profile", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrConcurrentDecision
		}

		res = tx.Model(&DBUser{}).
			Where("id = ?", commit.UserID).
			Updates(map[string]interface{}{
				"is_active":   active,
				"is_verified": active,
			})
		if res.Error != nil {
			return domain.Persistence("commit decision user", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.Persistence("commit decision user", domain.ErrUserNotFound)
		}
		return nil
	})
}

// AddDocument implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) AddDocument(ctx context.Context, doc *domain.VerificationDocument) error {
	dbDoc := documentToDB(doc)
	if dbDoc.UploadedAt.IsZero() {
		dbDoc.UploadedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(dbDoc).Error; err != nil {
		return domain.Persistence("add document", err)
	}
	doc.ID = dbDoc.ID
	doc.UploadedAt = dbDoc.UploadedAt
	return nil
}

// FindDocument returns a document only when it belongs to the given profile
func (r *ProfileRepositoryImpl) FindDocument(ctx context.Context, profileID, documentID uint) (*domain.VerificationDocument, error) {
	var dbDoc DBProviderDocument
	err := r.db.WithContext(ctx).Where("id = ? AND profile_id = ?", documentID, profileID).First(&dbDoc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, domain.Persistence("find document", err)
	}
	return documentToDomain(&dbDoc), nil
}

// DeleteDocument implements domain.ProfileRepository
func (r *ProfileRepositoryImpl) DeleteDocument(ctx context.Context, documentID uint) error {
	res := r.db.WithContext(ctx).Delete(&DBProviderDocument{}, documentID)
	if res.Error != nil {
		return domain.Persistence("delete document", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Documents", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at ASC").Order("id ASC")
		})
}

func profilesToDomain(rows []DBProviderProfile) []domain.ProviderProfile {
	out := make([]domain.ProviderProfile, 0, len(rows))
	for i := range rows {
		out = append(out, *profileToDomain(&rows[i]))
	}
	return out
}

func profileToDB(p *domain.ProviderProfile) *DBProviderProfile {
	status := p.Status
	if status == "" {
		status = domain.StatusPending
	}
	return &DBProviderProfile{
		ID:                      p.ID,
		UserID:                  p.UserID,
		BusinessName:            p.BusinessName,
		Description:             p.Description,
		Bio:                     p.Bio,
		Specialization:          datatypes.NewJSONSlice(nonNilStrings(p.Specialization)),
		YearsOfExperience:       p.YearsOfExperience,
		Location:                p.Location,
		Rating:                  p.Rating,
		HourlyRate:              p.HourlyRate,
		Currency:                p.Currency,
		AvailabilityStatus:      p.AvailabilityStatus,
		AvailableDays:           datatypes.NewJSONSlice(nonNilStrings(p.AvailableDays)),
		MatricNumberVerified:    p.Checks.MatricNumberVerified,
		BusinessNameVerified:    p.Checks.BusinessNameVerified,
		CertificatesVerified:    p.Checks.CertificatesVerified,
		BioVerified:             p.Checks.BioVerified,
		VerificationStatus:      string(status),
		VerificationNotes:       p.VerificationNotes,
		VerificationSubmittedAt: p.VerificationSubmittedAt,
		VerificationReviewedAt:  p.VerificationReviewedAt,
		ReviewedBy:              p.ReviewedBy,
		Version:                 p.Version,
	}
}

func profileToDomain(row *DBProviderProfile) *domain.ProviderProfile {
	p := &domain.ProviderProfile{
		ID:                 row.ID,
		UserID:             row.UserID,
		BusinessName:       row.BusinessName,
		Description:        row.Description,
		Bio:                row.Bio,
		Specialization:     nonNilStrings(row.Specialization),
		YearsOfExperience:  row.YearsOfExperience,
		Location:           row.Location,
		Rating:             row.Rating,
		HourlyRate:         row.HourlyRate,
		Currency:           row.Currency,
		AvailabilityStatus: row.AvailabilityStatus,
		AvailableDays:      nonNilStrings(row.AvailableDays),
		Checks: domain.VerificationChecks{
			MatricNumberVerified: row.MatricNumberVerified,
			BusinessNameVerified: row.BusinessNameVerified,
			CertificatesVerified: row.CertificatesVerified,
			BioVerified:          row.BioVerified,
		},
		Status:                  domain.VerificationStatus(row.VerificationStatus),
		VerificationNotes:       row.VerificationNotes,
		VerificationSubmittedAt: row.VerificationSubmittedAt,
		VerificationReviewedAt:  row.VerificationReviewedAt,
		ReviewedBy:              row.ReviewedBy,
		Version:                 row.Version,
		Documents:               make([]domain.VerificationDocument, 0, len(row.Documents)),
		CreatedAt:               row.CreatedAt,
		UpdatedAt:               row.UpdatedAt,
	}
	if row.User != nil {
		p.User = userToDomain(row.User)
	}
	for i := range row.Documents {
		p.Documents = append(p.Documents, *documentToDomain(&row.Documents[i]))
	}
	return p
}

func documentToDB(d *domain.VerificationDocument) *DBProviderDocument {
	return &DBProviderDocument{
		ID:           d.ID,
		ProfileID:    d.ProfileID,
		DocumentType: d.DocumentType,
		StoragePath:  d.StoragePath,
		FileName:     d.FileName,
		SizeBytes:    d.SizeBytes,
		UploadedAt:   d.UploadedAt,
	}
}

func documentToDomain(d *DBProviderDocument) *domain.VerificationDocument {
	return &domain.VerificationDocument{
		ID:           d.ID,
		ProfileID:    d.ProfileID,
		DocumentType: d.DocumentType,
		StoragePath:  d.StoragePath,
		FileName:     d.FileName,
		SizeBytes:    d.SizeBytes,
		UploadedAt:   d.UploadedAt,
	}
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
