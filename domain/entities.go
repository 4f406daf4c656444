package domain

import (
	"strconv"
	"strings"
	"time"
)

// Role identifies what a user may do on the marketplace
type Role string

const (
	RoleStudent Role = "student"
	RoleArtisan Role = "artisan"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleArtisan, RoleAdmin:
		return true
	}
	return false
}

// VerificationStatus is the aggregate state of a provider profile review
type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusApproved VerificationStatus = "approved"
	StatusRejected VerificationStatus = "rejected"
)

// User represents a user in the system
type User struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	MatricNumber string    `json:"matric_number"`
	IsActive     bool      `json:"is_active"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Actor is the authenticated identity performing an operation.
// It is passed explicitly into every service call.
type Actor struct {
	UserID uint
	Role   Role
}

// IDString returns the actor id in the form used for storage path prefixes
func (a Actor) IDString() string {
	return strconv.FormatUint(uint64(a.UserID), 10)
}

// VerificationChecks holds the four independent verification attestations
type VerificationChecks struct {
	MatricNumberVerified bool `json:"matric_number_verified"`
	BusinessNameVerified bool `json:"business_name_verified"`
	CertificatesVerified bool `json:"certificates_verified"`
	BioVerified          bool `json:"bio_verified"`
}

// All reports whether every sub-check passed
func (c VerificationChecks) All() bool {
	return c.MatricNumberVerified && c.BusinessNameVerified && c.CertificatesVerified && c.BioVerified
}

// ProviderProfile is the marketplace profile owned by an artisan
type ProviderProfile struct {
	ID                      uint                   `json:"id"`
	UserID                  uint                   `json:"user_id"`
	BusinessName            string                 `json:"business_name"`
	Description             string                 `json:"description"`
	Bio                     string                 `json:"bio"`
	Specialization          []string               `json:"specialization"`
	YearsOfExperience       int                    `json:"years_of_experience"`
	Location                string                 `json:"location"`
	Rating                  float64                `json:"rating"`
	HourlyRate              float64                `json:"hourly_rate"`
	Currency                string                 `json:"currency"`
	AvailabilityStatus      string                 `json:"availability_status"`
	AvailableDays           []string               `json:"available_days"`
	Checks                  VerificationChecks     `json:"verification_details"`
	Status                  VerificationStatus     `json:"verification_status"`
	VerificationNotes       string                 `json:"verification_notes"`
	VerificationSubmittedAt *time.Time             `json:"verification_submitted_at,omitempty"`
	VerificationReviewedAt  *time.Time             `json:"verification_reviewed_at,omitempty"`
	ReviewedBy              *uint                  `json:"reviewed_by,omitempty"`
	Version                 uint                   `json:"version"`
	User                    *User                  `json:"user,omitempty"`
	Documents               []VerificationDocument `json:"documents"`
	CreatedAt               time.Time              `json:"created_at"`
	UpdatedAt               time.Time              `json:"updated_at"`
}

// HasDocumentType reports whether the profile carries at least one document of the given type
func (p *ProviderProfile) HasDocumentType(docType string) bool {
	for _, d := range p.Documents {
		if strings.EqualFold(strings.TrimSpace(d.DocumentType), docType) {
			return true
		}
	}
	return false
}

// VerificationDocument is evidence attached to a provider profile
type VerificationDocument struct {
	ID           uint      `json:"id"`
	ProfileID    uint      `json:"profile_id"`
	DocumentType string    `json:"document_type"`
	StoragePath  string    `json:"storage_path"`
	FileName     string    `json:"file_name"`
	SizeBytes    int64     `json:"size_bytes"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// Session represents a user session
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// StoredFile is the result of a successful Document Store upload
type StoredFile struct {
	Path        string `json:"path"`
	URL         string `json:"url,omitempty"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}
