package domain

import (
	"context"
	"io"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context) error
}

// ProfileRepository defines provider profile and document data access.
// Profiles returned by the Find/List methods carry their owning user and documents.
type ProfileRepository interface {
	CreateWithOwner(ctx context.Context, user *User, profile *ProviderProfile) error
	FindByID(ctx context.Context, id uint) (*ProviderProfile, error)
	FindByUserID(ctx context.Context, userID uint) (*ProviderProfile, error)
	ListByStatus(ctx context.Context, status VerificationStatus) ([]ProviderProfile, error)
	ListApproved(ctx context.Context) ([]ProviderProfile, error)
	UpdateDetails(ctx context.Context, profile *ProviderProfile) error
	Resubmit(ctx context.Context, profileID, expectedVersion uint, submittedAt time.Time) error
	CommitDecision(ctx context.Context, commit DecisionCommit) error
	AddDocument(ctx context.Context, doc *VerificationDocument) error
	FindDocument(ctx context.Context, profileID, documentID uint) (*VerificationDocument, error)
	DeleteDocument(ctx context.Context, documentID uint) error
}

// DocumentStore is durable key-addressable blob storage
type DocumentStore interface {
	Put(ctx context.Context, path, contentType string, content io.Reader, size int64) (*StoredFile, error)
	Delete(ctx context.Context, path string) error
	// Stat describes a stored file, or returns ErrFileNotStored
	Stat(ctx context.Context, path string) (*StoredFile, error)
}

// ProfileLocker serialises work on a single key across processes.
// Acquire fails with ErrDecisionInProgress when the key is already held.
type ProfileLocker interface {
	Acquire(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// EventPublisher publishes domain events to interested consumers
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload interface{}) error
}

// NotificationService defines notification operations
type NotificationService interface {
	SendSMS(to, message string) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uint, role string, sessionID string) (string, error)
	GenerateRefreshToken(userID uint, role string, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
}

// RegistrationRequest carries the fields a new student or artisan signs up with
type RegistrationRequest struct {
	Email        string
	Password     string
	FullName     string
	Phone        string
	MatricNumber string
	Role         Role
	BusinessName string
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, req RegistrationRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// VerificationService is the administrative verification workflow
type VerificationService interface {
	ListPending(ctx context.Context, actor Actor) ([]ProviderProfile, error)
	Decide(ctx context.Context, actor Actor, req DecisionRequest) (*ProviderProfile, error)
}

// ListingService serves the public marketplace listing
type ListingService interface {
	ListVerified(ctx context.Context, query ListingQuery) ([]ArtisanListing, error)
}

// FileUpload is a file received from a client
type FileUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadService stores and removes evidence files
type UploadService interface {
	Upload(ctx context.Context, actor Actor, file FileUpload) (*StoredFile, error)
	Delete(ctx context.Context, actor Actor, fileName string) error
}

// ProfileUpdate holds the artisan-editable profile fields
type ProfileUpdate struct {
	BusinessName       string
	Description        string
	Bio                string
	Specialization     []string
	YearsOfExperience  int
	Location           string
	HourlyRate         float64
	Currency           string
	AvailabilityStatus string
	AvailableDays      []string
}

// DocumentAttachment links an uploaded file to a provider profile
type DocumentAttachment struct {
	DocumentType string
	StoragePath  string
	FileName     string
}

// ProfileService lets artisans (or admins on their behalf) manage a provider profile
type ProfileService interface {
	GetProfile(ctx context.Context, actor Actor, userID uint) (*ProviderProfile, error)
	UpdateProfile(ctx context.Context, actor Actor, userID uint, update ProfileUpdate) (*ProviderProfile, error)
	Resubmit(ctx context.Context, actor Actor, userID uint) (*ProviderProfile, error)
	AttachDocument(ctx context.Context, actor Actor, userID uint, doc DocumentAttachment) (*VerificationDocument, error)
	RemoveDocument(ctx context.Context, actor Actor, userID, documentID uint) error
}
