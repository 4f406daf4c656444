package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the stable, client-facing classification of a failure
type ErrorKind string

const (
	KindUnauthorized       ErrorKind = "unauthorized"
	KindForbidden          ErrorKind = "forbidden"
	KindNotFound           ErrorKind = "not_found"
	KindInvalidInput       ErrorKind = "invalid_input"
	KindConflict           ErrorKind = "conflict"
	KindPersistenceFailure ErrorKind = "persistence_failure"
	KindUploadRejected     ErrorKind = "upload_rejected"
	KindInternal           ErrorKind = "internal"
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserInactive       = errors.New("user account is inactive")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden")
)

// Verification workflow errors
var (
	ErrProfileNotFound        = errors.New("provider profile not found")
	ErrDocumentNotFound       = errors.New("verification document not found")
	ErrInvalidAction          = errors.New("action must be approve or reject")
	ErrInvalidInput           = errors.New("invalid input")
	ErrDecisionInProgress     = errors.New("another decision for this profile is in progress")
	ErrConcurrentDecision     = errors.New("profile was modified by a concurrent decision")
	ErrProfileAlreadyApproved = errors.New("profile is already approved")
	ErrPersistenceFailure     = errors.New("persistence failure")
)

// Upload errors
var (
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedFileType = errors.New("file type is not allowed")
	ErrEmptyFile           = errors.New("file is empty")
	ErrFileNotStored       = errors.New("file is not in the document store")
)

var kindTable = []struct {
	kind ErrorKind
	errs []error
}{
	{KindPersistenceFailure, []error{ErrPersistenceFailure}},
	{KindUnauthorized, []error{ErrUnauthorized, ErrInvalidCredentials, ErrTokenInvalid, ErrTokenExpired, ErrTokenMalformed, ErrSessionNotFound, ErrSessionExpired}},
	{KindForbidden, []error{ErrForbidden, ErrUserInactive}},
	{KindNotFound, []error{ErrUserNotFound, ErrProfileNotFound, ErrDocumentNotFound, ErrFileNotStored}},
	{KindInvalidInput, []error{ErrInvalidAction, ErrInvalidInput}},
	{KindConflict, []error{ErrUserAlreadyExists, ErrDecisionInProgress, ErrConcurrentDecision, ErrProfileAlreadyApproved}},
	{KindUploadRejected, []error{ErrFileTooLarge, ErrUnsupportedFileType, ErrEmptyFile}},
}

// KindOf classifies err by the sentinels found in its chain. Persistence
// failures win over anything they wrap. Errors that match nothing are KindInternal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	for _, entry := range kindTable {
		for _, target := range entry.errs {
			if errors.Is(err, target) {
				return entry.kind
			}
		}
	}
	return KindInternal
}

// Persistence wraps a storage error so that it classifies as KindPersistenceFailure
// while keeping the cause in the chain.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPersistenceFailure, err)
}
