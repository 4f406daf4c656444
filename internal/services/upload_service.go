package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

// sniffLength is how much of an image is read to detect its real type
const sniffLength = 3072

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// UploadPolicy bounds what may be uploaded
type UploadPolicy struct {
	MaxBytes     int64
	AllowedTypes []string
}

// UploadServiceImpl implements domain.UploadService
type UploadServiceImpl struct {
	store   domain.DocumentStore
	policy  UploadPolicy
	allowed map[string]bool
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewUploadService creates an upload service over the given store
func NewUploadService(store domain.DocumentStore, policy UploadPolicy, log logrus.FieldLogger) *UploadServiceImpl {
	allowed := make(map[string]bool, len(policy.AllowedTypes))
	for _, t := range policy.AllowedTypes {
		allowed[strings.ToLower(strings.TrimSpace(t))] = true
	}
	return &UploadServiceImpl{
		store:   store,
		policy:  policy,
		allowed: allowed,
		log:     log.WithField("component", "upload_service"),
		now:     time.Now,
	}
}

// Upload validates and stores a file under the actor's prefix
func (s *UploadServiceImpl) Upload(ctx context.Context, actor domain.Actor, file domain.FileUpload) (*domain.StoredFile, error) {
	if actor.UserID == 0 {
		return nil, domain.ErrUnauthorized
	}
	if file.Size <= 0 || file.Content == nil {
		return nil, domain.ErrEmptyFile
	}
	if file.Size > s.policy.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", domain.ErrFileTooLarge, file.Size, s.policy.MaxBytes)
	}

	contentType := baseMediaType(file.ContentType)
	if !s.allowed[contentType] {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, file.ContentType)
	}

	content := io.Reader(file.Content)
	if strings.HasPrefix(contentType, "image/") {
		head := make([]byte, sniffLength)
		n, err := io.ReadFull(file.Content, head)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("read upload: %w", err)
		}
		head = head[:n]
		detected := mimetype.Detect(head).String()
		if !strings.HasPrefix(detected, "image/") || !s.allowed[baseMediaType(detected)] {
			return nil, fmt.Errorf("%w: content is %s", domain.ErrUnsupportedFileType, detected)
		}
		content = io.MultiReader(bytes.NewReader(head), file.Content)
	}

	storagePath := fmt.Sprintf("%s/%d_%s", actor.IDString(), s.now().UnixNano(), SanitizeFileName(file.FileName))
	stored, err := s.store.Put(ctx, storagePath, contentType, io.LimitReader(content, file.Size), file.Size)
	if err != nil {
		return nil, persistenceError("store upload", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id": actor.UserID,
		"path":    stored.Path,
		"size":    file.Size,
	}).Info("file uploaded")
	return stored, nil
}

// Delete removes a file, only from the actor's own prefix
func (s *UploadServiceImpl) Delete(ctx context.Context, actor domain.Actor, fileName string) error {
	if actor.UserID == 0 {
		return domain.ErrUnauthorized
	}
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return fmt.Errorf("%w: fileName is required", domain.ErrInvalidInput)
	}
	if !OwnsStoragePath(actor.UserID, fileName) {
		return domain.ErrForbidden
	}
	if err := s.store.Delete(ctx, fileName); err != nil {
		return persistenceError("delete upload", err)
	}
	s.log.WithFields(logrus.Fields{"user_id": actor.UserID, "path": fileName}).Info("file deleted")
	return nil
}

// OwnsStoragePath reports whether p lies under the user's upload prefix
func OwnsStoragePath(userID uint, p string) bool {
	prefix := domain.Actor{UserID: userID}.IDString() + "/"
	if !strings.HasPrefix(p, prefix) || len(p) == len(prefix) {
		return false
	}
	return path.Clean(p) == p && !strings.Contains(p, "..")
}

// SanitizeFileName reduces a client file name to a safe storage suffix
func SanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	name = strings.Trim(unsafeFileChars.ReplaceAllString(name, "_"), "._")
	if name == "" {
		return "file"
	}
	return name
}

func baseMediaType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}

func persistenceError(op string, err error) error {
	if domain.KindOf(err) == domain.KindPersistenceFailure {
		return err
	}
	return domain.Persistence(op, err)
}

var _ domain.UploadService = (*UploadServiceImpl)(nil)
