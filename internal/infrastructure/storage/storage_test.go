package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

type fakeUploadAPI struct {
	uploadParams  uploader.UploadParams
	destroyParams uploader.DestroyParams
	uploadResult  *uploader.UploadResult
	destroyResult *uploader.DestroyResult
	err           error
}

func (f *fakeUploadAPI) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.uploadParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.uploadResult, nil
}

func (f *fakeUploadAPI) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.destroyResult, nil
}

type fakeAssetAPI struct {
	params admin.AssetParams
	result *admin.AssetResult
	err    error
}

func (f *fakeAssetAPI) Asset(ctx context.Context, params admin.AssetParams) (*admin.AssetResult, error) {
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestCloudinaryStore_Put(t *testing.T) {
	tests := []struct {
		name             string
		path             string
		expectedID       string
		expectedResource string
	}{
		{"image drops extension", "12/1700_cert.png", "talentnest/12/1700_cert", "image"},
		{"pdf stays raw", "12/1700_cert.pdf", "talentnest/12/1700_cert.pdf", "raw"},
		{"docx stays raw", "3/1_cv.docx", "talentnest/3/1_cv.docx", "raw"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeUploadAPI{uploadResult: &uploader.UploadResult{SecureURL: "https://res.cloudinary.com/x"}}
			store := &CloudinaryStore{api: api, folder: "talentnest"}

			got, err := store.Put(context.Background(), tt.path, "application/pdf", strings.NewReader("data"), 4)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedID, api.uploadParams.PublicID)
			assert.Equal(t, tt.expectedResource, api.uploadParams.ResourceType)
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, "https://res.cloudinary.com/x", got.URL)
			assert.Equal(t, int64(4), got.SizeBytes)
		})
	}
}

func TestCloudinaryStore_PutErrors(t *testing.T) {
	store := &CloudinaryStore{api: &fakeUploadAPI{err: errors.New("network down")}}
	_, err := store.Put(context.Background(), "1/a.pdf", "application/pdf", strings.NewReader("x"), 1)
	assert.ErrorContains(t, err, "network down")

	rejected := &uploader.UploadResult{}
	rejected.Error.Message = "Invalid signature"
	store = &CloudinaryStore{api: &fakeUploadAPI{uploadResult: rejected}}
	_, err = store.Put(context.Background(), "1/a.pdf", "application/pdf", strings.NewReader("x"), 1)
	assert.ErrorContains(t, err, "Invalid signature")
}

func TestCloudinaryStore_Delete(t *testing.T) {
	tests := []struct {
		name    string
		result  string
		wantErr bool
	}{
		{"deleted", "ok", false},
		{"already gone", "not found", false},
		{"unexpected", "error", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeUploadAPI{destroyResult: &uploader.DestroyResult{Result: tt.result}}
			store := &CloudinaryStore{api: api}

			err := store.Delete(context.Background(), "5/99_photo.jpg")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, "5/99_photo", api.destroyParams.PublicID)
			assert.Equal(t, "image", api.destroyParams.ResourceType)
		})
	}
}

func TestCloudinaryStore_Stat(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		assets := &fakeAssetAPI{result: &admin.AssetResult{Bytes: 2048, SecureURL: "https://res.cloudinary.com/y"}}
		store := &CloudinaryStore{assets: assets, folder: "talentnest"}

		got, err := store.Stat(context.Background(), "7/1_cert.pdf")
		require.NoError(t, err)
		assert.Equal(t, "talentnest/7/1_cert.pdf", assets.params.PublicID)
		assert.Equal(t, "raw", string(assets.params.AssetType))
		assert.Equal(t, int64(2048), got.SizeBytes)
		assert.Equal(t, "https://res.cloudinary.com/y", got.URL)
	})

	t.Run("missing", func(t *testing.T) {
		missing := &admin.AssetResult{}
		missing.Error.Message = "Resource not found - talentnest/7/1_photo"
		store := &CloudinaryStore{assets: &fakeAssetAPI{result: missing}}

		_, err := store.Stat(context.Background(), "7/1_photo.png")
		assert.ErrorIs(t, err, domain.ErrFileNotStored)
	})

	t.Run("api failure", func(t *testing.T) {
		store := &CloudinaryStore{assets: &fakeAssetAPI{err: errors.New("timeout")}}

		_, err := store.Stat(context.Background(), "7/1_cert.pdf")
		assert.ErrorContains(t, err, "timeout")
		assert.NotErrorIs(t, err, domain.ErrFileNotStored)
	})
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	got, err := store.Put(ctx, "1/10_doc.pdf", "application/pdf", strings.NewReader("%PDF-1.4"), 8)
	require.NoError(t, err)
	assert.Equal(t, "1/10_doc.pdf", got.Path)
	assert.Equal(t, int64(8), got.SizeBytes)

	data, ok := store.Get("1/10_doc.pdf")
	require.True(t, ok)
	assert.Equal(t, "%PDF-1.4", string(data))
	assert.Equal(t, 1, store.Len())

	info, err := store.Stat(ctx, "1/10_doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(8), info.SizeBytes)
	assert.Equal(t, "application/pdf", info.ContentType)

	require.NoError(t, store.Delete(ctx, "1/10_doc.pdf"))
	require.NoError(t, store.Delete(ctx, "1/10_doc.pdf"))
	assert.Equal(t, 0, store.Len())

	_, err = store.Stat(ctx, "1/10_doc.pdf")
	assert.ErrorIs(t, err, domain.ErrFileNotStored)
}
