package storage

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Unix(1700000000, 0)
}

func TestStoreWritesUnderCategoryDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewDiskFileStore(fs).WithClock(fixedClock)

	path, err := store.Store(context.Background(), CategoryProfileImage, 5, ".PNG", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "assets/img/doctors/doctor_5_1700000000.png", path)

	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), content)
}

func TestStoreNamesPerCategory(t *testing.T) {
	store := NewDiskFileStore(afero.NewMemMapFs()).WithClock(fixedClock)

	tests := []struct {
		category UploadCategory
		want     string
	}{
		{CategoryBMDCCertificate, "assets/uploads/certificates/bmdc_7_1700000000.pdf"},
		{CategoryNIDCard, "assets/uploads/documents/nid_7_1700000000.pdf"},
		{CategoryDegreesCertificate, "assets/uploads/certificates/degrees_7_1700000000.pdf"},
		{CategoryHospitalLogo, "assets/img/hospitals/hospital_7_1700000000.pdf"},
		{CategoryAwardCertificate, "assets/img/awards/award_7_1700000000.pdf"},
		{CategoryClinicLogo, "assets/img/clinics/clinic_7_1700000000.pdf"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			path, err := store.Store(context.Background(), tt.category, 7, "pdf", []byte("%PDF-"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, path)
		})
	}
}

func TestStoreRejectsUnknownCategory(t *testing.T) {
	store := NewDiskFileStore(afero.NewMemMapFs())

	_, err := store.Store(context.Background(), UploadCategory("avatar"), 1, "png", nil)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestStoreHonoursCancelledContext(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewDiskFileStore(fs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Store(ctx, CategoryProfileImage, 1, "png", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)

	exists, err := afero.DirExists(fs, "assets/img/doctors")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRemove(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewDiskFileStore(fs).WithClock(fixedClock)
	ctx := context.Background()

	path, err := store.Store(ctx, CategoryClinicLogo, 3, "gif", []byte("GIF89a"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, path))
	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.False(t, exists)

	// missing files and blank paths are not errors
	assert.NoError(t, store.Remove(ctx, path))
	assert.NoError(t, store.Remove(ctx, ""))
}
