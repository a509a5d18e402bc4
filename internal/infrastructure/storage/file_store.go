package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// UploadCategory decides where an uploaded file lands and how it is named
type UploadCategory string

const (
	CategoryProfileImage       UploadCategory = "profile_image"
	CategoryBMDCCertificate    UploadCategory = "bmdc_certificate"
	CategoryNIDCard            UploadCategory = "nid_card"
	CategoryDegreesCertificate UploadCategory = "degrees_certificate"
	CategoryHospitalLogo       UploadCategory = "hospital_logo"
	CategoryAwardCertificate   UploadCategory = "award_certificate"
	CategoryClinicLogo         UploadCategory = "clinic_logo"
)

type location struct {
	dir    string
	prefix string
}

var locations = map[UploadCategory]location{
	CategoryProfileImage:       {dir: "assets/img/doctors", prefix: "doctor"},
	CategoryBMDCCertificate:    {dir: "assets/uploads/certificates", prefix: "bmdc"},
	CategoryNIDCard:            {dir: "assets/uploads/documents", prefix: "nid"},
	CategoryDegreesCertificate: {dir: "assets/uploads/certificates", prefix: "degrees"},
	CategoryHospitalLogo:       {dir: "assets/img/hospitals", prefix: "hospital"},
	CategoryAwardCertificate:   {dir: "assets/img/awards", prefix: "award"},
	CategoryClinicLogo:         {dir: "assets/img/clinics", prefix: "clinic"},
}

var ErrUnknownCategory = errors.New("unknown upload category")

// FileStore persists uploads and hands back the relative path stored in the database
type FileStore interface {
	Store(ctx context.Context, category UploadCategory, ownerID int64, ext string, content []byte) (string, error)
	Remove(ctx context.Context, relPath string) error
}

type DiskFileStore struct {
	fs  afero.Fs
	now func() time.Time
}

// NewDiskFileStore stores files on fs, which is expected to be rooted at the public upload directory
func NewDiskFileStore(fs afero.Fs) *DiskFileStore {
	return &DiskFileStore{fs: fs, now: time.Now}
}

// WithClock replaces the clock used for file names
func (s *DiskFileStore) WithClock(now func() time.Time) *DiskFileStore {
	s.now = now
	return s
}

func (s *DiskFileStore) Store(ctx context.Context, category UploadCategory, ownerID int64, ext string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	loc, ok := locations[category]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	if err := s.fs.MkdirAll(loc.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	name := fmt.Sprintf("%s_%d_%d.%s", loc.prefix, ownerID, s.now().Unix(), ext)
	relPath := path.Join(loc.dir, name)

	if err := afero.WriteFile(s.fs, relPath, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return relPath, nil
}

func (s *DiskFileStore) Remove(ctx context.Context, relPath string) error {
	if relPath == "" {
		return nil
	}
	err := s.fs.Remove(relPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
