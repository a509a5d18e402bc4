package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"doctor-portal/config"
	"doctor-portal/internal/domain/entity"
	"doctor-portal/internal/infrastructure/cache"
	"doctor-portal/internal/infrastructure/storage"
	"doctor-portal/internal/repository"
	"doctor-portal/internal/service"
	"doctor-portal/pkg/jwt"
	"doctor-portal/pkg/validator"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testMaxUploadSize = 4 * 1024 * 1024

var (
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	pdfBytes = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")
)

type fixture struct {
	db       *gorm.DB
	fs       afero.Fs
	store    *cache.MemorySessionStore
	sessions service.SessionService
	auth     AuthUsecase
	settings ProfileSettingsUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.Doctor{},
		&entity.Patient{},
		&entity.HealthcareProvider{},
		&entity.DoctorProfile{},
		&entity.DoctorExperience{},
		&entity.DoctorEducation{},
		&entity.DoctorAward{},
		&entity.DoctorInsurance{},
		&entity.DoctorClinic{},
		&entity.DoctorBusinessHour{},
		&entity.AccountSession{},
	))

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := config.SessionConfig{
		Secret:        "test-secret",
		CookieName:    "portal_session",
		ShortLifetime: time.Hour,
		LongLifetime:  24 * time.Hour,
	}
	store := cache.NewMemorySessionStore()
	sessions := service.NewSessionService(db, log, jwt.NewJWTService(cfg.Secret), store, repository.NewSessionRepository(), cfg, false)
	audit := service.NewAuditService(log)
	validate := validator.NewValidator()
	accountRepo := repository.NewAccountRepository()
	fs := afero.NewMemMapFs()

	return &fixture{
		db:       db,
		fs:       fs,
		store:    store,
		sessions: sessions,
		auth:     NewAuthUsecase(db, log, validate, accountRepo, sessions, audit),
		settings: NewProfileSettingsUsecase(
			db, log, validate,
			accountRepo,
			repository.NewDoctorProfileRepository(),
			repository.NewDoctorRecordRepository(),
			repository.NewBusinessHoursRepository(),
			storage.NewDiskFileStore(fs),
			sessions, audit,
			testMaxUploadSize,
		),
	}
}

// seedDoctor inserts doctor 5 and returns a live session for it
func (f *fixture) seedDoctor(t *testing.T) *entity.Session {
	t.Helper()

	doctor := &entity.Doctor{
		ID:       5,
		Name:     "Dr. Rahman",
		Email:    "rahman@example.com",
		Phone:    "01711000000",
		BMDCNo:   "A-12345",
		Password: "hash",
	}
	require.NoError(t, f.db.Create(doctor).Error)

	issued, err := f.sessions.Issue(context.Background(), doctor.Account(), service.ClientMeta{}, false)
	require.NoError(t, err)
	return issued.Session
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func strPtr(s string) *string { return &s }
