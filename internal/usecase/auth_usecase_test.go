package usecase

import (
	"context"
	"testing"
	"time"

	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/domain/entity"
	"doctor-portal/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func doctorRegistration() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		UserType: "doctor",
		Name:     "Dr. Rahman",
		Email:    "rahman@example.com",
		Phone:    "+880 1711-000000",
		BMDCNo:   "A-12345",
		Password: "secret123",
	}
}

func TestRegisterDoctor(t *testing.T) {
	f := newFixture(t)

	result, issued, err := f.auth.Register(context.Background(), doctorRegistration(), service.ClientMeta{IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	require.NotNil(t, issued)

	assert.Equal(t, "doctor", result.UserType)
	assert.Equal(t, "/doctor/profile-settings", result.Redirect)
	assert.Equal(t, issued.Session.AccountID, result.UserID)

	var doctor entity.Doctor
	require.NoError(t, f.db.First(&doctor, result.UserID).Error)
	assert.Equal(t, "A-12345", doctor.BMDCNo)
	assert.NotEqual(t, "secret123", doctor.Password)
}

func TestRegisterAcceptsRegistrationNoAlias(t *testing.T) {
	f := newFixture(t)

	req := doctorRegistration()
	req.BMDCNo = ""
	req.RegistrationNo = "B-67890"

	result, _, err := f.auth.Register(context.Background(), req, service.ClientMeta{})
	require.NoError(t, err)

	var doctor entity.Doctor
	require.NoError(t, f.db.First(&doctor, result.UserID).Error)
	assert.Equal(t, "B-67890", doctor.BMDCNo)
}

func TestRegisterPatientAndHealthcare(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, _, err := f.auth.Register(ctx, &dto.RegisterRequest{
		UserType: "patient", Name: "Ayesha", Email: "ayesha@example.com", Password: "secret123",
	}, service.ClientMeta{})
	require.NoError(t, err)
	assert.Equal(t, "/login", result.Redirect)

	_, _, err = f.auth.Register(ctx, &dto.RegisterRequest{
		UserType: "healthcare", Name: "City Care", Email: "care@example.com", NIDNumber: "1234567890", Password: "secret123",
	}, service.ClientMeta{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.count(t, &entity.Patient{}))
	assert.Equal(t, int64(1), f.count(t, &entity.HealthcareProvider{}))
}

func TestRegisterRejectsUnknownUserType(t *testing.T) {
	f := newFixture(t)

	req := doctorRegistration()
	req.UserType = "admin"

	_, _, err := f.auth.Register(context.Background(), req, service.ClientMeta{})
	assert.ErrorIs(t, err, ErrInvalidUserType)
}

func TestRegisterCollectsValidationMessages(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.auth.Register(context.Background(), &dto.RegisterRequest{
		UserType: "doctor",
		Name:     "A",
		Email:    "not-an-email",
		Phone:    "12345",
		Password: "123",
	}, service.ClientMeta{})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{
		"Name must be at least 2 characters",
		"Email must be a valid email address",
		"Password must be at least 6 characters",
		"Phone number must be at least 10 digits",
		"BMDC number is required",
	}, validationErr.Messages)
	assert.Zero(t, f.count(t, &entity.Doctor{}))
}

func TestRegisterRejectsEmailUsedByAnotherKind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.auth.Register(ctx, &dto.RegisterRequest{
		UserType: "patient", Name: "Ayesha", Email: "rahman@example.com", Password: "secret123",
	}, service.ClientMeta{})
	require.NoError(t, err)

	_, issued, err := f.auth.Register(ctx, doctorRegistration(), service.ClientMeta{})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.Nil(t, issued)
	assert.Zero(t, f.count(t, &entity.Doctor{}))
}

func TestRegisterEmailIgnoresCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := doctorRegistration()
	req.Email = "  Rahman@Example.COM "
	_, _, err := f.auth.Register(ctx, req, service.ClientMeta{})
	require.NoError(t, err)

	var doctor entity.Doctor
	require.NoError(t, f.db.First(&doctor).Error)
	assert.Equal(t, "rahman@example.com", doctor.Email)

	_, _, err = f.auth.Register(ctx, &dto.RegisterRequest{
		UserType: "patient", Name: "Ayesha", Email: "RAHMAN@example.com", Password: "secret123",
	}, service.ClientMeta{})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.Zero(t, f.count(t, &entity.Patient{}))

	result, _, err := f.auth.Login(ctx, &dto.LoginRequest{
		Email: "Rahman@example.com", Password: "secret123",
	}, service.ClientMeta{})
	require.NoError(t, err)
	assert.Equal(t, doctor.ID, result.Doctor.ID)
}

func TestRegisterRejectsDuplicateBMDCAndPhone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.auth.Register(ctx, doctorRegistration(), service.ClientMeta{})
	require.NoError(t, err)

	sameBMDC := doctorRegistration()
	sameBMDC.Email = "other@example.com"
	sameBMDC.Phone = "01999999999"
	_, _, err = f.auth.Register(ctx, sameBMDC, service.ClientMeta{})
	assert.ErrorIs(t, err, ErrBMDCAlreadyExists)

	samePhone := doctorRegistration()
	samePhone.Email = "other@example.com"
	samePhone.BMDCNo = "Z-99999"
	_, _, err = f.auth.Register(ctx, samePhone, service.ClientMeta{})
	assert.ErrorIs(t, err, ErrPhoneAlreadyExists)

	assert.Equal(t, int64(1), f.count(t, &entity.Doctor{}))
}

func TestRegisterRejectsDuplicateNID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := func(email string) *dto.RegisterRequest {
		return &dto.RegisterRequest{
			UserType: "healthcare", Name: "City Care", Email: email, NIDNumber: "1234567890", Password: "secret123",
		}
	}

	_, _, err := f.auth.Register(ctx, req("care@example.com"), service.ClientMeta{})
	require.NoError(t, err)

	_, _, err = f.auth.Register(ctx, req("care2@example.com"), service.ClientMeta{})
	assert.ErrorIs(t, err, ErrNIDAlreadyExists)
	assert.Equal(t, int64(1), f.count(t, &entity.HealthcareProvider{}))
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.auth.Register(ctx, doctorRegistration(), service.ClientMeta{})
	require.NoError(t, err)

	result, issued, err := f.auth.Login(ctx, &dto.LoginRequest{
		Email: "rahman@example.com", Password: "secret123", RememberMe: true,
	}, service.ClientMeta{})
	require.NoError(t, err)
	require.NotNil(t, result.Doctor)
	assert.Nil(t, result.User)
	assert.Equal(t, "Dr. Rahman", result.Doctor.Name)
	assert.Equal(t, "/doctor/profile-settings", result.Redirect)
	assert.Equal(t, 24*time.Hour, issued.Lifetime)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.auth.Register(ctx, doctorRegistration(), service.ClientMeta{})
	require.NoError(t, err)

	_, _, wrongPassword := f.auth.Login(ctx, &dto.LoginRequest{Email: "rahman@example.com", Password: "wrong-password"}, service.ClientMeta{})
	_, _, unknownEmail := f.auth.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"}, service.ClientMeta{})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginComparesPasswordForUnknownEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	uc := f.auth.(*authUsecase)
	var compared [][]byte
	uc.compareHash = func(hash, password []byte) error {
		compared = append(compared, hash)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	_, _, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"}, service.ClientMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, compared, 1)

	cost, err := bcrypt.Cost(compared[0])
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestLoginAsPatient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.auth.Register(ctx, &dto.RegisterRequest{
		UserType: "patient", Name: "Ayesha", Email: "ayesha@example.com", Password: "secret123",
	}, service.ClientMeta{})
	require.NoError(t, err)

	// doctor is the default kind
	_, _, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "ayesha@example.com", Password: "secret123"}, service.ClientMeta{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	result, _, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "ayesha@example.com", Password: "secret123", UserType: "patient"}, service.ClientMeta{})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, "patient", result.User.UserType)
}

func TestLogoutAndCurrentAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := f.seedDoctor(t)

	current, err := f.auth.CurrentAccount(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "rahman@example.com", current.User.Email)

	require.NoError(t, f.auth.Logout(ctx, session))
	require.NoError(t, f.auth.Logout(ctx, nil))
	assert.Zero(t, f.store.Len())

	_, err = f.auth.CurrentAccount(ctx, &entity.Session{AccountID: 99, Kind: entity.AccountKindDoctor})
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
