package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"doctor-portal/internal/converter"
	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/domain/entity"
	"doctor-portal/internal/domain/repository"
	"doctor-portal/internal/service"
	"doctor-portal/pkg/validator"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidUserType    = errors.New("invalid user type")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrBMDCAlreadyExists  = errors.New("BMDC number already registered")
	ErrPhoneAlreadyExists = errors.New("phone number already registered")
	ErrNIDAlreadyExists   = errors.New("NID number already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotFound    = errors.New("account not found")
)

// Unknown emails are checked against this hash so a failed login costs one
// bcrypt comparison whether or not the account exists
var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

func unknownAccountHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("unknown-account-placeholder"), bcrypt.DefaultCost)
	})
	return dummyHash
}

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest, meta service.ClientMeta) (*dto.RegisterResponse, *service.IssuedSession, error)
	Login(ctx context.Context, req *dto.LoginRequest, meta service.ClientMeta) (*dto.LoginResponse, *service.IssuedSession, error)
	Logout(ctx context.Context, session *entity.Session) error
	CurrentAccount(ctx context.Context, session *entity.Session) (*dto.CurrentAccountResponse, error)
}

type authUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	validate       *validator.CustomValidator
	accountRepo    repository.AccountRepository
	sessionService service.SessionService
	auditService   service.AuditService
	compareHash    func(hash, password []byte) error
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validate *validator.CustomValidator,
	accountRepo repository.AccountRepository,
	sessionService service.SessionService,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		db:             db,
		log:            log,
		validate:       validate,
		accountRepo:    accountRepo,
		sessionService: sessionService,
		auditService:   auditService,
		compareHash:    bcrypt.CompareHashAndPassword,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest, meta service.ClientMeta) (*dto.RegisterResponse, *service.IssuedSession, error) {
	kind, ok := entity.ParseAccountKind(strings.TrimSpace(req.UserType))
	if !ok {
		return nil, nil, ErrInvalidUserType
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.BMDCNo = strings.TrimSpace(req.RegistrationNumber())
	req.NIDNumber = strings.TrimSpace(req.NIDNumber)

	if messages := u.registrationMessages(kind, req); len(messages) > 0 {
		return nil, nil, newValidationError(messages...)
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.checkUniqueness(tx, kind, req); err != nil {
		return nil, nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, nil, err
	}

	var account *entity.Account
	switch kind {
	case entity.AccountKindDoctor:
		doctor := &entity.Doctor{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			BMDCNo:   req.BMDCNo,
			Password: string(hashedPassword),
		}
		err = u.accountRepo.CreateDoctor(tx, doctor)
		account = doctor.Account()
	case entity.AccountKindHealthcare:
		provider := &entity.HealthcareProvider{
			Name:      req.Name,
			Email:     req.Email,
			NIDNumber: req.NIDNumber,
			Password:  string(hashedPassword),
		}
		err = u.accountRepo.CreateHealthcareProvider(tx, provider)
		account = provider.Account()
	default:
		patient := &entity.Patient{
			Name:     req.Name,
			Email:    req.Email,
			Password: string(hashedPassword),
		}
		err = u.accountRepo.CreatePatient(tx, patient)
		account = patient.Account()
	}
	if err != nil {
		if conflict := conflictFromConstraint(err); conflict != nil {
			return nil, nil, conflict
		}
		u.log.Warnf("Failed to create %s account: %+v", kind, err)
		return nil, nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, nil, err
	}

	u.auditService.Record(ctx, entity.AuditEvent{
		Action:      entity.AuditActionUserRegister,
		AccountKind: kind,
		AccountID:   account.ID,
		Entity:      kind.TableName(),
		EntityID:    strconv.FormatInt(account.ID, 10),
	})

	// The account exists at this point; a session failure only costs the user a login
	issued, err := u.sessionService.Issue(ctx, account, meta, false)
	if err != nil {
		u.log.Warnf("Failed to establish session after registration: %+v", err)
		issued = nil
	}

	return &dto.RegisterResponse{
		UserID:   account.ID,
		UserType: string(kind),
		Redirect: kind.HomePath(),
	}, issued, nil
}

func (u *authUsecase) registrationMessages(kind entity.AccountKind, req *dto.RegisterRequest) []string {
	var messages []string
	if err := u.validate.Validate(req); err != nil {
		messages = append(messages, u.validate.Messages(err)...)
	}

	var extra interface{}
	switch kind {
	case entity.AccountKindDoctor:
		extra = &dto.DoctorRegistration{Phone: req.Phone, BMDCNo: req.BMDCNo}
	case entity.AccountKindHealthcare:
		extra = &dto.HealthcareRegistration{NIDNumber: req.NIDNumber}
	}
	if extra != nil {
		if err := u.validate.Validate(extra); err != nil {
			messages = append(messages, u.validate.Messages(err)...)
		}
	}
	return messages
}

// checkUniqueness runs the pre-insert checks in a fixed order and stops at the first conflict
func (u *authUsecase) checkUniqueness(tx *gorm.DB, kind entity.AccountKind, req *dto.RegisterRequest) error {
	for _, other := range entity.AccountKinds {
		exists, err := u.accountRepo.Exists(tx, other, repository.ColumnEmail, req.Email)
		if err != nil {
			u.log.Warnf("Failed to check email in %s: %+v", other.TableName(), err)
			return err
		}
		if exists {
			return ErrEmailAlreadyExists
		}
	}

	type check struct {
		column string
		value  string
		err    error
	}
	var checks []check
	switch kind {
	case entity.AccountKindDoctor:
		checks = []check{
			{repository.ColumnBMDCNo, req.BMDCNo, ErrBMDCAlreadyExists},
			{repository.ColumnPhone, req.Phone, ErrPhoneAlreadyExists},
		}
	case entity.AccountKindHealthcare:
		checks = []check{
			{repository.ColumnNIDNumber, req.NIDNumber, ErrNIDAlreadyExists},
		}
	}

	for _, c := range checks {
		exists, err := u.accountRepo.Exists(tx, kind, c.column, c.value)
		if err != nil {
			u.log.Warnf("Failed to check %s: %+v", c.column, err)
			return err
		}
		if exists {
			return c.err
		}
	}
	return nil
}

// normalizeEmail lowercases so that one address maps to one account whatever its casing
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// conflictFromConstraint maps a unique violation that slipped past the pre-checks
func conflictFromConstraint(err error) error {
	switch {
	case isDuplicateKeyError(err, "email"):
		return ErrEmailAlreadyExists
	case isDuplicateKeyError(err, "bmdc_no"):
		return ErrBMDCAlreadyExists
	case isDuplicateKeyError(err, "phone"):
		return ErrPhoneAlreadyExists
	case isDuplicateKeyError(err, "nid_number"):
		return ErrNIDAlreadyExists
	}
	return nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest, meta service.ClientMeta) (*dto.LoginResponse, *service.IssuedSession, error) {
	req.Email = normalizeEmail(req.Email)
	if err := u.validate.Validate(req); err != nil {
		return nil, nil, newValidationError(u.validate.Messages(err)...)
	}

	kind := entity.AccountKindDoctor
	if userType := strings.TrimSpace(req.UserType); userType != "" {
		parsed, ok := entity.ParseAccountKind(userType)
		if !ok {
			return nil, nil, ErrInvalidUserType
		}
		kind = parsed
	}

	// Find account by email (read-only, no transaction needed)
	account, err := u.accountRepo.FindByEmail(u.db.WithContext(ctx), kind, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find account by email: %+v", err)
		return nil, nil, err
	}
	if account == nil {
		_ = u.compareHash(unknownAccountHash(), []byte(req.Password))
		return nil, nil, ErrInvalidCredentials
	}

	// Verify password
	if err := u.compareHash([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	issued, err := u.sessionService.Issue(ctx, account, meta, req.RememberMe)
	if err != nil {
		u.log.Warnf("Failed to establish session: %+v", err)
		return nil, nil, err
	}

	u.auditService.Record(ctx, entity.AuditEvent{
		Action:      entity.AuditActionUserLogin,
		AccountKind: account.Kind,
		AccountID:   account.ID,
		Metadata:    map[string]interface{}{"remember_me": req.RememberMe, "ip_address": meta.IPAddress},
	})

	return converter.AccountToLoginResponse(account), issued, nil
}

func (u *authUsecase) Logout(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return nil
	}

	if err := u.sessionService.Revoke(ctx, session); err != nil {
		u.log.Warnf("Failed to revoke session: %+v", err)
	}

	u.auditService.Record(ctx, entity.AuditEvent{
		Action:      entity.AuditActionUserLogout,
		AccountKind: session.Kind,
		AccountID:   session.AccountID,
	})
	return nil
}

func (u *authUsecase) CurrentAccount(ctx context.Context, session *entity.Session) (*dto.CurrentAccountResponse, error) {
	account, err := u.accountRepo.FindByID(u.db.WithContext(ctx), session.Kind, session.AccountID)
	if err != nil {
		u.log.Warnf("Failed to find account by ID: %+v", err)
		return nil, err
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}

	return &dto.CurrentAccountResponse{User: *converter.AccountToSummary(account)}, nil
}
