package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"doctor-portal/internal/converter"
	"doctor-portal/internal/delivery/dto"
	"doctor-portal/internal/domain/entity"
	"doctor-portal/internal/domain/repository"
	"doctor-portal/internal/infrastructure/storage"
	"doctor-portal/internal/service"
	"doctor-portal/pkg/validator"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrClinicNotFound = errors.New("clinic not found")
)

var (
	imageTypes    = []string{"image/jpeg", "image/png", "image/gif"}
	profileTypes  = append(append([]string{}, imageTypes...), "image/svg+xml")
	documentTypes = append(append([]string{}, imageTypes...), "application/pdf")
)

type uploadRule struct {
	category storage.UploadCategory
	label    string
	allowed  []string
	kinds    string
}

// uploadFields is the order uploads are checked and stored in
var uploadFields = []string{
	entity.ColumnProfileImage,
	entity.ColumnBMDCCertificate,
	entity.ColumnNIDCard,
	entity.ColumnDegreesCertificate,
	"hospital_logo",
	"award_certificate",
	"clinic_logo",
}

var uploadRules = map[string]uploadRule{
	entity.ColumnProfileImage:       {storage.CategoryProfileImage, "Profile image", profileTypes, "JPG, PNG, GIF and SVG"},
	entity.ColumnBMDCCertificate:    {storage.CategoryBMDCCertificate, "BMDC certificate", documentTypes, "JPG, PNG, GIF and PDF"},
	entity.ColumnNIDCard:            {storage.CategoryNIDCard, "NID card", documentTypes, "JPG, PNG, GIF and PDF"},
	entity.ColumnDegreesCertificate: {storage.CategoryDegreesCertificate, "Degrees certificate", documentTypes, "JPG, PNG, GIF and PDF"},
	"hospital_logo":                 {storage.CategoryHospitalLogo, "Hospital logo", imageTypes, "JPG, PNG and GIF"},
	"award_certificate":             {storage.CategoryAwardCertificate, "Award certificate", documentTypes, "JPG, PNG, GIF and PDF"},
	"clinic_logo":                   {storage.CategoryClinicLogo, "Clinic logo", imageTypes, "JPG, PNG and GIF"},
}

// acceptedUpload is an upload that passed its checks and is ready to store
type acceptedUpload struct {
	field string
	file  *dto.FileUpload
	rule  uploadRule
	ext   string
}

type ProfileSettingsUsecase interface {
	Save(ctx context.Context, session *entity.Session, req dto.SettingsRequest) (*dto.SaveSettingsResponse, error)
	Get(ctx context.Context, session *entity.Session) (*dto.ProfileSettingsResponse, error)
}

type profileSettingsUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	validate       *validator.CustomValidator
	accountRepo    repository.AccountRepository
	profileRepo    repository.DoctorProfileRepository
	recordRepo     repository.DoctorRecordRepository
	hoursRepo      repository.BusinessHoursRepository
	fileStore      storage.FileStore
	sessionService service.SessionService
	auditService   service.AuditService
	maxUploadSize  int64
}

func NewProfileSettingsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	validate *validator.CustomValidator,
	accountRepo repository.AccountRepository,
	profileRepo repository.DoctorProfileRepository,
	recordRepo repository.DoctorRecordRepository,
	hoursRepo repository.BusinessHoursRepository,
	fileStore storage.FileStore,
	sessionService service.SessionService,
	auditService service.AuditService,
	maxUploadSize int64,
) ProfileSettingsUsecase {
	return &profileSettingsUsecase{
		db:             db,
		log:            log,
		validate:       validate,
		accountRepo:    accountRepo,
		profileRepo:    profileRepo,
		recordRepo:     recordRepo,
		hoursRepo:      hoursRepo,
		fileStore:      fileStore,
		sessionService: sessionService,
		auditService:   auditService,
		maxUploadSize:  maxUploadSize,
	}
}

func (u *profileSettingsUsecase) Save(ctx context.Context, session *entity.Session, req dto.SettingsRequest) (*dto.SaveSettingsResponse, error) {
	if req == nil {
		return nil, dto.ErrInvalidSection
	}

	dto.ApplyDefaults(req)

	var messages []string
	if err := u.validate.Validate(req); err != nil {
		messages = append(messages, u.validate.Messages(err)...)
	}
	uploads, uploadMessages := u.checkUploads(req)
	messages = append(messages, uploadMessages...)
	if len(messages) > 0 {
		return nil, newValidationError(messages...)
	}

	doctorID := session.AccountID
	if r, ok := req.(*dto.SaveBusinessHoursRequest); ok && r.ClinicID != nil && *r.ClinicID > 0 {
		belongs, err := u.recordRepo.ClinicBelongsTo(u.db.WithContext(ctx), *r.ClinicID, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find clinic: %+v", err)
			return nil, err
		}
		if !belongs {
			return nil, ErrClinicNotFound
		}
	}

	paths, err := u.storeUploads(ctx, doctorID, uploads)
	if err != nil {
		return nil, err
	}

	switch r := req.(type) {
	case *dto.SaveAllRequest:
		err = u.saveAll(ctx, doctorID, r, paths)
	case *dto.SaveBasicRequest:
		err = u.saveBasic(ctx, doctorID, r, paths)
	case *dto.AddExperienceRequest:
		err = u.addExperience(ctx, doctorID, r, paths)
	case *dto.AddEducationRequest:
		err = u.addEducation(ctx, doctorID, r)
	case *dto.AddAwardRequest:
		err = u.addAward(ctx, doctorID, r, paths)
	case *dto.AddInsuranceRequest:
		err = u.addInsurance(ctx, doctorID, r)
	case *dto.AddClinicRequest:
		err = u.addClinic(ctx, doctorID, r, paths)
	case *dto.SaveBusinessHoursRequest:
		err = u.saveBusinessHours(ctx, doctorID, r)
	default:
		err = dto.ErrInvalidSection
	}
	if err != nil {
		u.discardUploads(ctx, paths)
		return nil, err
	}

	u.syncSessionName(ctx, session, req)
	u.recordAudit(ctx, session, req, paths)

	return &dto.SaveSettingsResponse{
		Section:      req.Section(),
		ProfileImage: paths[entity.ColumnProfileImage],
	}, nil
}

// checkUploads validates every attached file before anything is written
func (u *profileSettingsUsecase) checkUploads(req dto.SettingsRequest) ([]acceptedUpload, []string) {
	slots := dto.UploadSlots(req)

	var accepted []acceptedUpload
	var messages []string
	for _, field := range uploadFields {
		slot, ok := slots[field]
		if !ok || *slot == nil {
			continue
		}
		file := *slot
		rule := uploadRules[field]

		if file.Size > u.maxUploadSize || int64(len(file.Content)) > u.maxUploadSize {
			messages = append(messages, fmt.Sprintf("%s is too large. Maximum size is %dMB.", rule.label, u.maxUploadSize/(1024*1024)))
			continue
		}

		detected := mimetype.Detect(file.Content)
		if !isAllowedType(detected, rule.allowed) {
			messages = append(messages, fmt.Sprintf("%s has an invalid file type. Only %s are allowed.", rule.label, rule.kinds))
			continue
		}

		ext := detected.Extension()
		if ext == "" {
			ext = file.Ext()
		}
		accepted = append(accepted, acceptedUpload{field: field, file: file, rule: rule, ext: ext})
	}
	return accepted, messages
}

func isAllowedType(detected *mimetype.MIME, allowed []string) bool {
	for _, mime := range allowed {
		if detected.Is(mime) {
			return true
		}
	}
	return false
}

// storeUploads writes accepted files; on failure nothing stored by this call is left behind
func (u *profileSettingsUsecase) storeUploads(ctx context.Context, doctorID int64, uploads []acceptedUpload) (map[string]string, error) {
	paths := make(map[string]string, len(uploads))
	for _, upload := range uploads {
		path, err := u.fileStore.Store(ctx, upload.rule.category, doctorID, upload.ext, upload.file.Content)
		if err != nil {
			u.log.Warnf("Failed to store %s: %+v", upload.field, err)
			u.discardUploads(ctx, paths)
			return nil, err
		}
		paths[upload.field] = path
	}
	return paths, nil
}

func (u *profileSettingsUsecase) discardUploads(ctx context.Context, paths map[string]string) {
	for field, path := range paths {
		if err := u.fileStore.Remove(ctx, path); err != nil {
			u.log.Warnf("Failed to remove orphaned %s %s: %+v", field, path, err)
		}
	}
}

func (u *profileSettingsUsecase) saveAll(ctx context.Context, doctorID int64, req *dto.SaveAllRequest, paths map[string]string) error {
	identity := map[string]interface{}{}
	if req.Name != nil {
		identity["name"] = *req.Name
	}
	if req.Phone != nil {
		identity[repository.ColumnPhone] = *req.Phone
	}
	if req.BMDCNo != nil {
		identity[repository.ColumnBMDCNo] = *req.BMDCNo
	}

	profile := &entity.DoctorProfile{DoctorID: doctorID}
	var columns []string
	if req.Bio != nil {
		profile.Bio = *req.Bio
		columns = append(columns, "bio")
	}
	// The full form has a single department field that also serves as the specialty
	if req.Department != nil {
		profile.Specialty = *req.Department
		profile.Department = *req.Department
		columns = append(columns, "specialty", "department")
	}
	if req.ConsultationFee != nil {
		profile.ConsultationFee = dto.Decimal(req.ConsultationFee)
		columns = append(columns, "consultation_fee")
	}
	if req.ExperienceYears != nil {
		profile.ExperienceYears = *req.ExperienceYears
		columns = append(columns, "experience_years")
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
		columns = append(columns, "gender")
	}
	if req.AccountNumber != nil {
		profile.AccountNumber = *req.AccountNumber
		columns = append(columns, "account_number")
	}
	if req.Degrees != nil {
		profile.Degrees = *req.Degrees
		columns = append(columns, "degrees")
	}
	if req.CurrentlyWorking != nil {
		profile.CurrentlyWorking = *req.CurrentlyWorking
		columns = append(columns, "currently_working")
	}
	if req.PresentAddress != nil {
		profile.PresentAddress = *req.PresentAddress
		columns = append(columns, "present_address")
	}
	columns = append(columns, applyProfileFiles(profile, paths)...)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.updateIdentity(tx, doctorID, identity); err != nil {
		return err
	}

	if err := u.profileRepo.Upsert(tx, profile, columns); err != nil {
		u.log.Warnf("Failed to upsert doctor profile: %+v", err)
		return err
	}

	for _, day := range req.Hours {
		hour := &entity.DoctorBusinessHour{
			DoctorID:    doctorID,
			ClinicID:    entity.UnscopedClinicID,
			DayOfWeek:   day.Day,
			StartTime:   day.Start,
			EndTime:     day.End,
			IsAvailable: day.Available,
		}
		if err := u.hoursRepo.Upsert(tx, hour); err != nil {
			u.log.Warnf("Failed to upsert business hours for %s: %+v", day.Day, err)
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *profileSettingsUsecase) saveBasic(ctx context.Context, doctorID int64, req *dto.SaveBasicRequest, paths map[string]string) error {
	identity := map[string]interface{}{}
	if req.DisplayName != nil {
		identity["name"] = *req.DisplayName
	}

	profile := &entity.DoctorProfile{DoctorID: doctorID}
	var columns []string
	if req.Bio != nil {
		profile.Bio = *req.Bio
		columns = append(columns, "bio")
	}
	if req.Speciality != nil {
		profile.Specialty = *req.Speciality
		columns = append(columns, "specialty")
	}
	if req.Languages != nil {
		profile.LanguagesSpoken = *req.Languages
		columns = append(columns, "languages_spoken")
	}
	if req.ConsultationFee != nil {
		profile.ConsultationFee = dto.Decimal(req.ConsultationFee)
		columns = append(columns, "consultation_fee")
	}
	if req.Experience != nil {
		profile.ExperienceYears = *req.Experience
		columns = append(columns, "experience_years")
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
		columns = append(columns, "gender")
	}
	columns = append(columns, applyProfileFiles(profile, paths)...)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.profileRepo.Upsert(tx, profile, columns); err != nil {
		u.log.Warnf("Failed to upsert doctor profile: %+v", err)
		return err
	}

	if err := u.updateIdentity(tx, doctorID, identity); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// applyProfileFiles copies freshly stored file paths onto the profile and
// returns the columns they fill
func applyProfileFiles(profile *entity.DoctorProfile, paths map[string]string) []string {
	var columns []string
	if path, ok := paths[entity.ColumnProfileImage]; ok {
		profile.ProfileImage = path
		columns = append(columns, entity.ColumnProfileImage)
	}
	if path, ok := paths[entity.ColumnBMDCCertificate]; ok {
		profile.BMDCCertificate = path
		columns = append(columns, entity.ColumnBMDCCertificate)
	}
	if path, ok := paths[entity.ColumnNIDCard]; ok {
		profile.NIDCard = path
		columns = append(columns, entity.ColumnNIDCard)
	}
	if path, ok := paths[entity.ColumnDegreesCertificate]; ok {
		profile.DegreesCertificate = path
		columns = append(columns, entity.ColumnDegreesCertificate)
	}
	return columns
}

func (u *profileSettingsUsecase) updateIdentity(tx *gorm.DB, doctorID int64, identity map[string]interface{}) error {
	if len(identity) == 0 {
		return nil
	}
	if err := u.accountRepo.UpdateDoctorIdentity(tx, doctorID, identity); err != nil {
		if conflict := conflictFromConstraint(err); conflict != nil {
			return conflict
		}
		u.log.Warnf("Failed to update doctor: %+v", err)
		return err
	}
	return nil
}

func (u *profileSettingsUsecase) addExperience(ctx context.Context, doctorID int64, req *dto.AddExperienceRequest, paths map[string]string) error {
	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		return newValidationError("Start date must be a valid date (YYYY-MM-DD)")
	}
	endDate, err := dto.ParseDate(req.EndDate)
	if err != nil {
		return newValidationError("End date must be a valid date (YYYY-MM-DD)")
	}

	record := &entity.DoctorExperience{
		DoctorID:          doctorID,
		Title:             req.Title,
		HospitalName:      req.HospitalName,
		YearsOfExperience: req.YearsOfExperience,
		Location:          req.Location,
		EmploymentType:    req.EmploymentType,
		JobDescription:    req.JobDescription,
		StartDate:         startDate,
		EndDate:           endDate,
		CurrentlyWorking:  req.CurrentlyWorking,
		HospitalLogo:      paths["hospital_logo"],
	}
	if err := u.recordRepo.CreateExperience(u.db.WithContext(ctx), record); err != nil {
		u.log.Warnf("Failed to create experience: %+v", err)
		return err
	}
	return nil
}

func (u *profileSettingsUsecase) addEducation(ctx context.Context, doctorID int64, req *dto.AddEducationRequest) error {
	record := &entity.DoctorEducation{
		DoctorID:         doctorID,
		Degree:           req.Degree,
		Institution:      req.Institution,
		YearOfCompletion: req.YearOfCompletion,
		Grade:            req.Grade,
		Description:      req.Description,
	}
	if err := u.recordRepo.CreateEducation(u.db.WithContext(ctx), record); err != nil {
		u.log.Warnf("Failed to create education: %+v", err)
		return err
	}
	return nil
}

func (u *profileSettingsUsecase) addAward(ctx context.Context, doctorID int64, req *dto.AddAwardRequest, paths map[string]string) error {
	record := &entity.DoctorAward{
		DoctorID:         doctorID,
		AwardName:        req.AwardName,
		AwardYear:        req.AwardYear,
		AwardedBy:        req.AwardedBy,
		Description:      req.Description,
		AwardCertificate: paths["award_certificate"],
	}
	if err := u.recordRepo.CreateAward(u.db.WithContext(ctx), record); err != nil {
		u.log.Warnf("Failed to create award: %+v", err)
		return err
	}
	return nil
}

func (u *profileSettingsUsecase) addInsurance(ctx context.Context, doctorID int64, req *dto.AddInsuranceRequest) error {
	record := &entity.DoctorInsurance{
		DoctorID:          doctorID,
		InsuranceName:     req.InsuranceName,
		InsuranceProvider: req.InsuranceProvider,
		PolicyNumber:      req.PolicyNumber,
		CoverageAmount:    dto.Decimal(req.CoverageAmount),
		Description:       req.Description,
	}
	if err := u.recordRepo.CreateInsurance(u.db.WithContext(ctx), record); err != nil {
		u.log.Warnf("Failed to create insurance: %+v", err)
		return err
	}
	return nil
}

func (u *profileSettingsUsecase) addClinic(ctx context.Context, doctorID int64, req *dto.AddClinicRequest, paths map[string]string) error {
	record := &entity.DoctorClinic{
		DoctorID:        doctorID,
		ClinicName:      req.ClinicName,
		Address:         req.Address,
		City:            req.City,
		State:           req.State,
		ZipCode:         req.ZipCode,
		Phone:           req.Phone,
		Email:           req.Email,
		Website:         req.Website,
		ConsultationFee: dto.Decimal(req.ConsultationFee),
		ClinicLogo:      paths["clinic_logo"],
	}
	if err := u.recordRepo.CreateClinic(u.db.WithContext(ctx), record); err != nil {
		u.log.Warnf("Failed to create clinic: %+v", err)
		return err
	}
	return nil
}

func (u *profileSettingsUsecase) saveBusinessHours(ctx context.Context, doctorID int64, req *dto.SaveBusinessHoursRequest) error {
	// Without a clinic there is nothing to scope the hours to
	if req.ClinicID == nil || *req.ClinicID <= 0 {
		return nil
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	for _, day := range req.Hours {
		if !day.Available && day.Start == nil {
			continue
		}
		hour := &entity.DoctorBusinessHour{
			DoctorID:    doctorID,
			ClinicID:    *req.ClinicID,
			DayOfWeek:   day.Day,
			StartTime:   day.Start,
			EndTime:     day.End,
			IsAvailable: day.Available,
		}
		if err := u.hoursRepo.Upsert(tx, hour); err != nil {
			u.log.Warnf("Failed to upsert business hours for %s: %+v", day.Day, err)
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *profileSettingsUsecase) syncSessionName(ctx context.Context, session *entity.Session, req dto.SettingsRequest) {
	var name *string
	switch r := req.(type) {
	case *dto.SaveAllRequest:
		name = r.Name
	case *dto.SaveBasicRequest:
		name = r.DisplayName
	}
	if name == nil {
		return
	}
	if err := u.sessionService.Rename(ctx, session, *name); err != nil {
		u.log.Warnf("Failed to sync session name: %+v", err)
	}
}

func (u *profileSettingsUsecase) recordAudit(ctx context.Context, session *entity.Session, req dto.SettingsRequest, paths map[string]string) {
	action := entity.AuditActionRecordCreate
	switch req.(type) {
	case *dto.SaveAllRequest, *dto.SaveBasicRequest:
		action = entity.AuditActionProfileUpdate
	case *dto.SaveBusinessHoursRequest:
		action = entity.AuditActionHoursUpdate
	}

	u.auditService.Record(ctx, entity.AuditEvent{
		Action:      action,
		AccountKind: session.Kind,
		AccountID:   session.AccountID,
		Entity:      string(req.Section()),
		EntityID:    strconv.FormatInt(session.AccountID, 10),
		Metadata:    map[string]interface{}{"section": req.Section(), "files": len(paths)},
	})
}

func (u *profileSettingsUsecase) Get(ctx context.Context, session *entity.Session) (*dto.ProfileSettingsResponse, error) {
	db := u.db.WithContext(ctx)
	doctorID := session.AccountID

	doctor, err := u.accountRepo.FindDoctorByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	profile, err := u.profileRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}

	experiences, err := u.recordRepo.FindExperiences(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find experiences: %+v", err)
		return nil, err
	}
	education, err := u.recordRepo.FindEducation(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find education: %+v", err)
		return nil, err
	}
	awards, err := u.recordRepo.FindAwards(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find awards: %+v", err)
		return nil, err
	}
	insurances, err := u.recordRepo.FindInsurances(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find insurances: %+v", err)
		return nil, err
	}
	clinics, err := u.recordRepo.FindClinics(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find clinics: %+v", err)
		return nil, err
	}
	hours, err := u.hoursRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find business hours: %+v", err)
		return nil, err
	}

	return &dto.ProfileSettingsResponse{
		Doctor:        converter.DoctorToAccountResponse(doctor),
		Profile:       converter.DoctorProfileToResponse(profile),
		Experiences:   experiences,
		Education:     education,
		Awards:        awards,
		Insurances:    insurances,
		Clinics:       clinics,
		BusinessHours: converter.BusinessHoursToResponses(hours),
	}, nil
}
