package dto

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"doctor-portal/internal/domain/entity"

	"github.com/shopspring/decimal"
)

var ErrInvalidSection = errors.New("invalid section specified")

type Section string

const (
	SectionAll           Section = "all"
	SectionBasic         Section = "basic"
	SectionExperience    Section = "experience"
	SectionEducation     Section = "education"
	SectionAwards        Section = "awards"
	SectionInsurance     Section = "insurance"
	SectionClinics       Section = "clinics"
	SectionBusinessHours Section = "business_hours"
)

// SettingsRequest is one of the request types below. The set is closed: only
// this package can add a variant.
type SettingsRequest interface {
	Section() Section
	settingsRequest()
}

// NewSettingsRequest returns an empty request for the section, ready to be decoded into
func NewSettingsRequest(section string) (SettingsRequest, error) {
	switch Section(section) {
	case SectionAll:
		return &SaveAllRequest{}, nil
	case SectionBasic:
		return &SaveBasicRequest{}, nil
	case SectionExperience:
		return &AddExperienceRequest{}, nil
	case SectionEducation:
		return &AddEducationRequest{}, nil
	case SectionAwards:
		return &AddAwardRequest{}, nil
	case SectionInsurance:
		return &AddInsuranceRequest{}, nil
	case SectionClinics:
		return &AddClinicRequest{}, nil
	case SectionBusinessHours:
		return &SaveBusinessHoursRequest{}, nil
	}
	return nil, ErrInvalidSection
}

// FileUpload is an uploaded file read fully into memory
type FileUpload struct {
	FileName string
	Size     int64
	Content  []byte
}

// Ext returns the lower-case extension of the client file name without the dot
func (f *FileUpload) Ext() string {
	idx := strings.LastIndex(f.FileName, ".")
	if idx < 0 || idx == len(f.FileName)-1 {
		return ""
	}
	return strings.ToLower(f.FileName[idx+1:])
}

// DayHours is one weekday row of the business-hours grid
type DayHours struct {
	Day       string
	Start     *string `label:"Start time" validate:"omitempty,clocktime"`
	End       *string `label:"End time" validate:"omitempty,clocktime"`
	Available bool
}

// SaveAllRequest is the complete settings form
type SaveAllRequest struct {
	Name             *string  `schema:"name" label:"Name" validate:"omitempty,min=2,max=255"`
	Phone            *string  `schema:"phone" label:"Phone number" validate:"omitempty,mindigits=10,max=20"`
	BMDCNo           *string  `schema:"bmdc_no" label:"BMDC number" validate:"omitempty,min=5,max=50"`
	Gender           *string  `schema:"gender" label:"Gender" validate:"omitempty,max=20"`
	ConsultationFee  *float64 `schema:"consultation_fee" label:"Consultation fee" validate:"omitempty,gte=0"`
	AccountNumber    *string  `schema:"account_number" label:"Account number" validate:"omitempty,max=100"`
	Degrees          *string  `schema:"degrees" label:"Degrees" validate:"omitempty,max=255"`
	CurrentlyWorking *string  `schema:"currently_working" label:"Currently working" validate:"omitempty,max=255"`
	Department       *string  `schema:"department" label:"Department" validate:"omitempty,max=255"`
	PresentAddress   *string  `schema:"present_address" label:"Present address"`
	ExperienceYears  *int     `schema:"experience_years" label:"Experience years" validate:"omitempty,gte=0,lte=80"`
	Bio              *string  `schema:"bio" label:"Bio"`

	ProfileImage       *FileUpload `schema:"-"`
	BMDCCertificate    *FileUpload `schema:"-"`
	NIDCard            *FileUpload `schema:"-"`
	DegreesCertificate *FileUpload `schema:"-"`

	Hours []DayHours `schema:"-" validate:"dive"`
}

// SaveBasicRequest is the basic-information tab
type SaveBasicRequest struct {
	DisplayName     *string  `schema:"display_name" label:"Display name" validate:"omitempty,min=2,max=255"`
	Speciality      *string  `schema:"speciality" label:"Speciality" validate:"omitempty,max=255"`
	Gender          *string  `schema:"gender" label:"Gender" validate:"omitempty,max=20"`
	Experience      *int     `schema:"experience" label:"Experience" validate:"omitempty,gte=0,lte=80"`
	Bio             *string  `schema:"bio" label:"Bio"`
	Languages       *string  `schema:"languages" label:"Languages" validate:"omitempty,max=255"`
	ConsultationFee *float64 `schema:"consultation_fee" label:"Consultation fee" validate:"omitempty,gte=0"`

	ProfileImage *FileUpload `schema:"-"`
}

type AddExperienceRequest struct {
	Title             string  `schema:"title" label:"Title" validate:"required,max=255"`
	HospitalName      string  `schema:"hospital_name" label:"Hospital name" validate:"required,max=255"`
	YearsOfExperience string  `schema:"years_of_experience" label:"Years of experience" validate:"max=50"`
	Location          string  `schema:"location" label:"Location" validate:"max=255"`
	EmploymentType    string  `schema:"employment_type" label:"Employment type" validate:"max=50"`
	JobDescription    string  `schema:"job_description" label:"Job description"`
	StartDate         *string `schema:"start_date" label:"Start date" validate:"omitempty,datetime=2006-01-02"`
	EndDate           *string `schema:"end_date" label:"End date" validate:"omitempty,datetime=2006-01-02"`
	CurrentlyWorking  bool    `schema:"currently_working"`

	HospitalLogo *FileUpload `schema:"-"`
}

type AddEducationRequest struct {
	Degree           string `schema:"degree" label:"Degree" validate:"required,max=255"`
	Institution      string `schema:"institution" label:"Institution" validate:"required,max=255"`
	YearOfCompletion *int   `schema:"year_of_completion" label:"Year of completion" validate:"omitempty,gte=1900,lte=2100"`
	Grade            string `schema:"grade" label:"Grade" validate:"max=50"`
	Description      string `schema:"description" label:"Description"`
}

type AddAwardRequest struct {
	AwardName   string `schema:"award_name" label:"Award name" validate:"required,max=255"`
	AwardYear   *int   `schema:"award_year" label:"Award year" validate:"omitempty,gte=1900,lte=2100"`
	AwardedBy   string `schema:"awarded_by" label:"Awarded by" validate:"max=255"`
	Description string `schema:"description" label:"Description"`

	AwardCertificate *FileUpload `schema:"-"`
}

type AddInsuranceRequest struct {
	InsuranceName     string   `schema:"insurance_name" label:"Insurance name" validate:"required,max=255"`
	InsuranceProvider string   `schema:"insurance_provider" label:"Insurance provider" validate:"max=255"`
	PolicyNumber      string   `schema:"policy_number" label:"Policy number" validate:"max=100"`
	CoverageAmount    *float64 `schema:"coverage_amount" label:"Coverage amount" validate:"omitempty,gte=0"`
	Description       string   `schema:"description" label:"Description"`
}

type AddClinicRequest struct {
	ClinicName      string   `schema:"clinic_name" label:"Clinic name" validate:"required,max=255"`
	Address         string   `schema:"address" label:"Address"`
	City            string   `schema:"city" label:"City" validate:"max=100"`
	State           string   `schema:"state" label:"State" validate:"max=100"`
	ZipCode         string   `schema:"zip_code" label:"Zip code" validate:"max=20"`
	Phone           string   `schema:"phone" label:"Phone" validate:"max=20"`
	Email           string   `schema:"email" label:"Email" validate:"omitempty,email"`
	Website         string   `schema:"website" label:"Website" validate:"max=255"`
	ConsultationFee *float64 `schema:"consultation_fee" label:"Consultation fee" validate:"omitempty,gte=0"`

	ClinicLogo *FileUpload `schema:"-"`
}

// SaveBusinessHoursRequest sets the weekly hours of one clinic
type SaveBusinessHoursRequest struct {
	ClinicID *int64     `schema:"clinic_id" label:"Clinic"`
	Hours    []DayHours `schema:"-" validate:"dive"`
}

func (*SaveAllRequest) Section() Section           { return SectionAll }
func (*SaveBasicRequest) Section() Section         { return SectionBasic }
func (*AddExperienceRequest) Section() Section     { return SectionExperience }
func (*AddEducationRequest) Section() Section      { return SectionEducation }
func (*AddAwardRequest) Section() Section          { return SectionAwards }
func (*AddInsuranceRequest) Section() Section      { return SectionInsurance }
func (*AddClinicRequest) Section() Section         { return SectionClinics }
func (*SaveBusinessHoursRequest) Section() Section { return SectionBusinessHours }

func (*SaveAllRequest) settingsRequest()           {}
func (*SaveBasicRequest) settingsRequest()         {}
func (*AddExperienceRequest) settingsRequest()     {}
func (*AddEducationRequest) settingsRequest()      {}
func (*AddAwardRequest) settingsRequest()          {}
func (*AddInsuranceRequest) settingsRequest()      {}
func (*AddClinicRequest) settingsRequest()         {}
func (*SaveBusinessHoursRequest) settingsRequest() {}

// ApplyDefaults fills optional fields that have a non-zero default
func ApplyDefaults(req SettingsRequest) {
	if r, ok := req.(*AddExperienceRequest); ok && r.EmploymentType == "" {
		r.EmploymentType = "Full Time"
	}
}

// UploadSlots maps multipart field names to the request's file slots
func UploadSlots(req SettingsRequest) map[string]**FileUpload {
	switch r := req.(type) {
	case *SaveAllRequest:
		return map[string]**FileUpload{
			entity.ColumnProfileImage:       &r.ProfileImage,
			entity.ColumnBMDCCertificate:    &r.BMDCCertificate,
			entity.ColumnNIDCard:            &r.NIDCard,
			entity.ColumnDegreesCertificate: &r.DegreesCertificate,
		}
	case *SaveBasicRequest:
		return map[string]**FileUpload{entity.ColumnProfileImage: &r.ProfileImage}
	case *AddExperienceRequest:
		return map[string]**FileUpload{"hospital_logo": &r.HospitalLogo}
	case *AddAwardRequest:
		return map[string]**FileUpload{"award_certificate": &r.AwardCertificate}
	case *AddClinicRequest:
		return map[string]**FileUpload{"clinic_logo": &r.ClinicLogo}
	}
	return nil
}

// AttachWeeklyHours reads the {day}_start, {day}_end and {day}_available
// fields for sections that carry a business-hours grid
func AttachWeeklyHours(req SettingsRequest, form url.Values) {
	switch r := req.(type) {
	case *SaveAllRequest:
		r.Hours = ParseWeeklyHours(form)
	case *SaveBusinessHoursRequest:
		r.Hours = ParseWeeklyHours(form)
	}
}

// ParseWeeklyHours returns all seven days in order; blank times stay nil
func ParseWeeklyHours(form url.Values) []DayHours {
	hours := make([]DayHours, 0, len(entity.Weekdays))
	for _, day := range entity.Weekdays {
		key := strings.ToLower(day)
		hours = append(hours, DayHours{
			Day:       day,
			Start:     optionalValue(form, key+"_start"),
			End:       optionalValue(form, key+"_end"),
			Available: IsChecked(form, key+"_available"),
		})
	}
	return hours
}

// IsChecked treats a present checkbox as ticked unless it says otherwise
func IsChecked(form url.Values, key string) bool {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return false
	}
	return Checked(values[0])
}

func Checked(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "false", "off", "no":
		return false
	}
	return true
}

func optionalValue(form url.Values, key string) *string {
	value := strings.TrimSpace(form.Get(key))
	if value == "" {
		return nil
	}
	return &value
}

// ParseDate reads a YYYY-MM-DD form value
func ParseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Decimal converts an optional form number to a decimal, zero when absent
func Decimal(value *float64) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*value).Round(2)
}

// Response DTOs

type SaveSettingsResponse struct {
	Section      Section `json:"section"`
	ProfileImage string  `json:"profile_image"`
}

type DoctorAccountResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	BMDCNo string `json:"bmdc_no"`
}

type DoctorProfileResponse struct {
	Bio                string          `json:"bio"`
	Specialty          string          `json:"specialty"`
	Department         string          `json:"department"`
	LanguagesSpoken    string          `json:"languages_spoken"`
	ConsultationFee    decimal.Decimal `json:"consultation_fee"`
	ExperienceYears    int             `json:"experience_years"`
	ProfileImage       string          `json:"profile_image"`
	Gender             string          `json:"gender"`
	AccountNumber      string          `json:"account_number"`
	Degrees            string          `json:"degrees"`
	CurrentlyWorking   string          `json:"currently_working"`
	PresentAddress     string          `json:"present_address"`
	BMDCCertificate    string          `json:"bmdc_certificate"`
	NIDCard            string          `json:"nid_card"`
	DegreesCertificate string          `json:"degrees_certificate"`
}

type BusinessHourResponse struct {
	ClinicID    *int64  `json:"clinic_id"`
	DayOfWeek   string  `json:"day_of_week"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	IsAvailable bool    `json:"is_available"`
}

type ProfileSettingsResponse struct {
	Doctor        DoctorAccountResponse     `json:"doctor"`
	Profile       DoctorProfileResponse     `json:"profile"`
	Experiences   []entity.DoctorExperience `json:"experiences"`
	Education     []entity.DoctorEducation  `json:"education"`
	Awards        []entity.DoctorAward      `json:"awards"`
	Insurances    []entity.DoctorInsurance  `json:"insurances"`
	Clinics       []entity.DoctorClinic     `json:"clinics"`
	BusinessHours []BusinessHourResponse    `json:"business_hours"`
}
