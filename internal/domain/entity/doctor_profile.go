package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultProfileImage is shown for doctors who never uploaded a picture
const DefaultProfileImage = "assets/img/doctors-dashboard/doctor-profile-img.jpg"

// DoctorProfile represents doctor-specific profile data, at most one row per doctor
type DoctorProfile struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID           int64           `gorm:"uniqueIndex:uq_doctor_profiles_doctor_id;not null" json:"doctor_id"`
	Bio                string          `gorm:"type:text;not null;default:''" json:"bio"`
	Specialty          string          `gorm:"type:varchar(255);not null;default:''" json:"specialty"`
	Department         string          `gorm:"type:varchar(255);not null;default:''" json:"department"`
	LanguagesSpoken    string          `gorm:"type:varchar(255);not null;default:''" json:"languages_spoken"`
	ConsultationFee    decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"consultation_fee"`
	ExperienceYears    int             `gorm:"not null;default:0" json:"experience_years"`
	ProfileImage       string          `gorm:"type:varchar(255);not null;default:''" json:"profile_image"`
	Gender             string          `gorm:"type:varchar(20);not null;default:''" json:"gender"`
	AccountNumber      string          `gorm:"type:varchar(100);not null;default:''" json:"account_number"`
	Degrees            string          `gorm:"type:varchar(255);not null;default:''" json:"degrees"`
	CurrentlyWorking   string          `gorm:"type:varchar(255);not null;default:''" json:"currently_working"`
	PresentAddress     string          `gorm:"type:text;not null;default:''" json:"present_address"`
	BMDCCertificate    string          `gorm:"column:bmdc_certificate;type:varchar(255);not null;default:''" json:"bmdc_certificate"`
	NIDCard            string          `gorm:"column:nid_card;type:varchar(255);not null;default:''" json:"nid_card"`
	DegreesCertificate string          `gorm:"type:varchar(255);not null;default:''" json:"degrees_certificate"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// Profile columns whose stored value survives a save that carries no new file
const (
	ColumnProfileImage       = "profile_image"
	ColumnBMDCCertificate    = "bmdc_certificate"
	ColumnNIDCard            = "nid_card"
	ColumnDegreesCertificate = "degrees_certificate"
)
