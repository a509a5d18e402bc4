package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// The record types below are append-only: rows are inserted per submission
// and never updated or deleted by the portal.

type DoctorExperience struct {
	ID                int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID          int64      `gorm:"not null;index" json:"doctor_id"`
	Title             string     `gorm:"type:varchar(255);not null" json:"title"`
	HospitalName      string     `gorm:"type:varchar(255);not null" json:"hospital_name"`
	YearsOfExperience string     `gorm:"type:varchar(50);not null;default:''" json:"years_of_experience"`
	Location          string     `gorm:"type:varchar(255);not null;default:''" json:"location"`
	EmploymentType    string     `gorm:"type:varchar(50);not null;default:'Full Time'" json:"employment_type"`
	JobDescription    string     `gorm:"type:text;not null;default:''" json:"job_description"`
	StartDate         *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate           *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	CurrentlyWorking  bool       `gorm:"not null;default:false" json:"currently_working"`
	HospitalLogo      string     `gorm:"type:varchar(255);not null;default:''" json:"hospital_logo"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (DoctorExperience) TableName() string {
	return "doctor_experiences"
}

type DoctorEducation struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID         int64     `gorm:"not null;index" json:"doctor_id"`
	Degree           string    `gorm:"type:varchar(255);not null" json:"degree"`
	Institution      string    `gorm:"type:varchar(255);not null" json:"institution"`
	YearOfCompletion *int      `json:"year_of_completion,omitempty"`
	Grade            string    `gorm:"type:varchar(50);not null;default:''" json:"grade"`
	Description      string    `gorm:"type:text;not null;default:''" json:"description"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DoctorEducation) TableName() string {
	return "doctor_education"
}

type DoctorAward struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID         int64     `gorm:"not null;index" json:"doctor_id"`
	AwardName        string    `gorm:"type:varchar(255);not null" json:"award_name"`
	AwardYear        *int      `json:"award_year,omitempty"`
	AwardedBy        string    `gorm:"type:varchar(255);not null;default:''" json:"awarded_by"`
	Description      string    `gorm:"type:text;not null;default:''" json:"description"`
	AwardCertificate string    `gorm:"type:varchar(255);not null;default:''" json:"award_certificate"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (DoctorAward) TableName() string {
	return "doctor_awards"
}

type DoctorInsurance struct {
	ID                int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID          int64           `gorm:"not null;index" json:"doctor_id"`
	InsuranceName     string          `gorm:"type:varchar(255);not null" json:"insurance_name"`
	InsuranceProvider string          `gorm:"type:varchar(255);not null;default:''" json:"insurance_provider"`
	PolicyNumber      string          `gorm:"type:varchar(100);not null;default:''" json:"policy_number"`
	CoverageAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"coverage_amount"`
	Description       string          `gorm:"type:text;not null;default:''" json:"description"`
	CreatedAt         time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (DoctorInsurance) TableName() string {
	return "doctor_insurances"
}

type DoctorClinic struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID        int64           `gorm:"not null;index" json:"doctor_id"`
	ClinicName      string          `gorm:"type:varchar(255);not null" json:"clinic_name"`
	Address         string          `gorm:"type:text;not null;default:''" json:"address"`
	City            string          `gorm:"type:varchar(100);not null;default:''" json:"city"`
	State           string          `gorm:"type:varchar(100);not null;default:''" json:"state"`
	ZipCode         string          `gorm:"type:varchar(20);not null;default:''" json:"zip_code"`
	Phone           string          `gorm:"type:varchar(20);not null;default:''" json:"phone"`
	Email           string          `gorm:"type:varchar(255);not null;default:''" json:"email"`
	Website         string          `gorm:"type:varchar(255);not null;default:''" json:"website"`
	ConsultationFee decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"consultation_fee"`
	ClinicLogo      string          `gorm:"type:varchar(255);not null;default:''" json:"clinic_logo"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (DoctorClinic) TableName() string {
	return "doctor_clinics"
}
