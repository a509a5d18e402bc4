package repository

import (
	"doctor-portal/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	// Upsert inserts the profile or, when one exists for the doctor, updates
	// only the listed columns. File columns keep their stored value when the
	// incoming path is blank.
	Upsert(db *gorm.DB, profile *entity.DoctorProfile, columns []string) error
	FindByDoctorID(db *gorm.DB, doctorID int64) (*entity.DoctorProfile, error)
}

type DoctorRecordRepository interface {
	CreateExperience(db *gorm.DB, record *entity.DoctorExperience) error
	CreateEducation(db *gorm.DB, record *entity.DoctorEducation) error
	CreateAward(db *gorm.DB, record *entity.DoctorAward) error
	CreateInsurance(db *gorm.DB, record *entity.DoctorInsurance) error
	CreateClinic(db *gorm.DB, record *entity.DoctorClinic) error

	FindExperiences(db *gorm.DB, doctorID int64) ([]entity.DoctorExperience, error)
	FindEducation(db *gorm.DB, doctorID int64) ([]entity.DoctorEducation, error)
	FindAwards(db *gorm.DB, doctorID int64) ([]entity.DoctorAward, error)
	FindInsurances(db *gorm.DB, doctorID int64) ([]entity.DoctorInsurance, error)
	FindClinics(db *gorm.DB, doctorID int64) ([]entity.DoctorClinic, error)
	ClinicBelongsTo(db *gorm.DB, clinicID, doctorID int64) (bool, error)
}

type BusinessHoursRepository interface {
	// Upsert keeps exactly one row per (doctor, clinic, day)
	Upsert(db *gorm.DB, hour *entity.DoctorBusinessHour) error
	FindByDoctorID(db *gorm.DB, doctorID int64) ([]entity.DoctorBusinessHour, error)
}
