package repository

import (
	"doctor-portal/internal/domain/entity"

	"gorm.io/gorm"
)

// Columns that carry a uniqueness constraint besides email
const (
	ColumnEmail     = "email"
	ColumnPhone     = "phone"
	ColumnBMDCNo    = "bmdc_no"
	ColumnNIDNumber = "nid_number"
)

type AccountRepository interface {
	Exists(db *gorm.DB, kind entity.AccountKind, column, value string) (bool, error)
	CreateDoctor(db *gorm.DB, doctor *entity.Doctor) error
	CreatePatient(db *gorm.DB, patient *entity.Patient) error
	CreateHealthcareProvider(db *gorm.DB, provider *entity.HealthcareProvider) error
	FindByEmail(db *gorm.DB, kind entity.AccountKind, email string) (*entity.Account, error)
	FindByID(db *gorm.DB, kind entity.AccountKind, id int64) (*entity.Account, error)
	FindDoctorByID(db *gorm.DB, id int64) (*entity.Doctor, error)
	UpdateDoctorIdentity(db *gorm.DB, doctorID int64, fields map[string]interface{}) error
}
