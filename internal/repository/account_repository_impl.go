package repository

import (
	"errors"

	"doctor-portal/internal/domain/entity"
	domainRepo "doctor-portal/internal/domain/repository"

	"gorm.io/gorm"
)

type accountRepository struct{}

func NewAccountRepository() domainRepo.AccountRepository {
	return &accountRepository{}
}

func (r *accountRepository) Exists(db *gorm.DB, kind entity.AccountKind, column, value string) (bool, error) {
	var count int64
	query := db.Table(kind.TableName())
	if column == domainRepo.ColumnEmail {
		query = whereEmail(query, value)
	} else {
		query = query.Where(column+" = ?", value)
	}
	err := query.Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *accountRepository) CreateDoctor(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit("Profile").Create(doctor).Error
}

func (r *accountRepository) CreatePatient(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *accountRepository) CreateHealthcareProvider(db *gorm.DB, provider *entity.HealthcareProvider) error {
	return db.Create(provider).Error
}

func (r *accountRepository) FindByEmail(db *gorm.DB, kind entity.AccountKind, email string) (*entity.Account, error) {
	return r.find(whereEmail(db, email), kind)
}

// whereEmail matches emails case-insensitively, as the unique indexes do
func whereEmail(db *gorm.DB, email string) *gorm.DB {
	return db.Where("LOWER(email) = LOWER(?)", email)
}

func (r *accountRepository) FindByID(db *gorm.DB, kind entity.AccountKind, id int64) (*entity.Account, error) {
	return r.find(db.Where("id = ?", id), kind)
}

func (r *accountRepository) find(query *gorm.DB, kind entity.AccountKind) (*entity.Account, error) {
	switch kind {
	case entity.AccountKindDoctor:
		var doctor entity.Doctor
		if err := query.First(&doctor).Error; err != nil {
			return notFoundAsNil(err)
		}
		return doctor.Account(), nil
	case entity.AccountKindHealthcare:
		var provider entity.HealthcareProvider
		if err := query.First(&provider).Error; err != nil {
			return notFoundAsNil(err)
		}
		return provider.Account(), nil
	default:
		var patient entity.Patient
		if err := query.First(&patient).Error; err != nil {
			return notFoundAsNil(err)
		}
		return patient.Account(), nil
	}
}

func (r *accountRepository) FindDoctorByID(db *gorm.DB, id int64) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *accountRepository) UpdateDoctorIdentity(db *gorm.DB, doctorID int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return db.Model(&entity.Doctor{}).Where("id = ?", doctorID).Updates(fields).Error
}

func notFoundAsNil(err error) (*entity.Account, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}
