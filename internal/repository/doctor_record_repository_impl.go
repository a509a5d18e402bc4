package repository

import (
	"doctor-portal/internal/domain/entity"
	domainRepo "doctor-portal/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRecordRepository struct{}

func NewDoctorRecordRepository() domainRepo.DoctorRecordRepository {
	return &doctorRecordRepository{}
}

func (r *doctorRecordRepository) CreateExperience(db *gorm.DB, record *entity.DoctorExperience) error {
	return db.Create(record).Error
}

func (r *doctorRecordRepository) CreateEducation(db *gorm.DB, record *entity.DoctorEducation) error {
	return db.Create(record).Error
}

func (r *doctorRecordRepository) CreateAward(db *gorm.DB, record *entity.DoctorAward) error {
	return db.Create(record).Error
}

func (r *doctorRecordRepository) CreateInsurance(db *gorm.DB, record *entity.DoctorInsurance) error {
	return db.Create(record).Error
}

func (r *doctorRecordRepository) CreateClinic(db *gorm.DB, record *entity.DoctorClinic) error {
	return db.Create(record).Error
}

func (r *doctorRecordRepository) FindExperiences(db *gorm.DB, doctorID int64) ([]entity.DoctorExperience, error) {
	var records []entity.DoctorExperience
	err := db.Where("doctor_id = ?", doctorID).Order("start_date DESC NULLS LAST").Order("id DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *doctorRecordRepository) FindEducation(db *gorm.DB, doctorID int64) ([]entity.DoctorEducation, error) {
	var records []entity.DoctorEducation
	err := db.Where("doctor_id = ?", doctorID).Order("year_of_completion DESC NULLS LAST").Order("id DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *doctorRecordRepository) FindAwards(db *gorm.DB, doctorID int64) ([]entity.DoctorAward, error) {
	var records []entity.DoctorAward
	err := db.Where("doctor_id = ?", doctorID).Order("award_year DESC NULLS LAST").Order("id DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *doctorRecordRepository) FindInsurances(db *gorm.DB, doctorID int64) ([]entity.DoctorInsurance, error) {
	var records []entity.DoctorInsurance
	err := db.Where("doctor_id = ?", doctorID).Order("created_at DESC").Order("id DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *doctorRecordRepository) FindClinics(db *gorm.DB, doctorID int64) ([]entity.DoctorClinic, error) {
	var records []entity.DoctorClinic
	err := db.Where("doctor_id = ?", doctorID).Order("created_at DESC").Order("id DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *doctorRecordRepository) ClinicBelongsTo(db *gorm.DB, clinicID, doctorID int64) (bool, error) {
	var count int64
	err := db.Model(&entity.DoctorClinic{}).
		Where("id = ? AND doctor_id = ?", clinicID, doctorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
