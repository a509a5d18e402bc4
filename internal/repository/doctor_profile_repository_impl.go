package repository

import (
	"errors"
	"fmt"

	"doctor-portal/internal/domain/entity"
	domainRepo "doctor-portal/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// fileColumns hold upload paths; a blank incoming value never clears them
var fileColumns = map[string]bool{
	entity.ColumnProfileImage:       true,
	entity.ColumnBMDCCertificate:    true,
	entity.ColumnNIDCard:            true,
	entity.ColumnDegreesCertificate: true,
}

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Upsert(db *gorm.DB, profile *entity.DoctorProfile, columns []string) error {
	table := entity.DoctorProfile{}.TableName()

	plain := []string{"updated_at"}
	var keep []clause.Assignment
	for _, col := range columns {
		if fileColumns[col] {
			keep = append(keep, clause.Assignment{
				Column: clause.Column{Name: col},
				Value:  gorm.Expr(fmt.Sprintf("COALESCE(NULLIF(excluded.%s, ''), %s.%s)", col, table, col)),
			})
			continue
		}
		plain = append(plain, col)
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doctor_id"}},
		DoUpdates: append(clause.AssignmentColumns(plain), keep...),
	}).Create(profile).Error
}

func (r *doctorProfileRepository) FindByDoctorID(db *gorm.DB, doctorID int64) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Where("doctor_id = ?", doctorID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
