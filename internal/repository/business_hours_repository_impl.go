package repository

import (
	"doctor-portal/internal/domain/entity"
	domainRepo "doctor-portal/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type businessHoursRepository struct{}

func NewBusinessHoursRepository() domainRepo.BusinessHoursRepository {
	return &businessHoursRepository{}
}

func (r *businessHoursRepository) Upsert(db *gorm.DB, hour *entity.DoctorBusinessHour) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "doctor_id"}, {Name: "clinic_id"}, {Name: "day_of_week"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"start_time", "end_time", "is_available", "updated_at",
		}),
	}).Create(hour).Error
}

func (r *businessHoursRepository) FindByDoctorID(db *gorm.DB, doctorID int64) ([]entity.DoctorBusinessHour, error) {
	var hours []entity.DoctorBusinessHour
	err := db.Where("doctor_id = ?", doctorID).
		Order("clinic_id ASC").
		Order(`CASE day_of_week
			WHEN 'Monday' THEN 1 WHEN 'Tuesday' THEN 2 WHEN 'Wednesday' THEN 3
			WHEN 'Thursday' THEN 4 WHEN 'Friday' THEN 5 WHEN 'Saturday' THEN 6
			ELSE 7 END`).
		Find(&hours).Error
	if err != nil {
		return nil, err
	}
	return hours, nil
}
