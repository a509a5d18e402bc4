package entity

import "time"

// UnscopedClinicID marks business hours that apply to the doctor as a whole
// rather than to one clinic. Using 0 instead of NULL keeps the composite
// unique index effective for unscoped rows.
const UnscopedClinicID int64 = 0

// Weekdays in the order the settings form lists them
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DoctorBusinessHour is one weekday window; unique per (doctor_id, clinic_id, day_of_week)
type DoctorBusinessHour struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID    int64     `gorm:"not null;uniqueIndex:uq_business_hours_slot,priority:1" json:"doctor_id"`
	ClinicID    int64     `gorm:"not null;default:0;uniqueIndex:uq_business_hours_slot,priority:2" json:"clinic_id"`
	DayOfWeek   string    `gorm:"type:varchar(10);not null;uniqueIndex:uq_business_hours_slot,priority:3" json:"day_of_week"`
	StartTime   *string   `gorm:"type:varchar(8)" json:"start_time"`
	EndTime     *string   `gorm:"type:varchar(8)" json:"end_time"`
	IsAvailable bool      `gorm:"not null;default:false" json:"is_available"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DoctorBusinessHour) TableName() string {
	return "doctor_business_hours"
}
