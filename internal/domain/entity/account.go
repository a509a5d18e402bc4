package entity

import "time"

// Doctor is the doctor account; phone and BMDC registration number are unique
type Doctor struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex:uq_doctors_email;not null" json:"email"`
	Phone     string    `gorm:"type:varchar(20);uniqueIndex:uq_doctors_phone;not null" json:"phone"`
	BMDCNo    string    `gorm:"column:bmdc_no;type:varchar(50);uniqueIndex:uq_doctors_bmdc_no;not null" json:"bmdc_no"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Profile *DoctorProfile `gorm:"foreignKey:DoctorID" json:"profile,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

type Patient struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex:uq_patients_email;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// HealthcareProvider is a provider account keyed additionally by national-id number
type HealthcareProvider struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex:uq_healthcare_providers_email;not null" json:"email"`
	NIDNumber string    `gorm:"column:nid_number;type:varchar(50);uniqueIndex:uq_healthcare_providers_nid_number;not null" json:"nid_number"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (HealthcareProvider) TableName() string {
	return "healthcare_providers"
}

// Account is the kind-independent view used by login and sessions
type Account struct {
	ID           int64
	Kind         AccountKind
	Name         string
	Email        string
	PasswordHash string
}

func (d *Doctor) Account() *Account {
	return &Account{ID: d.ID, Kind: AccountKindDoctor, Name: d.Name, Email: d.Email, PasswordHash: d.Password}
}

func (p *Patient) Account() *Account {
	return &Account{ID: p.ID, Kind: AccountKindPatient, Name: p.Name, Email: p.Email, PasswordHash: p.Password}
}

func (h *HealthcareProvider) Account() *Account {
	return &Account{ID: h.ID, Kind: AccountKindHealthcare, Name: h.Name, Email: h.Email, PasswordHash: h.Password}
}
