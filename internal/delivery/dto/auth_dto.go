package dto

// Request DTOs

// RegisterRequest carries the fields shared by every account kind.
// Kind-specific fields are checked through DoctorRegistration and
// HealthcareRegistration once the kind is known.
type RegisterRequest struct {
	UserType       string `schema:"user_type"`
	Name           string `schema:"name" label:"Name" validate:"required,min=2"`
	Email          string `schema:"email" label:"Email" validate:"required,email"`
	Phone          string `schema:"phone"`
	BMDCNo         string `schema:"bmdc_no"`
	RegistrationNo string `schema:"registration_no"`
	NIDNumber      string `schema:"nid_number"`
	Password       string `schema:"password" label:"Password" validate:"required,min=6"`
}

// RegistrationNumber returns bmdc_no, falling back to the registration_no alias
func (r *RegisterRequest) RegistrationNumber() string {
	if r.BMDCNo != "" {
		return r.BMDCNo
	}
	return r.RegistrationNo
}

type DoctorRegistration struct {
	Phone  string `label:"Phone number" validate:"required,mindigits=10,max=20"`
	BMDCNo string `label:"BMDC number" validate:"required,min=5,max=50"`
}

type HealthcareRegistration struct {
	NIDNumber string `label:"NID number" validate:"required,min=10,max=50"`
}

type LoginRequest struct {
	Email      string `schema:"email" label:"Email" validate:"required,email"`
	Password   string `schema:"password" label:"Password" validate:"required"`
	RememberMe bool   `schema:"remember_me"`
	UserType   string `schema:"user_type"`
}

// Response DTOs

type AccountSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserType string `json:"user_type,omitempty"`
}

type RegisterResponse struct {
	UserID   int64  `json:"user_id"`
	UserType string `json:"user_type"`
	Redirect string `json:"redirect"`
}

// LoginResponse names the account "doctor" for doctors and "user" for everyone else
type LoginResponse struct {
	Doctor   *AccountSummary `json:"doctor,omitempty"`
	User     *AccountSummary `json:"user,omitempty"`
	Redirect string          `json:"redirect"`
}

type LogoutResponse struct {
	Redirect string `json:"redirect"`
}

type CurrentAccountResponse struct {
	User AccountSummary `json:"user"`
}
