package entity

// AccountKind identifies which account table a user lives in
type AccountKind string

const (
	AccountKindPatient    AccountKind = "patient"
	AccountKindDoctor     AccountKind = "doctor"
	AccountKindHealthcare AccountKind = "healthcare"
)

// ParseAccountKind returns the kind for a form value, or false for anything outside the fixed set
func ParseAccountKind(value string) (AccountKind, bool) {
	switch AccountKind(value) {
	case AccountKindPatient, AccountKindDoctor, AccountKindHealthcare:
		return AccountKind(value), true
	}
	return "", false
}

// AccountKinds lists every kind in the order email uniqueness is checked
var AccountKinds = []AccountKind{AccountKindPatient, AccountKindDoctor, AccountKindHealthcare}

// TableName returns the account table for the kind
func (k AccountKind) TableName() string {
	switch k {
	case AccountKindDoctor:
		return Doctor{}.TableName()
	case AccountKindHealthcare:
		return HealthcareProvider{}.TableName()
	default:
		return Patient{}.TableName()
	}
}

// HomePath is where the browser goes after a successful register or login
func (k AccountKind) HomePath() string {
	if k == AccountKindDoctor {
		return "/doctor/profile-settings"
	}
	return "/login"
}
