package entity

// AuditEvent describes one user-visible change for the audit trail
type AuditEvent struct {
	Action      string
	AccountKind AccountKind
	AccountID   int64
	Entity      string
	EntityID    string
	Metadata    map[string]interface{}
}

// Common audit actions
const (
	AuditActionUserRegister  = "user.register"
	AuditActionUserLogin     = "user.login"
	AuditActionUserLogout    = "user.logout"
	AuditActionProfileUpdate = "profile.update"
	AuditActionRecordCreate  = "profile.record.create"
	AuditActionHoursUpdate   = "profile.business_hours.update"
)
