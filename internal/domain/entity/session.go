package entity

import "time"

// Session is the server-side state behind a session cookie. It is resolved
// per request and passed down explicitly; nothing holds it globally.
type Session struct {
	TokenID      string      `json:"token_id"`
	AccountID    int64       `json:"account_id"`
	Kind         AccountKind `json:"kind"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	SessionToken string      `json:"session_token,omitempty"`
	ExpiresAt    time.Time   `json:"expires_at"`
}

// AccountSession is the optional audit record of an issued session
type AccountSession struct {
	ID           int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountKind  AccountKind `gorm:"type:varchar(20);not null;index:idx_account_sessions_owner,priority:1" json:"account_kind"`
	AccountID    int64       `gorm:"not null;index:idx_account_sessions_owner,priority:2" json:"account_id"`
	SessionToken string      `gorm:"type:varchar(64);uniqueIndex:uq_account_sessions_token;not null" json:"-"`
	IPAddress    string      `gorm:"type:varchar(45);not null;default:''" json:"ip_address"`
	UserAgent    string      `gorm:"type:text;not null;default:''" json:"user_agent"`
	ExpiresAt    time.Time   `gorm:"not null" json:"expires_at"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
}

func (AccountSession) TableName() string {
	return "account_sessions"
}
