package repository

import (
	"doctor-portal/internal/domain/entity"

	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(db *gorm.DB, session *entity.AccountSession) error
	DeleteByToken(db *gorm.DB, token string) error
}
