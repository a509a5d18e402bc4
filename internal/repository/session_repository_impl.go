package repository

import (
	"doctor-portal/internal/domain/entity"
	domainRepo "doctor-portal/internal/domain/repository"

	"gorm.io/gorm"
)

type sessionRepository struct{}

func NewSessionRepository() domainRepo.SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(db *gorm.DB, session *entity.AccountSession) error {
	return db.Create(session).Error
}

func (r *sessionRepository) DeleteByToken(db *gorm.DB, token string) error {
	return db.Where("session_token = ?", token).Delete(&entity.AccountSession{}).Error
}
