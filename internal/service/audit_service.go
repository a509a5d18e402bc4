package service

import (
	"context"

	"doctor-portal/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// AuditService records who changed what. Entries go to the structured log;
// nothing is written to the database on the request path.
type AuditService interface {
	Record(ctx context.Context, event entity.AuditEvent)
}

type auditService struct {
	log *logrus.Logger
}

func NewAuditService(log *logrus.Logger) AuditService {
	return &auditService{log: log}
}

func (s *auditService) Record(ctx context.Context, event entity.AuditEvent) {
	fields := logrus.Fields{
		"audit":        true,
		"action":       event.Action,
		"account_kind": event.AccountKind,
		"account_id":   event.AccountID,
	}
	if event.Entity != "" {
		fields["entity"] = event.Entity
	}
	if event.EntityID != "" {
		fields["entity_id"] = event.EntityID
	}
	for key, value := range event.Metadata {
		fields[key] = value
	}

	s.log.WithContext(ctx).WithFields(fields).Info("audit event")
}
