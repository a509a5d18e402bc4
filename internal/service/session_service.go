package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"doctor-portal/config"
	"doctor-portal/internal/domain/entity"
	"doctor-portal/internal/domain/repository"
	"doctor-portal/internal/infrastructure/cache"
	"doctor-portal/pkg/jwt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// ClientMeta is what the persisted session row remembers about the client
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

// IssuedSession is a freshly established session and the cookie value that carries it
type IssuedSession struct {
	Token    string
	Session  *entity.Session
	Lifetime time.Duration
}

type SessionService interface {
	Issue(ctx context.Context, account *entity.Account, meta ClientMeta, remember bool) (*IssuedSession, error)
	Resolve(ctx context.Context, token string) (*entity.Session, error)
	Revoke(ctx context.Context, session *entity.Session) error
	Rename(ctx context.Context, session *entity.Session, name string) error
	Cookie(issued *IssuedSession) *http.Cookie
	ExpiredCookie() *http.Cookie
	CookieName() string
}

type sessionService struct {
	db          *gorm.DB
	log         *logrus.Logger
	jwtService  *jwt.JWTService
	store       cache.SessionStore
	sessionRepo repository.SessionRepository
	cfg         config.SessionConfig
	secure      bool
}

func NewSessionService(
	db *gorm.DB,
	log *logrus.Logger,
	jwtService *jwt.JWTService,
	store cache.SessionStore,
	sessionRepo repository.SessionRepository,
	cfg config.SessionConfig,
	secure bool,
) SessionService {
	return &sessionService{
		db:          db,
		log:         log,
		jwtService:  jwtService,
		store:       store,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		secure:      secure,
	}
}

func (s *sessionService) Issue(ctx context.Context, account *entity.Account, meta ClientMeta, remember bool) (*IssuedSession, error) {
	lifetime := s.cfg.ShortLifetime
	if remember {
		lifetime = s.cfg.LongLifetime
	}

	token, tokenID, err := s.jwtService.GenerateSessionToken(account.ID, string(account.Kind), lifetime)
	if err != nil {
		s.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	sessionToken, err := randomToken()
	if err != nil {
		s.log.Warnf("Failed to generate session token: %+v", err)
		return nil, err
	}

	session := &entity.Session{
		TokenID:      tokenID,
		AccountID:    account.ID,
		Kind:         account.Kind,
		Name:         account.Name,
		Email:        account.Email,
		SessionToken: sessionToken,
		ExpiresAt:    time.Now().Add(lifetime),
	}

	if err := s.store.Save(ctx, session, lifetime); err != nil {
		s.log.Warnf("Failed to store session: %+v", err)
		return nil, err
	}

	// The persisted row is informational; login succeeds without it
	row := &entity.AccountSession{
		AccountKind:  account.Kind,
		AccountID:    account.ID,
		SessionToken: sessionToken,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		ExpiresAt:    session.ExpiresAt,
	}
	if err := s.sessionRepo.Create(s.db.WithContext(ctx), row); err != nil {
		s.log.Warnf("Failed to persist session: %+v", err)
	}

	return &IssuedSession{Token: token, Session: session, Lifetime: lifetime}, nil
}

func (s *sessionService) Resolve(ctx context.Context, token string) (*entity.Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	session, err := s.store.Get(ctx, claims.TokenID)
	if err != nil {
		if errors.Is(err, cache.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		s.log.Warnf("Failed to load session: %+v", err)
		return nil, err
	}

	if session.AccountID != claims.AccountID || string(session.Kind) != claims.Kind {
		return nil, ErrInvalidSession
	}

	return session, nil
}

func (s *sessionService) Revoke(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return nil
	}

	if err := s.store.Delete(ctx, session.TokenID); err != nil {
		s.log.Warnf("Failed to delete session: %+v", err)
		return err
	}

	if session.SessionToken != "" {
		if err := s.sessionRepo.DeleteByToken(s.db.WithContext(ctx), session.SessionToken); err != nil {
			s.log.Warnf("Failed to delete persisted session: %+v", err)
		}
	}

	return nil
}

func (s *sessionService) Rename(ctx context.Context, session *entity.Session, name string) error {
	if session == nil || name == "" || session.Name == name {
		return nil
	}

	renamed := *session
	renamed.Name = name
	if err := s.store.Update(ctx, &renamed); err != nil {
		s.log.Warnf("Failed to update session name: %+v", err)
		return err
	}

	session.Name = name
	return nil
}

func (s *sessionService) CookieName() string {
	return s.cfg.CookieName
}

func (s *sessionService) Cookie(issued *IssuedSession) *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    issued.Token,
		Path:     "/",
		MaxAge:   int(issued.Lifetime.Seconds()),
		Expires:  issued.Session.ExpiresAt,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *sessionService) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
