package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jucamargo/juju-library/internal/domain/entity"
	repo "github.com/jucamargo/juju-library/internal/domain/repository"
	"github.com/jucamargo/juju-library/pkg/apperr"
	"github.com/jucamargo/juju-library/pkg/helpers"
	"github.com/jucamargo/juju-library/pkg/mailer"
)

// UserService handles registration, login and listing. Tokens come from the
// injected JWTManager; the welcome email is queued fire-and-forget when a
// publisher is configured.
type UserService struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	AppName     string
	MailEnabled bool
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger, appName string, mailEnabled bool) *UserService {
	return &UserService{
		Repo:        r,
		JWT:         jwt,
		Pub:         pub,
		Logger:      logger,
		AppName:     appName,
		MailEnabled: mailEnabled,
	}
}

// Register hashes the password and persists the user. The guard has already
// pre-checked email uniqueness; the storage unique index still backs it up,
// and a violation comes through as Conflict.
func (s *UserService) Register(ctx context.Context, email, password string) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "hash password", err)
	}
	u := &entity.User{Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.enqueueWelcome(ctx, u)
	return u, nil
}

// Login verifies credentials and issues a bearer token valid for the
// manager's TTL. A missing user despite the guard's existence pre-check is a
// race and stays NotFound; a wrong password is Unauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", time.Time{}, apperr.New(apperr.Unauthorized, "password is incorrect")
	}
	token, exp, err := s.JWT.Generate(u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return "", time.Time{}, apperr.Wrap(apperr.Storage, "sign token", err)
	}
	return token, exp, nil
}

func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Subject:  "Welcome to " + s.AppName,
		Template: "welcome",
		Data: map[string]any{
			"Email":        u.Email,
			"AppName":      s.AppName,
			"RegisteredAt": u.CreatedAt.UTC().Format(time.RFC1123),
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("failed to enqueue welcome email")
	}
}
