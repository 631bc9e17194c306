package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/domain/entity"
	repo "github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/domain/repository"
	"github.com/Rashi-Dwivedi1812/SentiLog-AI/pkg/helpers"
	"github.com/Rashi-Dwivedi1812/SentiLog-AI/pkg/mailer"
)

var (
	// ErrInvalidCredentials covers both unknown email and password mismatch
	// so the response never reveals which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("all fields are required")
	ErrUserNotFound       = errors.New("user not found")
)

// Service implements signup/login: input validation, password hashing,
// token issuance, and best-effort session/audit side effects.
type Service struct {
	Repo              repo.UserRepository
	JWT               *helpers.JWTManager
	Redis             *redis.Client
	Logger            *logrus.Logger
	Pub               *helpers.RabbitPublisher
	ES                *elasticsearch.Client
	ESAuthEventsIndex string
	MailSendEnabled   bool
}

func NewService(repo repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esAuthEventsIndex string, mailSendEnabled bool) *Service {
	return &Service{
		Repo:              repo,
		JWT:               jwt,
		Redis:             rdb,
		Logger:            logger,
		Pub:               pub,
		ES:                es,
		ESAuthEventsIndex: esAuthEventsIndex,
		MailSendEnabled:   mailSendEnabled,
	}
}

type SignupInput struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// NormalizeEmail trims whitespace and lower-cases the address. Every store
// access goes through the normalized form so uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates a user with a bcrypt-hashed password and issues a fresh
// token. Returns repository.ErrEmailTaken when the store rejects a duplicate
// email; a race between two signups resolves the same way, by the second
// write failing on the unique constraint.
func (s *Service) Signup(ctx context.Context, in SignupInput) (string, *entity.User, error) {
	if strings.TrimSpace(in.Firstname) == "" || strings.TrimSpace(in.Lastname) == "" ||
		strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return "", nil, ErrMissingFields
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return "", nil, err
	}

	u := &entity.User{
		Firstname: strings.TrimSpace(in.Firstname),
		Lastname:  strings.TrimSpace(in.Lastname),
		Email:     NormalizeEmail(in.Email),
		Password:  hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(ctx, u)
	if err != nil {
		return "", nil, err
	}

	s.indexAuthEvent(ctx, "signup", u.ID, u.Email)

	if s.Pub != nil && s.MailSendEnabled {
		job := mailer.WelcomeJob(u.Email, u.Firstname)
		if pErr := s.Pub.PublishJSON(ctx, job); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("email", u.Email).Warn("welcome email enqueue failed")
		}
	}

	return token, u, nil
}

// Login verifies credentials and issues a new token. It never writes to the
// credential store. Only an unknown email or a bad password becomes
// ErrInvalidCredentials; a failing store surfaces as-is.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.Repo.GetByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if u == nil || !helpers.CompareHashAndPassword(u.Password, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, u)
	if err != nil {
		return "", err
	}

	s.indexAuthEvent(ctx, "login", u.ID, u.Email)
	return token, nil
}

// Identity resolves the user a token's uid claim points to.
func (s *Service) Identity(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// issueToken generates a token and records an advisory session in Redis.
// The token itself carries all identity state; the Redis record only lets
// protected endpoints reject sessions that were explicitly cleared.
func (s *Service) issueToken(ctx context.Context, u *entity.User) (string, error) {
	sid := uuid.NewString()
	token, exp, err := s.JWT.Generate(u.ID, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return "", err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"firstname":  u.Firstname,
			"lastname":   u.Lastname,
			"sid":        sid,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, time.Until(exp))
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return token, nil
}

// indexAuthEvent records signup/login events to Elasticsearch, best effort.
func (s *Service) indexAuthEvent(ctx context.Context, action, userID, email string) {
	if s.ES == nil || s.ESAuthEventsIndex == "" {
		return
	}
	doc := map[string]any{
		"action":  action,
		"user_id": userID,
		"email":   email,
		"at":      nowRFC3339(),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESAuthEventsIndex, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("action", action).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("action", action).Warn("es index response error")
	}
}
