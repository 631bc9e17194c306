package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/domain/entity"
	"github.com/Rashi-Dwivedi1812/SentiLog-AI/internal/domain/repository"
	"github.com/Rashi-Dwivedi1812/SentiLog-AI/pkg/helpers"
)

// fakeRepo is an in-memory credential store that enforces email uniqueness
// the same way the real store does: by rejecting the second write.
type fakeRepo struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User
	nextID  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: make(map[string]*entity.User)}
}

func (r *fakeRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrEmailTaken
	}
	r.nextID++
	u.ID = fmt.Sprintf("u-%d", r.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byEmail)), nil
}

func newTestService(repo repository.UserRepository) *Service {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewService(repo, jwt, nil, nil, nil, nil, "", false)
}

func validInput() SignupInput {
	return SignupInput{Firstname: "A", Lastname: "B", Email: "a@b.com", Password: "x"}
}

func TestSignupIssuesTokenAndPersistsUser(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	token, u, err := svc.Signup(context.Background(), validInput())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, u.ID)

	stored, err := repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	require.NotEqual(t, "x", stored.Password, "password must not be stored in plain text")
	require.True(t, helpers.CompareHashAndPassword(stored.Password, "x"))

	claims, err := svc.JWT.Parse(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)
	require.NotEmpty(t, claims.SessionID)
}

func TestSignupNormalizesEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	in := validInput()
	in.Email = "  User@Example.COM "
	_, u, err := svc.Signup(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", u.Email)

	// login with differently-cased email still succeeds
	_, err = svc.Login(context.Background(), "USER@example.com", "x")
	require.NoError(t, err)
}

func TestSignupMissingFields(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	for _, in := range []SignupInput{
		{Lastname: "B", Email: "a@b.com", Password: "x"},
		{Firstname: "A", Email: "a@b.com", Password: "x"},
		{Firstname: "A", Lastname: "B", Password: "x"},
		{Firstname: "A", Lastname: "B", Email: "a@b.com"},
		{Firstname: "   ", Lastname: "B", Email: "a@b.com", Password: "x"},
	} {
		_, _, err := svc.Signup(context.Background(), in)
		require.ErrorIs(t, err, ErrMissingFields)
	}

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSignupDuplicateEmailLeavesStoreUnchanged(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, _, err := svc.Signup(context.Background(), validInput())
	require.NoError(t, err)

	before, err := repo.Count(context.Background())
	require.NoError(t, err)

	_, _, err = svc.Signup(context.Background(), validInput())
	require.ErrorIs(t, err, repository.ErrEmailTaken)

	after, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestLoginAfterSignup(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	signupToken, _, err := svc.Signup(context.Background(), validInput())
	require.NoError(t, err)

	loginToken, err := svc.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	require.NotEmpty(t, loginToken)
	require.NotEqual(t, signupToken, loginToken, "each login issues a fresh token")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, _, err := svc.Signup(context.Background(), validInput())
	require.NoError(t, err)

	_, wrongPwd := svc.Login(context.Background(), "a@b.com", "nope")
	_, unknown := svc.Login(context.Background(), "missing@b.com", "x")

	require.ErrorIs(t, wrongPwd, ErrInvalidCredentials)
	require.ErrorIs(t, unknown, ErrInvalidCredentials)
	require.Equal(t, wrongPwd.Error(), unknown.Error())
}

// downRepo simulates a credential store outage: every call fails.
type downRepo struct{ err error }

func (r *downRepo) Create(context.Context, *entity.User) error { return r.err }
func (r *downRepo) GetByID(context.Context, string) (*entity.User, error) {
	return nil, r.err
}
func (r *downRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, r.err
}
func (r *downRepo) Count(context.Context) (int64, error) { return 0, r.err }

func TestLoginSurfacesStoreFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newTestService(&downRepo{err: boom})

	_, err := svc.Login(context.Background(), "a@b.com", "x")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrInvalidCredentials,
		"a store outage must not look like bad credentials")
}

func TestIdentitySurfacesStoreFailure(t *testing.T) {
	boom := errors.New("connection refused")
	svc := newTestService(&downRepo{err: boom})

	_, err := svc.Identity(context.Background(), "u-1")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, ErrUserNotFound)
}

func TestIdentity(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, u, err := svc.Signup(context.Background(), validInput())
	require.NoError(t, err)

	got, err := svc.Identity(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)

	_, err = svc.Identity(context.Background(), "missing")
	require.ErrorIs(t, err, ErrUserNotFound)
}
