package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jucamargo/juju-library/internal/domain/entity"
	"github.com/jucamargo/juju-library/pkg/apperr"
	"github.com/jucamargo/juju-library/pkg/helpers"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestRegisterStoresHashNotPlaintext(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == "a@b.co" &&
			u.Password != "password123" &&
			helpers.CompareHashAndPassword(u.Password, "password123")
	})).Return(nil)

	svc := &UserService{Repo: repo}
	u, err := svc.Register(context.Background(), "a@b.co", "password123")

	require.NoError(t, err)
	assert.Equal(t, "a@b.co", u.Email)
	repo.AssertExpectations(t)
}

func TestRegisterPropagatesConflict(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("Create", mock.Anything, mock.Anything).
		Return(apperr.New(apperr.Conflict, "user already exists by email"))

	svc := &UserService{Repo: repo}
	_, err := svc.Register(context.Background(), "a@b.co", "password123")

	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Conflict))
}

func TestLoginIssuesTokenWithIdentity(t *testing.T) {
	hash, err := helpers.HashPassword("password123")
	require.NoError(t, err)

	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "a@b.co").
		Return(&entity.User{ID: "user-1", Email: "a@b.co", Password: hash}, nil)

	jwt := helpers.NewJWTManager("test-secret", 24*time.Hour)
	svc := &UserService{Repo: repo, JWT: jwt}

	token, exp, err := svc.Login(context.Background(), "a@b.co", "password123")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp, 5*time.Second)

	claims, err := jwt.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.co", claims.Email)
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	hash, err := helpers.HashPassword("password123")
	require.NoError(t, err)

	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "a@b.co").
		Return(&entity.User{ID: "user-1", Email: "a@b.co", Password: hash}, nil)

	svc := &UserService{Repo: repo, JWT: helpers.NewJWTManager("test-secret", time.Hour)}

	_, _, err = svc.Login(context.Background(), "a@b.co", "wrongpassword")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.Unauthorized))
}

func TestLoginMissingUserStaysNotFound(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByEmail", mock.Anything, "gone@b.co").
		Return(nil, apperr.New(apperr.NotFound, "user not found"))

	svc := &UserService{Repo: repo, JWT: helpers.NewJWTManager("test-secret", time.Hour)}

	_, _, err := svc.Login(context.Background(), "gone@b.co", "password123")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}
