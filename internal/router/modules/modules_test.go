package modules

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jucamargo/juju-library/internal/application"
	"github.com/jucamargo/juju-library/internal/domain/entity"
	handlers "github.com/jucamargo/juju-library/internal/interface/http"
	"github.com/jucamargo/juju-library/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubBookRepo struct {
	mock.Mock
}

func (m *stubBookRepo) Create(ctx context.Context, b *entity.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *stubBookRepo) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*entity.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubBookRepo) List(ctx context.Context) ([]*entity.Book, error) {
	args := m.Called(ctx)
	if b := args.Get(0); b != nil {
		return b.([]*entity.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubBookRepo) SearchByTitle(ctx context.Context, fragment string) ([]*entity.Book, error) {
	args := m.Called(ctx, fragment)
	if b := args.Get(0); b != nil {
		return b.([]*entity.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubBookRepo) Update(ctx context.Context, b *entity.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *stubBookRepo) UpdateStatus(ctx context.Context, id string, status bool) (*entity.Book, error) {
	args := m.Called(ctx, id, status)
	if b := args.Get(0); b != nil {
		return b.(*entity.Book), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubBookRepo) SetCoverURL(ctx context.Context, id, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

func (m *stubBookRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *stubBookRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type stubUserRepo struct {
	mock.Mock
}

func (m *stubUserRepo) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*entity.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *stubUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type testAPI struct {
	engine   *gin.Engine
	bookRepo *stubBookRepo
	userRepo *stubUserRepo
	jwt      *helpers.JWTManager
}

func newTestAPI() *testAPI {
	logger := logrus.New()
	bookRepo := new(stubBookRepo)
	userRepo := new(stubUserRepo)
	jwt := helpers.NewJWTManager("test-secret", time.Hour)

	bookSvc := &application.BookService{Repo: bookRepo, Logger: logger}
	userSvc := &application.UserService{Repo: userRepo, JWT: jwt, Logger: logger, AppName: "juju-library"}

	engine := gin.New()
	base := engine.Group("/api/v1")
	NewBookModule(&handlers.BookHandler{Svc: bookSvc, Logger: logger}, bookRepo, jwt).Register(base)
	NewUserModule(&handlers.UserHandler{Svc: userSvc, Logger: logger}, userRepo, jwt).Register(base)

	return &testAPI{engine: engine, bookRepo: bookRepo, userRepo: userRepo, jwt: jwt}
}

func (a *testAPI) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testAPI) token(t *testing.T) string {
	t.Helper()
	token, _, err := a.jwt.Generate("user-1", "a@b.co")
	require.NoError(t, err)
	return token
}

func TestUnauthenticatedBookRequestNeverReachesStorage(t *testing.T) {
	api := newTestAPI()

	w := api.do(t, http.MethodPost, "/api/v1/book", `{"title":"dune","author":"herbert","year":"1965"}`, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	api.bookRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	api.bookRepo.AssertNotCalled(t, "ExistsByID", mock.Anything, mock.Anything)
}

func TestCreateBookMissingFieldsReportsAll(t *testing.T) {
	api := newTestAPI()

	w := api.do(t, http.MethodPost, "/api/v1/book", `{"title":"dune"}`, api.token(t))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var env struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Errors, 2)
	assert.Equal(t, "author", env.Errors[0].Field)
	assert.Equal(t, "year", env.Errors[1].Field)
	api.bookRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBookStoresNormalizedTitle(t *testing.T) {
	api := newTestAPI()
	api.bookRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *entity.Book) bool {
		return b.Title == "EL PRINCIPITO" && b.Status
	})).Return(nil)

	w := api.do(t, http.MethodPost, "/api/v1/book", `{"title":"  el principito ","author":"antoine","year":"1943"}`, api.token(t))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"book"`)
	assert.Contains(t, w.Body.String(), "EL PRINCIPITO")
	api.bookRepo.AssertExpectations(t)
}

func TestGetBookInvalidIDFailsBothIDRules(t *testing.T) {
	api := newTestAPI()
	api.bookRepo.On("ExistsByID", mock.Anything, "not-a-uuid").Return(false, nil)

	w := api.do(t, http.MethodGet, "/api/v1/book/not-a-uuid", "", api.token(t))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "id is not valid")
	assert.Contains(t, w.Body.String(), "book does not exist")
	api.bookRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestSearchReturnsListUnderBookKey(t *testing.T) {
	api := newTestAPI()
	api.bookRepo.On("SearchByTitle", mock.Anything, "PRINCI").
		Return([]*entity.Book{{ID: "id-1", Title: "EL PRINCIPITO"}}, nil)

	w := api.do(t, http.MethodGet, "/api/v1/book/search/princi", "", api.token(t))

	assert.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data struct {
			Book []struct {
				Title string `json:"title"`
			} `json:"book"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.Len(t, env.Data.Book, 1)
	assert.Equal(t, "EL PRINCIPITO", env.Data.Book[0].Title)
}

func TestRegisterDuplicateEmailRejectedBeforeStorageWrite(t *testing.T) {
	api := newTestAPI()
	api.userRepo.On("ExistsByEmail", mock.Anything, "a@b.co").Return(true, nil)

	w := api.do(t, http.MethodPost, "/api/v1/user", `{"email":"a@b.co","password":"password123"}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "user already exists by email")
	api.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterResponseOmitsPassword(t *testing.T) {
	api := newTestAPI()
	api.userRepo.On("ExistsByEmail", mock.Anything, "a@b.co").Return(false, nil)
	api.userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	w := api.do(t, http.MethodPost, "/api/v1/user", `{"email":"a@b.co","password":"password123"}`, "")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"user"`)
	assert.NotContains(t, w.Body.String(), "password123")
	assert.NotContains(t, w.Body.String(), `"password"`)
}

func TestLoginUnknownEmailFailsValidation(t *testing.T) {
	api := newTestAPI()
	api.userRepo.On("ExistsByEmail", mock.Anything, "gone@b.co").Return(false, nil)

	w := api.do(t, http.MethodPost, "/api/v1/user/login", `{"email":"gone@b.co","password":"password123"}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "user does not exist")
	api.userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestLoginReturnsToken(t *testing.T) {
	api := newTestAPI()
	hash, err := helpers.HashPassword("password123")
	require.NoError(t, err)
	api.userRepo.On("ExistsByEmail", mock.Anything, "a@b.co").Return(true, nil)
	api.userRepo.On("GetByEmail", mock.Anything, "a@b.co").
		Return(&entity.User{ID: "user-1", Email: "a@b.co", Password: hash}, nil)

	w := api.do(t, http.MethodPost, "/api/v1/user/login", `{"email":"a@b.co","password":"password123"}`, "")

	assert.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotEmpty(t, env.Data.Token)

	claims, err := api.jwt.Parse(env.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", claims.Email)
}

func TestListUsersRequiresAuth(t *testing.T) {
	api := newTestAPI()

	w := api.do(t, http.MethodGet, "/api/v1/user", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	api.userRepo.On("List", mock.Anything).Return([]*entity.User{{ID: "user-1", Email: "a@b.co", Password: "hash"}}, nil)
	w = api.do(t, http.MethodGet, "/api/v1/user", "", api.token(t))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "hash")
}

func TestDeleteReturnsSnapshot(t *testing.T) {
	api := newTestAPI()
	id := "7b46a9a1-0b8e-4f59-9a53-51bd7a9c0001"
	api.bookRepo.On("ExistsByID", mock.Anything, id).Return(true, nil)
	api.bookRepo.On("GetByID", mock.Anything, id).Return(&entity.Book{ID: id, Title: "DUNE"}, nil)
	api.bookRepo.On("Delete", mock.Anything, id).Return(nil)

	w := api.do(t, http.MethodDelete, "/api/v1/book/"+id, "", api.token(t))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "DUNE")
	api.bookRepo.AssertExpectations(t)
}

func TestPatchStatusFalse(t *testing.T) {
	api := newTestAPI()
	id := "7b46a9a1-0b8e-4f59-9a53-51bd7a9c0002"
	api.bookRepo.On("ExistsByID", mock.Anything, id).Return(true, nil)
	api.bookRepo.On("UpdateStatus", mock.Anything, id, false).
		Return(&entity.Book{ID: id, Title: "DUNE", Status: false}, nil)

	w := api.do(t, http.MethodPatch, "/api/v1/book/"+id, `{"status":false}`, api.token(t))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":false`)
	api.bookRepo.AssertExpectations(t)
}
