package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/josiahtayi/whatjosiahwatched/controller"
	"github.com/josiahtayi/whatjosiahwatched/models"
	"github.com/josiahtayi/whatjosiahwatched/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	users []*models.User
}

func (f *fakeUserStore) ByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) CountByEmail(ctx context.Context, email string) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.Email == email {
			count++
		}
	}
	return count, nil
}

func (f *fakeUserStore) Insert(ctx context.Context, user *models.User) error {
	clone := *user
	f.users = append(f.users, &clone)
	return nil
}

func (f *fakeUserStore) UpdateTokens(ctx context.Context, userID, token, refreshToken string) error {
	for _, u := range f.users {
		if u.UserID == userID {
			u.Token = token
			u.RefreshToken = refreshToken
			return nil
		}
	}
	return store.ErrNotFound
}

func newUserRouter(fs *fakeUserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	uc := controller.NewUserController(fs, "secret", "refresh-secret")

	router := gin.New()
	router.POST("/register", uc.RegisterUser)
	router.POST("/login", uc.LoginUser)
	router.POST("/logout", uc.Logout)
	return router
}

func registerBody() gin.H {
	return gin.H{
		"first_name": "Josiah",
		"last_name":  "Tayi",
		"email":      "josiah@example.com",
		"password":   "long-enough-password",
	}
}

func TestRegisterUser(t *testing.T) {
	fs := &fakeUserStore{}
	router := newUserRouter(fs)

	rec := doJSON(t, router, http.MethodPost, "/register", registerBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.Len(t, fs.users, 1)
	stored := fs.users[0]
	assert.Equal(t, "USER", stored.Role)
	assert.NotEmpty(t, stored.UserID)
	assert.NotEqual(t, "long-enough-password", stored.Password)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	fs := &fakeUserStore{}
	router := newUserRouter(fs)

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/register", registerBody()).Code)
	assert.Equal(t, http.StatusConflict, doJSON(t, router, http.MethodPost, "/register", registerBody()).Code)
	assert.Len(t, fs.users, 1)
}

func TestRegisterUserValidation(t *testing.T) {
	fs := &fakeUserStore{}
	router := newUserRouter(fs)

	for name, body := range map[string]gin.H{
		"missing email":  {"first_name": "Josiah", "last_name": "Tayi", "password": "long-enough-password"},
		"bad email":      {"first_name": "Josiah", "last_name": "Tayi", "email": "nope", "password": "long-enough-password"},
		"short password": {"first_name": "Josiah", "last_name": "Tayi", "email": "a@b.co", "password": "short"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, doJSON(t, router, http.MethodPost, "/register", body).Code)
		})
	}
	assert.Empty(t, fs.users)
}

func TestLoginUser(t *testing.T) {
	fs := &fakeUserStore{}
	router := newUserRouter(fs)

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/register", registerBody()).Code)

	rec := doJSON(t, router, http.MethodPost, "/login", gin.H{
		"email":    "josiah@example.com",
		"password": "long-enough-password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
	assert.NotEmpty(t, fs.users[0].Token)
	assert.NotEmpty(t, fs.users[0].RefreshToken)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "Bearer", cookies[0].Name)
}

func TestLoginUserBadCredentials(t *testing.T) {
	fs := &fakeUserStore{}
	router := newUserRouter(fs)

	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/register", registerBody()).Code)

	rec := doJSON(t, router, http.MethodPost, "/login", gin.H{
		"email":    "josiah@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", gin.H{
		"email":    "nobody@example.com",
		"password": "long-enough-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
