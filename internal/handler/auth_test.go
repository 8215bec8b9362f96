package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/reading-list/internal/config"
	"github.com/iliyamo/reading-list/internal/repository"
	"github.com/iliyamo/reading-list/internal/utils"
)

func testCfg() config.Config {
	return config.Config{
		JWTSecret:      "handler-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     bcrypt.MinCost,
	}
}

func newAuthFixture(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewAuthHandler(testCfg(), repository.NewUserRepo(db)), mock
}

func postJSON(t *testing.T, h echo.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func TestSignupCreatesUser(t *testing.T) {
	h, mock := newAuthFixture(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "alice@example.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := postJSON(t, h.Signup, "/auth/signup", `{"email":"alice@example.com","password":"secret"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "alice@example.com", resp.Email)
	// The hash never leaves the server.
	assert.NotContains(t, rec.Body.String(), "hashed_pw")
}

func TestSignupDuplicateEmail(t *testing.T) {
	h, mock := newAuthFixture(t)

	// Simulate the MySQL duplicate-key error text the repo matches on.
	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "alice@example.com", sqlmock.AnyArg()).
		WillReturnError(errDuplicate{})

	rec := postJSON(t, h.Signup, "/auth/signup", `{"email":"alice@example.com","password":"secret"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already registered")
}

type errDuplicate struct{}

func (errDuplicate) Error() string {
	return "Error 1062 (23000): Duplicate entry 'alice@example.com' for key 'uq_users_email'"
}

func TestSignupMissingFields(t *testing.T) {
	h, _ := newAuthFixture(t)
	rec := postJSON(t, h.Signup, "/auth/signup", `{"email":"","password":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	h, mock := newAuthFixture(t)

	hash, err := utils.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id,email,hashed_pw,is_active,created_at FROM users WHERE email=").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_pw", "is_active", "created_at"}).
			AddRow("u-1", "alice@example.com", hash, true, time.Now().UTC()))

	rec := postJSON(t, h.Login, "/auth/login", `{"email":"alice@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Both tokens decode back to the stored user id.
	sub, ok := utils.ParseSubject(testCfg().JWTSecret, resp.AccessToken)
	assert.True(t, ok)
	assert.Equal(t, "u-1", sub)
	sub, ok = utils.ParseSubject(testCfg().JWTSecret, resp.RefreshToken)
	assert.True(t, ok)
	assert.Equal(t, "u-1", sub)
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock := newAuthFixture(t)

	hash, err := utils.HashPassword("secret", bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id,email,hashed_pw,is_active,created_at FROM users WHERE email=").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_pw", "is_active", "created_at"}).
			AddRow("u-1", "alice@example.com", hash, true, time.Now().UTC()))

	rec := postJSON(t, h.Login, "/auth/login", `{"email":"alice@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	h, mock := newAuthFixture(t)

	mock.ExpectQuery("SELECT id,email,hashed_pw,is_active,created_at FROM users WHERE email=").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	rec := postJSON(t, h.Login, "/auth/login", `{"email":"ghost@example.com","password":"secret"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshMintsNewPair(t *testing.T) {
	h, mock := newAuthFixture(t)

	refresh, err := utils.NewRefreshToken(testCfg().JWTSecret, "u-1", 7)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id,email,hashed_pw,is_active,created_at FROM users WHERE id=").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "hashed_pw", "is_active", "created_at"}).
			AddRow("u-1", "alice@example.com", "hash", true, time.Now().UTC()))

	rec := postJSON(t, h.Refresh, "/auth/refresh", `{"refresh_token":"`+refresh.Value+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	sub, ok := utils.ParseSubject(testCfg().JWTSecret, resp.AccessToken)
	assert.True(t, ok)
	assert.Equal(t, "u-1", sub)
}

func TestRefreshRejectsInvalidToken(t *testing.T) {
	h, _ := newAuthFixture(t)

	rec := postJSON(t, h.Refresh, "/auth/refresh", `{"refresh_token":"garbage"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshRejectsVanishedUser(t *testing.T) {
	h, mock := newAuthFixture(t)

	refresh, err := utils.NewRefreshToken(testCfg().JWTSecret, "gone", 7)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id,email,hashed_pw,is_active,created_at FROM users WHERE id=").
		WithArgs("gone").
		WillReturnError(sql.ErrNoRows)

	rec := postJSON(t, h.Refresh, "/auth/refresh", `{"refresh_token":"`+refresh.Value+`"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
