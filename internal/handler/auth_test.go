package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lost-and-found/internal/config"
	"github.com/iliyamo/lost-and-found/internal/repository"
	"github.com/iliyamo/lost-and-found/internal/utils"
)

var testCfg = config.Config{
	JWTSecret:    "test-secret",
	AccessTTLMin: 5,
	BcryptCost:   4, // minimum cost keeps the hashing fast in tests
}

func newAuthEnv(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewAuthHandler(testCfg, repository.NewUserRepo(db)), mock, db
}

// jsonCtx builds an echo context carrying a JSON body.
func jsonCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegister_MissingFields(t *testing.T) {
	h, _, db := newAuthEnv(t)
	defer db.Close()

	c, rec := jsonCtx(http.MethodPost, "/auth/register", `{"email":"a@campus.edu","password":"pw"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "full_name required")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h, mock, db := newAuthEnv(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (email, password_hash, full_name, role) VALUES (?,?,?,?)")).
		WithArgs("a@campus.edu", sqlmock.AnyArg(), "Ada", "student").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry"))

	c, rec := jsonCtx(http.MethodPost, "/auth/register",
		`{"email":"A@campus.edu","password":"pw","full_name":"Ada"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "email already exists")
}

func TestRegister_UnknownRoleFallsBackToStudent(t *testing.T) {
	h, mock, db := newAuthEnv(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("a@campus.edu", sqlmock.AnyArg(), "Ada", "student").
		WillReturnResult(sqlmock.NewResult(3, 1))

	c, rec := jsonCtx(http.MethodPost, "/auth/register",
		`{"email":"a@campus.edu","password":"pw","full_name":"Ada","role":"superuser"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID   uint64 `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, uint64(3), resp.User.ID)
	assert.Equal(t, "student", resp.User.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	h, mock, db := newAuthEnv(t)
	defer db.Close()

	hash, err := utils.HashPassword("right-password", testCfg.BcryptCost)
	require.NoError(t, err)
	mock.ExpectQuery("SELECT id,email,password_hash,full_name,role,created_at FROM users WHERE email=?").
		WithArgs("a@campus.edu").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "full_name", "role", "created_at"}).
			AddRow(3, "a@campus.edu", hash, "Ada", "student", sampleTime()))

	c, rec := jsonCtx(http.MethodPost, "/auth/login",
		`{"email":"a@campus.edu","password":"wrong"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	h, mock, db := newAuthEnv(t)
	defer db.Close()

	// Unknown account and bad password must be indistinguishable.
	mock.ExpectQuery("SELECT id,email,password_hash").
		WithArgs("ghost@campus.edu").
		WillReturnError(sql.ErrNoRows)

	c, rec := jsonCtx(http.MethodPost, "/auth/login",
		`{"email":"ghost@campus.edu","password":"pw"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
}

func TestMe_DeletedUserIsUnauthorized(t *testing.T) {
	h, mock, db := newAuthEnv(t)
	defer db.Close()

	// A structurally valid token whose subject no longer has a row.
	mock.ExpectQuery("SELECT id,email,password_hash").
		WithArgs(uint64(42)).
		WillReturnError(sql.ErrNoRows)

	c, rec := jsonCtx(http.MethodGet, "/auth/me", "")
	c.Set("user_id", float64(42)) // JWT numeric claims decode as float64
	c.Set("role", "student")
	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_OmitsPasswordHash(t *testing.T) {
	h, mock, db := newAuthEnv(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id,email,password_hash").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "full_name", "role", "created_at"}).
			AddRow(3, "a@campus.edu", "$2a$04$secret", "Ada", "student", sampleTime()))

	c, rec := jsonCtx(http.MethodGet, "/auth/me", "")
	c.Set("user_id", float64(3))
	c.Set("role", "student")
	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
	assert.Contains(t, rec.Body.String(), `"full_name":"Ada"`)
}
