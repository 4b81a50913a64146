package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/lost-and-found/internal/config"
	"github.com/iliyamo/lost-and-found/internal/handler"
	"github.com/iliyamo/lost-and-found/internal/repository"
	"github.com/iliyamo/lost-and-found/internal/utils"
)

// newTestServer wires the full route table against a mocked database and no
// Redis, the same shape main() produces when the cache is unavailable.
func newTestServer(t *testing.T) (*echo.Echo, sqlmock.Sqlmock, config.Config) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{JWTSecret: "router-test-secret", AccessTTLMin: 5, BcryptCost: 4}
	users := repository.NewUserRepo(db)
	items := repository.NewItemRepo(db)
	claims := repository.NewClaimRepo(db)

	e := echo.New()
	e.HideBanner = true
	Register(e,
		handler.NewAuthHandler(cfg, users),
		handler.NewItemHandler(items),
		handler.NewClaimHandler(claims, items),
		cfg, nil)
	return e, mock, cfg
}

func TestHealthz(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	e, _, _ := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/items"},
		{http.MethodPut, "/items/5"},
		{http.MethodDelete, "/items/5"},
		{http.MethodGet, "/claims"},
		{http.MethodPost, "/claims"},
		{http.MethodPut, "/claims/21"},
		{http.MethodGet, "/auth/me"},
	} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, rec.Body.String(), "missing bearer token")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	e, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/claims", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	e, _, _ := newTestServer(t)

	tok, err := utils.NewAccessToken("some-other-secret", 9, "student", 5)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/claims", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestValidTokenReachesHandler(t *testing.T) {
	e, mock, cfg := newTestServer(t)

	// GET /claims with no parameters lists claims received on owned items;
	// the subject claim must survive the float64 round-trip to reach the
	// query argument intact.
	mock.ExpectQuery(`(?s)SELECT .* FROM claims c\s+JOIN items i ON i\.id = c\.item_id AND i\.owner_id = \?`).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "item_id", "claimant_id", "status", "proof_description", "created_at",
			"i_id", "i_title", "i_description", "i_category", "i_location", "i_status",
			"i_image_url", "i_owner_id", "i_created_at", "full_name", "email",
		}))

	tok, err := utils.NewAccessToken(cfg.JWTSecret, 9, "student", cfg.AccessTTLMin)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/claims", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemBrowseIsPublic(t *testing.T) {
	e, mock, _ := newTestServer(t)

	mock.ExpectQuery(`(?s)SELECT .* FROM items i`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "description", "category", "location", "status",
			"image_url", "owner_id", "created_at", "full_name", "email",
		}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items?type=lost", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	// Without Redis the cache middleware is a passthrough and sets nothing.
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestStaticClientServedAtRoot(t *testing.T) {
	e, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>")
}
