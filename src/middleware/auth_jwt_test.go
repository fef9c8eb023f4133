package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Backend-Feedback/src/database/inmem"
	"Backend-Feedback/src/models"
	"Backend-Feedback/src/testutil"
	"Backend-Feedback/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	app     *fiber.App
	db      *inmem.DB
	jwt     *utils.JWTManager
	admin   *models.CurrentUser
	teacher *models.CurrentUser
}

func newAuthFixture(t *testing.T) *authFixture {
	db := inmem.NewDB()
	jwt := utils.NewJWTManager("test-secret", time.Hour)
	auth := NewAuth(jwt, utils.NewTokenBlacklist(nil), db)

	app := fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
	app.Use(RequestID)
	app.Get("/me", auth.AuthJWT, func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).Email)
	})
	app.Get("/admin", auth.AuthJWT, RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/maybe", auth.OptionalAuth, func(c *fiber.Ctx) error {
		if user := CurrentUser(c); user != nil {
			return c.SendString(string(user.Role))
		}
		return c.SendString("anonymous")
	})

	return &authFixture{
		app:     app,
		db:      db,
		jwt:     jwt,
		admin:   testutil.SeedAccount(t, db, models.RoleAdmin, "Ada Admin"),
		teacher: testutil.SeedAccount(t, db, models.RoleTeacher, "Tom Teacher"),
	}
}

func (f *authFixture) token(t *testing.T, user *models.CurrentUser) string {
	t.Helper()
	token, _, err := f.jwt.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	require.NoError(t, err)
	return token
}

func (f *authFixture) do(t *testing.T, req *http.Request) (int, string) {
	t.Helper()
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestAuthJWT(t *testing.T) {
	f := newAuthFixture(t)

	t.Run("cookie session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: f.token(t, f.teacher)})
		status, body := f.do(t, req)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, f.teacher.Email, body)
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+f.token(t, f.admin))
		status, body := f.do(t, req)
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, f.admin.Email, body)
	})

	t.Run("missing token", func(t *testing.T) {
		status, _ := f.do(t, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		status, _ := f.do(t, req)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("deactivated account", func(t *testing.T) {
		account, err := f.db.FindAccountByID(context.Background(), f.teacher.ID)
		require.NoError(t, err)
		account.IsActive = false
		require.NoError(t, f.db.UpdateAccount(context.Background(), account))
		defer func() {
			account.IsActive = true
			_ = f.db.UpdateAccount(context.Background(), account)
		}()

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: f.token(t, f.teacher)})
		status, _ := f.do(t, req)
		assert.Equal(t, http.StatusForbidden, status)
	})
}

func TestRequireRole(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: f.token(t, f.teacher)})
	status, _ := f.do(t, req)
	assert.Equal(t, http.StatusForbidden, status)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: f.token(t, f.admin)})
	status, body := f.do(t, req)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)
}

func TestOptionalAuth(t *testing.T) {
	f := newAuthFixture(t)

	_, body := f.do(t, httptest.NewRequest(http.MethodGet, "/maybe", nil))
	assert.Equal(t, "anonymous", body)

	req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
	req.Header.Set("Authorization", "Bearer broken")
	status, body := f.do(t, req)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anonymous", body)

	req = httptest.NewRequest(http.MethodGet, "/maybe", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: f.token(t, f.admin)})
	_, body = f.do(t, req)
	assert.Equal(t, "admin", body)
}

func TestRequestID(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/maybe", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/maybe", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	resp, err = f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", resp.Header.Get("X-Request-ID"))
}
