package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-room-booking/internal/utils"
)

const testSecret = "test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, CurrentUser, bool) {
	t.Helper()
	e := echo.New()
	var got CurrentUser
	var gotOK bool
	h := mw(func(c echo.Context) error {
		got, gotOK = UserFrom(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	err := h(e.NewContext(req, rec))
	require.NoError(t, err)
	return rec, got, gotOK
}

func TestJWTAuthInjectsIdentity(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 42, "customer", 5)
	require.NoError(t, err)

	rec, user, ok := doRequest(t, JWTAuth(testSecret), "Bearer "+access.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)
	assert.Equal(t, uint64(42), user.ID)
	assert.Equal(t, "customer", user.Role)
}

func TestJWTAuthRejects(t *testing.T) {
	access, err := utils.NewAccessToken("other-secret", 42, "customer", 5)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + access.Token},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _, ok := doRequest(t, JWTAuth(testSecret), tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, ok)
		})
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	run := func(user *CurrentUser, roles ...string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if user != nil {
			c.Set(ctxUserKey, *user)
		}
		err := RequireRole(roles...)(handler)(c)
		require.NoError(t, err)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run(&CurrentUser{ID: 1, Role: "admin"}, "admin"))
	assert.Equal(t, http.StatusOK, run(&CurrentUser{ID: 1, Role: "customer"}, "customer", "admin"))
	assert.Equal(t, http.StatusForbidden, run(&CurrentUser{ID: 1, Role: "customer"}, "admin"))
	assert.Equal(t, http.StatusForbidden, run(nil, "admin"))
}

func TestIdentityKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "guest", identity(c))

	c.Set(ctxUserKey, CurrentUser{ID: 7, Role: "customer"})
	assert.Equal(t, "u7", identity(c))
}
