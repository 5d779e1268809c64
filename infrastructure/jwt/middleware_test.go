package jwt_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Arhamsiaf65/CityInsights/infrastructure/jwt"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newRouter(t *testing.T, m *jwt.Manager) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()

	whoami := func(c *gin.Context) {
		claims, ok := jwt.GetClaims(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, claims.Sub+":"+claims.Role)
	}

	r.GET("/private", jwt.Middleware(m), whoami)
	r.GET("/optional", jwt.OptionalMiddleware(m), whoami)
	r.GET("/admin", jwt.Middleware(m), jwt.RequireRole("admin"), whoami)
	return r
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestManager_RoundTrip(t *testing.T) {
	t.Parallel()

	m := jwt.NewManager(testSecret, time.Hour)
	token, err := m.GenerateToken("user-1", "publisher")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "publisher", claims.Role)
}

func TestManager_RejectsForeignSecret(t *testing.T) {
	t.Parallel()

	token, err := jwt.NewManager("other", time.Hour).GenerateToken("user-1", "user")
	require.NoError(t, err)

	_, err = jwt.NewManager(testSecret, time.Hour).ValidateToken(token)
	require.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestManager_RejectsExpired(t *testing.T) {
	t.Parallel()

	token, err := jwt.NewManager(testSecret, -time.Minute).GenerateToken("user-1", "user")
	require.NoError(t, err)

	_, err = jwt.NewManager(testSecret, time.Hour).ValidateToken(token)
	require.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	m := jwt.NewManager(testSecret, time.Hour)
	r := newRouter(t, m)
	userToken, err := m.GenerateToken("u1", "user")
	require.NoError(t, err)
	adminToken, err := m.GenerateToken("a1", "admin")
	require.NoError(t, err)

	cases := []struct {
		name     string
		path     string
		token    string
		wantCode int
		wantBody string
	}{
		{name: "private without token", path: "/private", wantCode: http.StatusUnauthorized},
		{name: "private with garbage", path: "/private", token: "garbage", wantCode: http.StatusUnauthorized},
		{name: "private with token", path: "/private", token: userToken, wantCode: http.StatusOK, wantBody: "u1:user"},
		{name: "optional anonymous", path: "/optional", wantCode: http.StatusOK, wantBody: "anonymous"},
		{name: "optional bad token is anonymous", path: "/optional", token: "garbage", wantCode: http.StatusOK, wantBody: "anonymous"},
		{name: "optional with token", path: "/optional", token: userToken, wantCode: http.StatusOK, wantBody: "u1:user"},
		{name: "admin as user", path: "/admin", token: userToken, wantCode: http.StatusForbidden},
		{name: "admin as admin", path: "/admin", token: adminToken, wantCode: http.StatusOK, wantBody: "a1:admin"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			w := do(r, tc.path, tc.token)
			assert.Equal(t, tc.wantCode, w.Code)
			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, w.Body.String())
			}
		})
	}
}
