package readonly

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(m *Middleware) *gin.Engine {
	router := gin.New()
	router.Use(m.Handler())
	ok := func(c *gin.Context) {
		if IsReadOnly(c) {
			c.String(http.StatusOK, "OK read-only")
			return
		}
		c.String(http.StatusOK, "OK")
	}
	router.GET("/admin/homepage", ok)
	router.POST("/admin/homepage", ok)
	router.POST("/admin/homepage/featured/:id/up", ok)
	router.POST("/admin/login", ok)
	router.POST("/admin/logout", ok)
	router.DELETE("/admin/homepage", ok)
	return router
}

func serve(router *gin.Engine, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNewMiddleware(t *testing.T) {
	assert.True(t, NewMiddleware(true).IsEnabled())
	assert.False(t, NewMiddleware(false).IsEnabled())
}

func TestMiddleware_Disabled(t *testing.T) {
	router := newRouter(NewMiddleware(false))

	w := serve(router, http.MethodPost, "/admin/homepage", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestMiddleware_AllowsReads(t *testing.T) {
	router := newRouter(NewMiddleware(true))

	w := serve(router, http.MethodGet, "/admin/homepage", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK read-only", w.Body.String())
}

func TestMiddleware_BlocksWrites(t *testing.T) {
	router := newRouter(NewMiddleware(true))

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/admin/homepage"},
		{http.MethodPost, "/admin/homepage/featured/f1/up"},
		{http.MethodDelete, "/admin/homepage"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := serve(router, tc.method, tc.path, nil)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Contains(t, w.Body.String(), "read-only mode")
		})
	}
}

func TestMiddleware_AllowsLoginFlow(t *testing.T) {
	router := newRouter(NewMiddleware(true))

	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/admin/login", nil).Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodPost, "/admin/logout", nil).Code)
}

func TestMiddleware_JSONResponse(t *testing.T) {
	router := newRouter(NewMiddleware(true))

	w := serve(router, http.MethodPost, "/admin/homepage", map[string]string{"Accept": "application/json"})
	require.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["read_only"])
}
