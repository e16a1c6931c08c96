package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var testCSRFSecret = []byte("01234567890123456789012345678901")

func setupCSRFRouter() *gin.Engine {
	router := gin.New()
	router.Use(CSRFMiddleware(testCSRFSecret, false, nil))
	router.GET("/form", func(c *gin.Context) {
		c.String(http.StatusOK, GetCSRFToken(c))
	})
	router.POST("/form", func(c *gin.Context) {
		c.String(http.StatusOK, "submitted")
	})
	router.POST("/items/:id/delete", func(c *gin.Context) {
		c.String(http.StatusOK, "deleted "+c.Param("id"))
	})
	return router
}

func TestCSRFMiddleware_AllowsGETAndSetsToken(t *testing.T) {
	router := setupCSRFRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.String())
}

func TestCSRFMiddleware_BlocksPOSTWithoutToken(t *testing.T) {
	router := setupCSRFRouter()

	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader("a=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Session Expired")
}

func TestCSRFMiddleware_RejectedPOSTSkipsHandler(t *testing.T) {
	router := setupCSRFRouter()

	req := httptest.NewRequest(http.MethodPost, "/items/42/delete", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NotContains(t, w.Body.String(), "deleted 42")
}

func TestCSRFMiddleware_AcceptsPOSTWithToken(t *testing.T) {
	router := setupCSRFRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/form", nil))
	token := w.Body.String()
	cookies := w.Result().Cookies()

	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(url.Values{CSRFFieldName: {token}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "submitted", w.Body.String())
}

func TestCSRFErrorHandler_JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/admin/homepage", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()

	csrfErrorHandler(nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestRefererPath(t *testing.T) {
	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{"same host", "http://example.com/admin/homepage?x=1", "/admin/homepage?x=1"},
		{"other host", "http://evil.com/admin/homepage", ""},
		{"relative", "/admin/login", "/admin/login"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "http://example.com/admin/homepage", nil)
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			assert.Equal(t, tt.want, refererPath(req))
		})
	}
}
