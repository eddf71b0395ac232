package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"gutterbook/config"
)

func newStaffRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin/ping", StaffAuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestStaffAuthMiddleware(t *testing.T) {
	config.AppConfig.AdminAPIKey = "test-admin-key"
	r := newStaffRouter()

	tests := []struct {
		name   string
		header func(*http.Request)
		want   int
	}{
		{
			name:   "no credentials",
			header: func(req *http.Request) {},
			want:   http.StatusUnauthorized,
		},
		{
			name: "wrong token",
			header: func(req *http.Request) {
				req.Header.Set("X-Admin-Token", "nope")
			},
			want: http.StatusUnauthorized,
		},
		{
			name: "admin token header",
			header: func(req *http.Request) {
				req.Header.Set("X-Admin-Token", "test-admin-key")
			},
			want: http.StatusOK,
		},
		{
			name: "bearer token",
			header: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer test-admin-key")
			},
			want: http.StatusOK,
		},
		{
			name: "malformed authorization header",
			header: func(req *http.Request) {
				req.Header.Set("Authorization", "test-admin-key")
			},
			want: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			tc.header(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestStaffAuthMiddleware_NoKeyConfigured(t *testing.T) {
	config.AppConfig.AdminAPIKey = ""
	r := newStaffRouter()

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("X-Admin-Token", "")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
