package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestControllerFromRoute(t *testing.T) {
	tests := []struct {
		route string
		want  string
	}{
		{"/api/v1/invoices/:id/pdf", "invoices"},
		{"/api/v1/partner/customers", "partner"},
		{"/health", "health"},
		{"/api/v2/:id", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			assert.Equal(t, tt.want, controllerFromRoute(tt.route))
		})
	}
}

func TestProfilingWithConfig_LabelsRequest(t *testing.T) {
	var route, controller string

	r := gin.New()
	r.Use(ProfilingWithConfig(DefaultProfilingConfig()))
	r.GET("/api/v1/invoices/:id", func(c *gin.Context) {
		route, _ = pprof.Label(c.Request.Context(), "route")
		controller, _ = pprof.Label(c.Request.Context(), "controller")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/invoices/9", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/api/v1/invoices/:id", route)
	assert.Equal(t, "invoices", controller)
}

func TestProfilingWithConfig_SkipsConfiguredPaths(t *testing.T) {
	var found bool

	r := gin.New()
	r.Use(ProfilingWithConfig(DefaultProfilingConfig()))
	r.GET("/health", func(c *gin.Context) {
		_, found = pprof.Label(c.Request.Context(), "route")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, found)
}

func TestProfilingWithConfig_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(ProfilingWithConfig(ProfilingConfig{}))
	r.GET("/api/v1/ping", okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
