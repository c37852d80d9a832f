package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	var seen string
	r.GET("/ping", func(c *gin.Context) {
		seen = c.GetString(KeyRequestID)
		c.Status(http.StatusOK)
	})

	// 透传调用方的 id
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(KeyRequestID, "rid-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "rid-123", seen)
	assert.Equal(t, "rid-123", w.Header().Get(KeyRequestID))

	// 缺省生成
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(KeyRequestID))

	// 超长 id 丢弃重新生成
	long := strings.Repeat("a", 100)
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(KeyRequestID, long)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, long, w.Header().Get(KeyRequestID))
	assert.NotEmpty(t, w.Header().Get(KeyRequestID))
}

func TestMetricsNamespace(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(mfs))
	for _, mf := range mfs {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "rbac_http_requests_total")
	assert.Contains(t, names, "rbac_http_request_duration_seconds")
}
