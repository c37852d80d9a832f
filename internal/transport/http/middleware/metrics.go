package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// rbac_ 前缀隔离本服务的指标命名空间
var (
	httpReqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rbac",
			Name:      "http_requests_total",
			Help:      "Count of handled HTTP requests",
		},
		[]string{"path", "method", "status"},
	)
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rbac",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of handled HTTP requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)

func init() { prometheus.MustRegister(httpReqTotal, httpLatency) }

// Metrics 按路由模板计数；未匹配到路由的请求归到原始路径
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		httpReqTotal.WithLabelValues(path, method, strconv.Itoa(c.Writer.Status())).Inc()
		httpLatency.WithLabelValues(path, method).Observe(time.Since(start).Seconds())
	}
}
