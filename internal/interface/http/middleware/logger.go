package middleware

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/asfundyarkhan/ticktok-sub001/pkg/metrics"
)

// HeaderRequestID 请求ID头(便于跨服务串联日志)
const HeaderRequestID = "X-Request-ID"

// RequestLogger 请求日志中间件
// 1. 为每个请求生成/透传request_id
// 2. 记录方法、路径、状态码、耗时
// 3. 上报HTTP指标
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		if metrics.HTTPRequestsInProgress != nil {
			metrics.HTTPRequestsInProgress.Inc()
			defer metrics.HTTPRequestsInProgress.Dec()
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		// 用路由模板而不是原始路径,避免指标基数爆炸
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		log.Printf("[%s] %s %s status=%d latency=%s",
			requestID, c.Request.Method, c.Request.URL.Path, status, latency)

		if metrics.HTTPRequestsTotal != nil {
			metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
				"method": c.Request.Method,
				"path":   path,
				"status": strconv.Itoa(status),
			})
		}
		if metrics.HTTPRequestDuration != nil {
			metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
				"method": c.Request.Method,
				"path":   path,
			}, latency.Seconds())
		}
	}
}
