package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func AccessLogFormat(log *zap.Logger) gin.HandlerFunc {
	// 使用 sugar logger
	sugar := log.Sugar()
	// exclude api path
	// tips: 这里的路径是不需要记录日志的路径，url为端口后的全部路径
	excludedPaths := map[string]bool{
		"/health": true,
	}

	return func(c *gin.Context) {
		// 检查是否需要跳过日志
		if excludedPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		// 记录开始时间
		start := time.Now()

		// 处理请求
		c.Next()

		// 计算延迟
		latency := time.Since(start)

		// 构建查询字符串
		queryStr := ""
		if raw := c.Request.URL.RawQuery; raw != "" {
			queryStr = "?" + raw
		}

		// 使用 sugar logger 记录访问日志
		sugar.Infow("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", queryStr,
			"status", c.Writer.Status(),
			"ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
			"latency", latency.String(),
		)
	}
}
