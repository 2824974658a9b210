package interceptor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-crew/crew/internal/crew/consts"
	httpx "github.com/go-crew/crew/pkg/http"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/9 21:25
 * @file: unified_resp_interceptor.go
 * @description: 统一响应拦截器
 */

// UnifiedResponseInterceptor 统一响应拦截器
// c.Set("detail", value) 用于设置响应数据
// 如有其他需要，可自行添加
func UnifiedResponseInterceptor() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// 已经写过响应体，或被上游中断，不再处理
		if c.IsAborted() || c.Writer.Written() {
			return
		}

		// 业务逻辑错误
		if c.Writer.Status() != http.StatusOK {
			httpx.WithRepErrMsg(c, httpx.Failed.Code, httpx.Failed.Msg, c.Request.URL.Path)
			return
		}

		// 业务逻辑正确, 设置响应数据
		if detail, ok := c.Get(consts.DETAIL); ok {
			httpx.WithRepJSON(c, detail)
			return
		}

		// 业务逻辑正确, 无响应数据, 只返回结果
		if _, ok := c.Get(consts.OPERATION); ok {
			httpx.WithRepNotDetail(c)
		}
	}
}
