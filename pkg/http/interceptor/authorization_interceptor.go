package interceptor

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-crew/crew/pkg/cache"
	"github.com/go-crew/crew/pkg/http"
	"github.com/go-crew/crew/pkg/http/jwt"
	"github.com/go-crew/crew/pkg/log"
	goJwt "github.com/golang-jwt/jwt/v5"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/3/9 21:28
 * @file: authorization_interceptor.go
 * @description: authorization interceptor
 */

// AuthorizationInterceptor 鉴权拦截器
// This function is used as the middleware of gin.
func AuthorizationInterceptor(secretKey, tokenPrefix string, rc cache.ICache) gin.HandlerFunc {
	return func(c *gin.Context) {
		aToken := c.Request.Header.Get("Authorization")
		if aToken == "" {
			http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Request.URL.Path)
			c.Abort()
			return
		}

		// 按空格分割
		parts := strings.SplitN(aToken, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			http.WithRepErrMsg(c, http.TokenFormatIncorrect.Code, http.TokenFormatIncorrect.Msg, c.Request.URL.Path)
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(parts[1], secretKey)
		if err != nil {
			// 检查是否是令牌过期错误
			if errors.Is(err, goJwt.ErrTokenExpired) {
				http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Request.URL.Path)
				c.Abort()
				return
			}
			// 其他令牌无效的情况，返回错误
			http.WithRepErrMsg(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Request.URL.Path)
			log.Errorf("parse token failed: %v", err)
			c.Abort()
			return
		}

		if !isTokenExist(c, rc, tokenPrefix+claims.UserId) {
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// isTokenExist 检查 Token 是否存在
func isTokenExist(c *gin.Context, rc cache.ICache, token string) bool {
	exists, err := rc.Exists(c.Request.Context(), token).Result()
	if err != nil {
		// Redis 出错
		http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Request.URL.Path)
		log.Errorf("redis check token exists failed: %v", err)
		c.Abort()
		return false
	}
	if exists == 0 {
		// Token 不存在，视为已登出或过期
		http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Request.URL.Path)
		c.Abort()
		return false
	}
	return true
}
