package router

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/go-crew/crew/internal/crew/conf"
	"github.com/go-crew/crew/internal/crew/logic"
	"github.com/go-crew/crew/pkg/ctx"
	httpx "github.com/go-crew/crew/pkg/http"
	"github.com/go-crew/crew/pkg/http/interceptor"
	"github.com/go-crew/crew/pkg/http/jwt"
	"github.com/go-crew/crew/pkg/storage"
	"github.com/go-crew/crew/pkg/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/8/29 10:12
 * @file: router.go
 * @description: setup router
 *  		     internal api router, use by web
 */

type Router struct {
	Http  *httpx.Http
	Ctx   *ctx.Context
	Conf  *conf.AppConfig
	Store storage.StorageProvider
}

func NewRouter(httpConf *httpx.Http, appCtx *ctx.Context, appConf *conf.AppConfig, store storage.StorageProvider) *Router {
	return &Router{
		Http:  httpConf,
		Ctx:   appCtx,
		Conf:  appConf,
		Store: store,
	}
}

func (rt *Router) Router(logger *zap.Logger) *gin.Engine {

	gin.SetMode(rt.Http.Mode)

	r := gin.New()

	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
		fmt.Printf("[Crew] %-6s %-25s --> %s (%d handlers) \n", httpMethod, absolutePath, handlerName, nuHandlers)
	}

	// cors interceptor
	r.Use(interceptor.CorsInterceptor())

	// panic recover
	r.Use(interceptor.ExceptionInterceptor)

	// unified response interceptor
	r.Use(interceptor.UnifiedResponseInterceptor())

	if rt.Http.AccessLog {
		r.Use(httpx.AccessLogFormat(logger))
	}

	if rt.Http.PProf {
		pprof.Register(r, "/debug/pprof")
	}

	if rt.Http.ExposeMetrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.GetVersion())
	})

	// crew router, internal api router
	crew := r.Group(rt.Http.InternalContextPath)
	{
		rt.routerGroup(crew)
	}

	return r
}

func (rt *Router) routerGroup(r *gin.RouterGroup) {

	auth := interceptor.AuthorizationInterceptor(rt.Http.Auth.SecretKey, rt.Http.Auth.RedisKeyPrefix, rt.Ctx.GetCache())

	rt.userRouter(r, auth)
	rt.teamRouter(r, auth)
	rt.invitationRouter(r, auth)
	rt.brandRouter(r, auth)
	rt.socialRouter(r, auth)
	rt.assetRouter(r, auth)
}

// currentUserId 从鉴权中间件写入的 claims 中取当前用户
func currentUserId(c *gin.Context) string {
	claims, ok := c.Get("claims")
	if !ok {
		return ""
	}
	authClaims, ok := claims.(*jwt.AuthClaims)
	if !ok {
		return ""
	}
	return authClaims.UserId
}

// withDomainErr 业务错误到响应码的统一映射，未识别的错误按 Failed 返回原始信息
func withDomainErr(c *gin.Context, err error) {
	path := c.Request.URL.Path

	var resp *httpx.Response
	switch {
	case errors.Is(err, logic.ErrNotAMember):
		resp = httpx.NotAMember
	case errors.Is(err, logic.ErrInsufficientCapability):
		resp = httpx.InsufficientCapability
	case errors.Is(err, logic.ErrTeamNotFound):
		resp = httpx.TeamNotFound
	case errors.Is(err, logic.ErrInvitationNotFound):
		resp = httpx.InvitationNotFound
	case errors.Is(err, logic.ErrInvitationExpired):
		resp = httpx.InvitationExpired
	case errors.Is(err, logic.ErrInvitationClosed):
		httpx.WithRepErrMsg(c, httpx.BadRequest.Code, err.Error(), path)
		return
	case errors.Is(err, logic.ErrEmailMismatch):
		resp = httpx.InvitationNotForYou
	case errors.Is(err, logic.ErrAlreadyMember):
		resp = httpx.AlreadyMember
	case errors.Is(err, logic.ErrDuplicateAssignment):
		resp = httpx.DuplicateAssignment
	case errors.Is(err, logic.ErrOwnerCannotBeRemoved):
		resp = httpx.OwnerCannotBeRemoved
	case errors.Is(err, logic.ErrBrandNotFound):
		resp = httpx.BrandNotFound
	case errors.Is(err, logic.ErrBrandAccessDenied):
		resp = httpx.PermissionDenied
	case errors.Is(err, logic.ErrAssetNotFound):
		resp = httpx.AssetNotFound
	default:
		httpx.WithRepErrMsg(c, httpx.Failed.Code, err.Error(), path)
		return
	}

	httpx.WithRepErrMsg(c, resp.Code, resp.Msg, path)
}
