package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-crew/crew/internal/crew/consts"
	"github.com/go-crew/crew/internal/crew/logic"
	"github.com/go-crew/crew/internal/crew/repo"
	"github.com/go-crew/crew/pkg/http"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/8/29 11:27
 * @file: router_social.go
 * @description: social platform connection router
 */

func (rt *Router) socialRouter(r *gin.RouterGroup, auth gin.HandlerFunc) {
	social := r.Group("/social", auth)
	{
		social.GET("/connections", rt.listConnections)
		social.GET("/:provider/authorize", rt.socialAuthorize)
		social.GET("/:provider/callback", rt.socialCallback)
		social.DELETE("/:provider", rt.socialDisconnect)
	}
}

func (rt *Router) socialLogic() *logic.SocialLogic {
	socialRepo := repo.NewSocialRepo(rt.Ctx.GetDB())
	return logic.NewSocialLogic(rt.Ctx, socialRepo, rt.Conf.OAuth)
}

func (rt *Router) socialAuthorize(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		http.WithRepErrMsg(c, http.ProviderIsRequired.Code, http.ProviderIsRequired.Msg, c.Request.URL.Path)
		return
	}

	url, err := rt.socialLogic().AuthorizeURL(provider, c.Query("state"))
	if err != nil {
		http.WithRepErrMsg(c, http.UnsupportedProviders.Code, err.Error(), c.Request.URL.Path)
		return
	}

	c.Set(consts.DETAIL, map[string]string{"authorizeUrl": url})
}

func (rt *Router) socialCallback(c *gin.Context) {
	provider := c.Param("provider")
	code := c.Query("code")
	if provider == "" {
		http.WithRepErrMsg(c, http.ProviderIsRequired.Code, http.ProviderIsRequired.Msg, c.Request.URL.Path)
		return
	}

	view, err := rt.socialLogic().HandleCallback(currentUserId(c), provider, code)
	if err != nil {
		http.WithRepErrMsg(c, http.TokenExchangeFailed.Code, err.Error(), c.Request.URL.Path)
		return
	}

	c.Set(consts.DETAIL, view)
}

func (rt *Router) listConnections(c *gin.Context) {
	views, err := rt.socialLogic().ListConnections(currentUserId(c))
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, views)
}

func (rt *Router) socialDisconnect(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		http.WithRepErrMsg(c, http.ProviderIsRequired.Code, http.ProviderIsRequired.Msg, c.Request.URL.Path)
		return
	}

	if err := rt.socialLogic().Disconnect(currentUserId(c), provider); err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.OPERATION, "")
}
