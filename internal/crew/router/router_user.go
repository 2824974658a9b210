package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-crew/crew/internal/crew/consts"
	"github.com/go-crew/crew/internal/crew/logic"
	"github.com/go-crew/crew/internal/crew/model"
	"github.com/go-crew/crew/internal/crew/repo"
	"github.com/go-crew/crew/pkg/http"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2025/8/29 10:31
 * @file: router_user.go
 * @description: user router
 */

func (rt *Router) userRouter(r *gin.RouterGroup, auth gin.HandlerFunc) {
	user := r.Group("/user")
	{
		// not auth
		user.POST("/login", rt.login)
		user.POST("/register", rt.register)

		// auth
		user.POST("/logout", auth, rt.logout)
		user.GET("/refresh", auth, rt.refresh)
		user.GET("/getUserInfo", auth, rt.getUserInfo)
		user.PUT("/preferences", auth, rt.updatePreferences)
	}
}

func (rt *Router) userLogic() *logic.UserLogic {
	userRepo := repo.NewUserRepo(rt.Ctx.GetDB(), rt.Ctx.GetCache())
	return logic.NewUserLogic(rt.Ctx, userRepo)
}

func (rt *Router) login(c *gin.Context) {
	var login *model.Login
	if err := c.ShouldBindJSON(&login); err != nil {
		http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Request.URL.Path)
		return
	}

	user, err := rt.userLogic().Login(login, rt.Http.Auth)
	if err != nil {
		http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Request.URL.Path)
		return
	}

	c.Set(consts.DETAIL, user)
}

func (rt *Router) register(c *gin.Context) {
	var register *model.Register
	if err := c.ShouldBindJSON(&register); err != nil {
		http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Request.URL.Path)
		return
	}

	if err := rt.userLogic().Register(register); err != nil {
		http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Request.URL.Path)
		return
	}

	c.Set(consts.OPERATION, "")
}

func (rt *Router) refresh(c *gin.Context) {
	userId := currentUserId(c)
	refreshToken := c.Query("refreshToken")

	token, err := rt.userLogic().Refresh(userId, refreshToken, &rt.Http.Auth)
	if err != nil {
		http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Request.URL.Path)
		return
	}

	c.Set(consts.DETAIL, token)
}

func (rt *Router) logout(c *gin.Context) {
	if err := rt.userLogic().Logout(currentUserId(c), rt.Http.Auth); err != nil {
		http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Request.URL.Path)
		return
	}

	c.Set(consts.OPERATION, "")
}

func (rt *Router) updatePreferences(c *gin.Context) {
	var req *model.UpdatePreferencesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Request.URL.Path)
		return
	}

	if err := rt.userLogic().UpdatePreferences(currentUserId(c), req.Preferences); err != nil {
		http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Request.URL.Path)
		return
	}

	c.Set(consts.OPERATION, "")
}

func (rt *Router) getUserInfo(c *gin.Context) {
	userInfo, err := rt.userLogic().GetUserInfo(currentUserId(c))
	if err != nil {
		http.WithRepErrMsg(c, http.Failed.Code, err.Error(), c.Request.URL.Path)
		return
	}

	c.Set(consts.DETAIL, userInfo)
}
