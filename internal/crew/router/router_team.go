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
 * @time: 2025/8/29 10:46
 * @file: router_team.go
 * @description: team router
 */

func (rt *Router) teamRouter(r *gin.RouterGroup, auth gin.HandlerFunc) {
	team := r.Group("/teams", auth)
	{
		team.POST("/create", rt.createTeam)
		team.GET("", rt.listTeams)
		team.GET("/:teamId", rt.getTeam)
		team.PUT("/:teamId", rt.updateTeam)
		team.DELETE("/:teamId", rt.deleteTeam)

		team.GET("/:teamId/members", rt.listMembers)
		team.PUT("/:teamId/members/:userId", rt.updateMemberRole)
		team.DELETE("/:teamId/members/:userId", rt.removeMember)

		team.GET("/:teamId/capabilities", rt.getCapabilities)
	}
}

func (rt *Router) teamLogic() *logic.TeamLogic {
	teamRepo := repo.NewTeamRepo(rt.Ctx)
	userRepo := repo.NewUserRepo(rt.Ctx.GetDB(), rt.Ctx.GetCache())
	return logic.NewTeamLogic(rt.Ctx, teamRepo, userRepo)
}

func (rt *Router) createTeam(c *gin.Context) {
	var req *model.CreateTeamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Request.URL.Path)
		return
	}

	team, err := rt.teamLogic().CreateTeam(currentUserId(c), req)
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, team)
}

func (rt *Router) listTeams(c *gin.Context) {
	teams, err := rt.teamLogic().ListTeams(currentUserId(c))
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, teams)
}

func (rt *Router) getTeam(c *gin.Context) {
	teamId := c.Param("teamId")
	if teamId == "" {
		http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	team, err := rt.teamLogic().GetTeam(teamId, currentUserId(c))
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, team)
}

func (rt *Router) updateTeam(c *gin.Context) {
	teamId := c.Param("teamId")
	if teamId == "" {
		http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	var req *model.UpdateTeamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Request.URL.Path)
		return
	}

	if err := rt.teamLogic().UpdateTeam(teamId, currentUserId(c), req); err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.OPERATION, "")
}

func (rt *Router) deleteTeam(c *gin.Context) {
	teamId := c.Param("teamId")
	if teamId == "" {
		http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	if err := rt.teamLogic().DeleteTeam(teamId, currentUserId(c)); err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.OPERATION, "")
}

func (rt *Router) listMembers(c *gin.Context) {
	teamId := c.Param("teamId")
	if teamId == "" {
		http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	members, err := rt.teamLogic().ListMembers(teamId, currentUserId(c))
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, members)
}

func (rt *Router) updateMemberRole(c *gin.Context) {
	teamId := c.Param("teamId")
	targetId := c.Param("userId")
	if teamId == "" {
		http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	var req *model.UpdateMemberRoleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Request.URL.Path)
		return
	}

	if err := rt.teamLogic().UpdateMemberRole(teamId, currentUserId(c), targetId, req); err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.OPERATION, "")
}

func (rt *Router) removeMember(c *gin.Context) {
	teamId := c.Param("teamId")
	targetId := c.Param("userId")
	if teamId == "" {
		http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	if err := rt.teamLogic().RemoveMember(teamId, currentUserId(c), targetId); err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.OPERATION, "")
}

func (rt *Router) getCapabilities(c *gin.Context) {
	teamId := c.Param("teamId")
	if teamId == "" {
		http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	snapshot, err := rt.teamLogic().GetCapabilities(teamId, currentUserId(c))
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, snapshot)
}
