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
 * @time: 2025/8/29 11:02
 * @file: router_invitation.go
 * @description: team invitation router
 */

func (rt *Router) invitationRouter(r *gin.RouterGroup, auth gin.HandlerFunc) {
	team := r.Group("/teams", auth)
	{
		team.POST("/:teamId/invite", rt.inviteMember)
		team.GET("/:teamId/invitations", rt.listTeamInvitations)
		team.DELETE("/:teamId/invitations/:invitationId", rt.cancelInvitation)

		// 当前用户收到的邀请，静态段优先于 :teamId
		team.GET("/invitations", rt.listMyInvitations)
		team.GET("/invitations/:invitationId", rt.getInvitation)
		team.POST("/invitations/:invitationId/accept", rt.acceptInvitation)
		team.POST("/invitations/:invitationId/decline", rt.declineInvitation)
	}
}

func (rt *Router) invitationLogic() *logic.InvitationLogic {
	invitationRepo := repo.NewInvitationRepo(rt.Ctx)
	teamRepo := repo.NewTeamRepo(rt.Ctx)
	userRepo := repo.NewUserRepo(rt.Ctx.GetDB(), rt.Ctx.GetCache())
	return logic.NewInvitationLogic(rt.Ctx, invitationRepo, teamRepo, userRepo)
}

func (rt *Router) inviteMember(c *gin.Context) {
	teamId := c.Param("teamId")
	if teamId == "" {
		http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	var req *model.InviteMemberReq
	if err := c.ShouldBindJSON(&req); err != nil {
		http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Request.URL.Path)
		return
	}

	invitation, err := rt.invitationLogic().InviteMember(teamId, currentUserId(c), req)
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, invitation)
}

func (rt *Router) listTeamInvitations(c *gin.Context) {
	teamId := c.Param("teamId")
	if teamId == "" {
		http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	views, err := rt.invitationLogic().ListTeamInvitations(teamId, currentUserId(c))
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, views)
}

func (rt *Router) cancelInvitation(c *gin.Context) {
	teamId := c.Param("teamId")
	invitationId := c.Param("invitationId")
	if invitationId == "" {
		http.WithRepErrMsg(c, http.InvitationIdIsEmpty.Code, http.InvitationIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	if err := rt.invitationLogic().CancelInvitation(teamId, invitationId, currentUserId(c)); err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.OPERATION, "")
}

func (rt *Router) listMyInvitations(c *gin.Context) {
	views, err := rt.invitationLogic().ListMyInvitations(currentUserId(c))
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, views)
}

func (rt *Router) getInvitation(c *gin.Context) {
	invitationId := c.Param("invitationId")
	if invitationId == "" {
		http.WithRepErrMsg(c, http.InvitationIdIsEmpty.Code, http.InvitationIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	view, err := rt.invitationLogic().GetInvitation(invitationId)
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, view)
}

func (rt *Router) acceptInvitation(c *gin.Context) {
	invitationId := c.Param("invitationId")
	if invitationId == "" {
		http.WithRepErrMsg(c, http.InvitationIdIsEmpty.Code, http.InvitationIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	invitation, err := rt.invitationLogic().Accept(invitationId, currentUserId(c))
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, invitation)
}

func (rt *Router) declineInvitation(c *gin.Context) {
	invitationId := c.Param("invitationId")
	if invitationId == "" {
		http.WithRepErrMsg(c, http.InvitationIdIsEmpty.Code, http.InvitationIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	invitation, err := rt.invitationLogic().Decline(invitationId, currentUserId(c))
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, invitation)
}
