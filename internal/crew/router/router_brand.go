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
 * @time: 2025/8/29 11:15
 * @file: router_brand.go
 * @description: brand router
 */

func (rt *Router) brandRouter(r *gin.RouterGroup, auth gin.HandlerFunc) {
	brand := r.Group("/brand", auth)
	{
		brand.POST("/create", rt.createBrand)
	}

	team := r.Group("/teams", auth)
	{
		team.POST("/:teamId/assign-brand", rt.assignBrand)
		team.GET("/:teamId/brands", rt.listTeamBrands)
	}
}

func (rt *Router) brandLogic() *logic.BrandLogic {
	brandRepo := repo.NewBrandRepo(rt.Ctx)
	teamRepo := repo.NewTeamRepo(rt.Ctx)
	return logic.NewBrandLogic(rt.Ctx, brandRepo, teamRepo)
}

func (rt *Router) createBrand(c *gin.Context) {
	var req *model.CreateBrandReq
	if err := c.ShouldBindJSON(&req); err != nil {
		http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Request.URL.Path)
		return
	}

	brand, err := rt.brandLogic().CreateBrand(currentUserId(c), req)
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, brand)
}

func (rt *Router) assignBrand(c *gin.Context) {
	teamId := c.Param("teamId")
	if teamId == "" {
		http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	var req *model.AssignBrandReq
	if err := c.ShouldBindJSON(&req); err != nil {
		http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Request.URL.Path)
		return
	}

	assignment, err := rt.brandLogic().AssignBrand(teamId, currentUserId(c), req)
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, assignment)
}

func (rt *Router) listTeamBrands(c *gin.Context) {
	teamId := c.Param("teamId")
	if teamId == "" {
		http.WithRepErrMsg(c, http.TeamIdIsEmpty.Code, http.TeamIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	assignments, err := rt.brandLogic().ListTeamBrands(teamId, currentUserId(c))
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, assignments)
}
