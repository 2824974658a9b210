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
 * @time: 2025/8/29 11:39
 * @file: router_asset.go
 * @description: brand asset router
 */

func (rt *Router) assetRouter(r *gin.RouterGroup, auth gin.HandlerFunc) {
	asset := r.Group("/asset", auth)
	{
		asset.POST("/upload", rt.uploadAsset)
		asset.GET("/list", rt.listAssets)
		asset.GET("/:assetId/download", rt.downloadAsset)
		asset.DELETE("/:assetId", rt.deleteAsset)
	}
}

func (rt *Router) assetLogic() *logic.AssetLogic {
	assetRepo := repo.NewAssetRepo(rt.Ctx.GetDB())
	brandRepo := repo.NewBrandRepo(rt.Ctx)
	return logic.NewAssetLogic(rt.Ctx, assetRepo, brandRepo, rt.Store, rt.Conf.Storage.Provider)
}

func (rt *Router) uploadAsset(c *gin.Context) {
	brandId := c.PostForm("brandId")
	if brandId == "" {
		http.WithRepErrMsg(c, http.BrandIdIsEmpty.Code, http.BrandIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Request.URL.Path)
		return
	}

	contentType := file.Header.Get("Content-Type")
	asset, err := rt.assetLogic().Upload(currentUserId(c), brandId, file, contentType)
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, asset)
}

func (rt *Router) listAssets(c *gin.Context) {
	brandId := c.Query("brandId")
	if brandId == "" {
		http.WithRepErrMsg(c, http.BrandIdIsEmpty.Code, http.BrandIdIsEmpty.Msg, c.Request.URL.Path)
		return
	}

	assets, err := rt.assetLogic().ListByBrand(brandId, currentUserId(c))
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.DETAIL, assets)
}

func (rt *Router) downloadAsset(c *gin.Context) {
	assetId := c.Param("assetId")
	asset, data, err := rt.assetLogic().Download(assetId, currentUserId(c))
	if err != nil {
		withDomainErr(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+asset.ObjectName)
	c.Data(200, asset.ContentType, data)
}

func (rt *Router) deleteAsset(c *gin.Context) {
	assetId := c.Param("assetId")
	if err := rt.assetLogic().Delete(assetId, currentUserId(c)); err != nil {
		withDomainErr(c, err)
		return
	}

	c.Set(consts.OPERATION, "")
}
