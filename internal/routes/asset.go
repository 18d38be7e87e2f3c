package routes

import (
	"github.com/labstack/echo/v4"

	"hr-system/internal/authz"
	"hr-system/internal/controllers"
	"hr-system/internal/entities"
	"hr-system/pkg/middleware"
)

func runAssetRouter(
	secureGroup *echo.Group,
	assetCtrl *controllers.AssetController,
	attachmentCtrl *controllers.AttachmentController,
	exportCtrl *controllers.ExportController,
	importCtrl *controllers.AssetImportController,
	authMW *middleware.AuthMiddleware,
) {
	assets := secureGroup.Group("/assets")

	// /export объявлен раньше /:id
	assets.GET("/export", exportCtrl.ExportAssets, authMW.RequirePermission(authz.AssetsExport))
	assets.POST("/import", importCtrl.ImportAssets, authMW.RequirePermission(authz.AssetsCreate))

	assets.GET("", assetCtrl.GetAssets, authMW.RequirePermission(authz.AssetsView))
	assets.POST("", assetCtrl.CreateAsset, authMW.RequirePermission(authz.AssetsCreate))
	assets.GET("/:id", assetCtrl.FindAsset, authMW.RequirePermission(authz.AssetsView))
	assets.PATCH("/:id", assetCtrl.UpdateAsset, authMW.RequirePermission(authz.AssetsUpdate))
	assets.DELETE("/:id", assetCtrl.DeleteAsset, authMW.RequirePermission(authz.AssetsDelete))

	assets.GET("/:id/attachments", attachmentCtrl.List(entities.OwnerAssets), authMW.RequirePermission(authz.AttachmentsView))
	assets.POST("/:id/attachments", attachmentCtrl.Upload(entities.OwnerAssets), authMW.RequirePermission(authz.AttachmentsCreate))
}

func runAssetTrackingRouter(
	secureGroup *echo.Group,
	trackingCtrl *controllers.AssetTrackingController,
	exportCtrl *controllers.ExportController,
	authMW *middleware.AuthMiddleware,
) {
	tracking := secureGroup.Group("/asset-tracking")

	tracking.GET("/export", exportCtrl.ExportAssetTrackings, authMW.RequirePermission(authz.TrackingExport))

	tracking.GET("", trackingCtrl.GetAssetTrackings, authMW.RequirePermission(authz.TrackingView))
	tracking.POST("", trackingCtrl.CreateAssetTracking, authMW.RequirePermission(authz.TrackingCreate))
	tracking.GET("/:id", trackingCtrl.FindAssetTracking, authMW.RequirePermission(authz.TrackingView))
	tracking.PATCH("/:id", trackingCtrl.UpdateAssetTracking, authMW.RequirePermission(authz.TrackingUpdate))
	tracking.DELETE("/:id", trackingCtrl.DeleteAssetTracking, authMW.RequirePermission(authz.TrackingDelete))
}
