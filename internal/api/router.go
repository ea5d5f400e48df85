package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRouter(d *Deps) *gin.Engine {
	r := gin.Default()

	// Pages
	r.GET("/", d.IndexHandler)
	r.GET("/gallery", d.GalleryHandler)
	r.GET("/collections", d.CollectionsHandler)
	r.GET("/image/:id", d.ImageHandler)
	r.GET("/bulk", d.BulkHandler)
	r.GET("/bulk/history", d.BatchHistoryHandler)
	r.GET("/bulk/view/:id", d.BatchViewHandler)
	r.GET("/bulk/view/:id/cancel", d.CancelConfirmHandler)
	r.GET("/login", d.LoginPageHandler)
	r.GET("/register", d.RegisterPageHandler)

	// Actions
	r.POST("/login", d.LoginSubmitHandler)
	r.POST("/register", d.RegisterSubmitHandler)
	r.POST("/logout", d.LogoutHandler)
	r.POST("/generate", d.GenerateHandler)
	r.POST("/batch", d.CreateBatchHandler)
	r.POST("/batch/preview", d.PreviewBatchHandler)
	r.POST("/bulk/view/:id/cancel", d.CancelBatchHandler)
	r.POST("/image/:id/visibility", d.ToggleVisibilityHandler)

	r.GET("/healthz", d.HealthHandler)

	return r
}
