package routers

import (
	"github.com/gin-gonic/gin"

	"dip/backend/internal/app/pkg/logger"
	"dip/backend/internal/app/server/handlers/job"
	"dip/backend/internal/app/server/handlers/upload"
	"dip/backend/internal/app/server/middlewares"
)

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(
	jobHandler *job.JobHandler,
	uploadHandler *upload.UploadHandler,
	jwtSecret string,
	log logger.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.ErrorHandler())
	r.Use(middlewares.Identity(jwtSecret))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "dip-apiserver",
			"message": "Service is running",
		})
	})

	v1 := r.Group("/api/v1")
	{
		uploads := v1.Group("/uploads")
		{
			uploads.POST("/grant", uploadHandler.Grant)
		}

		jobs := v1.Group("/jobs")
		{
			jobs.POST("", jobHandler.Create)
			jobs.GET("/:id", jobHandler.Get)
			jobs.GET("/:id/download", jobHandler.Download)
		}
	}

	return r
}
