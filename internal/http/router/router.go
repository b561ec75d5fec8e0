package router

import (
	"basegraph.app/releasenotes/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, runner handler.Runner) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		releaseNotesHandler := handler.NewReleaseNotesHandler(runner)
		ReleaseNotesRouter(v1.Group("/release-notes"), releaseNotesHandler)
	}
}
