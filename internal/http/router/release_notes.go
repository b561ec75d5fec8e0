package router

import (
	"basegraph.app/releasenotes/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func ReleaseNotesRouter(rg *gin.RouterGroup, h *handler.ReleaseNotesHandler) {
	rg.POST("", h.Generate)
}
