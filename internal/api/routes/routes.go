package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/api/handlers"
)

type Deps struct {
	Capture   *handlers.CaptureHandler
	Recording *handlers.RecordingHandler
	Pipeline  *handlers.PipelineHandler
	WS        *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", d.Capture.Health)

	r.POST("/start-recording", d.Capture.Start)
	r.POST("/stop-recording", d.Capture.Stop)

	r.POST("/transcribe/:id", d.Pipeline.Transcribe)
	r.POST("/summarize/:id", d.Pipeline.Summarize)

	r.GET("/recordings", d.Recording.List)
	r.GET("/recording/:id", d.Recording.Get)
	r.DELETE("/recording/:id", d.Recording.Delete)
	r.POST("/search", d.Recording.Search)
	r.GET("/video/:id", d.Recording.StreamVideo)
	r.POST("/recording/:id/archive", d.Recording.Archive)

	// WebSocket
	r.GET("/ws/status", d.WS.StatusWS)
}
