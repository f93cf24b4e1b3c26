package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/services"
)

// PipelineHandler exposes the synchronous transcription and summarization
// orchestrators. Both calls block the request for the engine's full
// duration.
type PipelineHandler struct {
	transcription services.TranscriptionService
	summaries     services.SummaryService
}

func NewPipelineHandler(t services.TranscriptionService, s services.SummaryService) *PipelineHandler {
	return &PipelineHandler{transcription: t, summaries: s}
}

func (h *PipelineHandler) Transcribe(c *gin.Context) {
	id, ok := recordingID(c)
	if !ok {
		return
	}

	res, err := h.transcription.Transcribe(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "completed",
		"transcript": res.Text,
		"segments":   res.Segments,
	})
}

func (h *PipelineHandler) Summarize(c *gin.Context) {
	id, ok := recordingID(c)
	if !ok {
		return
	}

	res, err := h.summaries.Summarize(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "completed",
		"summary":    res.Summary,
		"key_points": res.KeyPoints,
	})
}
