package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/repositories/postgres"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/services"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/utils"
)

type RecordingHandler struct {
	svc services.RecordingService
}

func NewRecordingHandler(svc services.RecordingService) *RecordingHandler {
	return &RecordingHandler{svc: svc}
}

func (h *RecordingHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context(), postgres.ListFilter{
		FacultyID: c.Query("faculty_id"),
		Subject:   c.Query("subject"),
		Date:      c.Query("date"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":      len(rows),
		"recordings": rows,
	})
}

func (h *RecordingHandler) Get(c *gin.Context) {
	id, ok := recordingID(c)
	if !ok {
		return
	}

	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

type SearchRequest struct {
	Query string `json:"query"`
}

func (h *RecordingHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "RecordingHandler.Search", "invalid request body", err))
		return
	}

	rows, err := h.svc.Search(c.Request.Context(), req.Query)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   req.Query,
		"results": rows,
		"total":   len(rows),
	})
}

func (h *RecordingHandler) Delete(c *gin.Context) {
	id, ok := recordingID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recording deleted successfully"})
}

func (h *RecordingHandler) StreamVideo(c *gin.Context) {
	id, ok := recordingID(c)
	if !ok {
		return
	}

	path, err := h.svc.VideoPath(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", "video/mp4")
	c.File(path)
}

func (h *RecordingHandler) Archive(c *gin.Context) {
	id, ok := recordingID(c)
	if !ok {
		return
	}

	url, err := h.svc.Archive(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"archive_url": url})
}
