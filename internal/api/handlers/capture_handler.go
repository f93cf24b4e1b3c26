package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/capture"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/models"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/utils"
)

type CaptureHandler struct {
	controller *capture.Controller
	sttLoaded  bool
}

func NewCaptureHandler(controller *capture.Controller, sttLoaded bool) *CaptureHandler {
	return &CaptureHandler{controller: controller, sttLoaded: sttLoaded}
}

type StartRecordingRequest struct {
	FacultyID   string `json:"faculty_id"`
	FacultyName string `json:"faculty_name"`
	Subject     string `json:"subject"`
}

type StartRecordingResponse struct {
	RecordingID uint   `json:"recording_id"`
	Status      string `json:"status"`
	Message     string `json:"message"`
}

func (h *CaptureHandler) Start(c *gin.Context) {
	var req StartRecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "CaptureHandler.Start", "invalid request body", err))
		return
	}

	id, err := h.controller.Start(c.Request.Context(), req.FacultyID, req.FacultyName, req.Subject)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, StartRecordingResponse{
		RecordingID: id,
		Status:      models.StatusRecording,
		Message:     "Recording started successfully",
	})
}

type StopRecordingResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	RecordingID uint   `json:"recording_id"`
}

func (h *CaptureHandler) Stop(c *gin.Context) {
	id, err := h.controller.Stop()
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, StopRecordingResponse{
		Status:      "stopped",
		Message:     "Recording stopped successfully",
		RecordingID: id,
	})
}

func (h *CaptureHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"message":          "Faculty Class Recording API running",
		"stt_loaded":       h.sttLoaded,
		"recording_active": h.controller.Active(),
	})
}
