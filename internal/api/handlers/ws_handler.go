package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/capture"
)

// WSHandler pushes capture-status frames to connected dashboards so a
// recording indicator can update without polling.
type WSHandler struct {
	controller *capture.Controller
	upgrader   websocket.Upgrader
	interval   time.Duration
}

func NewWSHandler(controller *capture.Controller) *WSHandler {
	return &WSHandler{
		controller: controller,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
		interval: time.Second,
	}
}

func (h *WSHandler) StatusWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// drain client frames so close messages are processed
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(h.controller.Snapshot()); err != nil {
				return
			}
		}
	}
}
