package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/udaykumar1307/Faculty-Class-Recording-System/config"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/api/handlers"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/api/middleware"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/api/routes"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/cache"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/capture"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/logger"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/models"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/providers/llm"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/providers/stt"
	pgrepo "github.com/udaykumar1307/Faculty-Class-Recording-System/internal/repositories/postgres"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/services"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/storage"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()
	app := config.LoadApp()
	ctx := context.Background()

	for _, dir := range []string{app.RecordingsDir, app.TranscriptsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("creating %s: %v", dir, err)
		}
	}

	// Init PostgreSQL
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.PostgresDB.AutoMigrate(&models.Recording{}, &models.TranscriptSegment{}); err != nil {
		log.Fatalf("schema migration error: %v", err)
	}
	l.Info("PostgreSQL connected")

	// Init Redis (optional; read-path caching only)
	var c cache.Cache
	if err := config.InitRedis(); err != nil {
		l.WithError(err).Warn("Redis unavailable, caching disabled")
	} else {
		c = cache.NewRedisCache(config.RedisClient)
		l.Info("Redis connected")
	}

	// Speech-to-text engine
	var sttProvider stt.Provider
	if p, err := stt.NewGoogleSpeech(ctx); err != nil {
		l.WithError(err).Error("speech client init failed, transcription disabled")
	} else {
		sttProvider = p
		defer p.Close()
	}

	// Summarization engine
	var llmProvider llm.Provider
	if app.GCPProject == "" {
		l.Warn("GCP_PROJECT not set, summarization disabled")
	} else if p, err := llm.NewVertexGemini(ctx, app.GCPProject, app.GCPLocation, app.ModelName); err != nil {
		l.WithError(err).Error("generation client init failed, summarization disabled")
	} else {
		llmProvider = p
		defer p.Close()
	}

	// Archive storage (optional)
	var uploader storage.Uploader
	if app.ArchiveBucket != "" {
		up, err := storage.NewGCSUploader(ctx, app.ArchiveBucket)
		if err != nil {
			l.WithError(err).Error("archive storage init failed, archiving disabled")
		} else {
			uploader = up
			defer up.Close()
		}
	}

	recordings := pgrepo.NewRecordingRepo(config.PostgresDB)
	transcripts := pgrepo.NewTranscriptRepo(config.PostgresDB)

	controller := capture.NewController(recordings, l, capture.Config{
		DevicePath: app.CaptureDevice,
		Width:      app.CaptureWidth,
		Height:     app.CaptureHeight,
		FPS:        app.CaptureFPS,
	}, app.RecordingsDir)

	recordingSvc := services.NewRecordingService(recordings, transcripts, c, uploader, l)
	transcriptionSvc := services.NewTranscriptionService(recordings, transcripts, sttProvider, c, l, app.TranscriptsDir, app.Language)
	summarySvc := services.NewSummaryService(recordings, llmProvider, c, l)

	r := gin.New()
	r.Use(middleware.RequestLogger(l), gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Capture:   handlers.NewCaptureHandler(controller, sttProvider != nil),
		Recording: handlers.NewRecordingHandler(recordingSvc),
		Pipeline:  handlers.NewPipelineHandler(transcriptionSvc, summarySvc),
		WS:        handlers.NewWSHandler(controller),
	})

	l.WithField("port", app.Port).Info("Faculty Class Recording API listening")
	if err := r.Run(":" + app.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
