package config

// App holds the non-database settings the server runs with. Everything is
// env-driven with defaults that work for local development.
type App struct {
	Port string

	RecordingsDir  string
	TranscriptsDir string

	// Capture settings
	CaptureDevice string
	CaptureWidth  int
	CaptureHeight int
	CaptureFPS    int

	// Speech-to-text language, BCP-47
	Language string

	// Summarization
	GCPProject  string
	GCPLocation string
	ModelName   string

	// Optional archive bucket; empty disables the archive endpoint.
	ArchiveBucket string
}

func LoadApp() App {
	return App{
		Port:           envOr("PORT", "8080"),
		RecordingsDir:  envOr("RECORDINGS_DIR", "recordings"),
		TranscriptsDir: envOr("TRANSCRIPTS_DIR", "transcripts"),
		CaptureDevice:  envOr("CAPTURE_DEVICE", "/dev/video0"),
		CaptureWidth:   envIntOr("CAPTURE_WIDTH", 1920),
		CaptureHeight:  envIntOr("CAPTURE_HEIGHT", 1080),
		CaptureFPS:     envIntOr("CAPTURE_FPS", 30),
		Language:       envOr("STT_LANGUAGE", "en-US"),
		GCPProject:     envOr("GCP_PROJECT", ""),
		GCPLocation:    envOr("GCP_LOCATION", "us-central1"),
		ModelName:      envOr("SUMMARY_MODEL", ""),
		ArchiveBucket:  envOr("ARCHIVE_BUCKET", ""),
	}
}
