package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/cache"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/providers/llm"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/repositories/postgres"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/summary"
	"github.com/udaykumar1307/Faculty-Class-Recording-System/internal/utils"
)

// Only the leading portion of the transcript is sent downstream. This bounds
// the cost and latency of the generation call at the price of summarizing
// only the lecture's opening.
const transcriptCharBudget = 3000

const summaryPrompt = `Analyze this lecture transcript and provide:
1. A concise summary (2-3 paragraphs)
2. Key points covered (bullet points)
3. Main topics discussed
4. Difficulty level (Beginner/Intermediate/Advanced)

Transcript:
`

type SummarizeResult struct {
	Summary   string
	KeyPoints []string
}

type SummaryService interface {
	Summarize(ctx context.Context, id uint) (*SummarizeResult, error)
}

type summaryService struct {
	recs  postgres.RecordingRepo
	llm   llm.Provider
	cache cache.Cache
	log   *logrus.Logger
}

func NewSummaryService(recs postgres.RecordingRepo, provider llm.Provider, c cache.Cache, log *logrus.Logger) SummaryService {
	return &summaryService{recs: recs, llm: provider, cache: c, log: log}
}

// Summarize feeds the persisted transcript to the generation engine and
// stores the summary plus the key points parsed from it. Requires a prior
// successful transcription; writes nothing otherwise.
func (s *summaryService) Summarize(ctx context.Context, id uint) (*SummarizeResult, error) {
	const op = "SummaryService.Summarize"

	if s.llm == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "summarization engine is not configured", nil)
	}

	rec, err := fetchRecording(ctx, s.recs, op, id)
	if err != nil {
		return nil, err
	}
	if rec.TranscriptText == "" {
		return nil, utils.E(utils.CodeFailedPrecondition, op, "transcript not available, transcribe first", nil)
	}

	transcript := truncateTranscript(rec.TranscriptText, transcriptCharBudget)

	s.log.WithField("recording_id", id).Info("summarizing")

	chunks, errs := s.llm.StreamAnswer(ctx, summaryPrompt+transcript)

	var full strings.Builder
	for chunk := range chunks {
		full.WriteString(chunk)
	}

	var streamErr error
	select {
	case streamErr = <-errs:
	default:
	}
	if streamErr != nil {
		return nil, utils.E(utils.CodeUpstream, op, "summarization engine failed", streamErr)
	}

	text := full.String()
	keyPoints := summary.KeyPoints(text)

	if err := s.recs.SetSummary(ctx, id, text, keyPoints); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to store summary", err)
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, recordingCacheKey(id))
	}

	return &SummarizeResult{Summary: text, KeyPoints: keyPoints}, nil
}

// truncateTranscript cuts the transcript to at most limit bytes without
// splitting a multi-byte rune, so the engine never receives invalid UTF-8.
func truncateTranscript(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
