package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/logger"
	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/metrics"
	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/models"
)

// AnalyzerService drives one submission through the pipeline: extract
// the resume, compose the prompt, call the model and assemble the
// result. Each step runs synchronously; a failed step aborts the
// submission with its class of error.
type AnalyzerService interface {
	Analyze(ctx context.Context, submission *models.Submission) (*models.Analysis, error)
}

type analyzerService struct {
	extractor      DocumentExtractor
	composer       *PromptComposer
	modelClient    ModelClient
	logger         *zap.Logger
	resumeFormat   models.ResumeFormat
	requestTimeout time.Duration
	maxLogLen      int
}

func NewAnalyzerService(
	extractor DocumentExtractor,
	composer *PromptComposer,
	modelClient ModelClient,
	log *zap.Logger,
	resumeFormat models.ResumeFormat,
	requestTimeout time.Duration,
	maxLogLength int,
) AnalyzerService {
	return &analyzerService{
		extractor:      extractor,
		composer:       composer,
		modelClient:    modelClient,
		logger:         log,
		resumeFormat:   resumeFormat,
		requestTimeout: requestTimeout,
		maxLogLen:      maxLogLength,
	}
}

func (a *analyzerService) Analyze(ctx context.Context, submission *models.Submission) (*models.Analysis, error) {
	if submission.ID == uuid.Nil {
		submission.ID = uuid.New()
	}
	mode := string(submission.Mode)

	log := a.logger.With(
		zap.String("submission_id", submission.ID.String()),
		zap.String("mode", mode),
	)

	resumeContent, image, err := a.extractResume(ctx, submission)
	if err != nil {
		metrics.AnalysisFailed(mode, "extract")
		log.Warn("resume extraction failed", zap.Error(err))
		return nil, err
	}

	prompt, err := a.composer.Compose(submission.Mode, submission.JobDescription, resumeContent)
	if err != nil {
		metrics.AnalysisFailed(mode, "compose")
		return nil, models.NewInputError("mode", err.Error())
	}

	log.Info("sending analysis request",
		zap.String("model", a.modelClient.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	)

	callCtx := ctx
	if a.requestTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.requestTimeout)
		defer cancel()
	}

	start := time.Now()
	response, err := a.modelClient.Analyze(callCtx, &models.ModelRequest{Prompt: prompt, Image: image})
	metrics.ObserveModelCall(a.modelClient.Model(), time.Since(start), err)
	if err != nil {
		metrics.AnalysisFailed(mode, "model")
		log.Warn("model call failed", zap.Error(err))
		return nil, err
	}

	log.Info("analysis response received",
		zap.Int("response_length", utf8.RuneCountInString(response)),
		zap.String("response_preview", logger.TruncateForLog(response, a.maxLogLen)),
	)

	metrics.AnalysisCompleted(mode)

	return &models.Analysis{
		ID:              submission.ID.String(),
		Mode:            mode,
		Model:           a.modelClient.Model(),
		Response:        response,
		MatchPercentage: ExtractMatchPercentage(response),
	}, nil
}

// extractResume produces the resume content for prompt substitution
// and, in image format, the rendered page that accompanies the prompt.
func (a *analyzerService) extractResume(ctx context.Context, submission *models.Submission) (string, *models.PageImage, error) {
	if a.resumeFormat == models.FormatImage {
		image, err := a.extractor.ExtractFirstPageImage(ctx, submission.Resume)
		if err != nil {
			return "", nil, fmt.Errorf("failed to extract resume image: %w", err)
		}
		return ImageResumeContent, image, nil
	}

	text, err := a.extractor.ExtractText(submission.Resume)
	if err != nil {
		return "", nil, fmt.Errorf("failed to extract resume text: %w", err)
	}
	return text, nil, nil
}
