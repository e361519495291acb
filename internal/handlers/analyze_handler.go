package handlers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/models"
	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/services"
)

type AnalyzeHandler struct {
	analyzer    services.AnalyzerService
	logger      *zap.Logger
	maxFileSize int64
}

func NewAnalyzeHandler(analyzer services.AnalyzerService, logger *zap.Logger, maxFileSize int64) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:    analyzer,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

// HandleAnalyze handles POST /analyze. The multipart form carries the
// job description text, the mode selector and the resume PDF. Input
// validation happens here, before the pipeline runs: an empty job
// description or a missing upload never reaches extraction.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	jobDescription := strings.TrimSpace(c.FormValue("job_description"))
	if jobDescription == "" {
		return h.renderError(c, models.NewInputError("job_description", "job description is required"))
	}

	mode, err := models.ParseAnalysisMode(c.FormValue("mode"))
	if err != nil {
		return h.renderError(c, models.NewInputError("mode", err.Error()))
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return h.renderError(c, models.NewInputError("resume", "a resume PDF upload is required"))
	}

	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		return h.renderError(c, models.NewInputError("resume",
			fmt.Sprintf("file too large, max size: %d bytes", h.maxFileSize)))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.renderError(c, models.NewInputError("resume", "uploaded file could not be read"))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return h.renderError(c, models.NewInputError("resume", "uploaded file could not be read"))
	}

	submission := &models.Submission{
		JobDescription: jobDescription,
		Mode:           mode,
		Resume:         data,
		Filename:       fileHeader.Filename,
	}

	analysis, err := h.analyzer.Analyze(c.Context(), submission)
	if err != nil {
		return h.renderError(c, err)
	}

	return c.JSON(analysis)
}

// renderError maps each error class to its status code and the one
// user-facing message. Provider errors stay generic: the details go to
// the log, not to the client.
func (h *AnalyzeHandler) renderError(c *fiber.Ctx, err error) error {
	var inputErr *models.InputError
	if errors.As(err, &inputErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": inputErr.Message,
			"field": inputErr.Field,
		})
	}

	var extractionErr *models.ExtractionError
	if errors.As(err, &extractionErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "invalid file",
		})
	}

	var serviceErr *models.ServiceError
	if errors.As(err, &serviceErr) {
		h.logger.Error("analysis failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "analysis failed",
		})
	}

	h.logger.Error("unexpected analysis error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
