package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// AnalysisMode selects which fixed prompt template drives the
// evaluation: no worked examples, one, or several.
type AnalysisMode string

const (
	ModeZeroShot AnalysisMode = "zero-shot"
	ModeOneShot  AnalysisMode = "one-shot"
	ModeFewShot  AnalysisMode = "few-shot"
)

// ParseAnalysisMode maps a user-supplied mode string to an
// AnalysisMode. Matching is case-insensitive so form values like
// "Zero-Shot" are accepted. An empty value falls back to zero-shot,
// the first option of the mode selector.
func ParseAnalysisMode(s string) (AnalysisMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeZeroShot):
		return ModeZeroShot, nil
	case string(ModeOneShot):
		return ModeOneShot, nil
	case string(ModeFewShot):
		return ModeFewShot, nil
	default:
		return "", fmt.Errorf("unknown analysis mode: %q", s)
	}
}

// ResumeFormat chooses how the uploaded resume is handed to the model:
// extracted plain text, or the first page rendered as an image.
type ResumeFormat string

const (
	FormatText  ResumeFormat = "text"
	FormatImage ResumeFormat = "image"
)

func ParseResumeFormat(s string) (ResumeFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(FormatText):
		return FormatText, nil
	case string(FormatImage):
		return FormatImage, nil
	default:
		return "", fmt.Errorf("unknown resume format: %q", s)
	}
}

// Submission carries one analysis request through the pipeline. It is
// built from the form payload, lives for the duration of the request
// and is never persisted.
type Submission struct {
	ID             uuid.UUID
	JobDescription string
	Mode           AnalysisMode
	Resume         []byte
	Filename       string
}

// PageImage is the first page of an uploaded PDF rendered for
// multimodal model input.
type PageImage struct {
	MIMEType string
	Data     []byte
}

// ModelRequest is the fully composed payload for one model call: the
// prompt text plus an optional page image. It is consumed exactly once.
type ModelRequest struct {
	Prompt string
	Image  *PageImage
}

// Analysis is the outcome of a submission. Response holds the model's
// free-form text verbatim; MatchPercentage is extracted from it on a
// best-effort basis and stays nil when the text carries no
// recognizable score.
type Analysis struct {
	ID              string   `json:"id"`
	Mode            string   `json:"mode"`
	Model           string   `json:"model"`
	Response        string   `json:"response"`
	MatchPercentage *float64 `json:"match_percentage"`
}
