package services

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/models"
)

const (
	placeholderJobDescription = "{job_description}"
	placeholderResumeContent  = "{resume_content}"
)

// ImageResumeContent stands in for the resume text in the composed
// prompt when the document travels to the model as a rendered page
// image instead.
const ImageResumeContent = "Resume content embedded as an image."

// The templates are immutable process-wide constants. One-shot and
// few-shot carry their worked examples verbatim; every template ends
// with the evaluation block that receives the actual job description
// and resume content, and instructs the model to close with a
// "Relevance Percentage: XX%" line.

//go:embed prompts/zero_shot.md
var zeroShotTemplate string

//go:embed prompts/one_shot.md
var oneShotTemplate string

//go:embed prompts/few_shot.md
var fewShotTemplate string

// PromptComposer assembles the final model prompt from the fixed
// template for a mode plus the submitted values. Composition is plain
// string substitution: identical inputs always yield identical
// prompts, and switching modes changes only the template portion.
type PromptComposer struct{}

func NewPromptComposer() *PromptComposer {
	return &PromptComposer{}
}

func (pc *PromptComposer) Compose(mode models.AnalysisMode, jobDescription, resumeContent string) (string, error) {
	template, err := pc.template(mode)
	if err != nil {
		return "", err
	}

	prompt := strings.ReplaceAll(template, placeholderJobDescription, jobDescription)
	prompt = strings.ReplaceAll(prompt, placeholderResumeContent, resumeContent)

	return prompt, nil
}

func (pc *PromptComposer) template(mode models.AnalysisMode) (string, error) {
	switch mode {
	case models.ModeZeroShot:
		return zeroShotTemplate, nil
	case models.ModeOneShot:
		return oneShotTemplate, nil
	case models.ModeFewShot:
		return fewShotTemplate, nil
	default:
		return "", fmt.Errorf("unknown analysis mode: %q", mode)
	}
}
