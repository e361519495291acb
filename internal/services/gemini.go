package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/models"
)

const defaultGeminiModel = "gemini-2.5-flash"

// geminiGenerator is the slice of the genai SDK the client depends on.
// Tests substitute a stub for it.
type geminiGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiClient struct {
	generator geminiGenerator
	modelName string
}

// NewGeminiClient builds the Gemini-backed ModelClient. The API key is
// required up front: a blank key is a configuration error raised
// before any request is accepted.
func NewGeminiClient(ctx context.Context, apiKey, model string) (ModelClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, models.NewConfigurationError("GEMINI_API_KEY", "api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultGeminiModel
	}

	return &geminiClient{generator: client.Models, modelName: model}, nil
}

// Analyze implements ModelClient. The prompt is sent as a text part;
// a page image, when present, rides along as inline data in the same
// user turn.
func (g *geminiClient) Analyze(ctx context.Context, req *models.ModelRequest) (string, error) {
	parts := []*genai.Part{{Text: req.Prompt}}

	if req.Image != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: req.Image.MIMEType,
				Data:     req.Image.Data,
			},
		})
	}

	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: parts,
	}}

	temperature := float32(0.3)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := g.generator.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		return "", models.NewServiceError("gemini", err)
	}

	text := candidateText(resp)
	if text == "" {
		return "", models.NewServiceError("gemini", fmt.Errorf("empty response"))
	}

	return text, nil
}

func (g *geminiClient) Model() string {
	return g.modelName
}

// candidateText joins the textual parts of every candidate in the
// response.
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}
