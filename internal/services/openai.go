package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/models"
)

const defaultOpenAIModel = openai.GPT4oMini

// openAIChatCompleter is the slice of the go-openai client the
// implementation depends on. Tests substitute a stub for it.
type openAIChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type openAIClient struct {
	chat      openAIChatCompleter
	modelName string
}

// NewOpenAIClient builds the OpenAI-backed ModelClient, the alternate
// provider selected with AI_PROVIDER=openai.
func NewOpenAIClient(apiKey, model string) (ModelClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, models.NewConfigurationError("OPENAI_API_KEY", "api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultOpenAIModel
	}

	return &openAIClient{chat: openai.NewClient(apiKey), modelName: model}, nil
}

// Analyze implements ModelClient. A page image is attached as a base64
// data URL part alongside the prompt text.
func (o *openAIClient) Analyze(ctx context.Context, req *models.ModelRequest) (string, error) {
	message := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}

	if req.Image != nil {
		encoded := base64.StdEncoding.EncodeToString(req.Image.Data)
		message.MultiContent = []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeText,
				Text: req.Prompt,
			},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: fmt.Sprintf("data:%s;base64,%s", req.Image.MIMEType, encoded),
				},
			},
		}
	} else {
		message.Content = req.Prompt
	}

	resp, err := o.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.modelName,
		Messages: []openai.ChatCompletionMessage{message},
	})
	if err != nil {
		return "", models.NewServiceError("openai", err)
	}

	if len(resp.Choices) == 0 {
		return "", models.NewServiceError("openai", fmt.Errorf("no choices in response"))
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", models.NewServiceError("openai", fmt.Errorf("empty response"))
	}

	return text, nil
}

func (o *openAIClient) Model() string {
	return o.modelName
}
