package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Kusumareddy28/ATS-ResumeRefiner/internal/models"
)

type fakeChatCompleter struct {
	resp openai.ChatCompletionResponse
	err  error

	lastRequest openai.ChatCompletionRequest
	calls       int
}

func (f *fakeChatCompleter) CreateChatCompletion(_ context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.lastRequest = request
	return f.resp, f.err
}

func chatResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Content: content},
		}},
	}
}

func TestNewOpenAIClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := NewOpenAIClient("  ", "")
	var configErr *models.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected *models.ConfigurationError, got %T: %v", err, err)
	}
}

func TestNewOpenAIClientModelFallback(t *testing.T) {
	t.Parallel()

	client, err := NewOpenAIClient("test-key", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != defaultOpenAIModel {
		t.Fatalf("expected default model %q, got %q", defaultOpenAIModel, client.Model())
	}

	client, err = NewOpenAIClient("test-key", "gpt-4o")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Model() != "gpt-4o" {
		t.Fatalf("expected configured model, got %q", client.Model())
	}
}

func TestOpenAIAnalyzeTextOnly(t *testing.T) {
	t.Parallel()

	fake := &fakeChatCompleter{resp: chatResponse("  Good fit.\n")}
	client := &openAIClient{chat: fake, modelName: "gpt-4o-mini"}

	got, err := client.Analyze(context.Background(), &models.ModelRequest{Prompt: "evaluate this"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Good fit." {
		t.Fatalf("unexpected response: %q", got)
	}

	if fake.lastRequest.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %q", fake.lastRequest.Model)
	}
	if len(fake.lastRequest.Messages) != 1 {
		t.Fatalf("expected one message, got %d", len(fake.lastRequest.Messages))
	}
	message := fake.lastRequest.Messages[0]
	if message.Role != openai.ChatMessageRoleUser {
		t.Fatalf("unexpected role: %q", message.Role)
	}
	if message.Content != "evaluate this" {
		t.Fatalf("unexpected content: %q", message.Content)
	}
	if len(message.MultiContent) != 0 {
		t.Fatal("text-only request must not use multi content")
	}
}

func TestOpenAIAnalyzeAttachesImage(t *testing.T) {
	t.Parallel()

	fake := &fakeChatCompleter{resp: chatResponse("ok")}
	client := &openAIClient{chat: fake, modelName: "gpt-4o-mini"}

	_, err := client.Analyze(context.Background(), &models.ModelRequest{
		Prompt: "evaluate this",
		Image:  &models.PageImage{MIMEType: "image/jpeg", Data: []byte{0xFF, 0xD8, 0xFF}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	message := fake.lastRequest.Messages[0]
	if message.Content != "" {
		t.Fatal("image request must carry the prompt in multi content")
	}
	if len(message.MultiContent) != 2 {
		t.Fatalf("expected text and image parts, got %d", len(message.MultiContent))
	}
	if message.MultiContent[0].Type != openai.ChatMessagePartTypeText || message.MultiContent[0].Text != "evaluate this" {
		t.Fatalf("unexpected text part: %+v", message.MultiContent[0])
	}
	imagePart := message.MultiContent[1]
	if imagePart.Type != openai.ChatMessagePartTypeImageURL || imagePart.ImageURL == nil {
		t.Fatalf("unexpected image part: %+v", imagePart)
	}
	if !strings.HasPrefix(imagePart.ImageURL.URL, "data:image/jpeg;base64,") {
		t.Fatalf("image must be a base64 data URL, got %q", imagePart.ImageURL.URL)
	}
}

func TestOpenAIAnalyzeFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fake *fakeChatCompleter
	}{
		{name: "transport error", fake: &fakeChatCompleter{err: errors.New("429 too many requests")}},
		{name: "no choices", fake: &fakeChatCompleter{resp: openai.ChatCompletionResponse{}}},
		{name: "blank content", fake: &fakeChatCompleter{resp: chatResponse("   ")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client := &openAIClient{chat: tt.fake, modelName: "gpt-4o-mini"}
			_, err := client.Analyze(context.Background(), &models.ModelRequest{Prompt: "evaluate"})
			var serviceErr *models.ServiceError
			if !errors.As(err, &serviceErr) {
				t.Fatalf("expected *models.ServiceError, got %T: %v", err, err)
			}
			if serviceErr.Provider != "openai" {
				t.Fatalf("unexpected provider: %q", serviceErr.Provider)
			}
		})
	}
}
