package oracle

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini is an Oracle backed by the Gemini generative API.
type Gemini struct {
	client *genai.Client
	model  string
	tokens int32
}

// NewGemini creates a Gemini-backed Oracle. The caller must Close it.
//
// Precondition: apiKey and model are non-empty; maxTokens >= 1.
// Postcondition: Returns a non-nil Gemini or an error.
func NewGemini(ctx context.Context, apiKey, model string, maxTokens int) (*Gemini, error) {
	if apiKey == "" || model == "" || maxTokens < 1 {
		return nil, fmt.Errorf("oracle.NewGemini: api key, model and max tokens are required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: client, model: model, tokens: int32(maxTokens)}, nil
}

// Close releases the underlying client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Generate replays all but the last message as chat history and sends the last.
func (g *Gemini) Generate(ctx context.Context, req Request) (Response, error) {
	if len(req.Messages) == 0 {
		return Response{}, fmt.Errorf("gemini: request has no messages")
	}
	model := g.client.GenerativeModel(g.model)
	model.SetMaxOutputTokens(g.tokens)
	if system := systemPrompt(req); system != "" {
		model.SystemInstruction = &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(system)}}
	}
	if req.Schema != nil {
		model.ResponseMIMEType = "application/json"
	}

	chat := model.StartChat()
	last := len(req.Messages) - 1
	for _, m := range req.Messages[:last] {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(req.Messages[last].Content))
	if err != nil {
		return Response{}, fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Response{}, fmt.Errorf("gemini: no content returned")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return NewResponse(req, sb.String()), nil
}
