package geminiapi

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"

	"mot3adev/logger"
	"mot3adev/modelapi"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	GEMINI_MODEL_NAME = "gemini-2.5-flash"

	programFunctionName = "generate_daily_program"
)

type GeminiConnectProps struct {
	Logger *logger.LogMiddleware
	Model  string
	// Getenv is swappable for tests; defaults to os.Getenv.
	Getenv func(string) string
}

type Gemini struct {
	logger *logger.LogMiddleware
	model  string
	getenv func(string) string
}

func Connect(ctx context.Context, args GeminiConnectProps) *Gemini {
	tracer := otel.Tracer("geminiapi/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	model := args.Model
	if model == "" {
		model = GEMINI_MODEL_NAME
	}
	getenv := args.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	span.SetAttributes(attribute.String("model", model))
	args.Logger.Logger(ctx).Info("[GeminiAPI] Gemini API wrapper ready", zap.String("model", model))

	return &Gemini{logger: args.Logger, model: model, getenv: getenv}
}

// newClient builds a client for a single request. The API key is read
// from the environment here, not at startup, so a missing credential
// surfaces per request.
func (g *Gemini) newClient(ctx context.Context) (*genai.Client, error) {
	key := g.getenv("GEMINI_API_KEY")
	if key == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func mapAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{StatusCode: apiErr.Code, Body: apiErr.Message}
	}
	return err
}

// GenerateStory issues exactly one generation call with the assembled
// prompt and returns the trimmed story text.
func (g *Gemini) GenerateStory(ctx context.Context, prompt string) (string, error) {
	tracer := otel.Tracer("geminiapi/GenerateStory")
	ctx, span := tracer.Start(ctx, "GenerateStory")
	defer span.End()

	span.SetAttributes(attribute.Int("prompt.length", len(prompt)))
	g.logger.Logger(ctx).Info("[GeminiAPI] Generating story", zap.Int("prompt_length", len(prompt)))

	client, err := g.newClient(ctx)
	if err != nil {
		span.RecordError(err)
		return "", err
	}

	thinkingBudget := int32(0)

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  &thinkingBudget,
		},
	})
	if err != nil {
		span.RecordError(err)
		g.logger.Logger(ctx).Error("[GeminiAPI] Story generation failed", zap.Error(err))
		return "", mapAPIError(err)
	}

	story := strings.TrimSpace(joinTextParts(resp))
	if story == "" {
		span.AddEvent("EmptyResponse")
		g.logger.Logger(ctx).Warn("[GeminiAPI] Story generation returned no text")
		return "", ErrEmptyResult
	}

	span.AddEvent("Story generation successful")
	return story, nil
}

// GenerateProgram forces a single function call that carries the daily
// program payload and returns the raw, schema-validated JSON arguments.
func (g *Gemini) GenerateProgram(ctx context.Context, prompt string) (json.RawMessage, error) {
	tracer := otel.Tracer("geminiapi/GenerateProgram")
	ctx, span := tracer.Start(ctx, "GenerateProgram")
	defer span.End()

	span.SetAttributes(attribute.Int("prompt.length", len(prompt)))
	g.logger.Logger(ctx).Info("[GeminiAPI] Generating daily program", zap.Int("prompt_length", len(prompt)))

	client, err := g.newClient(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	thinkingBudget := int32(0)

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: modelapi.PROGRAM_ROLE_PROMPT}}},
		Tools:             []*genai.Tool{dailyProgramTool()},
		ToolConfig: &genai.ToolConfig{
			FunctionCallingConfig: &genai.FunctionCallingConfig{
				Mode:                 genai.FunctionCallingConfigModeAny,
				AllowedFunctionNames: []string{programFunctionName},
			},
		},
		ThinkingConfig: &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  &thinkingBudget,
		},
	})
	if err != nil {
		span.RecordError(err)
		g.logger.Logger(ctx).Error("[GeminiAPI] Program generation failed", zap.Error(err))
		return nil, mapAPIError(err)
	}

	call := findFunctionCall(resp, programFunctionName)
	if call == nil {
		span.AddEvent("EmptyResponse")
		g.logger.Logger(ctx).Warn("[GeminiAPI] Program generation returned no function call")
		return nil, ErrEmptyResult
	}

	raw, err := json.Marshal(call.Args)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := modelapi.ValidateProgramJSON(raw); err != nil {
		span.RecordError(err)
		g.logger.Logger(ctx).Warn("[GeminiAPI] Program payload failed schema validation", zap.Error(err))
		return nil, ErrEmptyResult
	}

	span.AddEvent("Program generation successful")
	return raw, nil
}

func joinTextParts(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var texts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			texts = append(texts, part.Text)
		}
	}
	return strings.Join(texts, "\n")
}

func findFunctionCall(resp *genai.GenerateContentResponse, name string) *genai.FunctionCall {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.FunctionCall != nil && part.FunctionCall.Name == name {
			return part.FunctionCall
		}
	}
	return nil
}
