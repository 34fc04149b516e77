package geminiapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"testing"
	"time"

	"mot3adev/logger"
	"mot3adev/modelapi"
	"mot3adev/models"
)

func TestMissingCredential(t *testing.T) {
	logMiddleware := logger.Connect(logger.LoggerConnectProps{Production: false})
	gemini := Connect(context.Background(), GeminiConnectProps{
		Logger: logMiddleware,
		Getenv: func(string) string { return "" },
	})

	_, err := gemini.GenerateStory(context.Background(), "prompt")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}

	_, err = gemini.GenerateProgram(context.Background(), "prompt")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestUpstreamErrorFormatting(t *testing.T) {
	err := &UpstreamError{StatusCode: http.StatusTooManyRequests, Body: "quota"}
	if err.Error() == "" {
		t.Error("expected non-empty error string")
	}

	var upstream *UpstreamError
	if !errors.As(error(err), &upstream) {
		t.Error("expected errors.As to match *UpstreamError")
	}
}

func TestGenerateStoryLive(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY environment variable not set, skipping test")
	}

	logMiddleware := logger.Connect(logger.LoggerConnectProps{Production: false})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	gemini := Connect(ctx, GeminiConnectProps{Logger: logMiddleware})

	prompt := modelapi.BuildStoryPrompt("Once upon a time there was a sleepy rabbit", nil, models.LanguageEnglish)

	story, err := gemini.GenerateStory(ctx, prompt)
	if err != nil {
		t.Fatalf("GenerateStory failed: %v", err)
	}
	if story == "" {
		t.Error("Expected non-empty story, got empty string")
	}

	t.Logf("Story received: %s", story)
}

func TestGenerateProgramLive(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY environment variable not set, skipping test")
	}

	logMiddleware := logger.Connect(logger.LoggerConnectProps{Production: false})

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	gemini := Connect(ctx, GeminiConnectProps{Logger: logMiddleware})

	profile := &models.UserProfile{
		Language: models.LanguageEnglish,
		Answers: models.QuestionnaireAnswers{
			Mood:       "calm",
			Priorities: []string{"health"},
		},
	}
	prompt := modelapi.BuildProgramPrompt(profile, models.LanguageEnglish)

	raw, err := gemini.GenerateProgram(ctx, prompt)
	if err != nil {
		t.Fatalf("GenerateProgram failed: %v", err)
	}

	var program models.DailyProgram
	if err := json.Unmarshal(raw, &program); err != nil {
		t.Fatalf("program payload did not decode: %v", err)
	}
	if program.Greeting == "" {
		t.Error("Expected non-empty greeting")
	}

	t.Logf("Program greeting: %s", program.Greeting)
}
