// Package webapi exposes the generation API. Each handler runs a fixed
// sequence: method check, config check, input validation, prompt build,
// one backend call, response mapping. Nothing is retried and every code
// path returns a structured JSON response.
package webapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"mot3adev/logger"
	"mot3adev/modelapi"
	"mot3adev/modelapi/geminiapi"
	"mot3adev/models"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// User-facing error messages. Fixed regardless of input.
const (
	MsgMethodNotAllowed   = "Method not allowed"
	MsgNotConfigured      = "AI service is not configured."
	MsgStarterRequired    = "storyStarter is required."
	MsgProfileRequired    = "userProfile is required."
	MsgStoryRequired      = "story is required."
	MsgRateLimited        = "Rate limit exceeded. Please try again in a moment."
	MsgCreditsExhausted   = "AI credits exhausted. Please add credits to continue."
	MsgStoryFailed        = "Failed to generate story"
	MsgProgramFailed      = "Failed to generate program"
	MsgAudioFailed        = "Failed to generate audio."
	MsgNoStoryGenerated   = "No story was generated."
	MsgNoProgramGenerated = "No program was generated."
	MsgUnexpected         = "Unexpected error while generating content."
)

// Generator is the single outbound dependency of the handlers; one call
// per request, no retries.
type Generator interface {
	GenerateStory(ctx context.Context, prompt string) (string, error)
	GenerateProgram(ctx context.Context, prompt string) (json.RawMessage, error)
}

// Speech renders text as MP3 audio.
type Speech interface {
	GenerateSpeech(ctx context.Context, inputText string) ([]byte, error)
}

type WebAPIConnectProps struct {
	Logger    *logger.LogMiddleware
	Generator Generator
	Speech    Speech
	// Getenv is swappable for tests; defaults to os.Getenv.
	Getenv func(string) string
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

type WebAPI struct {
	logger    *logger.LogMiddleware
	generator Generator
	speech    Speech
	getenv    func(string) string
	now       func() time.Time
}

func Connect(args WebAPIConnectProps) *WebAPI {
	getenv := args.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	now := args.Now
	if now == nil {
		now = time.Now
	}
	return &WebAPI{
		logger:    args.Logger,
		generator: args.Generator,
		speech:    args.Speech,
		getenv:    getenv,
		now:       now,
	}
}

// Router mounts the generation endpoints. Non-POST verbs are rejected
// before any configuration is read or any backend call is made.
func (a *WebAPI) Router() chi.Router {
	r := chi.NewRouter()
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed, "")
	})
	r.Post("/generate-story", a.handleGenerateStory)
	r.Post("/generate-program", a.handleGenerateProgram)
	r.Post("/story-audio", a.handleStoryAudio)
	return r
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}

// recoverGuard converts a panic in a handler into a 500 response so a
// request can never take the process down.
func (a *WebAPI) recoverGuard(w http.ResponseWriter, r *http.Request) {
	if rec := recover(); rec != nil {
		a.logger.Logger(r.Context()).Error("[WebAPI] Recovered from panic", zap.Any("panic", rec))
		writeError(w, http.StatusInternalServerError, MsgUnexpected, fmt.Sprint(rec))
	}
}

type storyRequest struct {
	// Kept raw so a non-string value is rejected rather than coerced.
	StoryStarter json.RawMessage      `json:"storyStarter"`
	ChildProfile *models.ChildProfile `json:"childProfile"`
	Language     string               `json:"language"`
}

func (a *WebAPI) handleGenerateStory(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("webapi/handleGenerateStory")
	ctx, span := tracer.Start(r.Context(), "handleGenerateStory")
	defer span.End()
	defer a.recoverGuard(w, r)

	if a.getenv("GEMINI_API_KEY") == "" {
		a.logger.Logger(ctx).Error("[WebAPI] GEMINI_API_KEY is not configured")
		writeError(w, http.StatusInternalServerError, MsgNotConfigured, "")
		return
	}

	var req storyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, MsgStarterRequired, "")
		return
	}

	if len(req.StoryStarter) == 0 {
		writeError(w, http.StatusBadRequest, MsgStarterRequired, "")
		return
	}
	var starter string
	if err := json.Unmarshal(req.StoryStarter, &starter); err != nil || starter == "" {
		writeError(w, http.StatusBadRequest, MsgStarterRequired, "")
		return
	}

	language := models.ResolveLanguage(req.Language)
	prompt := modelapi.BuildStoryPrompt(starter, req.ChildProfile, language)

	story, err := a.generator.GenerateStory(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		a.writeGenerationError(ctx, w, err, MsgStoryFailed, MsgNoStoryGenerated)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"story": story})
}

type programRequest struct {
	UserProfile *models.UserProfile `json:"userProfile"`
	Language    string              `json:"language"`
}

func (a *WebAPI) handleGenerateProgram(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("webapi/handleGenerateProgram")
	ctx, span := tracer.Start(r.Context(), "handleGenerateProgram")
	defer span.End()
	defer a.recoverGuard(w, r)

	if a.getenv("GEMINI_API_KEY") == "" {
		a.logger.Logger(ctx).Error("[WebAPI] GEMINI_API_KEY is not configured")
		writeError(w, http.StatusInternalServerError, MsgNotConfigured, "")
		return
	}

	var req programRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserProfile == nil {
		writeError(w, http.StatusBadRequest, MsgProfileRequired, "")
		return
	}

	language := models.ResolveLanguage(req.Language)
	prompt := modelapi.BuildProgramPrompt(req.UserProfile, language)

	raw, err := a.generator.GenerateProgram(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		a.writeGenerationError(ctx, w, err, MsgProgramFailed, MsgNoProgramGenerated)
		return
	}

	var program models.DailyProgram
	if err := json.Unmarshal(raw, &program); err != nil {
		span.RecordError(err)
		writeError(w, http.StatusInternalServerError, MsgNoProgramGenerated, "")
		return
	}

	// The server stamps the calendar day and the resolved language; the
	// model never controls cache validity.
	program.Date = a.now().Format("2006-01-02")
	program.Language = language

	writeJSON(w, http.StatusOK, program)
}

type storyAudioRequest struct {
	Story string `json:"story"`
}

func (a *WebAPI) handleStoryAudio(w http.ResponseWriter, r *http.Request) {
	tracer := otel.Tracer("webapi/handleStoryAudio")
	ctx, span := tracer.Start(r.Context(), "handleStoryAudio")
	defer span.End()
	defer a.recoverGuard(w, r)

	var req storyAudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Story == "" {
		writeError(w, http.StatusBadRequest, MsgStoryRequired, "")
		return
	}

	audio, err := a.speech.GenerateSpeech(ctx, req.Story)
	if err != nil {
		span.RecordError(err)
		a.logger.Logger(ctx).Error("[WebAPI] Audio generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, MsgAudioFailed, "")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(audio)
}

// writeGenerationError maps backend failures onto the response
// taxonomy: rate-limit and quota statuses pass through with fixed
// messages, empty results get their own message, everything else is a
// 500 carrying the upstream diagnostic.
func (a *WebAPI) writeGenerationError(ctx context.Context, w http.ResponseWriter, err error, failedMsg, emptyMsg string) {
	var upstream *geminiapi.UpstreamError

	switch {
	case errors.Is(err, geminiapi.ErrNotConfigured):
		a.logger.Logger(ctx).Error("[WebAPI] Generation credential missing")
		writeError(w, http.StatusInternalServerError, MsgNotConfigured, "")
	case errors.As(err, &upstream):
		a.logger.Logger(ctx).Error("[WebAPI] Upstream generation error",
			zap.Int("status", upstream.StatusCode), zap.String("body", upstream.Body))
		switch upstream.StatusCode {
		case http.StatusTooManyRequests:
			writeError(w, http.StatusTooManyRequests, MsgRateLimited, "")
		case http.StatusPaymentRequired:
			writeError(w, http.StatusPaymentRequired, MsgCreditsExhausted, "")
		default:
			writeError(w, http.StatusInternalServerError, failedMsg, upstream.Body)
		}
	case errors.Is(err, geminiapi.ErrEmptyResult):
		writeError(w, http.StatusInternalServerError, emptyMsg, "")
	default:
		a.logger.Logger(ctx).Error("[WebAPI] Unexpected generation error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, MsgUnexpected, err.Error())
	}
}
