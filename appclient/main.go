// Package appclient drives the app flows against the generation API:
// onboarding, the daily program refresh, and story requests. The mock
// fallback on program failure lives here, on the calling side; the
// server never substitutes content.
package appclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mot3adev/httpmiddleware"
	"mot3adev/logger"
	"mot3adev/mockprogram"
	"mot3adev/models"
	"mot3adev/statestore"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

type ClientConnectProps struct {
	Logger  *logger.LogMiddleware
	BaseURL string
	Store   *statestore.Store
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

type Client struct {
	logger  *logger.LogMiddleware
	baseURL string
	store   *statestore.Store
	now     func() time.Time
}

func Connect(args ClientConnectProps) *Client {
	now := args.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		logger:  args.Logger,
		baseURL: args.BaseURL,
		store:   args.Store,
		now:     now,
	}
}

func (c *Client) postJSON(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return httpmiddleware.HttpRequest(httpmiddleware.HttpRequestStruct{
		Context: ctx,
		Method:  "POST",
		Url:     c.baseURL + path,
		Body:    bytes.NewBuffer(payload),
		Headers: map[string]string{"content-type": "application/json"},
	})
}

// apiMessage extracts the user-facing error message from an API error
// response, if one is present.
func apiMessage(err error) string {
	var httpErr *httpmiddleware.HttpError
	if errors.As(err, &httpErr) {
		var resp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(httpErr.Body, &resp) == nil && resp.Error != "" {
			return resp.Error
		}
	}
	return ""
}

// GenerateStory requests a bedtime story continuation using the stored
// child profile and language.
func (c *Client) GenerateStory(ctx context.Context, storyStarter string) (string, error) {
	tracer := otel.Tracer("appclient/GenerateStory")
	ctx, span := tracer.Start(ctx, "GenerateStory")
	defer span.End()

	var child *models.ChildProfile
	if profile := c.store.UserProfile(ctx); profile != nil {
		child = profile.ChildProfile
	}
	language := c.store.Language(ctx)

	respBody, err := c.postJSON(ctx, "/api/generate-story", map[string]any{
		"storyStarter": storyStarter,
		"childProfile": child,
		"language":     language,
	})
	if err != nil {
		span.RecordError(err)
		if msg := apiMessage(err); msg != "" {
			return "", fmt.Errorf("%s", msg)
		}
		return "", err
	}

	var resp struct {
		Story string `json:"story"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil {
		span.RecordError(err)
		return "", err
	}
	return resp.Story, nil
}

// RefreshProgram fetches a fresh daily program for the stored profile.
// Any failure falls back to the deterministic mock program; either way
// the result is written through the store and onboarding is marked
// complete. An error is returned only when no profile exists yet.
func (c *Client) RefreshProgram(ctx context.Context) (*models.DailyProgram, error) {
	tracer := otel.Tracer("appclient/RefreshProgram")
	ctx, span := tracer.Start(ctx, "RefreshProgram")
	defer span.End()

	profile := c.store.UserProfile(ctx)
	if profile == nil {
		return nil, fmt.Errorf("no user profile: complete onboarding first")
	}
	language := c.store.Language(ctx)

	c.store.SetLoading(true)
	defer c.store.SetLoading(false)

	var program models.DailyProgram

	respBody, err := c.postJSON(ctx, "/api/generate-program", map[string]any{
		"userProfile": profile,
		"language":    language,
	})
	if err == nil {
		err = json.Unmarshal(respBody, &program)
	}
	if err != nil {
		span.RecordError(err)
		c.logger.Logger(ctx).Warn("[AppClient] Program generation failed, using fallback", zap.Error(err))
		program = mockprogram.BuildAt(language, profile.Answers, c.now())
	}

	if err := c.store.SetDailyProgram(ctx, &program); err != nil {
		return nil, err
	}
	if err := c.store.SetOnboardingComplete(ctx, true); err != nil {
		return nil, err
	}

	return &program, nil
}

// CompleteOnboarding stores the freshly answered questionnaire as the
// user profile and generates the first program.
func (c *Client) CompleteOnboarding(ctx context.Context, answers models.QuestionnaireAnswers, child *models.ChildProfile) (*models.DailyProgram, error) {
	tracer := otel.Tracer("appclient/CompleteOnboarding")
	ctx, span := tracer.Start(ctx, "CompleteOnboarding")
	defer span.End()

	profile := &models.UserProfile{
		Language:     c.store.Language(ctx),
		Answers:      answers,
		ChildProfile: child,
		HasChildren:  child != nil,
	}
	if err := c.store.SetUserProfile(ctx, profile); err != nil {
		return nil, err
	}

	return c.RefreshProgram(ctx)
}

// Reset clears the profile, the cached program, and the onboarding
// flag, returning the user to the questionnaire.
func (c *Client) Reset(ctx context.Context) error {
	if err := c.store.SetUserProfile(ctx, nil); err != nil {
		return err
	}
	if err := c.store.SetDailyProgram(ctx, nil); err != nil {
		return err
	}
	return c.store.SetOnboardingComplete(ctx, false)
}
