package appclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"mot3adev/logger"
	"mot3adev/models"
	"mot3adev/statestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 15, 8, 0, 0, 0, time.Local)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *statestore.Store) {
	t.Helper()

	log := logger.Connect(logger.LoggerConnectProps{Production: false})
	store, err := statestore.Connect(context.Background(), statestore.StoreConnectProps{
		Logger: log,
		Path:   filepath.Join(t.TempDir(), "state.db"),
		Now:    func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := Connect(ClientConnectProps{
		Logger:  log,
		BaseURL: server.URL,
		Store:   store,
		Now:     func() time.Time { return fixedNow },
	})
	return client, store
}

func testAnswers() models.QuestionnaireAnswers {
	return models.QuestionnaireAnswers{
		Mood:       "good",
		Priorities: []string{"health", "family"},
	}
}

func TestRefreshProgramRequiresProfile(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected without a profile")
	}))

	_, err := client.RefreshProgram(context.Background())
	require.Error(t, err)
	assert.Nil(t, store.DailyProgram(context.Background()))
}

func TestRefreshProgramStoresServerProgram(t *testing.T) {
	served := models.DailyProgram{
		Date:              "2024-03-15",
		Language:          models.LanguageFrench,
		Greeting:          "Bonjour",
		MotivationalQuote: "Allez",
	}
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate-program", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(served)
	}))

	ctx := context.Background()
	require.NoError(t, store.SetLanguage(ctx, models.LanguageFrench))
	require.NoError(t, store.SetUserProfile(ctx, &models.UserProfile{
		Language: models.LanguageFrench,
		Answers:  testAnswers(),
	}))

	program, err := client.RefreshProgram(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", program.Greeting)

	cached := store.DailyProgram(ctx)
	require.NotNil(t, cached)
	assert.Equal(t, "Bonjour", cached.Greeting)
	assert.True(t, store.OnboardingComplete(ctx))
	assert.False(t, store.Loading())
}

func TestRefreshProgramFallsBackOnServerError(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Failed to generate program"}`, http.StatusInternalServerError)
	}))

	ctx := context.Background()
	require.NoError(t, store.SetUserProfile(ctx, &models.UserProfile{
		Language: models.LanguageEnglish,
		Answers:  testAnswers(),
	}))

	program, err := client.RefreshProgram(ctx)
	require.NoError(t, err, "a failed generation still yields a program")
	assert.Equal(t, "2024-03-15", program.Date)
	assert.Equal(t, "Good morning! Here's your personalized program for today", program.Greeting)
	require.NotNil(t, program.Sections.KidsContent, "family priority selects the kids section")

	cached := store.DailyProgram(ctx)
	require.NotNil(t, cached)
	assert.Equal(t, program.Greeting, cached.Greeting)
	assert.True(t, store.OnboardingComplete(ctx))
}

func TestRefreshProgramFallsBackOnUnreachableServer(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client.baseURL = "http://127.0.0.1:1"

	ctx := context.Background()
	require.NoError(t, store.SetUserProfile(ctx, &models.UserProfile{
		Language: models.LanguageArabic,
		Answers:  testAnswers(),
	}))
	require.NoError(t, store.SetLanguage(ctx, models.LanguageArabic))

	program, err := client.RefreshProgram(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.LanguageArabic, program.Language)
	assert.Equal(t, "صباح الخير! إليك برنامجك المخصص لهذا اليوم", program.Greeting)
}

func TestGenerateStorySendsStoredContext(t *testing.T) {
	var got map[string]any
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate-story", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"story": "The owl slept."})
	}))

	ctx := context.Background()
	require.NoError(t, store.SetLanguage(ctx, models.LanguageFrench))
	require.NoError(t, store.SetUserProfile(ctx, &models.UserProfile{
		Language: models.LanguageFrench,
		Answers:  testAnswers(),
		ChildProfile: &models.ChildProfile{
			Name: "Lina",
			Age:  5,
		},
	}))

	story, err := client.GenerateStory(ctx, "Once there was an owl")
	require.NoError(t, err)
	assert.Equal(t, "The owl slept.", story)

	assert.Equal(t, "Once there was an owl", got["storyStarter"])
	assert.Equal(t, "fr", got["language"])
	child, ok := got["childProfile"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Lina", child["name"])
}

func TestGenerateStorySurfacesAPIMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{"error": "Rate limit exceeded. Please try again in a moment."})
	}))

	_, err := client.GenerateStory(context.Background(), "Once upon a time")
	require.Error(t, err)
	assert.Equal(t, "Rate limit exceeded. Please try again in a moment.", err.Error())
}

func TestCompleteOnboardingAndReset(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Failed to generate program"}`, http.StatusInternalServerError)
	}))

	ctx := context.Background()
	program, err := client.CompleteOnboarding(ctx, testAnswers(), &models.ChildProfile{Name: "Sami"})
	require.NoError(t, err)
	require.NotNil(t, program)

	profile := store.UserProfile(ctx)
	require.NotNil(t, profile)
	assert.True(t, profile.HasChildren)
	require.NotNil(t, profile.ChildProfile)
	assert.Equal(t, "Sami", profile.ChildProfile.Name)
	assert.True(t, store.OnboardingComplete(ctx))

	require.NoError(t, client.Reset(ctx))
	assert.Nil(t, store.UserProfile(ctx))
	assert.Nil(t, store.DailyProgram(ctx))
	assert.False(t, store.OnboardingComplete(ctx))
}
