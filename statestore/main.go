// Package statestore persists the app's client state (language, user
// profile, daily program, onboarding flag) in a single-user SQLite
// key-value table. Writes go through to disk before returning; reads
// reconstruct each field independently.
package statestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"mot3adev/logger"
	"mot3adev/models"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const (
	keyLanguage           = "mot3a-language"
	keyProfile            = "mot3a-profile"
	keyProgram            = "mot3a-program"
	keyOnboardingComplete = "mot3a-onboarding-complete"
)

const defaultLanguage = models.LanguageArabic

const schema = `
CREATE TABLE IF NOT EXISTS app_state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type StoreConnectProps struct {
	Logger *logger.LogMiddleware
	Path   string
	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
	// OnDirectionChange fires at startup and whenever the language
	// changes, carrying the new text direction.
	OnDirectionChange func(models.Direction)
}

type Store struct {
	logger      *logger.LogMiddleware
	db          *sql.DB
	now         func() time.Time
	onDirection func(models.Direction)
	loading     atomic.Bool
}

func Connect(ctx context.Context, args StoreConnectProps) (*Store, error) {
	tracer := otel.Tracer("statestore/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	db, err := sql.Open("sqlite3", args.Path)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("open state database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("ping state database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create state schema: %w", err)
	}

	now := args.Now
	if now == nil {
		now = time.Now
	}

	s := &Store{
		logger:      args.Logger,
		db:          db,
		now:         now,
		onDirection: args.OnDirectionChange,
	}

	args.Logger.Logger(ctx).Info("[StateStore] State store ready", zap.String("path", args.Path))

	// The direction side effect is applied once at startup and again on
	// every language change.
	s.applyDirection(ctx, s.Language(ctx))

	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(ctx context.Context, key string) (string, bool) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		s.logger.Logger(ctx).Error("[StateStore] Read failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, true
}

func (s *Store) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		s.logger.Logger(ctx).Error("[StateStore] Write failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

func (s *Store) remove(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key)
	if err != nil {
		s.logger.Logger(ctx).Error("[StateStore] Delete failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// decodeJSON is the parse-or-absent step: malformed stored data is
// treated as absence, never surfaced as an error.
func decodeJSON[T any](raw string) (*T, bool) {
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, false
	}
	return &v, true
}

func (s *Store) today() string {
	return s.now().Format("2006-01-02")
}

// Language returns the stored language, defaulting to Arabic.
func (s *Store) Language(ctx context.Context) models.Language {
	raw, ok := s.get(ctx, keyLanguage)
	if !ok || raw == "" {
		return defaultLanguage
	}
	return models.ResolveLanguage(raw)
}

func (s *Store) SetLanguage(ctx context.Context, lang models.Language) error {
	if err := s.set(ctx, keyLanguage, string(lang)); err != nil {
		return err
	}
	s.applyDirection(ctx, lang)
	return nil
}

// Direction reports the text direction of the stored language.
func (s *Store) Direction(ctx context.Context) models.Direction {
	return models.TextDirection(s.Language(ctx))
}

func (s *Store) applyDirection(ctx context.Context, lang models.Language) {
	dir := models.TextDirection(lang)
	s.logger.Logger(ctx).Info("[StateStore] Text direction applied",
		zap.String("language", string(lang)), zap.String("direction", string(dir)))
	if s.onDirection != nil {
		s.onDirection(dir)
	}
}

// UserProfile returns the stored profile, or nil when absent or
// unparsable.
func (s *Store) UserProfile(ctx context.Context) *models.UserProfile {
	raw, ok := s.get(ctx, keyProfile)
	if !ok {
		return nil
	}
	profile, ok := decodeJSON[models.UserProfile](raw)
	if !ok {
		return nil
	}
	return profile
}

// SetUserProfile writes the profile through to durable storage. A nil
// profile removes the entry.
func (s *Store) SetUserProfile(ctx context.Context, profile *models.UserProfile) error {
	if profile == nil {
		return s.remove(ctx, keyProfile)
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.set(ctx, keyProfile, string(raw))
}

// DailyProgram returns the stored program only when it was generated on
// the current local calendar day. Stale or unparsable entries are
// discarded and reported as absent.
func (s *Store) DailyProgram(ctx context.Context) *models.DailyProgram {
	raw, ok := s.get(ctx, keyProgram)
	if !ok {
		return nil
	}
	program, ok := decodeJSON[models.DailyProgram](raw)
	if !ok {
		s.remove(ctx, keyProgram)
		return nil
	}
	if program.Date != s.today() {
		s.logger.Logger(ctx).Info("[StateStore] Discarding stale daily program",
			zap.String("stored_date", program.Date), zap.String("today", s.today()))
		s.remove(ctx, keyProgram)
		return nil
	}
	return program
}

// SetDailyProgram writes the program through to durable storage. A nil
// program removes the entry.
func (s *Store) SetDailyProgram(ctx context.Context, program *models.DailyProgram) error {
	if program == nil {
		return s.remove(ctx, keyProgram)
	}
	raw, err := json.Marshal(program)
	if err != nil {
		return err
	}
	return s.set(ctx, keyProgram, string(raw))
}

// OnboardingComplete reports whether onboarding finished; anything but
// a stored "true" counts as incomplete.
func (s *Store) OnboardingComplete(ctx context.Context) bool {
	raw, ok := s.get(ctx, keyOnboardingComplete)
	return ok && raw == "true"
}

// SetOnboardingComplete persists the flag; false removes the entry
// instead of writing a tombstone.
func (s *Store) SetOnboardingComplete(ctx context.Context, completed bool) error {
	if !completed {
		return s.remove(ctx, keyOnboardingComplete)
	}
	return s.set(ctx, keyOnboardingComplete, "true")
}

// Loading is the transient in-flight flag; it is never persisted.
func (s *Store) Loading() bool {
	return s.loading.Load()
}

func (s *Store) SetLoading(loading bool) {
	s.loading.Store(loading)
}
