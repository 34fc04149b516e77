// Package telegram lets a parent request a bedtime story directly from
// chat: any plain message is treated as a story starter and answered
// with a continuation shaped by the stored child profile.
package telegram

import (
	"context"
	"os"
	"strings"

	"mot3adev/appclient"
	"mot3adev/logger"
	"mot3adev/models"
	"mot3adev/statestore"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type TelegramConnectProps struct {
	Logger *logger.LogMiddleware
	Client *appclient.Client
	Store  *statestore.Store
}

type Telegram struct {
	logger *logger.LogMiddleware
	bot    *tgbotapi.BotAPI
	client *appclient.Client
	store  *statestore.Store
}

func Connect(ctx context.Context, args TelegramConnectProps) *Telegram {
	tracer := otel.Tracer("telegram/Connect")
	ctx, span := tracer.Start(ctx, "Connect")
	defer span.End()

	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		args.Logger.Logger(ctx).Fatal("TELEGRAM_BOT_TOKEN environment variable not set")
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		args.Logger.Logger(ctx).Fatal("Failed to create Telegram bot", zap.Error(err))
	}

	debug := os.Getenv("TELEGRAM_DEBUG") == "true"
	bot.Debug = debug

	span.SetAttributes(
		attribute.String("bot.username", bot.Self.UserName),
		attribute.Bool("bot.debug", debug),
	)

	args.Logger.Logger(ctx).Info("Telegram bot connected successfully",
		zap.String("username", bot.Self.UserName),
		zap.Bool("debug", debug),
	)

	return &Telegram{
		logger: args.Logger,
		bot:    bot,
		client: args.Client,
		store:  args.Store,
	}
}

func (t *Telegram) Listen(ctx context.Context) {
	tracer := otel.Tracer("telegram/Listen")
	ctx, span := tracer.Start(ctx, "Listen")
	defer span.End()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)

	t.logger.Logger(ctx).Info("Starting Telegram bot message listener")

	for {
		select {
		case <-ctx.Done():
			t.logger.Logger(ctx).Info("Shutting down Telegram bot listener")
			return
		case update := <-updates:
			if update.Message != nil {
				t.handleMessage(ctx, update.Message)
			}
		}
	}
}

func (t *Telegram) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	tracer := otel.Tracer("telegram/handleMessage")
	ctx, span := tracer.Start(ctx, "handleMessage")
	defer span.End()

	if message.From == nil || message.Text == "" {
		return
	}

	span.SetAttributes(
		attribute.Int64("user.id", message.From.ID),
		attribute.String("user.username", message.From.UserName),
	)

	t.logger.Logger(ctx).Info("Received message",
		zap.Int64("user_id", message.From.ID),
		zap.String("username", message.From.UserName),
	)

	switch {
	case message.Text == "/start":
		t.reply(ctx, message.Chat.ID, t.welcomeText(ctx))
	case message.Text == "/program":
		t.handleProgramCommand(ctx, message)
	case strings.HasPrefix(message.Text, "/language"):
		t.handleLanguageCommand(ctx, message)
	default:
		t.handleStoryStarter(ctx, message)
	}
}

func (t *Telegram) welcomeText(ctx context.Context) string {
	switch t.store.Language(ctx) {
	case models.LanguageArabic:
		return "أرسل بداية قصة وسأكملها لطفلك قبل النوم."
	case models.LanguageFrench:
		return "Envoyez le début d'une histoire et je la continuerai pour votre enfant."
	default:
		return "Send me a story starter and I'll continue it for your child's bedtime."
	}
}

func (t *Telegram) handleLanguageCommand(ctx context.Context, message *tgbotapi.Message) {
	code := strings.TrimSpace(strings.TrimPrefix(message.Text, "/language"))
	lang := models.ResolveLanguage(code)
	if err := t.store.SetLanguage(ctx, lang); err != nil {
		t.logger.Logger(ctx).Error("Failed to store language", zap.Error(err))
		return
	}
	t.reply(ctx, message.Chat.ID, "Language set to "+string(lang))
}

func (t *Telegram) handleProgramCommand(ctx context.Context, message *tgbotapi.Message) {
	program := t.store.DailyProgram(ctx)
	if program == nil {
		fresh, err := t.client.RefreshProgram(ctx)
		if err != nil {
			t.logger.Logger(ctx).Error("Failed to refresh program", zap.Error(err))
			t.reply(ctx, message.Chat.ID, "Complete the questionnaire first to get a daily program.")
			return
		}
		program = fresh
	}
	t.reply(ctx, message.Chat.ID, program.Greeting+"\n\n"+program.MotivationalQuote)
}

func (t *Telegram) handleStoryStarter(ctx context.Context, message *tgbotapi.Message) {
	story, err := t.client.GenerateStory(ctx, message.Text)
	if err != nil {
		t.logger.Logger(ctx).Error("Failed to generate story", zap.Error(err))
		t.reply(ctx, message.Chat.ID, "Sorry, no story could be generated right now.")
		return
	}

	t.reply(ctx, message.Chat.ID, story)
}

func (t *Telegram) reply(ctx context.Context, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		t.logger.Logger(ctx).Error("Failed to send response", zap.Error(err))
	}
}
