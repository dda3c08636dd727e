package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jamolstroy/admin-api/internal/config"
	"github.com/jamolstroy/admin-api/internal/logger"
	"github.com/jamolstroy/admin-api/internal/provider"
	"github.com/jamolstroy/admin-api/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	cbApprovePrefix = "approve:"
	cbRejectPrefix  = "reject:"
)

const (
	textWelcome         = "Assalomu alaykum! Bu JamolStroy admin paneli uchun kirish boti. Saytdagi \"Telegram orqali kirish\" tugmasini bosing va shu yerga qaytib tasdiqlang."
	textNotAdmin        = "Admin huquqi talab qilinadi!"
	textSessionMissing  = "Kirish so'rovi topilmadi yoki muddati o'tgan. Saytdan qaytadan urinib ko'ring."
	textSessionExpired  = "Kirish so'rovining muddati o'tgan. Saytdan qaytadan urinib ko'ring."
	textSessionDecided  = "Bu so'rov bo'yicha qaror allaqachon qabul qilingan."
	textApproved        = "✅ Kirish tasdiqlandi. Saytga qaytishingiz mumkin."
	textRejected        = "❌ Kirish rad etildi."
	textGenericError    = "Xatolik yuz berdi, keyinroq urinib ko'ring."
	textApprovePrompt   = "Admin panelga kirishga ruxsat berasizmi?"
	btnApprove          = "✅ Tasdiqlash"
	btnReject           = "❌ Rad etish"
)

// Bot approves website login requests over Telegram.
type Bot struct {
	api       *tgbotapi.BotAPI
	container *provider.Container
	cfg       *config.Config
}

// New creates the login approval bot.
func New(cfg *config.Config, container *provider.Container) (*Bot, error) {
	if cfg == nil || !cfg.TelegramAuth.Enabled {
		return nil, errors.New("telegram auth disabled")
	}
	token := strings.TrimSpace(cfg.TelegramAuth.BotToken)
	if token == "" {
		return nil, errors.New("bot token missing")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	logger.Infow("bot_authorized", "username", api.Self.UserName)

	return &Bot{
		api:       api,
		container: container,
		cfg:       cfg,
	}, nil
}

// Name returns the service name.
func (b *Bot) Name() string {
	return "bot"
}

// Start polls updates until the context is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	logger.Infow("bot_polling_started")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
				logger.Warnw("bot_handle_callback_failed", "error", err)
			}
		case update.Message != nil:
			if update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
				continue
			}
			if err := b.handleMessage(ctx, update.Message); err != nil {
				logger.Warnw("bot_handle_message_failed", "error", err)
			}
		}
	}

	return nil
}

// Stop ends update polling.
func (b *Bot) Stop(ctx context.Context) error {
	if b == nil || b.api == nil {
		return nil
	}
	_ = ctx
	b.api.StopReceivingUpdates()
	return nil
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if msg.From == nil {
		return nil
	}
	if !msg.IsCommand() {
		return b.sendText(msg.Chat.ID, textWelcome)
	}

	switch msg.Command() {
	case "start":
		token := strings.TrimSpace(msg.CommandArguments())
		if token == "" {
			return b.sendText(msg.Chat.ID, textWelcome)
		}
		return b.handleLoginStart(ctx, msg, token)
	default:
		return b.sendText(msg.Chat.ID, textWelcome)
	}
}

// handleLoginStart answers the deep link from the website login page.
// A non-admin visitor burns the session immediately so the browser
// poll stops with a definite answer.
func (b *Bot) handleLoginStart(ctx context.Context, msg *tgbotapi.Message, token string) error {
	telegramID := strconv.FormatInt(msg.From.ID, 10)

	admin, err := b.container.UserRepo.GetAdminByTelegramID(telegramID)
	if err != nil {
		return err
	}
	if admin == nil {
		if approveErr := b.container.AuthService.ApproveWebsiteLogin(ctx, token, telegramID); approveErr != nil && !errors.Is(approveErr, service.ErrNotAdmin) {
			logger.Warnw("bot_unauthorized_decision_failed", "error", approveErr)
		}
		return b.sendText(msg.Chat.ID, textNotAdmin)
	}

	session, err := b.container.LoginSessionRepo.GetByToken(token)
	if err != nil {
		return err
	}
	if session == nil {
		return b.sendText(msg.Chat.ID, textSessionMissing)
	}
	if !session.IsPending() {
		return b.sendText(msg.Chat.ID, textSessionDecided)
	}

	text := fmt.Sprintf("%s\n\nSo'rov: %s", textApprovePrompt, session.ClientID)
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnApprove, cbApprovePrefix+token),
			tgbotapi.NewInlineKeyboardButtonData(btnReject, cbRejectPrefix+token),
		),
	)
	_, err = b.api.Send(reply)
	return err
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) error {
	if cb == nil || cb.From == nil || cb.Message == nil {
		return nil
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		logger.Warnw("bot_callback_ack_failed", "error", err)
	}

	telegramID := strconv.FormatInt(cb.From.ID, 10)
	data := cb.Data

	switch {
	case strings.HasPrefix(data, cbApprovePrefix):
		token := strings.TrimPrefix(data, cbApprovePrefix)
		return b.decide(ctx, cb.Message.Chat.ID, token, telegramID, true)
	case strings.HasPrefix(data, cbRejectPrefix):
		token := strings.TrimPrefix(data, cbRejectPrefix)
		return b.decide(ctx, cb.Message.Chat.ID, token, telegramID, false)
	default:
		return nil
	}
}

func (b *Bot) decide(ctx context.Context, chatID int64, token, telegramID string, approve bool) error {
	var err error
	if approve {
		err = b.container.AuthService.ApproveWebsiteLogin(ctx, token, telegramID)
	} else {
		err = b.container.AuthService.RejectWebsiteLogin(ctx, token, telegramID)
	}
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotAdmin):
			return b.sendText(chatID, textNotAdmin)
		case errors.Is(err, service.ErrLoginSessionNotFound):
			return b.sendText(chatID, textSessionMissing)
		case errors.Is(err, service.ErrLoginSessionExpired):
			return b.sendText(chatID, textSessionExpired)
		case errors.Is(err, service.ErrLoginAlreadyDecided):
			return b.sendText(chatID, textSessionDecided)
		default:
			logger.Warnw("bot_login_decision_failed", "error", err)
			return b.sendText(chatID, textGenericError)
		}
	}
	if approve {
		return b.sendText(chatID, textApproved)
	}
	return b.sendText(chatID, textRejected)
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}
