package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Jorgecuenca1/market-stock/internal/adapters/config"
	"github.com/Jorgecuenca1/market-stock/pkg/logger"
	"github.com/Jorgecuenca1/market-stock/pkg/models"
)

// Notifier sends run alerts to a single operator chat. Alert failures
// are logged and swallowed so an unreachable Telegram API never affects
// an update run.
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier creates new Telegram notifier
func NewNotifier(cfg *config.TelegramConfig) (*Notifier, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	bot.Debug = false

	logger.Info("telegram notifier initialized",
		zap.String("bot_username", bot.Self.UserName),
		zap.Int64("chat_id", cfg.ChatID),
	)

	return &Notifier{
		api:    bot,
		chatID: cfg.ChatID,
	}, nil
}

// NotifyRun alerts the operator about a finished run. Successful runs
// are not announced; only partial and failed outcomes page.
func (n *Notifier) NotifyRun(log *models.ScrapingLog) {
	if n == nil || log.Status == models.RunSuccess {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s update %s*\n", statusEmoji(log.Status), log.TaskType, log.Status)
	fmt.Fprintf(&b, "Items: %d\n", log.ItemsScraped)

	if log.DurationSeconds != nil {
		fmt.Fprintf(&b, "Duration: %.1fs\n", *log.DurationSeconds)
	}

	if log.ErrorMessage != nil && *log.ErrorMessage != "" {
		fmt.Fprintf(&b, "```\n%s\n```", truncate(*log.ErrorMessage, 1024))
	}

	n.send(b.String())
}

// NotifyStartup announces that the daemon came up
func (n *Notifier) NotifyStartup(stocks, indices int) {
	if n == nil {
		return
	}

	n.send(fmt.Sprintf("🚀 market-stock started, tracking %d stocks and %d indices", stocks, indices))
}

func (n *Notifier) send(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "Markdown"

	if _, err := n.api.Send(msg); err != nil {
		logger.Error("failed to send telegram message",
			zap.Int64("chat_id", n.chatID),
			zap.Error(err),
		)
	}
}

func statusEmoji(status models.RunStatus) string {
	switch status {
	case models.RunPartial:
		return "⚠️"
	case models.RunFailed:
		return "❌"
	default:
		return "✅"
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
