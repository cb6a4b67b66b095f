package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/DmtrPpl/vat-bot/internal/domain"
	"github.com/DmtrPpl/vat-bot/internal/infrastructure/metrics"
	"github.com/DmtrPpl/vat-bot/internal/usecase"
)

// IngestService defines the ingestion behavior needed by the bot.
type IngestService interface {
	Ingest(ctx context.Context, sessionKey, text string) (*usecase.IngestResult, error)
}

// ReportService defines the query and session commands needed by the bot.
type ReportService interface {
	Balance(ctx context.Context, key string) (*usecase.BalanceReport, error)
	Month(ctx context.Context, key, period string) (string, domain.PeriodSummary, error)
	Year(ctx context.Context, key, period string) (string, domain.PeriodSummary, error)
	Reset(ctx context.Context, key string) error
	SetVATRate(ctx context.Context, key string, rate decimal.Decimal) (domain.Settings, error)
	SetCurrency(ctx context.Context, key, code string) (domain.Settings, error)
}

// Sender delivers replies to a chat.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Bot routes inbound Telegram messages to the bookkeeping use cases and
// formats replies. The chat ID is the session key.
type Bot struct {
	ingest IngestService
	report ReportService
	sender Sender
	log    zerolog.Logger
}

// NewBot creates a Bot.
func NewBot(ingest IngestService, report ReportService, sender Sender, log zerolog.Logger) *Bot {
	return &Bot{
		ingest: ingest,
		report: report,
		sender: sender,
		log:    log.With().Str("component", "bot").Logger(),
	}
}

// HandleUpdate processes one webhook update. The returned error is for
// logging only; the webhook acknowledges regardless, ledger state is
// already settled by the time sending can fail.
func (b *Bot) HandleUpdate(ctx context.Context, upd Update) error {
	if upd.Message == nil {
		return nil
	}
	text := strings.TrimSpace(upd.Message.Text)
	if text == "" {
		return nil
	}

	chatID := upd.Message.Chat.ID
	key := strconv.FormatInt(chatID, 10)

	reply := b.dispatch(ctx, key, text)
	if reply == "" {
		return nil
	}
	if err := b.sender.SendMessage(ctx, chatID, reply); err != nil {
		metrics.TelegramSendErrors.Inc()
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

func (b *Bot) dispatch(ctx context.Context, key, text string) string {
	if !strings.HasPrefix(text, "/") {
		return b.handleText(ctx, key, text)
	}

	cmd, arg := splitCommand(text)
	metrics.CommandsHandled.WithLabelValues(cmd).Inc()

	switch cmd {
	case "/start", "/help":
		return helpText
	case "/reset":
		if err := b.report.Reset(ctx, key); err != nil {
			return b.fail(err, key, "reset failed")
		}
		return "Ledger cleared. Currency and VAT rate are kept."
	case "/balance":
		report, err := b.report.Balance(ctx, key)
		if err != nil {
			return b.fail(err, key, "balance failed")
		}
		return formatBalance(report)
	case "/month":
		period, summary, err := b.report.Month(ctx, key, arg)
		if err != nil {
			return b.fail(err, key, "month summary failed")
		}
		return fmt.Sprintf("Month %s\n%s", period, formatSummary(summary))
	case "/year":
		period, summary, err := b.report.Year(ctx, key, arg)
		if err != nil {
			return b.fail(err, key, "year summary failed")
		}
		return fmt.Sprintf("Year %s\n%s", period, formatSummary(summary))
	case "/rate":
		rate, err := decimal.NewFromString(arg)
		if err != nil {
			return "Usage: /rate <percent>, e.g. /rate 20"
		}
		settings, err := b.report.SetVATRate(ctx, key, rate)
		if err != nil {
			if err == domain.ErrInvalidVATRate {
				return "VAT rate must be between 0 and 100."
			}
			return b.fail(err, key, "set rate failed")
		}
		return fmt.Sprintf("VAT rate set to %s%%.", settings.VATRatePercent.String())
	case "/currency":
		settings, err := b.report.SetCurrency(ctx, key, arg)
		if err != nil {
			if err == domain.ErrInvalidCurrency {
				return "Usage: /currency <code>, e.g. /currency EUR"
			}
			return b.fail(err, key, "set currency failed")
		}
		return fmt.Sprintf("Default currency set to %s.", settings.DefaultCurrency)
	default:
		return "Unknown command. Send /help for usage."
	}
}

func (b *Bot) handleText(ctx context.Context, key, text string) string {
	result, err := b.ingest.Ingest(ctx, key, text)
	if err != nil {
		return b.fail(err, key, "ingest failed")
	}
	if len(result.Entries) == 0 {
		return formatHint
	}
	return formatIngestResult(result)
}

func (b *Bot) fail(err error, key, msg string) string {
	b.log.Error().Err(err).Str("session", key).Msg(msg)
	return "Something went wrong, please try again."
}

// splitCommand separates "/month 2024-05" into command and argument and
// strips the @botname suffix Telegram adds in group chats.
func splitCommand(text string) (cmd, arg string) {
	cmd, arg, _ = strings.Cut(text, " ")
	if at := strings.Index(cmd, "@"); at > 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}
