package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/DmtrPpl/vat-bot/internal/adapter/telegram"
)

// UpdateHandler processes one Telegram update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, upd telegram.Update) error
}

// WebhookHandler receives Telegram webhook calls.
type WebhookHandler struct {
	bot    UpdateHandler
	secret string
	log    zerolog.Logger
}

// NewWebhookHandler creates a WebhookHandler. secret is the value set via
// setWebhook; empty disables the check.
func NewWebhookHandler(bot UpdateHandler, secret string, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		bot:    bot,
		secret: secret,
		log:    log.With().Str("component", "webhook").Logger(),
	}
}

// Handle decodes an update and hands it to the bot. It acknowledges with
// 200 even on processing errors: Telegram redelivers non-2xx responses
// and the ledger must not see the same message twice.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" && r.Header.Get("X-Telegram-Bot-Api-Secret-Token") != h.secret {
		writeError(w, http.StatusUnauthorized, "invalid webhook secret", "")
		return
	}

	var upd telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.log.Warn().Err(err).Msg("malformed update payload")
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	if err := h.bot.HandleUpdate(r.Context(), upd); err != nil {
		h.log.Error().Err(err).Int64("update_id", upd.UpdateID).Msg("update handling failed")
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
