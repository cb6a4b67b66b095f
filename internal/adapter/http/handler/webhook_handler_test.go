package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/DmtrPpl/vat-bot/internal/adapter/telegram"
)

type stubBot struct {
	updates []telegram.Update
	err     error
}

func (s *stubBot) HandleUpdate(ctx context.Context, upd telegram.Update) error {
	s.updates = append(s.updates, upd)
	return s.err
}

func postWebhook(h *WebhookHandler, body, secret string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", strings.NewReader(body))
	if secret != "" {
		req.Header.Set("X-Telegram-Bot-Api-Secret-Token", secret)
	}
	w := httptest.NewRecorder()
	h.Handle(w, req)
	return w
}

func TestWebhook_DispatchesUpdate(t *testing.T) {
	t.Parallel()

	bot := &stubBot{}
	h := NewWebhookHandler(bot, "", zerolog.Nop())

	w := postWebhook(h, `{"update_id":7,"message":{"chat":{"id":42},"text":"+100 sales"}}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(bot.updates) != 1 {
		t.Fatalf("expected 1 update, got %d", len(bot.updates))
	}
	upd := bot.updates[0]
	if upd.UpdateID != 7 || upd.Message == nil || upd.Message.Chat.ID != 42 {
		t.Errorf("unexpected update %+v", upd)
	}
}

func TestWebhook_SecretCheck(t *testing.T) {
	t.Parallel()

	bot := &stubBot{}
	h := NewWebhookHandler(bot, "s3cret", zerolog.Nop())

	if w := postWebhook(h, `{}`, "wrong"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %d", w.Code)
	}
	if len(bot.updates) != 0 {
		t.Fatal("expected no dispatch on bad secret")
	}

	if w := postWebhook(h, `{"update_id":1}`, "s3cret"); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for correct secret, got %d", w.Code)
	}
}

func TestWebhook_AcksMalformedBody(t *testing.T) {
	t.Parallel()

	bot := &stubBot{}
	h := NewWebhookHandler(bot, "", zerolog.Nop())

	if w := postWebhook(h, `not json`, ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200 so Telegram does not redeliver, got %d", w.Code)
	}
	if len(bot.updates) != 0 {
		t.Fatal("expected no dispatch for malformed body")
	}
}

func TestWebhook_AcksHandlerFailure(t *testing.T) {
	t.Parallel()

	bot := &stubBot{err: errors.New("send failed")}
	h := NewWebhookHandler(bot, "", zerolog.Nop())

	if w := postWebhook(h, `{"update_id":1}`, ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200 despite handler failure, got %d", w.Code)
	}
}
