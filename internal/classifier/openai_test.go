package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
)

func newTestClassifier(t *testing.T, handler http.HandlerFunc) *OpenAIClassifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL + "/v1"
	return NewOpenAIClassifier(openai.NewClientWithConfig(cfg), "gpt-4o-mini", 2*time.Second, zerolog.Nop())
}

func completionBody(content string) string {
	quoted, _ := json.Marshal(content)
	return `{"id":"chatcmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":` + string(quoted) + `},"finish_reason":"stop"}]}`
}

func TestOpenAIClassifier_Classify(t *testing.T) {
	req := Request{RawLine: "-600 годовой хостинг", Currency: "UAH", VATRatePercent: decimal.NewFromInt(20)}

	t.Run("well formed response", func(t *testing.T) {
		cls := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(completionBody(`{"type":"expense","amount_type":"gross","vat_applicable":true,"category":"internet","description":"annual hosting","date":""}`)))
		})

		res := cls.Classify(context.Background(), req)
		if !res.Available {
			t.Fatal("expected available result")
		}
		if res.Fields.Category != "internet" {
			t.Errorf("expected category internet, got %q", res.Fields.Category)
		}
		if res.Fields.AmountType != "gross" {
			t.Errorf("expected amount_type gross, got %q", res.Fields.AmountType)
		}
		if res.Fields.VATApplicable == nil || !*res.Fields.VATApplicable {
			t.Error("expected vat_applicable true")
		}
	})

	t.Run("fenced response", func(t *testing.T) {
		cls := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(completionBody("```json\n{\"category\":\"rent\"}\n```")))
		})

		res := cls.Classify(context.Background(), req)
		if !res.Available {
			t.Fatal("expected available result")
		}
		if res.Fields.Category != "rent" {
			t.Errorf("expected category rent, got %q", res.Fields.Category)
		}
	})

	t.Run("omitted fields stay unknown", func(t *testing.T) {
		cls := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(completionBody(`{"category":"services"}`)))
		})

		res := cls.Classify(context.Background(), req)
		if !res.Available {
			t.Fatal("expected available result")
		}
		if res.Fields.VATApplicable != nil {
			t.Error("expected vat_applicable to stay nil")
		}
		if res.Fields.AmountType != "" {
			t.Errorf("expected empty amount_type, got %q", res.Fields.AmountType)
		}
	})

	t.Run("non json response downgrades", func(t *testing.T) {
		cls := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(completionBody("I think this is an expense for hosting.")))
		})

		if res := cls.Classify(context.Background(), req); res.Available {
			t.Fatal("expected unavailable result")
		}
	})

	t.Run("server error downgrades", func(t *testing.T) {
		cls := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream down", http.StatusInternalServerError)
		})

		if res := cls.Classify(context.Background(), req); res.Available {
			t.Fatal("expected unavailable result")
		}
	})
}

func TestStripCodeFence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  \n```json\n{\"a\":1}\n```\n", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.in); got != tc.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNoopClassifier(t *testing.T) {
	t.Parallel()

	res := Noop{}.Classify(context.Background(), Request{RawLine: "+100"})
	if res.Available {
		t.Fatal("expected unavailable result")
	}
}
