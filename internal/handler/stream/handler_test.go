package stream

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	advisormodel "github.com/mwihoti/shauri/backend/internal/model/advisor"
	chatmodel "github.com/mwihoti/shauri/backend/internal/model/chat"
	chatservice "github.com/mwihoti/shauri/backend/internal/service/chat"
	"github.com/mwihoti/shauri/backend/internal/service/conversation"
)

type fixedResponder struct {
	reply string
	err   error
}

func (f fixedResponder) GenerateReply(context.Context, advisormodel.Advisor, []chatmodel.Turn) (string, error) {
	return f.reply, f.err
}

func setupHandler(responder conversation.Responder) *Handler {
	advisors := advisormodel.NewMemoryStore(advisormodel.Seed())
	store := chatservice.NewStore(advisors, nil)
	conv := conversation.NewService(store, advisors, responder, zap.NewNop())
	return New(conv)
}

func TestHandleStreamRequestFrames(t *testing.T) {
	h := setupHandler(fixedResponder{reply: "Plant maize at the onset of long rains"})
	resp := httptest.NewRecorder()

	err := h.HandleStreamRequest(context.Background(), resp, advisormodel.Agriculture, "When should I plant maize?")
	if err != nil {
		t.Fatalf("HandleStreamRequest err: %v", err)
	}

	if ct := resp.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}

	body := resp.Body.String()
	for _, frame := range []string{`"event":"pending"`, `"event":"reply"`, `"event":"done"`} {
		if !strings.Contains(body, frame) {
			t.Fatalf("missing %s frame in %s", frame, body)
		}
	}
	if !strings.Contains(body, chatmodel.ThinkingPlaceholder) {
		t.Fatalf("pending frame should carry the placeholder: %s", body)
	}
	if !strings.Contains(body, "Plant maize at the onset of long rains") {
		t.Fatalf("reply frame should carry the reply: %s", body)
	}
}

func TestHandleStreamRequestInferenceFailure(t *testing.T) {
	h := setupHandler(fixedResponder{err: errors.New("upstream down")})
	resp := httptest.NewRecorder()

	// Inference failure settles into the apology turn; the stream still
	// finishes cleanly.
	err := h.HandleStreamRequest(context.Background(), resp, advisormodel.Agriculture, "When should I plant maize?")
	if err != nil {
		t.Fatalf("HandleStreamRequest err: %v", err)
	}

	body := resp.Body.String()
	if !strings.Contains(body, "agriculture advisory service") {
		t.Fatalf("expected apology turn in %s", body)
	}
	if !strings.Contains(body, `"event":"done"`) {
		t.Fatalf("expected done frame in %s", body)
	}
}

func TestHandleStreamRequestRejectsEmptyMessage(t *testing.T) {
	h := setupHandler(fixedResponder{reply: "unused"})
	resp := httptest.NewRecorder()

	err := h.HandleStreamRequest(context.Background(), resp, advisormodel.Agriculture, "   ")
	if err == nil {
		t.Fatal("expected error for empty message")
	}
	if !strings.Contains(resp.Body.String(), `"event":"error"`) {
		t.Fatalf("expected error frame in %s", resp.Body.String())
	}
}
