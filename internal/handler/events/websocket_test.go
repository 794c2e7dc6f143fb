package events

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	advisormodel "github.com/mwihoti/shauri/backend/internal/model/advisor"
	chatservice "github.com/mwihoti/shauri/backend/internal/service/chat"
	"github.com/mwihoti/shauri/backend/internal/service/notify"
)

func setupServer(t *testing.T) (*httptest.Server, *notify.Hub) {
	t.Helper()

	hub := notify.NewHub()
	advisors := advisormodel.NewMemoryStore(advisormodel.Seed())
	handler := New(hub, advisors, zap.NewNop())

	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, hub
}

func TestWebSocketReceivesStoreEvents(t *testing.T) {
	srv, hub := setupServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/" + advisormodel.Agriculture
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial err: %v", err)
	}
	defer conn.Close()

	// The subscription is registered during the upgrade, but give the
	// handler loop a moment before publishing.
	time.Sleep(50 * time.Millisecond)

	hub.Publish(chatservice.Event{
		Type:      chatservice.EventUpdated,
		AdvisorID: advisormodel.Agriculture,
		SessionID: "s1",
		Timestamp: time.Now().UTC(),
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event chatservice.Event
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read err: %v", err)
	}
	if event.Type != chatservice.EventUpdated {
		t.Fatalf("unexpected event type %s", event.Type)
	}
	if event.SessionID != "s1" {
		t.Fatalf("unexpected session id %s", event.SessionID)
	}
}

func TestWebSocketRejectsUnknownAdvisor(t *testing.T) {
	srv, _ := setupServer(t)

	resp, err := http.Get(srv.URL + "/ws/astrology")
	if err != nil {
		t.Fatalf("request err: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
