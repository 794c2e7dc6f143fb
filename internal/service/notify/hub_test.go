package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mwihoti/shauri/backend/internal/model/advisor"
	chatservice "github.com/mwihoti/shauri/backend/internal/service/chat"
	"github.com/mwihoti/shauri/backend/internal/service/notify"
)

func TestHubDeliversToAdvisorSubscribers(t *testing.T) {
	hub := notify.NewHub()
	agri := hub.Subscribe(advisor.Agriculture)
	legal := hub.Subscribe(advisor.Legal)

	hub.Publish(chatservice.Event{
		Type:      chatservice.EventCreated,
		AdvisorID: advisor.Agriculture,
		SessionID: "s1",
	})

	select {
	case event := <-agri:
		require.Equal(t, chatservice.EventCreated, event.Type)
		require.Equal(t, "s1", event.SessionID)
	case <-time.After(time.Second):
		t.Fatal("expected event for agriculture subscriber")
	}

	select {
	case event := <-legal:
		t.Fatalf("legal subscriber should not receive %v", event)
	default:
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := notify.NewHub()
	ch := hub.Subscribe(advisor.Legal)
	hub.Unsubscribe(advisor.Legal, ch)

	_, open := <-ch
	require.False(t, open)

	// Publishing after unsubscribe must not panic.
	hub.Publish(chatservice.Event{Type: chatservice.EventDeleted, AdvisorID: advisor.Legal})
}

func TestHubPublishNeverBlocks(t *testing.T) {
	hub := notify.NewHub()
	ch := hub.Subscribe(advisor.Agriculture)

	// Overflow the subscriber buffer; extra events are dropped silently.
	for i := 0; i < 64; i++ {
		hub.Publish(chatservice.Event{Type: chatservice.EventUpdated, AdvisorID: advisor.Agriculture})
	}

	drained := 0
	for {
		select {
		case <-ch:
			drained++
			continue
		default:
		}
		break
	}
	require.Greater(t, drained, 0)
	require.LessOrEqual(t, drained, 16)
}
