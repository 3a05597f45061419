package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishNeverBlocks(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	// No Run loop draining the queue; overflow must be dropped, not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Publish(&Event{UserID: 1, Type: "question_answered"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a saturated event queue")
	}
}

func TestEventSerialization(t *testing.T) {
	questionID := int64(7)
	event := &Event{
		UserID:     42,
		Type:       "answer_accepted",
		ID:         99,
		Title:      "Your answer was accepted",
		Message:    "jane_doe accepted your answer",
		QuestionID: &questionID,
		Timestamp:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Routing field stays server-side
	assert.NotContains(t, decoded, "UserID")
	assert.NotContains(t, decoded, "userID")

	assert.Equal(t, "answer_accepted", decoded["type"])
	assert.Equal(t, float64(99), decoded["id"])
	assert.Equal(t, float64(7), decoded["questionId"])
	assert.NotContains(t, decoded, "answerId", "nil pointer fields are omitted")
}

func TestConnectionCount(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	assert.Equal(t, 0, hub.ConnectionCount(1))

	client := &Client{hub: hub, send: make(chan []byte, 1), userID: 1, logger: zerolog.Nop()}
	hub.registerClient(client)
	assert.Equal(t, 1, hub.ConnectionCount(1))
	assert.Equal(t, 0, hub.ConnectionCount(2))

	hub.unregisterClient(client)
	assert.Equal(t, 0, hub.ConnectionCount(1))
}
