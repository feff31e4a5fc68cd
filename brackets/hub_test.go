package brackets

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Dosada05/tournament-bracket/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishBracketReachesRoom(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub("tournament", nil)
	done := make(chan error, 1)
	go func() { done <- hub.Run(ctx) }()

	client := &Client{Hub: hub, Send: make(chan []byte, 4), Room: hub.Room()}
	hub.Register <- client

	snapshot := models.Snapshot{State: models.StateBracketReady, Bracket: generate(t, participants("Alice", "Bob"), "")}
	require.Eventually(t, func() bool {
		hub.PublishBracket(ctx, snapshot)
		return len(client.Send) > 0
	}, time.Second, 10*time.Millisecond)

	var msg WebSocketMessage
	require.NoError(t, json.Unmarshal(<-client.Send, &msg))
	assert.Equal(t, MessageBracketUpdated, msg.Type)
	assert.Equal(t, "tournament", msg.RoomID)

	var got models.Snapshot
	require.NoError(t, json.Unmarshal(msg.Payload, &got))
	assert.Equal(t, models.StateBracketReady, got.State)
	assert.Equal(t, "R1M1", got.Bracket.Rounds[0].Matches[0].ID)

	cancel()
	require.NoError(t, <-done)
	client.Mu.Lock()
	assert.True(t, client.IsClosed)
	client.Mu.Unlock()
}

func TestHub_HandleIncomingMatchResult(t *testing.T) {
	hub := NewHub("tournament", nil)

	payload, err := json.Marshal(models.MatchResult{MatchID: "R1M1", Winner: "Alice", Score: "5-3"})
	require.NoError(t, err)
	data, err := json.Marshal(WebSocketMessage{Type: MessageMatchResult, Payload: payload})
	require.NoError(t, err)

	hub.handleIncoming("tournament", []byte("not json"))
	hub.handleIncoming("tournament", []byte(`{"type":"PING","payload":{}}`))
	hub.handleIncoming("tournament", data)

	select {
	case result := <-hub.Results():
		assert.Equal(t, "R1M1", result.MatchID)
		assert.Equal(t, "Alice", result.Winner)
		assert.Equal(t, "5-3", result.Score)
	default:
		t.Fatal("expected a match result")
	}
	assert.Empty(t, hub.Results())
}
