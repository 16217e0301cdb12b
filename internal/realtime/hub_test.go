package realtime

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rooming-app/rooming/internal/logger"
	"github.com/rooming-app/rooming/internal/models"
)

func newHubClient(userID string) *client {
	return &client{userID: userID, send: make(chan []byte, sendBufferSize)}
}

func TestPushReachesOnlyRecipientConnections(t *testing.T) {
	logger.InitializeForTests()
	hub := NewHub()

	target := newHubClient("alice")
	other := newHubClient("bob")
	hub.register(target)
	hub.register(other)

	notification := models.NewFollowNotification("alice", &models.User{ID: "actor", Name: "actor"})
	hub.Push("alice", notification)

	select {
	case raw := <-target.send:
		var envelope pushEnvelope
		require.NoError(t, json.Unmarshal(raw, &envelope))
		assert.Equal(t, "notification", envelope.Type)
		assert.Equal(t, notification.ID, envelope.Notification.ID)
	default:
		t.Fatal("expected a pushed notification")
	}

	assert.Empty(t, other.send)
}

func TestPushToOfflineUserIsNoOp(t *testing.T) {
	logger.InitializeForTests()
	hub := NewHub()

	hub.Push("nobody", models.NewFollowNotification("nobody", &models.User{ID: "actor"}))
	assert.Equal(t, 0, hub.ConnectionCount("nobody"))
}

func TestPushDropsWhenBufferFull(t *testing.T) {
	logger.InitializeForTests()
	hub := NewHub()

	slow := &client{userID: "alice", send: make(chan []byte)} // no buffer, no reader
	hub.register(slow)

	// Must not block
	hub.Push("alice", models.NewFollowNotification("alice", &models.User{ID: "actor"}))
}

func TestRegisterUnregister(t *testing.T) {
	logger.InitializeForTests()
	hub := NewHub()

	first := newHubClient("alice")
	second := newHubClient("alice")
	hub.register(first)
	hub.register(second)
	assert.Equal(t, 2, hub.ConnectionCount("alice"))

	hub.unregister(first)
	assert.Equal(t, 1, hub.ConnectionCount("alice"))

	// Double unregister is safe
	hub.unregister(first)
	assert.Equal(t, 1, hub.ConnectionCount("alice"))

	hub.unregister(second)
	assert.Equal(t, 0, hub.ConnectionCount("alice"))
}

func TestShutdownClosesClientsAndRefusesNew(t *testing.T) {
	logger.InitializeForTests()
	hub := NewHub()

	connected := newHubClient("alice")
	hub.register(connected)

	require.NoError(t, hub.Shutdown(context.Background()))
	_, open := <-connected.send
	assert.False(t, open)
	assert.Equal(t, 0, hub.ConnectionCount("alice"))

	late := newHubClient("bob")
	hub.register(late)
	_, open = <-late.send
	assert.False(t, open)

	// Second shutdown is a no-op
	require.NoError(t, hub.Shutdown(context.Background()))
}
