package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collablearn/internal/models"
)

func TestHubJoinAndLeaveRoom(t *testing.T) {
	hub := NewHub()
	c := &client{}

	hub.JoinRoom("1_2", c)
	require.Len(t, hub.rooms, 1)

	// rejoining is idempotent
	hub.JoinRoom("1_2", c)
	require.Len(t, hub.rooms["1_2"], 1)

	hub.LeaveRoom("1_2", c)
	require.Len(t, hub.rooms, 0)
}

func TestHubMarkOnlineSnapshot(t *testing.T) {
	hub := NewHub()

	ids := hub.MarkOnline(2, &client{})
	assert.Equal(t, []int{2}, ids)

	ids = hub.MarkOnline(1, &client{})
	assert.Equal(t, []int{1, 2}, ids)
	assert.True(t, hub.IsOnline(1))
	assert.True(t, hub.IsOnline(2))
}

func TestHubReconnectEvictsPriorConnection(t *testing.T) {
	hub := NewHub()
	first := &client{}
	second := &client{}

	hub.MarkOnline(7, first)
	hub.MarkOnline(7, second)

	// the evicted connection going away must not knock out the fresh one
	_, ok := hub.MarkOffline(first)
	assert.False(t, ok)
	assert.True(t, hub.IsOnline(7))

	userID, ok := hub.MarkOffline(second)
	require.True(t, ok)
	assert.Equal(t, 7, userID)
	assert.False(t, hub.IsOnline(7))
}

func TestHubDisconnectTearsDownEverything(t *testing.T) {
	hub := NewHub()
	c := &client{}

	hub.MarkOnline(3, c)
	hub.JoinRoom("1_3", c)
	hub.JoinRoom("3_5", c)

	userID, ok := hub.Disconnect(c)
	require.True(t, ok)
	assert.Equal(t, 3, userID)
	assert.Empty(t, hub.rooms)
	assert.Empty(t, hub.joined)
	assert.False(t, hub.IsOnline(3))
}

func TestHubRelaySkipsSender(t *testing.T) {
	hub := NewHub()
	sender := &client{}

	hub.JoinRoom("1_2", sender)

	// the sender is the only member; any write attempt would hit the nil
	// connection, so finishing cleanly proves the sender is excluded
	hub.RelayToRoom("1_2", sender, models.ServerEvent{Type: models.EventTyping})
}

func TestHubMultipleClientsShareRoom(t *testing.T) {
	hub := NewHub()
	a := &client{}
	b := &client{}

	hub.JoinRoom("1_2", a)
	hub.JoinRoom("1_2", b)
	require.Len(t, hub.rooms["1_2"], 2)

	hub.LeaveRoom("1_2", a)
	require.Len(t, hub.rooms["1_2"], 1)
}
