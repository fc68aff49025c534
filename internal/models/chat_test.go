package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChatIDSymmetry(t *testing.T) {
	assert.Equal(t, ChatID(1, 2), ChatID(2, 1))
	assert.Equal(t, "1_2", ChatID(2, 1))
}

func TestChatIDLexicographicOrder(t *testing.T) {
	// ids sort as strings, not numbers
	assert.Equal(t, "10_2", ChatID(2, 10))
	assert.Equal(t, ChatID(10, 2), ChatID(2, 10))
}

func TestChatPartner(t *testing.T) {
	chatID := ChatID(4, 9)

	assert.Equal(t, 9, ChatPartner(chatID, 4))
	assert.Equal(t, 4, ChatPartner(chatID, 9))
	assert.Equal(t, 0, ChatPartner(chatID, 7))
	assert.Equal(t, 0, ChatPartner("garbage", 4))
	assert.Equal(t, 0, ChatPartner("a_b", 4))
}

func TestChatParticipant(t *testing.T) {
	chatID := ChatID(4, 9)

	assert.True(t, ChatParticipant(chatID, 4))
	assert.True(t, ChatParticipant(chatID, 9))
	assert.False(t, ChatParticipant(chatID, 7))
	assert.False(t, ChatParticipant("garbage", 4))
}
