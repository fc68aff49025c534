package models

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// ChatID derives the room identifier for a conversation between two users.
// The participant ids are rendered as strings, sorted lexicographically and
// joined, so both sides compute the same id without a lookup table.
func ChatID(userA, userB int) string {
	ids := []string{strconv.Itoa(userA), strconv.Itoa(userB)}
	sort.Strings(ids)
	return ids[0] + "_" + ids[1]
}

// ChatPartner returns the other participant of a chat id, or zero when the
// id is malformed or does not contain the user.
func ChatPartner(chatID string, userID int) int {
	parts := strings.SplitN(chatID, "_", 2)
	if len(parts) != 2 {
		return 0
	}
	a, errA := strconv.Atoi(parts[0])
	b, errB := strconv.Atoi(parts[1])
	if errA != nil || errB != nil {
		return 0
	}
	switch userID {
	case a:
		return b
	case b:
		return a
	}
	return 0
}

// ChatParticipant reports whether the user is one of the two ids encoded in
// the chat id.
func ChatParticipant(chatID string, userID int) bool {
	return ChatID(userID, ChatPartner(chatID, userID)) == chatID && ChatPartner(chatID, userID) != 0
}

// ChatSummary provides an API-friendly view of a conversation for a user.
type ChatSummary struct {
	ChatID        string    `json:"chat_id"`
	PartnerID     int       `json:"partner_id"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
}
