package core

import "time"

const (
	LocBotName       = "LocBot"
	LocBotRepository = "https://github.com/sandevgo/locbot"
	LocBotVersion    = "0.1.0"
)

// Place is one captured location, as confirmed by the user.
type Place struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Direction of a transcript entry relative to the bot.
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// TranscriptEntry is one logged message of a conversation. Entries produced
// within the same turn share a TurnID, so an inbound message and the replies
// it triggered can be correlated.
type TranscriptEntry struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	TurnID    string    `json:"turn_id"`
	Direction string    `json:"direction"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
