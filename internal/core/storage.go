package core

import "context"

type PlacesRepository interface {
	SavePlace(ctx context.Context, place Place) (int64, error)
	ListPlaces(ctx context.Context, sessionID string, limit int) ([]Place, error)
}

type TranscriptRepository interface {
	Append(ctx context.Context, sessionID, turnID, direction, text string) error
	Recent(ctx context.Context, sessionID string, limit int) ([]TranscriptEntry, error)
}

// Sender delivers outgoing messages to whatever channel a conversation lives
// on. Implemented by the transports.
type Sender interface {
	Send(ctx context.Context, text string) error
}
