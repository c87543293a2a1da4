package contract

import (
	"context"
	"errors"

	"ai-interviewprep-be/internal/entity"
)

// ErrSessionSuperseded is returned by conditional writes when a newer
// stream id owns the scope key; the stale writer must discard its output.
var ErrSessionSuperseded = errors.New("stream session superseded by a newer stream id")

// StreamSessionRepository persists stream sessions and their replay buffers.
// The replay buffer holds the exact wire bytes in emission order, so a
// reconnecting client replays precisely what a live client saw.
//
// Writes that carry a streamId are conditional: they only apply while that
// streamId still owns the scope key.
type StreamSessionRepository interface {
	// Save creates or overwrites the session for its scope key.
	Save(ctx context.Context, session *entity.StreamSession) error

	// GetStatus reports the session state; unknown or expired scope keys
	// yield status "none", never an error.
	GetStatus(ctx context.Context, scopeKey string) (*entity.StreamSessionStatus, error)

	// SetStatus transitions the session to a terminal state.
	SetStatus(ctx context.Context, scopeKey, streamId, status string) error

	// ClearBuffer truncates the replay buffer before a new generation's
	// first append.
	ClearBuffer(ctx context.Context, scopeKey string) error

	// AppendToBuffer appends one wire frame.
	AppendToBuffer(ctx context.Context, scopeKey, streamId string, frame []byte) error

	// ReadBuffer returns the buffered frames in emission order.
	ReadBuffer(ctx context.Context, scopeKey string) ([][]byte, error)
}
