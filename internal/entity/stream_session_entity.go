package entity

import (
	"time"

	"ai-interviewprep-be/internal/constant"

	"github.com/google/uuid"
)

// StreamSession is one generation attempt for a scope key. StreamId is fresh
// on every (re)start; a newer session logically supersedes the old one, and
// writers holding a stale StreamId must discard their output.
type StreamSession struct {
	StreamId  string
	ScopeKey  string
	OwnerId   uuid.UUID
	Status    string
	Epoch     int64
	CreatedAt time.Time
}

// NewStreamSession builds a fresh active session with a new stream id and an
// epoch bumped past prevEpoch (0 when no previous session exists).
func NewStreamSession(scopeKey string, ownerId uuid.UUID, prevEpoch int64) *StreamSession {
	return &StreamSession{
		StreamId:  uuid.New().String(),
		ScopeKey:  scopeKey,
		OwnerId:   ownerId,
		Status:    constant.StreamStatusActive,
		Epoch:     prevEpoch + 1,
		CreatedAt: time.Now(),
	}
}

// StreamSessionStatus is the poller's view of a scope key.
type StreamSessionStatus struct {
	Status    string
	StreamId  string
	Epoch     int64
	CreatedAt *time.Time
}
