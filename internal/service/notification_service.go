package service

import (
	"context"

	"ai-interviewprep-be/internal/pkg/logger"
	"ai-interviewprep-be/internal/websocket"
	"ai-interviewprep-be/pkg/events"
	pktNats "ai-interviewprep-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery is how real-time updates reach connected clients.
// Implemented by the websocket hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, msg websocket.Message)
}

// NotificationService bridges the NATS event bus to websocket delivery, so a
// user who closed the SSE stream still learns when a generation finishes.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus with a durable consumer.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "failed to start subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", "listening on events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	rawUserId, ok := payload["user_id"].(string)
	if !ok {
		// Events without an addressee are not deliverable; drop them.
		return nil
	}
	userId, err := uuid.Parse(rawUserId)
	if err != nil {
		s.logger.Warn("NotificationService", "event carries malformed user_id", map[string]interface{}{"user_id": rawUserId})
		return nil
	}

	s.delivery.Send(userId, websocket.Message{
		Type: "notification",
		Data: payload,
	})
	return nil
}
