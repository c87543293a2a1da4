package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-interviewprep-be/internal/dto"
	"ai-interviewprep-be/internal/entity"
	"ai-interviewprep-be/internal/pkg/logger"
	"ai-interviewprep-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the usage topic and turns each message into a
// credit transaction row. Doing this off the hot path keeps ledger writes
// out of the generation stream's critical section.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishGenerationUsageMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "failed to unmarshal usage message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // malformed messages would retry forever
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	tx := &entity.CreditTransaction{
		Id:               uuid.New(),
		UserId:           payload.UserId,
		InterviewId:      payload.InterviewId,
		Module:           payload.Module,
		Amount:           payload.Amount,
		Model:            payload.Model,
		PromptTokens:     payload.PromptTokens,
		CompletionTokens: payload.CompletionTokens,
		LatencyMs:        payload.LatencyMs,
		ItemCount:        payload.ItemCount,
		CreatedAt:        time.Now(),
	}

	if err := uow.CreditTransactionRepository().Create(ctx, tx); err != nil {
		cs.logger.Error("ConsumerService", "failed to store credit transaction", map[string]interface{}{
			"user_id": payload.UserId,
			"module":  payload.Module,
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
