// Package bootstrap wires the dependency graph. Everything the server and
// main need is built here once and handed over as a Container.
package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-interviewprep-be/internal/config"
	"ai-interviewprep-be/internal/controller"
	"ai-interviewprep-be/internal/handler"
	"ai-interviewprep-be/internal/pkg/logger"
	"ai-interviewprep-be/internal/repository/contract"
	"ai-interviewprep-be/internal/repository/memory"
	"ai-interviewprep-be/internal/repository/redisstream"
	"ai-interviewprep-be/internal/repository/unitofwork"
	"ai-interviewprep-be/internal/service"
	"ai-interviewprep-be/internal/websocket"
	"ai-interviewprep-be/pkg/genai"
	"ai-interviewprep-be/pkg/llm/factory"

	pktNats "ai-interviewprep-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	InterviewController  controller.IInterviewController
	GenerationController controller.IGenerationController
	UserController       controller.IUserController

	// Background services, run by main
	ConsumerService service.IConsumerService

	// WebSockets & notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// In-process event bus for usage accounting
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	generator := genai.NewLLMGenerator(llmProvider)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		natsSub = nil
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	redisUp := true
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
		redisUp = false
	}

	// Stream session store: Redis when available, in-process otherwise.
	// The in-process store loses resumability across restarts, acceptable
	// for development only.
	sessionTTL := time.Duration(cfg.Generation.SessionTTLMin) * time.Minute
	var streamStore contract.StreamSessionRepository
	if redisUp {
		streamStore = redisstream.NewStreamSessionRepository(rdb, sessionTTL)
	} else {
		log.Printf("[WARN] Redis unavailable, stream sessions held in process memory")
		streamStore = memory.NewStreamSessionRepository(sessionTTL)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	var hubRedis *redis.Client
	if redisUp {
		hubRedis = rdb
	}
	wsHub := websocket.NewHub(hubRedis, wsLogger)
	go wsHub.Run()

	publisherService := service.NewPublisherService(cfg.Generation.UsageTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Generation.UsageTopic,
		uowFactory,
		sysLogger,
	)

	generationService := service.NewGenerationService(
		uowFactory,
		streamStore,
		generator,
		publisherService,
		natsPub,
		sysLogger,
		cfg.Generation.Concurrency,
		time.Duration(cfg.Generation.ThrottleIntervalMs)*time.Millisecond,
	)
	interviewService := service.NewInterviewService(uowFactory)
	userService := service.NewUserService(uowFactory)

	if natsSub != nil {
		notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
		go notifService.Start()
	}
	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	generationTimeout := time.Duration(cfg.Generation.TimeoutMin) * time.Minute

	return &Container{
		InterviewController:  controller.NewInterviewController(interviewService),
		GenerationController: controller.NewGenerationController(generationService, generationTimeout),
		UserController:       controller.NewUserController(userService),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		Logger: sysLogger,
	}
}
