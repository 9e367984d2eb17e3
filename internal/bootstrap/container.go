package bootstrap

import (
	"context"
	"fmt"
	"log"

	"mindcare-be/internal/config"
	"mindcare-be/internal/controller"
	"mindcare-be/internal/pkg/logger"
	"mindcare-be/internal/repository/memory"
	"mindcare-be/internal/repository/persistence"
	"mindcare-be/internal/repository/unitofwork"
	"mindcare-be/internal/service"
	"mindcare-be/internal/websocket"
	"mindcare-be/pkg/bandit"
	"mindcare-be/pkg/classifier"
	"mindcare-be/pkg/database"
	"mindcare-be/pkg/dialogue"
	"mindcare-be/pkg/events"
	"mindcare-be/pkg/sentiment"
	"mindcare-be/pkg/session"

	pktNats "mindcare-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

// FlushTopic carries q-value snapshots to the flush consumer in async mode.
const FlushTopic = "qvalues.flush"

type Container struct {
	Logger logger.ILogger

	// Controllers
	ChatbotController controller.IChatbotController
	AuditController   controller.IAuditController
	WebSocketHandler  *websocket.Handler

	// Background Services (Exposed for main.go to run)
	FlushConsumer service.IFlushConsumerService
	AuditService  *service.AuditService
	WebSocketHub  *websocket.Hub

	// Exposed for the health endpoint
	QValues  *bandit.Store
	Sessions *memory.SessionRepository

	closers []func()
}

// NewContainer wires the application. ctx bounds startup I/O and every
// websocket turn.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{}

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogFilePath)
	c.Logger = sysLogger
	c.closers = append(c.closers, func() {
		_ = sysLogger.Sync()
		_ = auditLogger.Sync()
	})

	// 2. Event Bus
	var (
		sink       events.Sink
		subscriber *pktNats.Subscriber
	)
	if cfg.App.NatsURL != "" {
		nc, js, err := pktNats.Connect(ctx, cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS, auditing in process", map[string]interface{}{
				"url":   cfg.App.NatsURL,
				"error": err.Error(),
			})
		} else {
			natsPub := pktNats.NewPublisher(nc, js)
			c.closers = append(c.closers, natsPub.Close)
			sink = natsPub
			subscriber = pktNats.NewSubscriber(js, sysLogger)
		}
	}

	audit := service.NewAuditService(subscriber, auditLogger, cfg.App.AuditLogFilePath, sysLogger)
	if sink == nil {
		sink = audit
	}
	publisher := events.NewBusPublisher(sink, sysLogger)
	c.AuditService = audit

	// 3. Q-value store
	sets := dialogue.DefaultCandidateSets()
	if cfg.App.RepliesFile != "" {
		loaded, err := dialogue.LoadCandidateSets(cfg.App.RepliesFile)
		if err != nil {
			return nil, err
		}
		sets = loaded
		sysLogger.Info("BOOTSTRAP", "Loaded replies file", map[string]interface{}{"path": cfg.App.RepliesFile})
	}

	selector, err := bandit.NewSelector(cfg.Bandit.Epsilon, cfg.Bandit.LearningRate, nil)
	if err != nil {
		return nil, err
	}
	qvalues, err := bandit.NewStore(selector, nil, sets...)
	if err != nil {
		return nil, fmt.Errorf("build q-value store: %w", err)
	}

	persister, err := c.newPersister(ctx, cfg, sysLogger)
	if err != nil {
		return nil, err
	}

	merged, err := qvalues.Load(ctx, persister)
	if err != nil {
		sysLogger.Warn("QVALUE", "Failed to load persisted q-values, starting from defaults", map[string]interface{}{
			"driver": cfg.QValue.Driver,
			"error":  err.Error(),
		})
	} else {
		sysLogger.Info("QVALUE", "Loaded persisted q-values", map[string]interface{}{
			"driver":  cfg.QValue.Driver,
			"merged":  merged,
			"version": qvalues.Version(),
		})
	}

	writeThrough := bandit.NewWriteThrough(persister)
	writeThrough.Resume(qvalues.Version())
	if cfg.QValue.FlushMode == config.FlushAsync {
		pubSub := gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 256},
			watermill.NewStdLogger(false, false),
		)
		c.closers = append(c.closers, func() { _ = pubSub.Close() })

		qvalues.SetFlusher(service.NewAsyncFlusher(pubSub, FlushTopic))
		c.FlushConsumer = service.NewFlushConsumerService(pubSub, FlushTopic, writeThrough, publisher, sysLogger)
	} else {
		qvalues.SetFlusher(writeThrough)
	}
	c.QValues = qvalues

	// 4. Services
	c.Sessions = memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.CleanupInterval)
	sessions := session.NewManager(c.Sessions)
	router := dialogue.NewRouter(classifier.NewKeyword(), sentiment.NewAnalyzer(), qvalues, publisher, sysLogger)
	chatbotService := service.NewChatbotService(sessions, router, qvalues, publisher, sysLogger)

	// WebSocket Hub
	c.WebSocketHub = websocket.NewHub(sysLogger)

	// 5. Controllers
	c.ChatbotController = controller.NewChatbotController(chatbotService, cfg.Session.TTL)
	c.AuditController = controller.NewAuditController(audit)
	c.WebSocketHandler = websocket.NewHandler(ctx, c.WebSocketHub, chatbotService)

	return c, nil
}

func (c *Container) newPersister(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) (bandit.Persister, error) {
	switch cfg.QValue.Driver {
	case config.DriverSQLite:
		p, err := persistence.NewSQLitePersister(cfg.QValue.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite q-value store: %w", err)
		}
		c.closers = append(c.closers, func() { _ = p.Close() })
		return p, nil

	case config.DriverGorm:
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.Debug)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			c.closers = append(c.closers, func() { _ = sqlDB.Close() })
		}
		return persistence.NewGormPersister(unitofwork.NewRepositoryFactory(db)), nil

	case config.DriverRedis:
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to connect to Redis", map[string]interface{}{"error": err.Error()})
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		return persistence.NewRedisPersister(rdb, cfg.QValue.RedisKey), nil

	default:
		return persistence.NewFilePersister(cfg.QValue.FilePath), nil
	}
}

// Start launches the background workers. They stop when ctx is done.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.AuditService.Start(ctx); err != nil {
		return fmt.Errorf("start audit service: %w", err)
	}
	if c.FlushConsumer != nil {
		if err := c.FlushConsumer.Consume(ctx); err != nil {
			return fmt.Errorf("start flush consumer: %w", err)
		}
	}
	return nil
}

// Close releases connections in reverse order of acquisition.
func (c *Container) Close() {
	c.AuditService.Stop()
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
