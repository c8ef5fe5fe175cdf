package main

import (
	"log"
	"time"

	"dispute-resolution-backend/internal/config"
	"dispute-resolution-backend/internal/events"
	"dispute-resolution-backend/internal/metrics"
	"dispute-resolution-backend/internal/models"
	"dispute-resolution-backend/internal/repository"
	"dispute-resolution-backend/internal/routes"
	"dispute-resolution-backend/internal/seed"
	"dispute-resolution-backend/internal/services/assessment"
	"dispute-resolution-backend/internal/services/dispute"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	// Amounts render as plain JSON numbers, matching the data file.
	decimal.MarshalJSONWithoutQuotes = true

	// Generate synthetic data if it doesn't exist
	seed.EnsureDataFile(cfg.DataFile, logger)

	catalog := repository.LoadTransactionCatalog(cfg.DataFile, logger)

	store, err := newDisputeStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize dispute store", zap.Error(err))
	}

	var publisher events.DisputePublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaDisputeTopic)
		logger.Info("Dispute event publishing enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaDisputeTopic),
		)
	}

	analyzer := assessment.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, logger)

	disputeService := dispute.NewService(
		catalog,
		store,
		analyzer,
		publisher,
		metrics.NewDisputeMetrics(),
		logger,
		decimal.NewFromFloat(cfg.MaxDisputeAmount),
		cfg.DisputeWindowDays,
	)

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Customer-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, disputeService, logger)

	logger.Info("Starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server exited", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return logger
}

// newDisputeStore picks the persistent store when a DSN is configured and
// the in-memory store otherwise.
func newDisputeStore(cfg *config.Config, logger *zap.Logger) (repository.DisputeStore, error) {
	if cfg.DatabaseDSN == "" {
		logger.Info("Using in-memory dispute store")
		return repository.NewMemoryDisputeStore(), nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.DisputeRecord{}); err != nil {
		return nil, err
	}
	logger.Info("Using database dispute store")
	return repository.NewGormDisputeStore(db, logger), nil
}
