package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderflow/cmd"
	httpadapter "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/otelmetrics"
	"orderflow/internal/adapters/out/postgres/eventrepo"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/rabbitmq"
	"orderflow/internal/jobs"
	"orderflow/internal/pkg/clock"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Service failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	config := getConfig(logger)

	gormDB, err := openDatabase(config)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	conn, channel, err := connectBroker(config)
	if err != nil {
		return fmt.Errorf("connect broker: %w", err)
	}
	defer conn.Close()
	defer channel.Close()

	if err = rabbitmq.DeclareTopology(channel); err != nil {
		return fmt.Errorf("declare topology: %w", err)
	}

	metrics, err := otelmetrics.NewOrderMetrics(nil)
	if err != nil {
		return fmt.Errorf("create metrics: %w", err)
	}

	root := cmd.NewCompositionRoot(config, gormDB, channel, metrics, logger)

	jobManager := jobs.NewJobManager(root.CreatePublishPendingEventsCommandHandler(), logger)
	root.WithPublishTrigger(jobManager.PublishTrigger())

	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()

	consumer := rabbitmq.NewConsumer(
		channel,
		root.CreateConsumerHandlers(),
		metrics,
		clock.NewSystemClock(),
		logger,
	)
	if err = consumer.Start(consumerCtx); err != nil {
		return fmt.Errorf("start consumer: %w", err)
	}

	e := echo.New()
	e.HideBanner = true

	server := httpadapter.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetOrderStatusQueryHandler(),
		root.CreateGetOrderEventsQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		if serveErr := e.Start("0.0.0.0:" + config.HTTPPort); serveErr != nil {
			logger.Info("HTTP server stopped", "reason", serveErr)
		}
	}()

	logger.Info("Service started", "httpPort", config.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	stopConsumer()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func getConfig(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file found, using process environment")
	}

	return cmd.Config{
		HTTPPort:       envOrDefault("HTTP_PORT", "8080"),
		DBHost:         envOrDefault("DB_HOST", "localhost"),
		DBPort:         envOrDefault("DB_PORT", "5432"),
		DBUser:         envOrDefault("DB_USER", "postgres"),
		DBPassword:     envOrDefault("DB_PASSWORD", "postgres"),
		DBName:         envOrDefault("DB_NAME", "orderflow"),
		DBSslMode:      envOrDefault("DB_SSLMODE", "disable"),
		RabbitHost:     envOrDefault("RABBITMQ_HOST", "localhost"),
		RabbitPort:     envOrDefault("RABBITMQ_PORT", "5672"),
		RabbitUser:     envOrDefault("RABBITMQ_USER", "guest"),
		RabbitPassword: envOrDefault("RABBITMQ_PASSWORD", "guest"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &eventrepo.EventDTO{}); err != nil {
		return nil, err
	}

	return gormDB, nil
}

func connectBroker(config cmd.Config) (*amqp.Connection, *amqp.Channel, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		config.RabbitUser, config.RabbitPassword, config.RabbitHost, config.RabbitPort)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	return conn, channel, nil
}
